package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"10001", "12345678", "00000"}
	for _, s := range valid {
		assert.True(t, IsValidIdentifier(s), s)
	}

	invalid := []string{"", "1234", "123456789", "12a45", " 10001", "10001 "}
	for _, s := range invalid {
		assert.False(t, IsValidIdentifier(s), "%q", s)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t"))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank(" x "))
}
