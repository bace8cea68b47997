package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Student identifier pattern - 5 to 8 digits
	IdentifierPattern = `^\d{5,8}$`

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Identifier *regexp.Regexp
}{
	Identifier: regexp.MustCompile(IdentifierPattern),
}

// IsValidIdentifier reports whether s is a well-formed student identifier.
func IsValidIdentifier(s string) bool {
	return CompiledPatterns.Identifier.MatchString(s)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
