package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	StudentRepository *StudentRepository
}

// NewRepositories creates a new repository container with all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
	}
}
