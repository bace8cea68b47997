package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StudentRecord is the raw row shape of the students table. Validation
// happens when the directory service rebuilds the roster from these records,
// not here, so a corrupt row can be skipped instead of failing the load.
type StudentRecord struct {
	Identifier string
	FirstName  string
	LastName   string
	Program    string
	BirthDate  *time.Time
}

// StudentRepository handles database operations for the student roster.
// It is the only durable store the engine consumes; exams, attempts and
// notifications live in memory for the running session.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Upsert inserts or replaces the student row keyed by identifier.
func (r *StudentRepository) Upsert(ctx context.Context, rec StudentRecord) error {
	query := `
		INSERT INTO students (identifier, first_name, last_name, program, birth_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (identifier) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name  = EXCLUDED.last_name,
		    program    = EXCLUDED.program,
		    birth_date = EXCLUDED.birth_date
	`

	_, err := r.db.Exec(ctx, query, rec.Identifier, rec.FirstName, rec.LastName, rec.Program, rec.BirthDate)
	if err != nil {
		return fmt.Errorf("error upserting student: %w", err)
	}

	return nil
}

// Delete removes the student row. Returns whether a row was deleted.
func (r *StudentRepository) Delete(ctx context.Context, identifier string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE identifier = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("error deleting student: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// LoadAll retrieves every student row, used once at startup to hydrate the
// in-memory roster.
func (r *StudentRepository) LoadAll(ctx context.Context) ([]StudentRecord, error) {
	query := `
		SELECT identifier, first_name, last_name, program, birth_date
		FROM students
		ORDER BY identifier
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StudentRecord
	for rows.Next() {
		var rec StudentRecord
		if err := rows.Scan(
			&rec.Identifier,
			&rec.FirstName,
			&rec.LastName,
			&rec.Program,
			&rec.BirthDate,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
