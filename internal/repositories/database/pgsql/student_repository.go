package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	"github.com/novacollege/nodues_backend/internal/models"
	"github.com/novacollege/nodues_backend/internal/utils/mapping"
)

type PgxStudentRepository struct {
	db *pgxpool.Pool
}

func newPgxStudentRepository(db *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{db: db}
}

// Ensure PgxStudentRepository implements portsrepo.StudentRepositoryFacade
var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

const studentColumns = `student_id, user_id, roll_number, semester, batch, course, section, father_name, mother_name, contact_number, address, created_at, created_by, last_updated_at, last_updated_by`

func scanStudentRow(row pgx.Row) (*models.StudentProfile, error) {
	var m models.StudentProfile
	err := row.Scan(
		&m.StudentID,
		&m.UserID,
		&m.RollNumber,
		&m.Semester,
		&m.Batch,
		&m.Course,
		&m.Section,
		&m.FatherName,
		&m.MotherName,
		&m.ContactNumber,
		&m.Address,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxStudentRepository) findOne(ctx context.Context, query string, args ...any) (*domain.StudentProfile, error) {
	m, err := scanStudentRow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	student := mapping.ToDomainStudent(*m)
	return &student, nil
}

func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.StudentProfile) error {
	m := mapping.ToModelStudent(student)
	query := `
        INSERT INTO students (student_id, user_id, roll_number, semester, batch, course, section, father_name, mother_name, contact_number, address, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.db.Exec(ctx, query,
		m.StudentID,
		m.UserID,
		m.RollNumber,
		m.Semester,
		m.Batch,
		m.Course,
		m.Section,
		m.FatherName,
		m.MotherName,
		m.ContactNumber,
		m.Address,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save student profile: %w", err)
	}
	return nil
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.StudentProfile, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1;`
	student, err := r.findOne(ctx, query, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}
	return student, nil
}

func (r *PgxStudentRepository) FindStudentByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1;`
	student, err := r.findOne(ctx, query, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find student by user ID %s: %w", userID, err)
	}
	return student, nil
}

func (r *PgxStudentRepository) FindStudentByRollNumber(ctx context.Context, rollNumber string) (*domain.StudentProfile, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE roll_number = $1;`
	student, err := r.findOne(ctx, query, rollNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find student by roll number: %w", err)
	}
	return student, nil
}

func (r *PgxStudentRepository) FindStudents(ctx context.Context, limit, offset int) ([]domain.StudentProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + studentColumns + `
        FROM students
        ORDER BY roll_number ASC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	modelStudents := []models.StudentProfile{}
	for rows.Next() {
		m, err := scanStudentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		modelStudents = append(modelStudents, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", rows.Err())
	}
	return mapping.ToDomainStudentSlice(modelStudents), nil
}

func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.StudentProfile) error {
	m := mapping.ToModelStudent(student)
	query := `
        UPDATE students
        SET semester = $1, batch = $2, course = $3, section = $4, father_name = $5, mother_name = $6, contact_number = $7, address = $8, last_updated_at = $9, last_updated_by = $10
        WHERE student_id = $11;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Semester,
		m.Batch,
		m.Course,
		m.Section,
		m.FatherName,
		m.MotherName,
		m.ContactNumber,
		m.Address,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.StudentID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update student query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxStudentRepository) DeleteStudent(ctx context.Context, studentID string) error {
	query := `DELETE FROM students WHERE student_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete student %s: %w", studentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
