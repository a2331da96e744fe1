package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/dberrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, sb: statementBuilder()}
}

const studentColumns = "id, name, dob, faculty, major, student_id, university_email, registration_date"

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.DateOfBirth, &s.Faculty, &s.Major, &s.StudentID, &s.UniversityEmail, &s.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStudent inserts a student. StudentID and UniversityEmail must
// already be generated by the caller.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "dob", "faculty", "major", "student_id", "university_email", "registration_date").
		Values(student.Name, student.DateOfBirth, student.Faculty, student.Major, student.StudentID, student.UniversityEmail, student.RegistrationDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

// GetStudentByID retrieves a student by primary key
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"id": id})
}

// GetStudentByEmail retrieves a student by university email
func (r *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"university_email": email})
}

func (r *StudentRepository) getStudent(ctx context.Context, pred squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// UpdateStudent updates a student row, including regenerated identifiers.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":             student.Name,
			"dob":              student.DateOfBirth,
			"faculty":          student.Faculty,
			"major":            student.Major,
			"student_id":       student.StudentID,
			"university_email": student.UniversityEmail,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// DeleteStudent removes a student and, explicitly before the row itself, all
// of the student's payments, inside one transaction so no orphaned payments
// survive the delete.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete student transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	delPayments, delPaymentsArgs, err := r.sb.Delete("payments").
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete payments query: %w", err)
	}
	if _, err := tx.Exec(ctx, delPayments, delPaymentsArgs...); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student payments")
		return fmt.Errorf("error deleting student payments: %w", err)
	}

	delStudent, delStudentArgs, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}
	cmdTag, err := tx.Exec(ctx, delStudent, delStudentArgs...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return tx.Commit(ctx)
}

// ListStudents retrieves all students ordered by name
func (r *StudentRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}
	return r.queryStudents(ctx, sql, args)
}

// ListStudentsByInstructor retrieves the distinct students enrolled in any of
// the instructor's courses.
func (r *StudentRepository) ListStudentsByInstructor(ctx context.Context, instructorID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("DISTINCT s.id, s.name, s.dob, s.faculty, s.major, s.student_id, s.university_email, s.registration_date").
		From("students s").
		Join("enrollments e ON e.student_id = s.id").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students by instructor query: %w", err)
	}
	return r.queryStudents(ctx, sql, args)
}

func (r *StudentRepository) queryStudents(ctx context.Context, sql string, args []interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}
