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

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, sb: statementBuilder()}
}

// CreateEnrollment inserts an enrollment row
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("course_id", "student_id", "instructor_id").
		Values(enrollment.CourseID, enrollment.StudentID, enrollment.InstructorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing create enrollment query")
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}
	return id, nil
}

// ExistsByStudentAndCourse reports whether the student is enrolled in the course
func (r *EnrollmentRepository) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return true, nil
}

const enrollmentWithCourseColumns = "e.id, e.course_id, e.student_id, e.instructor_id, " +
	"c.id, c.code, c.name, c.credit_hours, c.instructor_id, " +
	"i.id, i.full_name, i.email, i.department"

func scanEnrollmentWithCourse(row pgx.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{Course: &models.Course{Instructor: &models.Instructor{}}}
	err := row.Scan(
		&e.ID, &e.CourseID, &e.StudentID, &e.InstructorID,
		&e.Course.ID, &e.Course.Code, &e.Course.Name, &e.Course.CreditHours, &e.Course.InstructorID,
		&e.Course.Instructor.ID, &e.Course.Instructor.FullName, &e.Course.Instructor.Email, &e.Course.Instructor.Department,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEnrollmentsByStudent retrieves a student's enrollments with course details
func (r *EnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentWithCourseColumns).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Join("instructors i ON i.id = c.instructor_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollments by student query: %w", err)
	}
	return r.queryEnrollments(ctx, sql, args)
}

// ListEnrollmentsByCourse retrieves every enrollment row in a course. Used for
// announcement fan-out, one notification per row.
func (r *EnrollmentRepository) ListEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentWithCourseColumns).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Join("instructors i ON i.id = c.instructor_id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollments by course query: %w", err)
	}
	return r.queryEnrollments(ctx, sql, args)
}

// ListEnrollmentsByInstructor retrieves the enrollments across all of an
// instructor's courses.
func (r *EnrollmentRepository) ListEnrollmentsByInstructor(ctx context.Context, instructorID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentWithCourseColumns).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Join("instructors i ON i.id = c.instructor_id").
		Where(squirrel.Eq{"e.instructor_id": instructorID}).
		OrderBy("c.code ASC, e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollments by instructor query: %w", err)
	}
	return r.queryEnrollments(ctx, sql, args)
}

func (r *EnrollmentRepository) queryEnrollments(ctx context.Context, sql string, args []interface{}) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing enrollments query")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollmentWithCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}
