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

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: statementBuilder()}
}

const courseWithInstructorColumns = "c.id, c.code, c.name, c.credit_hours, c.instructor_id, " +
	"i.id, i.full_name, i.email, i.department"

func scanCourseWithInstructor(row pgx.Row) (*models.Course, error) {
	c := &models.Course{Instructor: &models.Instructor{}}
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.CreditHours, &c.InstructorID,
		&c.Instructor.ID, &c.Instructor.FullName, &c.Instructor.Email, &c.Instructor.Department,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCourse inserts a course
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("code", "name", "credit_hours", "instructor_id").
		Values(course.Code, course.Name, course.CreditHours, course.InstructorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrInstructorNotFound
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// GetCourseByID retrieves a course with its instructor
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseWithInstructorColumns).
		From("courses c").
		Join("instructors i ON i.id = c.instructor_id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourseWithInstructor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// DeleteCourse removes a course. Enrollments, fees, schedules, assignments,
// grades and attendance rows follow via cascading foreign keys.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListCourses retrieves all courses with their instructors
func (r *CourseRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseWithInstructorColumns).
		From("courses c").
		Join("instructors i ON i.id = c.instructor_id").
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

// ListCoursesByInstructor retrieves the courses taught by an instructor
func (r *CourseRepository) ListCoursesByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseWithInstructorColumns).
		From("courses c").
		Join("instructors i ON i.id = c.instructor_id").
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses by instructor query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

// ListEnrollableCourses retrieves the courses a student has not yet enrolled in
func (r *CourseRepository) ListEnrollableCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseWithInstructorColumns).
		From("courses c").
		Join("instructors i ON i.id = c.instructor_id").
		Where("c.id NOT IN (SELECT course_id FROM enrollments WHERE student_id = ?)", studentID).
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollable courses query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args []interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourseWithInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
