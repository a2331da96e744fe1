package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/dberrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db, sb: statementBuilder()}
}

// UpsertGrade inserts a grade for a (student, course) pair or replaces the
// letter if one already exists.
func (r *GradeRepository) UpsertGrade(ctx context.Context, grade *models.Grade) (int64, error) {
	sql, args, err := r.sb.Insert("grades").
		Columns("student_id", "course_id", "grade").
		Values(grade.StudentID, grade.CourseID, grade.Grade).
		Suffix("ON CONFLICT (student_id, course_id) DO UPDATE SET grade = EXCLUDED.grade RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build upsert grade query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error executing upsert grade query")
		return 0, fmt.Errorf("error upserting grade: %w", err)
	}
	return id, nil
}

// DeleteGrade removes the grade for a (student, course) pair
func (r *GradeRepository) DeleteGrade(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("grades").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete grade query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete grade query")
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

const gradeWithCourseColumns = "g.id, g.student_id, g.course_id, g.grade, " +
	"c.id, c.code, c.name, c.credit_hours, c.instructor_id"

// ListGradesByStudent retrieves a student's grades with course details
func (r *GradeRepository) ListGradesByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeWithCourseColumns).
		From("grades g").
		Join("courses c ON c.id = g.course_id").
		Where(squirrel.Eq{"g.student_id": studentID}).
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grades by student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		g := &models.Grade{Course: &models.Course{}}
		err := rows.Scan(
			&g.ID, &g.StudentID, &g.CourseID, &g.Grade,
			&g.Course.ID, &g.Course.Code, &g.Course.Name, &g.Course.CreditHours, &g.Course.InstructorID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}

// ListGradesByCourses retrieves the grades recorded in the given courses
func (r *GradeRepository) ListGradesByCourses(ctx context.Context, courseIDs []int64) ([]*models.Grade, error) {
	if len(courseIDs) == 0 {
		return []*models.Grade{}, nil
	}
	sql, args, err := r.sb.Select(gradeWithCourseColumns).
		From("grades g").
		Join("courses c ON c.id = g.course_id").
		Where(squirrel.Eq{"g.course_id": courseIDs}).
		OrderBy("c.code ASC", "g.student_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grades by courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing grades by courses query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		g := &models.Grade{Course: &models.Course{}}
		err := rows.Scan(
			&g.ID, &g.StudentID, &g.CourseID, &g.Grade,
			&g.Course.ID, &g.Course.Code, &g.Course.Name, &g.Course.CreditHours, &g.Course.InstructorID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}
