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

// InstructorRepository handles instructor database operations
type InstructorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{db: db, sb: statementBuilder()}
}

const instructorColumns = "id, full_name, email, department"

func scanInstructor(row pgx.Row) (*models.Instructor, error) {
	i := &models.Instructor{}
	err := row.Scan(&i.ID, &i.FullName, &i.Email, &i.Department)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// CreateInstructor inserts an instructor
func (r *InstructorRepository) CreateInstructor(ctx context.Context, instructor *models.Instructor) (int64, error) {
	sql, args, err := r.sb.Insert("instructors").
		Columns("full_name", "email", "department").
		Values(instructor.FullName, instructor.Email, instructor.Department).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create instructor query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create instructor query")
		return 0, fmt.Errorf("error creating instructor: %w", err)
	}
	return id, nil
}

// GetInstructorByID retrieves an instructor by primary key
func (r *InstructorRepository) GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error) {
	return r.getInstructor(ctx, squirrel.Eq{"id": id})
}

// GetInstructorByEmail retrieves an instructor by email
func (r *InstructorRepository) GetInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	return r.getInstructor(ctx, squirrel.Eq{"email": email})
}

func (r *InstructorRepository) getInstructor(ctx context.Context, pred squirrel.Eq) (*models.Instructor, error) {
	sql, args, err := r.sb.Select(instructorColumns).
		From("instructors").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	instructor, err := scanInstructor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		logger.Error().Err(err).Msg("Error scanning instructor row")
		return nil, fmt.Errorf("error getting instructor: %w", err)
	}
	return instructor, nil
}

// ListInstructors retrieves all instructors ordered by name
func (r *InstructorRepository) ListInstructors(ctx context.Context) ([]*models.Instructor, error) {
	sql, args, err := r.sb.Select(instructorColumns).
		From("instructors").
		OrderBy("full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}
	return r.queryInstructors(ctx, sql, args)
}

// ListInstructorsByCourses retrieves the distinct instructors teaching any of
// the given courses.
func (r *InstructorRepository) ListInstructorsByCourses(ctx context.Context, courseIDs []int64) ([]*models.Instructor, error) {
	if len(courseIDs) == 0 {
		return []*models.Instructor{}, nil
	}
	sql, args, err := r.sb.Select("DISTINCT i.id, i.full_name, i.email, i.department").
		From("instructors i").
		Join("courses c ON c.instructor_id = i.id").
		Where(squirrel.Eq{"c.id": courseIDs}).
		OrderBy("i.full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructors by courses query: %w", err)
	}
	return r.queryInstructors(ctx, sql, args)
}

func (r *InstructorRepository) queryInstructors(ctx context.Context, sql string, args []interface{}) ([]*models.Instructor, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing instructors query")
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}
	defer rows.Close()

	instructors := []*models.Instructor{}
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning instructor row: %w", err)
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instructor rows: %w", err)
	}
	return instructors, nil
}
