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

// AssignmentRepository handles assignment and submission database operations
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db, sb: statementBuilder()}
}

const assignmentColumns = "id, course_id, instructor_id, title, description, due_date, reference_document, created_at"

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := row.Scan(&a.ID, &a.CourseID, &a.InstructorID, &a.Title, &a.Description, &a.DueDate, &a.ReferenceDocument, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAssignment inserts an assignment
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error) {
	sql, args, err := r.sb.Insert("assignments").
		Columns("course_id", "instructor_id", "title", "description", "due_date", "reference_document", "created_at").
		Values(assignment.CourseID, assignment.InstructorID, assignment.Title, assignment.Description, assignment.DueDate, assignment.ReferenceDocument, assignment.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create assignment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing create assignment query")
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}
	return id, nil
}

// GetAssignmentByID retrieves an assignment by primary key
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	sql, args, err := r.sb.Select(assignmentColumns).
		From("assignments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignment query: %w", err)
	}

	assignment, err := scanAssignment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning assignment row")
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	return assignment, nil
}

// ListAssignmentsByCourses retrieves the assignments posted in the given courses
func (r *AssignmentRepository) ListAssignmentsByCourses(ctx context.Context, courseIDs []int64) ([]*models.Assignment, error) {
	if len(courseIDs) == 0 {
		return []*models.Assignment{}, nil
	}
	sql, args, err := r.sb.Select(assignmentColumns).
		From("assignments").
		Where(squirrel.Eq{"course_id": courseIDs}).
		OrderBy("due_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assignments by courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing assignments query")
		return nil, fmt.Errorf("error querying assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*models.Assignment{}
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

// DeleteAssignment removes an assignment. Submission rows go with it via
// the cascading foreign key.
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("assignments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete assignment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete assignment query")
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// CreateSubmission inserts an assignment submission
func (r *AssignmentRepository) CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) (int64, error) {
	sql, args, err := r.sb.Insert("assignment_submissions").
		Columns("assignment_id", "student_id", "file", "submitted_at").
		Values(submission.AssignmentID, submission.StudentID, submission.File, submission.SubmittedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create submission query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrAssignmentNotFound
		}
		logger.Error().Err(err).Msg("Error executing create submission query")
		return 0, fmt.Errorf("error creating submission: %w", err)
	}
	return id, nil
}

// ListSubmissions retrieves every submission attempt a student made for an
// assignment, oldest first.
func (r *AssignmentRepository) ListSubmissions(ctx context.Context, assignmentID, studentID int64) ([]*models.AssignmentSubmission, error) {
	sql, args, err := r.sb.Select("id, assignment_id, student_id, file, submitted_at").
		From("assignment_submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID, "student_id": studentID}).
		OrderBy("submitted_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list submissions query: %w", err)
	}
	return r.querySubmissions(ctx, sql, args)
}

// DeleteSubmission removes all of a student's submission attempts for an assignment
func (r *AssignmentRepository) DeleteSubmission(ctx context.Context, assignmentID, studentID int64) error {
	sql, args, err := r.sb.Delete("assignment_submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete submission query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete submission query")
		return fmt.Errorf("error deleting submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	return nil
}

// SubmittedAssignmentIDs retrieves the ids of assignments the student has
// already submitted, for dashboard pending/done partitioning.
func (r *AssignmentRepository) SubmittedAssignmentIDs(ctx context.Context, studentID int64) (map[int64]bool, error) {
	sql, args, err := r.sb.Select("assignment_id").
		From("assignment_submissions").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submitted assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing submitted assignments query")
		return nil, fmt.Errorf("error querying submitted assignments: %w", err)
	}
	defer rows.Close()

	submitted := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning submitted assignment row: %w", err)
		}
		submitted[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submitted assignment rows: %w", err)
	}
	return submitted, nil
}

// ListSubmissionsByAssignment retrieves all submissions for an assignment
func (r *AssignmentRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error) {
	sql, args, err := r.sb.Select("id, assignment_id, student_id, file, submitted_at").
		From("assignment_submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		OrderBy("submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submissions by assignment query: %w", err)
	}
	return r.querySubmissions(ctx, sql, args)
}

// ListSubmissionsByStudent retrieves a student's submissions
func (r *AssignmentRepository) ListSubmissionsByStudent(ctx context.Context, studentID int64) ([]*models.AssignmentSubmission, error) {
	sql, args, err := r.sb.Select("id, assignment_id, student_id, file, submitted_at").
		From("assignment_submissions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submissions by student query: %w", err)
	}
	return r.querySubmissions(ctx, sql, args)
}

// ListSubmissionsByCourses retrieves every submission across the given
// courses' assignments.
func (r *AssignmentRepository) ListSubmissionsByCourses(ctx context.Context, courseIDs []int64) ([]*models.AssignmentSubmission, error) {
	if len(courseIDs) == 0 {
		return []*models.AssignmentSubmission{}, nil
	}
	sql, args, err := r.sb.Select("s.id, s.assignment_id, s.student_id, s.file, s.submitted_at").
		From("assignment_submissions s").
		Join("assignments a ON a.id = s.assignment_id").
		Where(squirrel.Eq{"a.course_id": courseIDs}).
		OrderBy("s.submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submissions by courses query: %w", err)
	}
	return r.querySubmissions(ctx, sql, args)
}

func (r *AssignmentRepository) querySubmissions(ctx context.Context, sql string, args []interface{}) ([]*models.AssignmentSubmission, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing submissions query")
		return nil, fmt.Errorf("error querying submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*models.AssignmentSubmission{}
	for rows.Next() {
		s := &models.AssignmentSubmission{}
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.File, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}
	return submissions, nil
}
