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

// ScheduleRepository handles class schedule database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db, sb: statementBuilder()}
}

const scheduleWithCourseColumns = "s.id, s.course_id, s.day_of_week, s.start_time, s.end_time, " +
	"c.id, c.code, c.name, c.credit_hours, c.instructor_id"

func scanScheduleWithCourse(row pgx.Row) (*models.Schedule, error) {
	s := &models.Schedule{Course: &models.Course{}}
	err := row.Scan(
		&s.ID, &s.CourseID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
		&s.Course.ID, &s.Course.Code, &s.Course.Name, &s.Course.CreditHours, &s.Course.InstructorID,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateSchedule inserts a schedule slot
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error) {
	sql, args, err := r.sb.Insert("schedules").
		Columns("course_id", "day_of_week", "start_time", "end_time").
		Values(schedule.CourseID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create schedule query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing create schedule query")
		return 0, fmt.Errorf("error creating schedule: %w", err)
	}
	return id, nil
}

// GetScheduleByID retrieves a schedule slot with its course
func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	sql, args, err := r.sb.Select(scheduleWithCourseColumns).
		From("schedules s").
		Join("courses c ON c.id = s.course_id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedule query: %w", err)
	}

	schedule, err := scanScheduleWithCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		logger.Error().Err(err).Msg("Error scanning schedule row")
		return nil, fmt.Errorf("error getting schedule: %w", err)
	}
	return schedule, nil
}

// ListSchedulesByCourses retrieves the schedule slots for the given courses,
// ordered for weekly timetable rendering.
func (r *ScheduleRepository) ListSchedulesByCourses(ctx context.Context, courseIDs []int64) ([]*models.Schedule, error) {
	if len(courseIDs) == 0 {
		return []*models.Schedule{}, nil
	}
	sql, args, err := r.sb.Select(scheduleWithCourseColumns).
		From("schedules s").
		Join("courses c ON c.id = s.course_id").
		Where(squirrel.Eq{"s.course_id": courseIDs}).
		OrderBy("s.day_of_week ASC", "s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build schedules by courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing schedules query")
		return nil, fmt.Errorf("error querying schedules: %w", err)
	}
	defer rows.Close()

	schedules := []*models.Schedule{}
	for rows.Next() {
		schedule, err := scanScheduleWithCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	return schedules, nil
}
