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

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db, sb: statementBuilder()}
}

// CreateAttendance inserts one attendance mark
func (r *AttendanceRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) (int64, error) {
	sql, args, err := r.sb.Insert("attendances").
		Columns("student_id", "course_id", "schedule_id", "date", "status").
		Values(attendance.StudentID, attendance.CourseID, attendance.ScheduleID, attendance.Date, attendance.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create attendance query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrScheduleNotFound
		}
		logger.Error().Err(err).Msg("Error executing create attendance query")
		return 0, fmt.Errorf("error creating attendance: %w", err)
	}
	return id, nil
}

const attendanceWithCourseColumns = "a.id, a.student_id, a.course_id, a.schedule_id, a.date, a.status, " +
	"c.id, c.code, c.name, c.credit_hours, c.instructor_id"

// ListAttendanceByStudent retrieves a student's attendance marks with course
// details, newest first.
func (r *AttendanceRepository) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceWithCourseColumns).
		From("attendances a").
		Join("courses c ON c.id = a.course_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.date DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance by student query: %w", err)
	}
	return r.queryAttendance(ctx, sql, args)
}

// ListAttendanceByCourse retrieves the attendance marks recorded in a course
func (r *AttendanceRepository) ListAttendanceByCourse(ctx context.Context, courseID int64) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceWithCourseColumns).
		From("attendances a").
		Join("courses c ON c.id = a.course_id").
		Where(squirrel.Eq{"a.course_id": courseID}).
		OrderBy("a.date DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance by course query: %w", err)
	}
	return r.queryAttendance(ctx, sql, args)
}

func (r *AttendanceRepository) queryAttendance(ctx context.Context, sql string, args []interface{}) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing attendance query")
		return nil, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	marks := []*models.Attendance{}
	for rows.Next() {
		a := &models.Attendance{Course: &models.Course{}}
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.CourseID, &a.ScheduleID, &a.Date, &a.Status,
			&a.Course.ID, &a.Course.Code, &a.Course.Name, &a.Course.CreditHours, &a.Course.InstructorID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		marks = append(marks, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return marks, nil
}
