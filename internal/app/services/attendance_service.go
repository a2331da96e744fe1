package services

import (
	"context"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/helpers"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

type attendanceStore interface {
	CreateAttendance(ctx context.Context, attendance *models.Attendance) (int64, error)
	ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error)
	ListAttendanceByCourse(ctx context.Context, courseID int64) ([]*models.Attendance, error)
}

type scheduleGetter interface {
	GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error)
}

// AttendanceService handles attendance marking
type AttendanceService struct {
	attendance  attendanceStore
	courses     courseGetter
	schedules   scheduleGetter
	enrollments enrollmentChecker
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendance attendanceStore, courses courseGetter, schedules scheduleGetter, enrollments enrollmentChecker) *AttendanceService {
	return &AttendanceService{
		attendance:  attendance,
		courses:     courses,
		schedules:   schedules,
		enrollments: enrollments,
	}
}

// MarkAttendance writes one row per checked student for a scheduled class on
// a date. Students not enrolled in the course are skipped, the rest are
// marked. Returns the number of rows written.
func (s *AttendanceService) MarkAttendance(ctx context.Context, instructorID int64, req *dto.MarkAttendanceRequest) (int, error) {
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return 0, apperrors.NewValidationError("Status must be Present or Absent")
	}

	course, err := s.courses.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		return 0, err
	}
	if course.InstructorID != instructorID {
		return 0, apperrors.ErrCourseNotFound
	}

	schedule, err := s.schedules.GetScheduleByID(ctx, req.ScheduleID)
	if err != nil {
		return 0, err
	}
	if schedule.CourseID != req.CourseID {
		return 0, apperrors.ErrScheduleNotFound
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return 0, apperrors.NewValidationError("Date must be YYYY-MM-DD")
	}

	marked := 0
	for _, studentID := range req.StudentIDs {
		enrolled, err := s.enrollments.ExistsByStudentAndCourse(ctx, studentID, req.CourseID)
		if err != nil {
			return marked, err
		}
		if !enrolled {
			logger.Warn().Int64("studentId", studentID).Str("course", course.Code).Msg("Attendance skipped for unenrolled student")
			continue
		}
		mark := &models.Attendance{
			StudentID:  studentID,
			CourseID:   req.CourseID,
			ScheduleID: req.ScheduleID,
			Date:       date,
			Status:     status,
		}
		if _, err := s.attendance.CreateAttendance(ctx, mark); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// ListAttendanceByStudent retrieves a student's attendance history
func (s *AttendanceService) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	return s.attendance.ListAttendanceByStudent(ctx, studentID)
}

// ListAttendanceByCourse retrieves the attendance marks in a course
func (s *AttendanceService) ListAttendanceByCourse(ctx context.Context, courseID int64) ([]*models.Attendance, error) {
	return s.attendance.ListAttendanceByCourse(ctx, courseID)
}
