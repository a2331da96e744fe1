package services

import (
	"context"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

type enrollmentStore interface {
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
}

type courseGetter interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListEnrollableCourses(ctx context.Context, studentID int64) ([]*models.Course, error)
}

// EnrollmentService handles course enrollment
type EnrollmentService struct {
	enrollments enrollmentStore
	courses     courseGetter
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollments enrollmentStore, courses courseGetter) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses}
}

// Enroll adds the student to a course. Already-enrolled courses never appear
// in the enrollable list, but the check is repeated here since the list can
// go stale between render and submit.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.ExistsByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		CourseID:     courseID,
		StudentID:    studentID,
		InstructorID: course.InstructorID,
	}
	enrollment.ID, err = s.enrollments.CreateEnrollment(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", studentID).Str("course", course.Code).Msg("Student enrolled")
	enrollment.Course = course
	return enrollment, nil
}

// ListEnrollableCourses retrieves the courses the student can still enroll in
func (s *EnrollmentService) ListEnrollableCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return s.courses.ListEnrollableCourses(ctx, studentID)
}

// ListEnrollments retrieves the student's enrollments with course details
func (s *EnrollmentService) ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.enrollments.ListEnrollmentsByStudent(ctx, studentID)
}
