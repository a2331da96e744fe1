package services

import (
	"context"
	"fmt"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

type gradeStore interface {
	UpsertGrade(ctx context.Context, grade *models.Grade) (int64, error)
	DeleteGrade(ctx context.Context, studentID, courseID int64) error
	ListGradesByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error)
	ListGradesByCourses(ctx context.Context, courseIDs []int64) ([]*models.Grade, error)
}

type studentNotifier interface {
	NotifyStudent(ctx context.Context, studentID int64, subject, message string) error
}

// GradeService handles letter grades
type GradeService struct {
	grades      gradeStore
	courses     courseGetter
	enrollments enrollmentChecker
	notifier    studentNotifier
}

// NewGradeService creates a new grade service instance
func NewGradeService(grades gradeStore, courses courseGetter, enrollments enrollmentChecker, notifier studentNotifier) *GradeService {
	return &GradeService{
		grades:      grades,
		courses:     courses,
		enrollments: enrollments,
		notifier:    notifier,
	}
}

// ownedCourse loads the course and hides it unless the instructor teaches it
func (s *GradeService) ownedCourse(ctx context.Context, courseID, instructorID int64) (*models.Course, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// SetGrade adds or replaces the letter grade for a (student, course) pair and
// notifies the student. Both the add and update actions land here.
func (s *GradeService) SetGrade(ctx context.Context, instructorID int64, req *dto.GradeRequest) (*models.Grade, error) {
	value := models.GradeValue(req.Grade)
	if !value.Valid() {
		return nil, apperrors.NewValidationError("Grade must be one of None, A, B, C, D, F")
	}

	course, err := s.ownedCourse(ctx, req.CourseID, instructorID)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.enrollments.ExistsByStudentAndCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Grade:     value,
	}
	grade.ID, err = s.grades.UpsertGrade(ctx, grade)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your grade for %s is now %s", course.Code, value)
	if err := s.notifier.NotifyStudent(ctx, req.StudentID, "Grade Update", message); err != nil {
		logger.Error().Err(err).Int64("studentId", req.StudentID).Msg("Grade notification write failed")
	}
	return grade, nil
}

// DeleteGrade removes the grade for a (student, course) pair in one of the
// instructor's courses.
func (s *GradeService) DeleteGrade(ctx context.Context, instructorID int64, req *dto.GradeRequest) error {
	if _, err := s.ownedCourse(ctx, req.CourseID, instructorID); err != nil {
		return err
	}
	return s.grades.DeleteGrade(ctx, req.StudentID, req.CourseID)
}

// ListGradesByStudent retrieves a student's grades
func (s *GradeService) ListGradesByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	return s.grades.ListGradesByStudent(ctx, studentID)
}

// ListGradesByCourses retrieves the grades in the given courses
func (s *GradeService) ListGradesByCourses(ctx context.Context, courseIDs []int64) ([]*models.Grade, error) {
	return s.grades.ListGradesByCourses(ctx, courseIDs)
}
