package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/filestorage"
	"github.com/mkaraca/campushub/internal/pkg/helpers"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

type assignmentStore interface {
	CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error)
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
	ListAssignmentsByCourses(ctx context.Context, courseIDs []int64) ([]*models.Assignment, error)
	CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) (int64, error)
	ListSubmissions(ctx context.Context, assignmentID, studentID int64) ([]*models.AssignmentSubmission, error)
	DeleteSubmission(ctx context.Context, assignmentID, studentID int64) error
	SubmittedAssignmentIDs(ctx context.Context, studentID int64) (map[int64]bool, error)
	ListSubmissionsByStudent(ctx context.Context, studentID int64) ([]*models.AssignmentSubmission, error)
	ListSubmissionsByCourses(ctx context.Context, courseIDs []int64) ([]*models.AssignmentSubmission, error)
}

type enrollmentChecker interface {
	ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error)
}

// AssignmentService handles assignments and submissions
type AssignmentService struct {
	assignments assignmentStore
	courses     courseGetter
	enrollments enrollmentChecker
	storage     filestorage.FileStorage
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(assignments assignmentStore, courses courseGetter, enrollments enrollmentChecker, storage filestorage.FileStorage) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		courses:     courses,
		enrollments: enrollments,
		storage:     storage,
	}
}

// parseDueDate accepts RFC 3339 or a bare date
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := helpers.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Due date must be RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}

// AddAssignment creates an assignment in one of the instructor's courses,
// storing the optional reference document under assignments/.
func (s *AssignmentService) AddAssignment(ctx context.Context, instructorID int64, req *dto.AddAssignmentRequest, referenceDoc *multipart.FileHeader) (*models.Assignment, error) {
	course, err := s.courses.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.ErrCourseNotFound
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	var docPath string
	if referenceDoc != nil {
		docPath, err = s.storage.SaveFileWithPath(referenceDoc, filestorage.AssignmentsDir)
		if err != nil {
			return nil, err
		}
	}

	assignment := &models.Assignment{
		CourseID:          req.CourseID,
		InstructorID:      course.InstructorID,
		Title:             req.Title,
		Description:       req.Description,
		DueDate:           dueDate,
		ReferenceDocument: docPath,
		CreatedAt:         time.Now(),
	}
	assignment.ID, err = s.assignments.CreateAssignment(ctx, assignment)
	if err != nil {
		if docPath != "" {
			if delErr := s.storage.DeleteFile(docPath); delErr != nil {
				logger.Warn().Err(delErr).Str("path", docPath).Msg("Orphaned reference document not removed")
			}
		}
		return nil, err
	}

	logger.Info().Int64("assignmentId", assignment.ID).Str("course", course.Code).Msg("Assignment created")
	return assignment, nil
}

// DeleteAssignment removes an assignment owned by the instructor along with
// its stored reference document.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, assignmentID, instructorID int64) error {
	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	course, err := s.courses.GetCourseByID(ctx, assignment.CourseID)
	if err != nil {
		return err
	}
	if course.InstructorID != instructorID {
		return apperrors.ErrAssignmentNotFound
	}

	if err := s.assignments.DeleteAssignment(ctx, assignmentID); err != nil {
		return err
	}
	if assignment.ReferenceDocument != "" {
		if err := s.storage.DeleteFile(assignment.ReferenceDocument); err != nil {
			logger.Warn().Err(err).Str("path", assignment.ReferenceDocument).Msg("Reference document not removed")
		}
	}
	return nil
}

// SubmitAssignment stores the uploaded file under submissions/ and records
// the submission. The student must be enrolled in the assignment's course.
// Every attempt gets its own row; submitting again never touches earlier ones.
func (s *AssignmentService) SubmitAssignment(ctx context.Context, studentID int64, req *dto.SubmitAssignmentRequest, file *multipart.FileHeader) (*models.AssignmentSubmission, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("Submission file is required")
	}

	assignment, err := s.assignments.GetAssignmentByID(ctx, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.enrollments.ExistsByStudentAndCourse(ctx, studentID, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrAssignmentNotFound
	}

	path, err := s.storage.SaveFileWithPath(file, filestorage.SubmissionsDir)
	if err != nil {
		return nil, err
	}

	submission := &models.AssignmentSubmission{
		AssignmentID: req.AssignmentID,
		StudentID:    studentID,
		File:         path,
		SubmittedAt:  time.Now(),
	}
	submission.ID, err = s.assignments.CreateSubmission(ctx, submission)
	if err != nil {
		if delErr := s.storage.DeleteFile(path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("Orphaned submission file not removed")
		}
		return nil, err
	}
	return submission, nil
}

// DeleteSubmission removes all of the student's own submission attempts for
// an assignment, along with their stored files.
func (s *AssignmentService) DeleteSubmission(ctx context.Context, assignmentID, studentID int64) error {
	submissions, err := s.assignments.ListSubmissions(ctx, assignmentID, studentID)
	if err != nil {
		return err
	}
	if len(submissions) == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	if err := s.assignments.DeleteSubmission(ctx, assignmentID, studentID); err != nil {
		return err
	}
	for _, submission := range submissions {
		if err := s.storage.DeleteFile(submission.File); err != nil {
			logger.Warn().Err(err).Str("path", submission.File).Msg("Submission file not removed")
		}
	}
	return nil
}
