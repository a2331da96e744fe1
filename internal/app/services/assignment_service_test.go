package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

type fakeAssignmentStore struct {
	assignments map[int64]*models.Assignment
	submissions []*models.AssignmentSubmission
	nextID      int64
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: map[int64]*models.Assignment{}}
}

func (f *fakeAssignmentStore) CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error) {
	f.nextID++
	copied := *assignment
	copied.ID = f.nextID
	f.assignments[copied.ID] = &copied
	return copied.ID, nil
}

func (f *fakeAssignmentStore) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	if a, ok := f.assignments[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (f *fakeAssignmentStore) DeleteAssignment(ctx context.Context, id int64) error {
	if _, ok := f.assignments[id]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentStore) ListAssignmentsByCourses(ctx context.Context, courseIDs []int64) ([]*models.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentStore) CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) (int64, error) {
	f.nextID++
	copied := *submission
	copied.ID = f.nextID
	f.submissions = append(f.submissions, &copied)
	return copied.ID, nil
}

func (f *fakeAssignmentStore) ListSubmissions(ctx context.Context, assignmentID, studentID int64) ([]*models.AssignmentSubmission, error) {
	matched := []*models.AssignmentSubmission{}
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeAssignmentStore) DeleteSubmission(ctx context.Context, assignmentID, studentID int64) error {
	kept := f.submissions[:0]
	removed := 0
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.submissions = kept
	if removed == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	return nil
}

func (f *fakeAssignmentStore) SubmittedAssignmentIDs(ctx context.Context, studentID int64) (map[int64]bool, error) {
	submitted := map[int64]bool{}
	for _, s := range f.submissions {
		if s.StudentID == studentID {
			submitted[s.AssignmentID] = true
		}
	}
	return submitted, nil
}

func (f *fakeAssignmentStore) ListSubmissionsByStudent(ctx context.Context, studentID int64) ([]*models.AssignmentSubmission, error) {
	return nil, nil
}

func (f *fakeAssignmentStore) ListSubmissionsByCourses(ctx context.Context, courseIDs []int64) ([]*models.AssignmentSubmission, error) {
	return nil, nil
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	path := fmt.Sprintf("%s/%d_%s", subPath, len(f.saved)+1, fileHeader.Filename)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func newAssignmentServiceFixture() (*AssignmentService, *fakeAssignmentStore, *fakeFileStorage) {
	store := newFakeAssignmentStore()
	storage := &fakeFileStorage{}
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		10: {ID: 10, Code: "CS101", InstructorID: 3},
	}}
	enrollments := &fakeEnrollmentChecker{enrolled: map[[2]int64]bool{
		{7, 10}: true,
	}}
	return NewAssignmentService(store, courses, enrollments, storage), store, storage
}

func TestAddAssignmentRecordsOwningInstructor(t *testing.T) {
	svc, store, _ := newAssignmentServiceFixture()

	assignment, err := svc.AddAssignment(context.Background(), 3, &dto.AddAssignmentRequest{
		Title:       "Essay 1",
		Description: "Write about sorting",
		DueDate:     "2026-10-01",
		CourseID:    10,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), assignment.InstructorID)
	assert.Equal(t, int64(3), store.assignments[assignment.ID].InstructorID)
	assert.False(t, assignment.CreatedAt.IsZero())
}

func TestAddAssignmentRejectsForeignCourse(t *testing.T) {
	svc, store, _ := newAssignmentServiceFixture()

	_, err := svc.AddAssignment(context.Background(), 99, &dto.AddAssignmentRequest{
		Title:       "Essay 1",
		Description: "Write about sorting",
		DueDate:     "2026-10-01",
		CourseID:    10,
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.Empty(t, store.assignments)
}

func TestSubmitAssignmentKeepsEveryAttempt(t *testing.T) {
	svc, store, storage := newAssignmentServiceFixture()
	ctx := context.Background()

	assignment, err := svc.AddAssignment(ctx, 3, &dto.AddAssignmentRequest{
		Title:       "Essay 1",
		Description: "Write about sorting",
		DueDate:     "2026-10-01",
		CourseID:    10,
	}, nil)
	require.NoError(t, err)

	req := &dto.SubmitAssignmentRequest{AssignmentID: assignment.ID}
	first, err := svc.SubmitAssignment(ctx, 7, req, &multipart.FileHeader{Filename: "draft.pdf"})
	require.NoError(t, err)
	second, err := svc.SubmitAssignment(ctx, 7, req, &multipart.FileHeader{Filename: "final.pdf"})
	require.NoError(t, err)

	// Both attempts stand as separate rows with their own files
	assert.NotEqual(t, first.ID, second.ID)
	attempts, err := store.ListSubmissions(ctx, assignment.ID, 7)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.NotEqual(t, attempts[0].File, attempts[1].File)
	assert.Empty(t, storage.deleted)
}

func TestSubmitAssignmentRequiresEnrollment(t *testing.T) {
	svc, store, _ := newAssignmentServiceFixture()
	ctx := context.Background()

	assignment, err := svc.AddAssignment(ctx, 3, &dto.AddAssignmentRequest{
		Title:       "Essay 1",
		Description: "Write about sorting",
		DueDate:     "2026-10-01",
		CourseID:    10,
	}, nil)
	require.NoError(t, err)

	req := &dto.SubmitAssignmentRequest{AssignmentID: assignment.ID}
	_, err = svc.SubmitAssignment(ctx, 8, req, &multipart.FileHeader{Filename: "draft.pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	assert.Empty(t, store.submissions)

	_, err = svc.SubmitAssignment(ctx, 7, req, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteSubmissionRemovesAllAttempts(t *testing.T) {
	svc, store, storage := newAssignmentServiceFixture()
	ctx := context.Background()

	assignment, err := svc.AddAssignment(ctx, 3, &dto.AddAssignmentRequest{
		Title:       "Essay 1",
		Description: "Write about sorting",
		DueDate:     "2026-10-01",
		CourseID:    10,
	}, nil)
	require.NoError(t, err)

	req := &dto.SubmitAssignmentRequest{AssignmentID: assignment.ID}
	_, err = svc.SubmitAssignment(ctx, 7, req, &multipart.FileHeader{Filename: "draft.pdf"})
	require.NoError(t, err)
	_, err = svc.SubmitAssignment(ctx, 7, req, &multipart.FileHeader{Filename: "final.pdf"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubmission(ctx, assignment.ID, 7))
	assert.Empty(t, store.submissions)
	assert.Len(t, storage.deleted, 2)

	err = svc.DeleteSubmission(ctx, assignment.ID, 7)
	assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)
}
