package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

type fakeEnrollmentStore struct {
	rows   []*models.Enrollment
	nextID int64
}

func (f *fakeEnrollmentStore) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	f.nextID++
	copied := *enrollment
	copied.ID = f.nextID
	f.rows = append(f.rows, &copied)
	return f.nextID, nil
}

func (f *fakeEnrollmentStore) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	for _, e := range f.rows {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	out := []*models.Enrollment{}
	for _, e := range f.rows {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestEnroll(t *testing.T) {
	store := &fakeEnrollmentStore{}
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		10: {ID: 10, Code: "CS101", InstructorID: 3},
	}}
	svc := NewEnrollmentService(store, courses)
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, 7, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, enrollment.InstructorID, "instructor recorded from the course")
	assert.Len(t, store.rows, 1)

	// double enrollment is rejected, no second row
	_, err = svc.Enroll(ctx, 7, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.Len(t, store.rows, 1)

	// unknown course
	_, err = svc.Enroll(ctx, 7, 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
