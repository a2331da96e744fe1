package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
	deleted  []int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[int64]*models.Student{}}
}

func (f *fakeStudentStore) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	f.nextID++
	copied := *student
	copied.ID = f.nextID
	f.students[f.nextID] = &copied
	return f.nextID, nil
}

func (f *fakeStudentStore) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) UpdateStudent(ctx context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) DeleteStudent(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStudentStore) ListStudents(ctx context.Context) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func newRegistrarFixture() (*RegistrarService, *fakeStudentStore) {
	students := newFakeStudentStore()
	svc := NewRegistrarService(students, nil, nil, nil, nil)
	return svc, students
}

func TestCreateStudentGeneratesIDAndEmail(t *testing.T) {
	svc, _ := newRegistrarFixture()

	student, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name:        "Jane Doe",
		DateOfBirth: "2002-05-14",
		Faculty:     "Engineering",
		Major:       "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, "COM", student.StudentID[:3])
	assert.Len(t, student.StudentID, 7)
	assert.Equal(t, student.StudentID+"@stu.uni.edu", student.UniversityEmail)
}

func TestUpdateStudentRegeneratesIDOnMajorChange(t *testing.T) {
	svc, _ := newRegistrarFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		Name:        "Jane Doe",
		DateOfBirth: "2002-05-14",
		Faculty:     "Engineering",
		Major:       "Computer Science",
	})
	require.NoError(t, err)
	originalID := created.StudentID

	// same major: name change keeps the student ID and email
	updated, err := svc.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		Name:        "Jane Smith",
		DateOfBirth: "2002-05-14",
		Faculty:     "Engineering",
		Major:       "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, originalID, updated.StudentID)
	assert.Equal(t, originalID+"@stu.uni.edu", updated.UniversityEmail)

	// new major: both regenerate
	updated, err = svc.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		Name:        "Jane Smith",
		DateOfBirth: "2002-05-14",
		Faculty:     "Engineering",
		Major:       "Mathematics",
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalID, updated.StudentID)
	assert.Equal(t, "MAT", updated.StudentID[:3])
	assert.Equal(t, updated.StudentID+"@stu.uni.edu", updated.UniversityEmail)
}

func TestCreateStudentRejectsBadDate(t *testing.T) {
	svc, _ := newRegistrarFixture()

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name:        "Jane Doe",
		DateOfBirth: "14/05/2002",
		Faculty:     "Engineering",
		Major:       "Computer Science",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteStudent(t *testing.T) {
	svc, students := newRegistrarFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		Name:        "Jane Doe",
		DateOfBirth: "2002-05-14",
		Faculty:     "Engineering",
		Major:       "Computer Science",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(ctx, created.ID))
	assert.Equal(t, []int64{created.ID}, students.deleted)

	err = svc.DeleteStudent(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
