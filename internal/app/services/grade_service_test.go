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

type fakeCourseGetter struct {
	courses    map[int64]*models.Course
	enrollable []*models.Course
}

func (f *fakeCourseGetter) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseGetter) ListEnrollableCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return f.enrollable, nil
}

type fakeEnrollmentChecker struct {
	enrolled map[[2]int64]bool
}

func (f *fakeEnrollmentChecker) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	return f.enrolled[[2]int64{studentID, courseID}], nil
}

type fakeGradeStore struct {
	grades  map[[2]int64]*models.Grade
	deleted [][2]int64
	nextID  int64
}

func newFakeGradeStore() *fakeGradeStore {
	return &fakeGradeStore{grades: map[[2]int64]*models.Grade{}}
}

func (f *fakeGradeStore) UpsertGrade(ctx context.Context, grade *models.Grade) (int64, error) {
	key := [2]int64{grade.StudentID, grade.CourseID}
	if existing, ok := f.grades[key]; ok {
		existing.Grade = grade.Grade
		return existing.ID, nil
	}
	f.nextID++
	copied := *grade
	copied.ID = f.nextID
	f.grades[key] = &copied
	return f.nextID, nil
}

func (f *fakeGradeStore) DeleteGrade(ctx context.Context, studentID, courseID int64) error {
	key := [2]int64{studentID, courseID}
	if _, ok := f.grades[key]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.grades, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeGradeStore) ListGradesByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	return nil, nil
}

func (f *fakeGradeStore) ListGradesByCourses(ctx context.Context, courseIDs []int64) ([]*models.Grade, error) {
	return nil, nil
}

type fakeNotifier struct {
	notified []int64
	subjects []string
}

func (f *fakeNotifier) NotifyStudent(ctx context.Context, studentID int64, subject, message string) error {
	f.notified = append(f.notified, studentID)
	f.subjects = append(f.subjects, subject)
	return nil
}

func newGradeFixture() (*GradeService, *fakeGradeStore, *fakeNotifier) {
	grades := newFakeGradeStore()
	notifier := &fakeNotifier{}
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		10: {ID: 10, Code: "CS101", InstructorID: 3},
		20: {ID: 20, Code: "MA201", InstructorID: 4},
	}}
	enrollments := &fakeEnrollmentChecker{enrolled: map[[2]int64]bool{
		{7, 10}: true,
	}}
	return NewGradeService(grades, courses, enrollments, notifier), grades, notifier
}

func TestSetGradeUpsertsAndNotifies(t *testing.T) {
	svc, grades, notifier := newGradeFixture()
	ctx := context.Background()

	grade, err := svc.SetGrade(ctx, 3, &dto.GradeRequest{StudentID: 7, CourseID: 10, Grade: "B"})
	require.NoError(t, err)
	firstID := grade.ID

	// same pair again replaces the letter, keeps the row
	grade, err = svc.SetGrade(ctx, 3, &dto.GradeRequest{StudentID: 7, CourseID: 10, Grade: "A"})
	require.NoError(t, err)
	assert.Equal(t, firstID, grade.ID)
	assert.Len(t, grades.grades, 1)
	assert.Equal(t, models.GradeA, grades.grades[[2]int64{7, 10}].Grade)

	require.Len(t, notifier.notified, 2)
	assert.Equal(t, []int64{7, 7}, notifier.notified)
	assert.Equal(t, "Grade Update", notifier.subjects[0])
}

func TestSetGradeRejectsForeignCourse(t *testing.T) {
	svc, _, notifier := newGradeFixture()

	// course 20 belongs to instructor 4
	_, err := svc.SetGrade(context.Background(), 3, &dto.GradeRequest{StudentID: 7, CourseID: 20, Grade: "A"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.Empty(t, notifier.notified)
}

func TestSetGradeRejectsUnenrolledStudent(t *testing.T) {
	svc, _, _ := newGradeFixture()

	_, err := svc.SetGrade(context.Background(), 3, &dto.GradeRequest{StudentID: 8, CourseID: 10, Grade: "A"})
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestSetGradeRejectsInvalidLetter(t *testing.T) {
	svc, _, _ := newGradeFixture()

	_, err := svc.SetGrade(context.Background(), 3, &dto.GradeRequest{StudentID: 7, CourseID: 10, Grade: "E"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteGrade(t *testing.T) {
	svc, grades, _ := newGradeFixture()
	ctx := context.Background()

	_, err := svc.SetGrade(ctx, 3, &dto.GradeRequest{StudentID: 7, CourseID: 10, Grade: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGrade(ctx, 3, &dto.GradeRequest{StudentID: 7, CourseID: 10}))
	assert.Empty(t, grades.grades)

	err = svc.DeleteGrade(ctx, 4, &dto.GradeRequest{StudentID: 7, CourseID: 10})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
