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

type fakeAttendanceStore struct {
	marks []*models.Attendance
}

func (f *fakeAttendanceStore) CreateAttendance(ctx context.Context, attendance *models.Attendance) (int64, error) {
	f.marks = append(f.marks, attendance)
	return int64(len(f.marks)), nil
}

func (f *fakeAttendanceStore) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	return f.marks, nil
}

func (f *fakeAttendanceStore) ListAttendanceByCourse(ctx context.Context, courseID int64) ([]*models.Attendance, error) {
	return f.marks, nil
}

type fakeScheduleGetter struct {
	schedules map[int64]*models.Schedule
}

func (f *fakeScheduleGetter) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrScheduleNotFound
}

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceStore) {
	store := &fakeAttendanceStore{}
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		10: {ID: 10, Code: "CS101", InstructorID: 3},
	}}
	schedules := &fakeScheduleGetter{schedules: map[int64]*models.Schedule{
		5: {ID: 5, CourseID: 10, DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
		6: {ID: 6, CourseID: 99, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}}
	enrollments := &fakeEnrollmentChecker{enrolled: map[[2]int64]bool{
		{7, 10}: true,
		{8, 10}: true,
	}}
	return NewAttendanceService(store, courses, schedules, enrollments), store
}

func TestMarkAttendanceWritesOneRowPerEnrolledStudent(t *testing.T) {
	svc, store := newAttendanceFixture()

	// student 9 is not enrolled and gets skipped
	marked, err := svc.MarkAttendance(context.Background(), 3, &dto.MarkAttendanceRequest{
		CourseID:   10,
		ScheduleID: 5,
		Date:       "2026-03-02",
		Status:     "Present",
		StudentIDs: []int64{7, 8, 9},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	require.Len(t, store.marks, 2)
	for _, mark := range store.marks {
		assert.Equal(t, models.AttendancePresent, mark.Status)
		assert.EqualValues(t, 5, mark.ScheduleID)
		assert.Equal(t, "2026-03-02", mark.Date.Format("2006-01-02"))
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	svc, store := newAttendanceFixture()
	ctx := context.Background()

	base := dto.MarkAttendanceRequest{
		CourseID:   10,
		ScheduleID: 5,
		Date:       "2026-03-02",
		Status:     "Present",
		StudentIDs: []int64{7},
	}

	req := base
	req.Status = "Late"
	_, err := svc.MarkAttendance(ctx, 3, &req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = base
	req.ScheduleID = 6 // schedule belongs to another course
	_, err = svc.MarkAttendance(ctx, 3, &req)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)

	req = base
	_, err = svc.MarkAttendance(ctx, 4, &req) // not the course's instructor
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	req = base
	req.Date = "02/03/2026"
	_, err = svc.MarkAttendance(ctx, 3, &req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Empty(t, store.marks)
}
