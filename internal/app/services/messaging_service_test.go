package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/mailer"
)

type fakeMessagingStore struct {
	sentEmails    []*models.SentEmail
	notifications []*models.Notification
}

func (f *fakeMessagingStore) CreateSentEmail(ctx context.Context, email *models.SentEmail) (int64, error) {
	f.sentEmails = append(f.sentEmails, email)
	return int64(len(f.sentEmails)), nil
}

func (f *fakeMessagingStore) DeleteSentEmailFromStudent(ctx context.Context, id, studentID int64) error {
	return nil
}

func (f *fakeMessagingStore) DeleteSentEmailFromInstructor(ctx context.Context, id, instructorID int64) error {
	return nil
}

func (f *fakeMessagingStore) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	f.notifications = append(f.notifications, n)
	return int64(len(f.notifications)), nil
}

func (f *fakeMessagingStore) MarkNotificationReadForStudent(ctx context.Context, id, studentID int64) error {
	return nil
}

func (f *fakeMessagingStore) MarkNotificationReadForInstructor(ctx context.Context, id, instructorID int64) error {
	return nil
}

func (f *fakeMessagingStore) DeleteNotificationForStudent(ctx context.Context, id, studentID int64) error {
	return nil
}

func (f *fakeMessagingStore) DeleteNotificationForInstructor(ctx context.Context, id, instructorID int64) error {
	return nil
}

type fakeAnnouncementStore struct {
	announcements []*models.Announcement
}

func (f *fakeAnnouncementStore) CreateAnnouncement(ctx context.Context, a *models.Announcement) (int64, error) {
	f.announcements = append(f.announcements, a)
	return int64(len(f.announcements)), nil
}

func (f *fakeAnnouncementStore) DeleteAnnouncement(ctx context.Context, id, instructorID int64) error {
	return nil
}

type fakeEnrollmentLister struct {
	enrollments []*models.Enrollment
}

func (f *fakeEnrollmentLister) ListEnrollmentsByInstructor(ctx context.Context, instructorID int64) ([]*models.Enrollment, error) {
	return f.enrollments, nil
}

type fakeStudentLookup struct {
	byEmail map[string]*models.Student
}

func (f *fakeStudentLookup) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := f.byEmail[email]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

type fakeInstructorLookup struct {
	byEmail map[string]*models.Instructor
}

func (f *fakeInstructorLookup) GetInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	if i, ok := f.byEmail[email]; ok {
		return i, nil
	}
	return nil, apperrors.ErrInstructorNotFound
}

type failingMailer struct{}

func (failingMailer) Send(mailer.Message) error {
	return assert.AnError
}

func newMessagingFixture() (*MessagingService, *fakeMessagingStore, *fakeEnrollmentLister, *mailer.ConsoleMailer) {
	messages := &fakeMessagingStore{}
	enrollments := &fakeEnrollmentLister{}
	mail := mailer.NewConsoleMailer(zerolog.Nop())
	svc := NewMessagingService(
		mail,
		messages,
		&fakeAnnouncementStore{},
		enrollments,
		&fakeStudentLookup{byEmail: map[string]*models.Student{
			"COM1a2b@stu.uni.edu": {ID: 7, Name: "Jane Doe", UniversityEmail: "COM1a2b@stu.uni.edu"},
		}},
		&fakeInstructorLookup{byEmail: map[string]*models.Instructor{
			"agrant@uni.edu": {ID: 3, FullName: "Dr. Alan Grant", Email: "agrant@uni.edu"},
		}},
	)
	return svc, messages, enrollments, mail
}

func TestSendEmailToKnownStudent(t *testing.T) {
	svc, messages, _, mail := newMessagingFixture()
	sender := &models.Instructor{ID: 3, FullName: "Dr. Alan Grant", Email: "agrant@uni.edu"}

	err := svc.SendEmailFromInstructor(context.Background(), sender, &dto.SendEmailRequest{
		RecipientEmail: "COM1a2b@stu.uni.edu",
		Subject:        "Office hours",
		Message:        "Moved to 3pm",
	})
	require.NoError(t, err)

	require.Len(t, mail.SentMessages(), 1)
	assert.Equal(t, "Dr. Alan Grant <agrant@uni.edu>", mail.SentMessages()[0].FromHeader())

	require.Len(t, messages.sentEmails, 1)
	sent := messages.sentEmails[0]
	require.NotNil(t, sent.SenderInstructorID)
	assert.EqualValues(t, 3, *sent.SenderInstructorID)
	require.NotNil(t, sent.RecipientStudentID)
	assert.EqualValues(t, 7, *sent.RecipientStudentID)

	require.Len(t, messages.notifications, 1)
	require.NotNil(t, messages.notifications[0].StudentID)
	assert.EqualValues(t, 7, *messages.notifications[0].StudentID)
}

func TestSendEmailToExternalAddressSkipsNotification(t *testing.T) {
	svc, messages, _, _ := newMessagingFixture()
	sender := &models.Student{ID: 7, Name: "Jane Doe", UniversityEmail: "COM1a2b@stu.uni.edu"}

	err := svc.SendEmailFromStudent(context.Background(), sender, &dto.SendEmailRequest{
		RecipientEmail: "someone@example.com",
		Subject:        "Hello",
		Message:        "Hi there",
	})
	require.NoError(t, err)

	require.Len(t, messages.sentEmails, 1)
	assert.Nil(t, messages.sentEmails[0].RecipientStudentID)
	assert.Nil(t, messages.sentEmails[0].RecipientInstructor)
	assert.Empty(t, messages.notifications)
}

func TestSendEmailTransportFailureWritesNothing(t *testing.T) {
	messages := &fakeMessagingStore{}
	svc := NewMessagingService(
		failingMailer{},
		messages,
		&fakeAnnouncementStore{},
		&fakeEnrollmentLister{},
		&fakeStudentLookup{},
		&fakeInstructorLookup{},
	)
	sender := &models.Student{ID: 7, Name: "Jane Doe", UniversityEmail: "COM1a2b@stu.uni.edu"}

	err := svc.SendEmailFromStudent(context.Background(), sender, &dto.SendEmailRequest{
		RecipientEmail: "someone@example.com",
		Subject:        "Hello",
		Message:        "Hi there",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMailDelivery)
	assert.Empty(t, messages.sentEmails)
	assert.Empty(t, messages.notifications)
}

func TestPostAnnouncementFansOutPerEnrollmentRow(t *testing.T) {
	svc, messages, enrollments, _ := newMessagingFixture()

	// student 7 enrolled in two of the instructor's courses gets two
	// notifications, student 8 one
	enrollments.enrollments = []*models.Enrollment{
		{ID: 1, CourseID: 10, StudentID: 7, InstructorID: 3},
		{ID: 2, CourseID: 11, StudentID: 7, InstructorID: 3},
		{ID: 3, CourseID: 10, StudentID: 8, InstructorID: 3},
	}
	instructor := &models.Instructor{ID: 3, FullName: "Dr. Alan Grant", Email: "agrant@uni.edu"}

	announcement, err := svc.PostAnnouncement(context.Background(), instructor, &dto.AnnouncementRequest{
		Title:   "Exam moved",
		Content: "Midterm now on Friday",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, announcement.ID)

	require.Len(t, messages.notifications, 3)
	perStudent := map[int64]int{}
	for _, n := range messages.notifications {
		require.NotNil(t, n.StudentID)
		assert.Equal(t, "New Announcement", n.Subject)
		assert.Equal(t, "Midterm now on Friday", n.Message)
		perStudent[*n.StudentID]++
	}
	assert.Equal(t, 2, perStudent[7])
	assert.Equal(t, 1, perStudent[8])
}
