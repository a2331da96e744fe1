package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
	"github.com/mkaraca/campushub/internal/pkg/mailer"
)

// announcementSubject is the notification subject used for announcement fan-out
const announcementSubject = "New Announcement"

type messagingStore interface {
	CreateSentEmail(ctx context.Context, email *models.SentEmail) (int64, error)
	DeleteSentEmailFromStudent(ctx context.Context, id, studentID int64) error
	DeleteSentEmailFromInstructor(ctx context.Context, id, instructorID int64) error
	CreateNotification(ctx context.Context, notification *models.Notification) (int64, error)
	MarkNotificationReadForStudent(ctx context.Context, id, studentID int64) error
	MarkNotificationReadForInstructor(ctx context.Context, id, instructorID int64) error
	DeleteNotificationForStudent(ctx context.Context, id, studentID int64) error
	DeleteNotificationForInstructor(ctx context.Context, id, instructorID int64) error
}

type announcementStore interface {
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (int64, error)
	DeleteAnnouncement(ctx context.Context, id, instructorID int64) error
}

type enrollmentsByInstructorLister interface {
	ListEnrollmentsByInstructor(ctx context.Context, instructorID int64) ([]*models.Enrollment, error)
}

// MessagingService handles dashboard email, notifications and announcement
// fan-out.
type MessagingService struct {
	mail          mailer.Mailer
	messages      messagingStore
	announcements announcementStore
	enrollments   enrollmentsByInstructorLister
	students      studentByEmailGetter
	instructors   instructorByEmailGetter
}

// NewMessagingService creates a new messaging service instance
func NewMessagingService(
	mail mailer.Mailer,
	messages messagingStore,
	announcements announcementStore,
	enrollments enrollmentsByInstructorLister,
	students studentByEmailGetter,
	instructors instructorByEmailGetter,
) *MessagingService {
	return &MessagingService{
		mail:          mail,
		messages:      messages,
		announcements: announcements,
		enrollments:   enrollments,
		students:      students,
		instructors:   instructors,
	}
}

// SendEmailFromStudent dispatches a mail from a student's dashboard
func (s *MessagingService) SendEmailFromStudent(ctx context.Context, student *models.Student, req *dto.SendEmailRequest) error {
	return s.sendEmail(ctx, student.Name, student.UniversityEmail, &student.ID, nil, req)
}

// SendEmailFromInstructor dispatches a mail from an instructor's dashboard
func (s *MessagingService) SendEmailFromInstructor(ctx context.Context, instructor *models.Instructor, req *dto.SendEmailRequest) error {
	return s.sendEmail(ctx, instructor.FullName, instructor.Email, nil, &instructor.ID, req)
}

// sendEmail dispatches through the mail transport first; nothing is recorded
// when delivery fails. On success a SentEmail row is written, and a
// Notification when the address belongs to a known student or instructor.
func (s *MessagingService) sendEmail(ctx context.Context, senderName, senderEmail string, senderStudentID, senderInstructorID *int64, req *dto.SendEmailRequest) error {
	msg := mailer.Message{
		FromName:  senderName,
		FromEmail: senderEmail,
		To:        req.RecipientEmail,
		Subject:   req.Subject,
		Body:      req.Message,
	}
	if err := s.mail.Send(msg); err != nil {
		logger.Error().Err(err).Str("to", req.RecipientEmail).Msg("Mail delivery failed")
		return apperrors.ErrMailDelivery
	}

	recipientStudentID, recipientInstructorID, err := s.resolveRecipient(ctx, req.RecipientEmail)
	if err != nil {
		return err
	}

	sent := &models.SentEmail{
		SenderStudentID:     senderStudentID,
		SenderInstructorID:  senderInstructorID,
		RecipientStudentID:  recipientStudentID,
		RecipientInstructor: recipientInstructorID,
		RecipientEmail:      req.RecipientEmail,
		Subject:             req.Subject,
		Message:             req.Message,
		SentAt:              time.Now(),
	}
	if _, err := s.messages.CreateSentEmail(ctx, sent); err != nil {
		return err
	}

	if recipientStudentID == nil && recipientInstructorID == nil {
		return nil
	}
	notification := &models.Notification{
		StudentID:    recipientStudentID,
		InstructorID: recipientInstructorID,
		Subject:      req.Subject,
		Message:      req.Message,
		CreatedAt:    time.Now(),
	}
	if _, err := s.messages.CreateNotification(ctx, notification); err != nil {
		// The mail is already out and recorded; losing the notification is
		// logged rather than unwound.
		logger.Error().Err(err).Int64("sentEmailId", sent.ID).Msg("Notification write failed after delivery")
	}
	return nil
}

// resolveRecipient matches the address against students first, then
// instructors. An external address matches neither.
func (s *MessagingService) resolveRecipient(ctx context.Context, email string) (*int64, *int64, error) {
	student, err := s.students.GetStudentByEmail(ctx, email)
	if err == nil {
		return &student.ID, nil, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, nil, err
	}

	instructor, err := s.instructors.GetInstructorByEmail(ctx, email)
	if err == nil {
		return nil, &instructor.ID, nil
	}
	if !errors.Is(err, apperrors.ErrInstructorNotFound) {
		return nil, nil, err
	}
	return nil, nil, nil
}

// DeleteSentEmailForStudent removes a sent-email record the student sent
func (s *MessagingService) DeleteSentEmailForStudent(ctx context.Context, emailID, studentID int64) error {
	return s.messages.DeleteSentEmailFromStudent(ctx, emailID, studentID)
}

// DeleteSentEmailForInstructor removes a sent-email record the instructor sent
func (s *MessagingService) DeleteSentEmailForInstructor(ctx context.Context, emailID, instructorID int64) error {
	return s.messages.DeleteSentEmailFromInstructor(ctx, emailID, instructorID)
}

// MarkNotificationReadForStudent flags a student's notification as read
func (s *MessagingService) MarkNotificationReadForStudent(ctx context.Context, notificationID, studentID int64) error {
	return s.messages.MarkNotificationReadForStudent(ctx, notificationID, studentID)
}

// MarkNotificationReadForInstructor flags an instructor's notification as read
func (s *MessagingService) MarkNotificationReadForInstructor(ctx context.Context, notificationID, instructorID int64) error {
	return s.messages.MarkNotificationReadForInstructor(ctx, notificationID, instructorID)
}

// DeleteNotificationForStudent removes a student's notification
func (s *MessagingService) DeleteNotificationForStudent(ctx context.Context, notificationID, studentID int64) error {
	return s.messages.DeleteNotificationForStudent(ctx, notificationID, studentID)
}

// DeleteNotificationForInstructor removes an instructor's notification
func (s *MessagingService) DeleteNotificationForInstructor(ctx context.Context, notificationID, instructorID int64) error {
	return s.messages.DeleteNotificationForInstructor(ctx, notificationID, instructorID)
}

// PostAnnouncement stores the announcement and fans out one notification per
// enrollment row across the instructor's courses. A student enrolled in two
// of the instructor's courses receives two notifications.
func (s *MessagingService) PostAnnouncement(ctx context.Context, instructor *models.Instructor, req *dto.AnnouncementRequest) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:        req.Title,
		Content:      req.Content,
		InstructorID: instructor.ID,
		CreatedAt:    time.Now(),
	}
	id, err := s.announcements.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return nil, err
	}
	announcement.ID = id

	enrollments, err := s.enrollments.ListEnrollmentsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments for fan-out: %w", err)
	}
	for _, enrollment := range enrollments {
		studentID := enrollment.StudentID
		notification := &models.Notification{
			StudentID: &studentID,
			Subject:   announcementSubject,
			Message:   req.Content,
			CreatedAt: time.Now(),
		}
		if _, err := s.messages.CreateNotification(ctx, notification); err != nil {
			logger.Error().Err(err).Int64("studentId", studentID).Msg("Announcement notification write failed")
		}
	}

	logger.Info().Int64("announcementId", id).Int("notified", len(enrollments)).Msg("Announcement posted")
	return announcement, nil
}

// DeleteAnnouncement removes one of the instructor's announcements
func (s *MessagingService) DeleteAnnouncement(ctx context.Context, announcementID, instructorID int64) error {
	return s.announcements.DeleteAnnouncement(ctx, announcementID, instructorID)
}

// NotifyStudent writes a notification to a single student. Used by grade
// updates and other writes that affect a student directly.
func (s *MessagingService) NotifyStudent(ctx context.Context, studentID int64, subject, message string) error {
	notification := &models.Notification{
		StudentID: &studentID,
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now(),
	}
	_, err := s.messages.CreateNotification(ctx, notification)
	return err
}
