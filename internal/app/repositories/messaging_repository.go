package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// MessagingRepository handles sent email and notification database operations
type MessagingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessagingRepository creates a new MessagingRepository
func NewMessagingRepository(db *pgxpool.Pool) *MessagingRepository {
	return &MessagingRepository{db: db, sb: statementBuilder()}
}

const sentEmailColumns = "id, sender_student_id, sender_instructor_id, recipient_student_id, " +
	"recipient_instructor_id, recipient_email, subject, message, sent_at"

func scanSentEmail(row pgx.Row) (*models.SentEmail, error) {
	e := &models.SentEmail{}
	err := row.Scan(
		&e.ID, &e.SenderStudentID, &e.SenderInstructorID, &e.RecipientStudentID,
		&e.RecipientInstructor, &e.RecipientEmail, &e.Subject, &e.Message, &e.SentAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateSentEmail records a delivered email
func (r *MessagingRepository) CreateSentEmail(ctx context.Context, email *models.SentEmail) (int64, error) {
	sql, args, err := r.sb.Insert("sent_emails").
		Columns("sender_student_id", "sender_instructor_id", "recipient_student_id",
			"recipient_instructor_id", "recipient_email", "subject", "message", "sent_at").
		Values(email.SenderStudentID, email.SenderInstructorID, email.RecipientStudentID,
			email.RecipientInstructor, email.RecipientEmail, email.Subject, email.Message, email.SentAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create sent email query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create sent email query")
		return 0, fmt.Errorf("error creating sent email: %w", err)
	}
	return id, nil
}

// ListSentEmailsByStudent retrieves emails sent from a student's dashboard, newest first
func (r *MessagingRepository) ListSentEmailsByStudent(ctx context.Context, studentID int64) ([]*models.SentEmail, error) {
	return r.listSentEmails(ctx, squirrel.Eq{"sender_student_id": studentID})
}

// ListSentEmailsByInstructor retrieves emails sent from an instructor's dashboard, newest first
func (r *MessagingRepository) ListSentEmailsByInstructor(ctx context.Context, instructorID int64) ([]*models.SentEmail, error) {
	return r.listSentEmails(ctx, squirrel.Eq{"sender_instructor_id": instructorID})
}

func (r *MessagingRepository) listSentEmails(ctx context.Context, pred squirrel.Eq) ([]*models.SentEmail, error) {
	sql, args, err := r.sb.Select(sentEmailColumns).
		From("sent_emails").
		Where(pred).
		OrderBy("sent_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sent emails query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing sent emails query")
		return nil, fmt.Errorf("error querying sent emails: %w", err)
	}
	defer rows.Close()

	emails := []*models.SentEmail{}
	for rows.Next() {
		email, err := scanSentEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning sent email row: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sent email rows: %w", err)
	}
	return emails, nil
}

// DeleteSentEmailFromStudent removes a sent email owned by the student sender
func (r *MessagingRepository) DeleteSentEmailFromStudent(ctx context.Context, id, studentID int64) error {
	return r.deleteSentEmail(ctx, squirrel.Eq{"id": id, "sender_student_id": studentID})
}

// DeleteSentEmailFromInstructor removes a sent email owned by the instructor sender
func (r *MessagingRepository) DeleteSentEmailFromInstructor(ctx context.Context, id, instructorID int64) error {
	return r.deleteSentEmail(ctx, squirrel.Eq{"id": id, "sender_instructor_id": instructorID})
}

// deleteSentEmail removes a sent email. The sender predicate keeps users from
// deleting records they did not send.
func (r *MessagingRepository) deleteSentEmail(ctx context.Context, pred squirrel.Eq) error {
	sql, args, err := r.sb.Delete("sent_emails").
		Where(pred).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete sent email query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete sent email query")
		return fmt.Errorf("error deleting sent email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSentEmailNotFound
	}
	return nil
}

const notificationColumns = "id, student_id, instructor_id, subject, message, is_read, created_at"

func scanNotification(row pgx.Row) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(&n.ID, &n.StudentID, &n.InstructorID, &n.Subject, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNotification inserts a notification for one student or one instructor
func (r *MessagingRepository) CreateNotification(ctx context.Context, notification *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("student_id", "instructor_id", "subject", "message", "is_read", "created_at").
		Values(notification.StudentID, notification.InstructorID, notification.Subject,
			notification.Message, notification.IsRead, notification.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create notification query")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return id, nil
}

// ListNotificationsByStudent retrieves a student's notifications, newest first
func (r *MessagingRepository) ListNotificationsByStudent(ctx context.Context, studentID int64) ([]*models.Notification, error) {
	return r.listNotifications(ctx, squirrel.Eq{"student_id": studentID})
}

// ListNotificationsByInstructor retrieves an instructor's notifications, newest first
func (r *MessagingRepository) ListNotificationsByInstructor(ctx context.Context, instructorID int64) ([]*models.Notification, error) {
	return r.listNotifications(ctx, squirrel.Eq{"instructor_id": instructorID})
}

func (r *MessagingRepository) listNotifications(ctx context.Context, pred squirrel.Eq) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select(notificationColumns).
		From("notifications").
		Where(pred).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing notifications query")
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkNotificationReadForStudent flags a student-owned notification as read
func (r *MessagingRepository) MarkNotificationReadForStudent(ctx context.Context, id, studentID int64) error {
	return r.markNotificationRead(ctx, squirrel.Eq{"id": id, "student_id": studentID})
}

// MarkNotificationReadForInstructor flags an instructor-owned notification as read
func (r *MessagingRepository) MarkNotificationReadForInstructor(ctx context.Context, id, instructorID int64) error {
	return r.markNotificationRead(ctx, squirrel.Eq{"id": id, "instructor_id": instructorID})
}

func (r *MessagingRepository) markNotificationRead(ctx context.Context, pred squirrel.Eq) error {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(pred).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark notification read query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing mark notification read query")
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// DeleteNotificationForStudent removes a student-owned notification
func (r *MessagingRepository) DeleteNotificationForStudent(ctx context.Context, id, studentID int64) error {
	return r.deleteNotification(ctx, squirrel.Eq{"id": id, "student_id": studentID})
}

// DeleteNotificationForInstructor removes an instructor-owned notification
func (r *MessagingRepository) DeleteNotificationForInstructor(ctx context.Context, id, instructorID int64) error {
	return r.deleteNotification(ctx, squirrel.Eq{"id": id, "instructor_id": instructorID})
}

func (r *MessagingRepository) deleteNotification(ctx context.Context, pred squirrel.Eq) error {
	sql, args, err := r.sb.Delete("notifications").
		Where(pred).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete notification query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete notification query")
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
