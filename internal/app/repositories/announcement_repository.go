package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db, sb: statementBuilder()}
}

const announcementColumns = "id, title, content, instructor_id, created_at"

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	a := &models.Announcement{}
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.InstructorID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAnnouncement inserts an announcement
func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (int64, error) {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "content", "instructor_id", "created_at").
		Values(announcement.Title, announcement.Content, announcement.InstructorID, announcement.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create announcement query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create announcement query")
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}
	return id, nil
}

// GetAnnouncementByID retrieves an announcement by primary key
func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sql, args, err := r.sb.Select(announcementColumns).
		From("announcements").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	announcement, err := scanAnnouncement(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		logger.Error().Err(err).Msg("Error scanning announcement row")
		return nil, fmt.Errorf("error getting announcement: %w", err)
	}
	return announcement, nil
}

// ListAnnouncementsByInstructor retrieves an instructor's announcements, newest first
func (r *AnnouncementRepository) ListAnnouncementsByInstructor(ctx context.Context, instructorID int64) ([]*models.Announcement, error) {
	sql, args, err := r.sb.Select(announcementColumns).
		From("announcements").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build announcements by instructor query: %w", err)
	}
	return r.queryAnnouncements(ctx, sql, args)
}

// ListAnnouncementsByInstructors retrieves announcements posted by any of the
// given instructors, newest first. Used for the student dashboard.
func (r *AnnouncementRepository) ListAnnouncementsByInstructors(ctx context.Context, instructorIDs []int64) ([]*models.Announcement, error) {
	if len(instructorIDs) == 0 {
		return []*models.Announcement{}, nil
	}
	sql, args, err := r.sb.Select(announcementColumns).
		From("announcements").
		Where(squirrel.Eq{"instructor_id": instructorIDs}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build announcements by instructors query: %w", err)
	}
	return r.queryAnnouncements(ctx, sql, args)
}

// DeleteAnnouncement removes an instructor's announcement. The instructor
// predicate keeps one instructor from deleting another's post.
func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id, instructorID int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id, "instructor_id": instructorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete announcement query")
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) queryAnnouncements(ctx context.Context, sql string, args []interface{}) ([]*models.Announcement, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing announcements query")
		return nil, fmt.Errorf("error querying announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return announcements, nil
}
