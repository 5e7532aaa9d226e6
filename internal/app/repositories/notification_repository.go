package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for incharge notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (program_id, dropped_zonal_id, incharge_zonal_id, notification_type, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notification.ProgramID, notification.DroppedZonalID,
		notification.InchargeZonalID, notification.NotificationType,
		notification.Message,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// GetByIncharge retrieves an incharge's notifications, unresolved first,
// newest first within each group.
func (r *NotificationRepository) GetByIncharge(ctx context.Context, inchargeZonalID string, unresolvedOnly bool) ([]*models.Notification, error) {
	query := `
		SELECT id, program_id, dropped_zonal_id, incharge_zonal_id,
			notification_type, message, resolved, created_at
		FROM notifications
		WHERE incharge_zonal_id = $1
	`
	if unresolvedOnly {
		query += ` AND resolved = FALSE`
	}
	query += ` ORDER BY resolved ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, inchargeZonalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.ProgramID, &n.DroppedZonalID, &n.InchargeZonalID,
			&n.NotificationType, &n.Message, &n.Resolved, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// Resolve marks a notification as handled. Only the addressed incharge may
// resolve it.
func (r *NotificationRepository) Resolve(ctx context.Context, id int64, inchargeZonalID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET resolved = TRUE WHERE id = $1 AND incharge_zonal_id = $2`,
		id, inchargeZonalID)
	if err != nil {
		return fmt.Errorf("error resolving notification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
