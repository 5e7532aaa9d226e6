package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// NotificationPreferenceRepository handles the global per-node notification defaults
type NotificationPreferenceRepository struct {
	db *pgxpool.Pool
}

// NewNotificationPreferenceRepository creates a new notification preference repository
func NewNotificationPreferenceRepository(db *pgxpool.Pool) *NotificationPreferenceRepository {
	return &NotificationPreferenceRepository{
		db: db,
	}
}

// GetAll retrieves the global preference for every workflow node, in node order
func (r *NotificationPreferenceRepository) GetAll(ctx context.Context) ([]*models.NotificationPreference, error) {
	query := `
		SELECT id, node_number, node_name, notification_message, enabled, created_at, updated_at
		FROM notification_preferences
		ORDER BY node_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preferences []*models.NotificationPreference
	for rows.Next() {
		var p models.NotificationPreference
		if err := rows.Scan(
			&p.ID, &p.NodeNumber, &p.NodeName, &p.NotificationMessage,
			&p.Enabled, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		preferences = append(preferences, &p)
	}
	return preferences, rows.Err()
}

// GetByNode retrieves the global preference for one workflow node
func (r *NotificationPreferenceRepository) GetByNode(ctx context.Context, nodeNumber int) (*models.NotificationPreference, error) {
	query := `
		SELECT id, node_number, node_name, notification_message, enabled, created_at, updated_at
		FROM notification_preferences
		WHERE node_number = $1
	`

	var p models.NotificationPreference
	err := r.db.QueryRow(ctx, query, nodeNumber).Scan(
		&p.ID, &p.NodeNumber, &p.NodeName, &p.NotificationMessage,
		&p.Enabled, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationPrefNotFound
		}
		return nil, fmt.Errorf("error retrieving notification preference: %w", err)
	}

	return &p, nil
}

// Update toggles a node's global default and optionally replaces its message template
func (r *NotificationPreferenceRepository) Update(ctx context.Context, nodeNumber int, enabled bool, message *string) error {
	query := `
		UPDATE notification_preferences
		SET enabled = $1, notification_message = COALESCE($2, notification_message), updated_at = NOW()
		WHERE node_number = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, enabled, message, nodeNumber)
	if err != nil {
		return fmt.Errorf("error updating notification preference: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationPrefNotFound
	}
	return nil
}

// ProgramNotificationPreferenceRepository handles the per-program overrides
type ProgramNotificationPreferenceRepository struct {
	db *pgxpool.Pool
}

// NewProgramNotificationPreferenceRepository creates a new program notification preference repository
func NewProgramNotificationPreferenceRepository(db *pgxpool.Pool) *ProgramNotificationPreferenceRepository {
	return &ProgramNotificationPreferenceRepository{
		db: db,
	}
}

// GetByProgram retrieves all overrides recorded for a program, keyed by node
func (r *ProgramNotificationPreferenceRepository) GetByProgram(ctx context.Context, programID int64) (map[int]*models.ProgramNotificationPreference, error) {
	query := `
		SELECT id, program_id, node_number, enabled, message, created_at, updated_at
		FROM program_notification_preferences
		WHERE program_id = $1
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[int]*models.ProgramNotificationPreference)
	for rows.Next() {
		var p models.ProgramNotificationPreference
		if err := rows.Scan(
			&p.ID, &p.ProgramID, &p.NodeNumber, &p.Enabled, &p.Message,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		overrides[p.NodeNumber] = &p
	}
	return overrides, rows.Err()
}

// GetByProgramAndNode retrieves the override for one node of a program, or
// nil when the program inherits the global setting.
func (r *ProgramNotificationPreferenceRepository) GetByProgramAndNode(ctx context.Context, programID int64, nodeNumber int) (*models.ProgramNotificationPreference, error) {
	query := `
		SELECT id, program_id, node_number, enabled, message, created_at, updated_at
		FROM program_notification_preferences
		WHERE program_id = $1 AND node_number = $2
	`

	var p models.ProgramNotificationPreference
	err := r.db.QueryRow(ctx, query, programID, nodeNumber).Scan(
		&p.ID, &p.ProgramID, &p.NodeNumber, &p.Enabled, &p.Message,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving program notification preference: %w", err)
	}

	return &p, nil
}

// Upsert sets the override for one node of a program
func (r *ProgramNotificationPreferenceRepository) Upsert(ctx context.Context, pref *models.ProgramNotificationPreference) error {
	query := `
		INSERT INTO program_notification_preferences (program_id, node_number, enabled, message)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (program_id, node_number) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			message = EXCLUDED.message,
			updated_at = NOW()
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		pref.ProgramID, pref.NodeNumber, pref.Enabled, pref.Message,
	).Scan(&pref.ID, &pref.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving program notification preference: %w", err)
	}

	return nil
}

// Delete clears the override for one node so the program inherits the
// global setting again. Deleting a nonexistent override is a no-op.
func (r *ProgramNotificationPreferenceRepository) Delete(ctx context.Context, programID int64, nodeNumber int) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM program_notification_preferences WHERE program_id = $1 AND node_number = $2`,
		programID, nodeNumber)
	if err != nil {
		return fmt.Errorf("error clearing program notification preference: %w", err)
	}
	return nil
}
