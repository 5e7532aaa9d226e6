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

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// UpsertBatch records attendance for a batch of sewadars in one program.
// Remarking a sewadar replaces the previous record.
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, records []*models.Attendance) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO attendances (program_id, sewadar_zonal_id, attended, days_participated, marked_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (program_id, sewadar_zonal_id) DO UPDATE SET
			attended = EXCLUDED.attended,
			days_participated = EXCLUDED.days_participated,
			marked_by = EXCLUDED.marked_by,
			notes = EXCLUDED.notes,
			marked_at = NOW()
		RETURNING id, marked_at
	`

	for _, record := range records {
		err := tx.QueryRow(ctx, query,
			record.ProgramID, record.SewadarZonalID, record.Attended,
			record.DaysParticipated, record.MarkedBy, record.Notes,
		).Scan(&record.ID, &record.MarkedAt)
		if err != nil {
			return fmt.Errorf("error saving attendance: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a single attendance record
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	query := `
		SELECT id, program_id, sewadar_zonal_id, attended,
			days_participated, marked_by, marked_at, notes
		FROM attendances WHERE id = $1
	`

	var a models.Attendance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.ProgramID, &a.SewadarZonalID, &a.Attended,
		&a.DaysParticipated, &a.MarkedBy, &a.MarkedAt, &a.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}

	return &a, nil
}

// Update corrects a single attendance record in place
func (r *AttendanceRepository) Update(ctx context.Context, record *models.Attendance) error {
	query := `
		UPDATE attendances
		SET attended = $1, days_participated = $2, notes = $3, marked_by = $4, marked_at = NOW()
		WHERE id = $5
		RETURNING marked_at
	`

	err := r.db.QueryRow(ctx, query,
		record.Attended, record.DaysParticipated, record.Notes, record.MarkedBy, record.ID,
	).Scan(&record.MarkedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAttendanceNotFound
		}
		return fmt.Errorf("error updating attendance: %w", err)
	}

	return nil
}

// GetByProgram retrieves all attendance records for a program with the
// sewadar joined in.
func (r *AttendanceRepository) GetByProgram(ctx context.Context, programID int64) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.program_id, a.sewadar_zonal_id, a.attended,
			a.days_participated, a.marked_by, a.marked_at, a.notes,
			s.zonal_id, s.first_name, s.last_name
		FROM attendances a
		JOIN sewadars s ON s.zonal_id = a.sewadar_zonal_id
		WHERE a.program_id = $1
		ORDER BY s.first_name, s.last_name
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		var s models.Sewadar
		if err := rows.Scan(
			&a.ID, &a.ProgramID, &a.SewadarZonalID, &a.Attended,
			&a.DaysParticipated, &a.MarkedBy, &a.MarkedAt, &a.Notes,
			&s.ZonalID, &s.FirstName, &s.LastName,
		); err != nil {
			return nil, err
		}
		a.Sewadar = &s
		records = append(records, &a)
	}
	return records, rows.Err()
}

// GetBySewadar retrieves a sewadar's attendance history with the program
// joined in, newest first.
func (r *AttendanceRepository) GetBySewadar(ctx context.Context, zonalID string) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.program_id, a.sewadar_zonal_id, a.attended,
			a.days_participated, a.marked_by, a.marked_at, a.notes,
			p.id, p.title, p.location, p.status
		FROM attendances a
		JOIN programs p ON p.id = a.program_id
		WHERE a.sewadar_zonal_id = $1
		ORDER BY a.marked_at DESC
	`

	rows, err := r.db.Query(ctx, query, zonalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		var p models.Program
		if err := rows.Scan(
			&a.ID, &a.ProgramID, &a.SewadarZonalID, &a.Attended,
			&a.DaysParticipated, &a.MarkedBy, &a.MarkedAt, &a.Notes,
			&p.ID, &p.Title, &p.Location, &p.Status,
		); err != nil {
			return nil, err
		}
		a.Program = &p
		records = append(records, &a)
	}
	return records, rows.Err()
}

// GetSummary aggregates a sewadar's attendance history across all programs,
// split by the BEAS / NON_BEAS location classification. A sewadar with no
// records gets a zeroed summary.
func (r *AttendanceRepository) GetSummary(ctx context.Context, zonalID string) (*models.AttendanceSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.attended),
			COUNT(*) FILTER (WHERE a.attended AND p.location = 'BEAS'),
			COUNT(*) FILTER (WHERE a.attended AND p.location != 'BEAS'),
			COALESCE(SUM(a.days_participated) FILTER (WHERE a.attended), 0),
			COALESCE(SUM(a.days_participated) FILTER (WHERE a.attended AND p.location = 'BEAS'), 0),
			COALESCE(SUM(a.days_participated) FILTER (WHERE a.attended AND p.location != 'BEAS'), 0)
		FROM attendances a
		JOIN programs p ON p.id = a.program_id
		WHERE a.sewadar_zonal_id = $1
	`

	summary := models.AttendanceSummary{SewadarZonalID: zonalID}
	err := r.db.QueryRow(ctx, query, zonalID).Scan(
		&summary.TotalAttendanceCount,
		&summary.BeasAttendanceCount,
		&summary.NonBeasAttendance,
		&summary.TotalDaysAttended,
		&summary.BeasDaysAttended,
		&summary.NonBeasDaysAttended,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &summary, nil
		}
		return nil, fmt.Errorf("error aggregating attendance: %w", err)
	}

	return &summary, nil
}
