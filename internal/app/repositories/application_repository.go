package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
	"github.com/rssb/sewadar-backend/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for program applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

const applicationColumns = `
	pa.id, pa.program_id, pa.sewadar_zonal_id, pa.status, pa.notes,
	pa.applied_at, pa.reapply_allowed, pa.drop_requested_at,
	pa.drop_approved_at, pa.drop_approved_by
`

func scanApplication(row pgx.Row) (*models.ProgramApplication, error) {
	var a models.ProgramApplication
	err := row.Scan(
		&a.ID,
		&a.ProgramID,
		&a.SewadarZonalID,
		&a.Status,
		&a.Notes,
		&a.AppliedAt,
		&a.ReapplyAllowed,
		&a.DropRequestedAt,
		&a.DropApprovedAt,
		&a.DropApprovedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new application. A sewadar can hold at most one
// application per program; the unique constraint enforces it.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.ProgramApplication) error {
	query := `
		INSERT INTO program_applications (program_id, sewadar_zonal_id, status, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, applied_at
	`

	err := r.db.QueryRow(ctx, query,
		application.ProgramID, application.SewadarZonalID,
		application.Status, application.Notes,
	).Scan(&application.ID, &application.AppliedAt)
	if err != nil {
		// Service checks first, but two concurrent applies can still race
		if dberrors.IsDuplicateConstraintError(err, "uq_application_program_sewadar") {
			return apperrors.ErrAlreadyApplied
		}
		return err
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.ProgramApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM program_applications pa WHERE pa.id = $1`

	application, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return application, nil
}

// GetByProgramAndSewadar retrieves the application a sewadar holds for a
// program, or nil when none exists. There is at most one row per pair.
func (r *ApplicationRepository) GetByProgramAndSewadar(ctx context.Context, programID int64, zonalID string) (*models.ProgramApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM program_applications pa
		WHERE pa.program_id = $1 AND pa.sewadar_zonal_id = $2`

	application, err := scanApplication(r.db.QueryRow(ctx, query, programID, zonalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return application, nil
}

// GetByProgram retrieves all applications for a program, optionally filtered
// by status, with the applicant joined in.
func (r *ApplicationRepository) GetByProgram(ctx context.Context, programID int64, status string) ([]*models.ProgramApplication, error) {
	query := `SELECT` + applicationColumns + `,
		s.zonal_id, s.first_name, s.last_name, s.mobile, s.profession, s.joining_date
		FROM program_applications pa
		JOIN sewadars s ON s.zonal_id = pa.sewadar_zonal_id
		WHERE pa.program_id = $1`
	args := []interface{}{programID}
	if status != "" {
		query += ` AND pa.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY pa.applied_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.ProgramApplication
	for rows.Next() {
		var a models.ProgramApplication
		var s models.Sewadar
		if err := rows.Scan(
			&a.ID, &a.ProgramID, &a.SewadarZonalID, &a.Status, &a.Notes,
			&a.AppliedAt, &a.ReapplyAllowed, &a.DropRequestedAt,
			&a.DropApprovedAt, &a.DropApprovedBy,
			&s.ZonalID, &s.FirstName, &s.LastName, &s.Mobile, &s.Profession, &s.JoiningDate,
		); err != nil {
			return nil, err
		}
		a.Sewadar = &s
		applications = append(applications, &a)
	}
	return applications, rows.Err()
}

// GetBySewadar retrieves all applications a sewadar has made, newest first
func (r *ApplicationRepository) GetBySewadar(ctx context.Context, zonalID string) ([]*models.ProgramApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM program_applications pa
		WHERE pa.sewadar_zonal_id = $1
		ORDER BY pa.applied_at DESC`

	rows, err := r.db.Query(ctx, query, zonalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.ProgramApplication
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}

// UpdateStatus transitions an application's status, guarded by the expected
// current statuses. Returns ErrIllegalTransition when the row is not in one
// of the expected states, so concurrent decisions cannot double-apply.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, newStatus string, notes *string, expectedStatuses ...string) error {
	query := `
		UPDATE program_applications
		SET status = $1, notes = COALESCE($2, notes)
		WHERE id = $3 AND status = ANY($4)
	`

	cmdTag, err := r.db.Exec(ctx, query, newStatus, notes, id, expectedStatuses)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrIllegalTransition
	}
	return nil
}

// RequestDrop moves a PENDING or APPROVED application to DROP_REQUESTED
func (r *ApplicationRepository) RequestDrop(ctx context.Context, id int64, requestedAt time.Time) error {
	query := `
		UPDATE program_applications
		SET status = $1, drop_requested_at = $2
		WHERE id = $3 AND status = ANY($4)
	`

	cmdTag, err := r.db.Exec(ctx, query,
		models.ApplicationStatusDropRequested, requestedAt, id,
		[]string{models.ApplicationStatusPending, models.ApplicationStatusApproved})
	if err != nil {
		return fmt.Errorf("error requesting drop: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrIllegalTransition
	}
	return nil
}

// ApproveDrop moves a DROP_REQUESTED application to DROPPED and records who
// approved it and when. Reapply is permitted by default.
func (r *ApplicationRepository) ApproveDrop(ctx context.Context, id int64, approvedBy string, approvedAt time.Time) error {
	query := `
		UPDATE program_applications
		SET status = $1, drop_approved_at = $2, drop_approved_by = $3, reapply_allowed = TRUE
		WHERE id = $4 AND status = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		models.ApplicationStatusDropped, approvedAt, approvedBy, id,
		models.ApplicationStatusDropRequested)
	if err != nil {
		return fmt.Errorf("error approving drop: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrIllegalTransition
	}
	return nil
}

// Replace deletes a DROPPED application and creates a fresh PENDING one for
// the same program and sewadar in a single transaction. Used for reapply so
// the history of the dropped attempt does not block the unique constraint.
func (r *ApplicationRepository) Replace(ctx context.Context, application *models.ProgramApplication) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM program_applications
		 WHERE program_id = $1 AND sewadar_zonal_id = $2 AND status = $3`,
		application.ProgramID, application.SewadarZonalID, models.ApplicationStatusDropped)
	if err != nil {
		return fmt.Errorf("error removing dropped application: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO program_applications (program_id, sewadar_zonal_id, status, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, applied_at`,
		application.ProgramID, application.SewadarZonalID,
		application.Status, application.Notes,
	).Scan(&application.ID, &application.AppliedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CountApprovedByProgram returns the number of approved applications for a program
func (r *ApplicationRepository) CountApprovedByProgram(ctx context.Context, programID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM program_applications WHERE program_id = $1 AND status = $2`,
		programID, models.ApplicationStatusApproved).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting approved applications: %w", err)
	}
	return count, nil
}

// prioritizedSortColumns maps API sort keys to ORDER BY expressions. Only
// keys present here are accepted.
var prioritizedSortColumns = map[string]string{
	"priorityscore":     "priority_score DESC",
	"attendance":        "total_attendance_count DESC",
	"beasattendance":    "beas_attendance_count DESC",
	"nonbeasattendance": "non_beas_attendance_count DESC",
	"days":              "total_days_attended DESC",
	"beasdays":          "beas_days_attended DESC",
	"nonbeasdays":       "non_beas_days_attended DESC",
	"profession":        "s.profession ASC NULLS LAST",
	"joiningdate":       "s.joining_date ASC NULLS LAST",
}

// PrioritizedRow is one application joined with the applicant's attendance
// history and the derived priority score.
type PrioritizedRow struct {
	ApplicationID          int64
	SewadarZonalID         string
	FirstName              string
	LastName               string
	Mobile                 *string
	Profession             *string
	JoiningDate            *time.Time
	Status                 string
	AppliedAt              time.Time
	TotalAttendanceCount   int64
	BeasAttendanceCount    int64
	NonBeasAttendanceCount int64
	TotalDaysAttended      int
	BeasDaysAttended       int
	NonBeasDaysAttended    int
	PriorityScore          int64
}

// GetPrioritized retrieves the applications for a program joined with each
// applicant's attendance history across all programs. The priority score is
// total attendance count * 10 + total days attended, computed in SQL so the
// ordering happens in the database.
func (r *ApplicationRepository) GetPrioritized(ctx context.Context, programID int64, sortBy string) ([]PrioritizedRow, error) {
	orderBy, ok := prioritizedSortColumns[sortBy]
	if !ok {
		orderBy = prioritizedSortColumns["priorityscore"]
	}

	query := `
		SELECT pa.id, s.zonal_id, s.first_name, s.last_name, s.mobile,
			s.profession, s.joining_date, pa.status, pa.applied_at,
			COALESCE(att.total_attendance_count, 0) AS total_attendance_count,
			COALESCE(att.beas_attendance_count, 0) AS beas_attendance_count,
			COALESCE(att.non_beas_attendance_count, 0) AS non_beas_attendance_count,
			COALESCE(att.total_days_attended, 0) AS total_days_attended,
			COALESCE(att.beas_days_attended, 0) AS beas_days_attended,
			COALESCE(att.non_beas_days_attended, 0) AS non_beas_days_attended,
			COALESCE(att.total_attendance_count, 0) * 10 + COALESCE(att.total_days_attended, 0) AS priority_score
		FROM program_applications pa
		JOIN sewadars s ON s.zonal_id = pa.sewadar_zonal_id
		LEFT JOIN (
			SELECT a.sewadar_zonal_id,
				COUNT(*) FILTER (WHERE a.attended) AS total_attendance_count,
				COUNT(*) FILTER (WHERE a.attended AND p.location = 'BEAS') AS beas_attendance_count,
				COUNT(*) FILTER (WHERE a.attended AND p.location != 'BEAS') AS non_beas_attendance_count,
				COALESCE(SUM(a.days_participated) FILTER (WHERE a.attended), 0) AS total_days_attended,
				COALESCE(SUM(a.days_participated) FILTER (WHERE a.attended AND p.location = 'BEAS'), 0) AS beas_days_attended,
				COALESCE(SUM(a.days_participated) FILTER (WHERE a.attended AND p.location != 'BEAS'), 0) AS non_beas_days_attended
			FROM attendances a
			JOIN programs p ON p.id = a.program_id
			GROUP BY a.sewadar_zonal_id
		) att ON att.sewadar_zonal_id = pa.sewadar_zonal_id
		WHERE pa.program_id = $1 AND pa.status != 'DROPPED'
		ORDER BY ` + orderBy + `, pa.applied_at ASC`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []PrioritizedRow
	for rows.Next() {
		var row PrioritizedRow
		if err := rows.Scan(
			&row.ApplicationID, &row.SewadarZonalID, &row.FirstName,
			&row.LastName, &row.Mobile, &row.Profession, &row.JoiningDate,
			&row.Status, &row.AppliedAt,
			&row.TotalAttendanceCount, &row.BeasAttendanceCount,
			&row.NonBeasAttendanceCount, &row.TotalDaysAttended,
			&row.BeasDaysAttended, &row.NonBeasDaysAttended,
			&row.PriorityScore,
		); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
