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

// FormSubmissionRepository handles database operations for travel-detail forms
type FormSubmissionRepository struct {
	db *pgxpool.Pool
}

// NewFormSubmissionRepository creates a new form submission repository
func NewFormSubmissionRepository(db *pgxpool.Pool) *FormSubmissionRepository {
	return &FormSubmissionRepository{
		db: db,
	}
}

const formSubmissionColumns = `
	f.id, f.program_id, f.sewadar_zonal_id, f.starting_datetime_from_home,
	f.reaching_datetime_to_home, f.onward_train_flight_datetime,
	f.onward_train_flight_no, f.return_train_flight_datetime,
	f.return_train_flight_no, f.stay_in_hotel, f.stay_in_pandal,
	f.submitted_at, f.updated_at
`

func scanFormSubmission(row pgx.Row) (*models.SewadarFormSubmission, error) {
	var f models.SewadarFormSubmission
	err := row.Scan(
		&f.ID,
		&f.ProgramID,
		&f.SewadarZonalID,
		&f.StartingDateTimeFromHome,
		&f.ReachingDateTimeToHome,
		&f.OnwardTrainFlightDateTime,
		&f.OnwardTrainFlightNo,
		&f.ReturnTrainFlightDateTime,
		&f.ReturnTrainFlightNo,
		&f.StayInHotel,
		&f.StayInPandal,
		&f.SubmittedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Upsert inserts a submission or updates the existing one for the same
// (program, sewadar) pair. Resubmitting replaces the previous details.
func (r *FormSubmissionRepository) Upsert(ctx context.Context, submission *models.SewadarFormSubmission) error {
	query := `
		INSERT INTO sewadar_form_submissions (
			program_id, sewadar_zonal_id, starting_datetime_from_home,
			reaching_datetime_to_home, onward_train_flight_datetime,
			onward_train_flight_no, return_train_flight_datetime,
			return_train_flight_no, stay_in_hotel, stay_in_pandal
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (program_id, sewadar_zonal_id) DO UPDATE SET
			starting_datetime_from_home = EXCLUDED.starting_datetime_from_home,
			reaching_datetime_to_home = EXCLUDED.reaching_datetime_to_home,
			onward_train_flight_datetime = EXCLUDED.onward_train_flight_datetime,
			onward_train_flight_no = EXCLUDED.onward_train_flight_no,
			return_train_flight_datetime = EXCLUDED.return_train_flight_datetime,
			return_train_flight_no = EXCLUDED.return_train_flight_no,
			stay_in_hotel = EXCLUDED.stay_in_hotel,
			stay_in_pandal = EXCLUDED.stay_in_pandal,
			updated_at = NOW()
		RETURNING id, submitted_at
	`

	err := r.db.QueryRow(ctx, query,
		submission.ProgramID, submission.SewadarZonalID,
		submission.StartingDateTimeFromHome, submission.ReachingDateTimeToHome,
		submission.OnwardTrainFlightDateTime, submission.OnwardTrainFlightNo,
		submission.ReturnTrainFlightDateTime, submission.ReturnTrainFlightNo,
		submission.StayInHotel, submission.StayInPandal,
	).Scan(&submission.ID, &submission.SubmittedAt)
	if err != nil {
		return fmt.Errorf("error saving form submission: %w", err)
	}

	return nil
}

// GetByID retrieves a single submission
func (r *FormSubmissionRepository) GetByID(ctx context.Context, id int64) (*models.SewadarFormSubmission, error) {
	query := `SELECT` + formSubmissionColumns + `
		FROM sewadar_form_submissions f
		WHERE f.id = $1`

	submission, err := scanFormSubmission(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving form submission: %w", err)
	}

	return submission, nil
}

// Update replaces the travel details of an existing submission
func (r *FormSubmissionRepository) Update(ctx context.Context, submission *models.SewadarFormSubmission) error {
	query := `
		UPDATE sewadar_form_submissions SET
			starting_datetime_from_home = $1,
			reaching_datetime_to_home = $2,
			onward_train_flight_datetime = $3,
			onward_train_flight_no = $4,
			return_train_flight_datetime = $5,
			return_train_flight_no = $6,
			stay_in_hotel = $7,
			stay_in_pandal = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		submission.StartingDateTimeFromHome, submission.ReachingDateTimeToHome,
		submission.OnwardTrainFlightDateTime, submission.OnwardTrainFlightNo,
		submission.ReturnTrainFlightDateTime, submission.ReturnTrainFlightNo,
		submission.StayInHotel, submission.StayInPandal, submission.ID,
	).Scan(&submission.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrFormSubmissionNotFound
		}
		return fmt.Errorf("error updating form submission: %w", err)
	}

	return nil
}

// GetByProgramAndSewadar retrieves one sewadar's submission for a program
func (r *FormSubmissionRepository) GetByProgramAndSewadar(ctx context.Context, programID int64, zonalID string) (*models.SewadarFormSubmission, error) {
	query := `SELECT` + formSubmissionColumns + `
		FROM sewadar_form_submissions f
		WHERE f.program_id = $1 AND f.sewadar_zonal_id = $2`

	submission, err := scanFormSubmission(r.db.QueryRow(ctx, query, programID, zonalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving form submission: %w", err)
	}

	return submission, nil
}

// GetByProgram retrieves all submissions for a program
func (r *FormSubmissionRepository) GetByProgram(ctx context.Context, programID int64) ([]*models.SewadarFormSubmission, error) {
	query := `SELECT` + formSubmissionColumns + `
		FROM sewadar_form_submissions f
		WHERE f.program_id = $1
		ORDER BY f.submitted_at`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.SewadarFormSubmission
	for rows.Next() {
		submission, err := scanFormSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

// GetMissingSubmitters returns the zonal IDs of sewadars with an approved
// application for the program but no form submission yet.
func (r *FormSubmissionRepository) GetMissingSubmitters(ctx context.Context, programID int64) ([]string, error) {
	query := `
		SELECT pa.sewadar_zonal_id
		FROM program_applications pa
		WHERE pa.program_id = $1 AND pa.status = $2
			AND NOT EXISTS (
				SELECT 1 FROM sewadar_form_submissions f
				WHERE f.program_id = pa.program_id
					AND f.sewadar_zonal_id = pa.sewadar_zonal_id
			)
		ORDER BY pa.sewadar_zonal_id
	`

	rows, err := r.db.Query(ctx, query, programID, models.ApplicationStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var zonalID string
		if err := rows.Scan(&zonalID); err != nil {
			return nil, err
		}
		missing = append(missing, zonalID)
	}
	return missing, rows.Err()
}
