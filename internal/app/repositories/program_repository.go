package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// ProgramRepository handles database operations for programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

const programColumns = `
	p.id, p.title, p.description, p.location, p.status, p.max_sewadars,
	p.created_by, p.last_date_to_apply, p.last_date_to_submit_form,
	p.created_at, p.updated_at
`

func scanProgram(row pgx.Row) (*models.Program, error) {
	var p models.Program
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.Status,
		&p.MaxSewadars,
		&p.CreatedBy,
		&p.LastDateToApply,
		&p.LastDateToSubmitForm,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new program with its scheduled dates and an initial
// workflow row at node 1, all in one transaction.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO programs (
			title, description, location, status, max_sewadars, created_by,
			last_date_to_apply, last_date_to_submit_form
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		program.Title, program.Description, program.Location, program.Status,
		program.MaxSewadars, program.CreatedBy, program.LastDateToApply,
		program.LastDateToSubmitForm,
	).Scan(&program.ID, &program.CreatedAt)
	if err != nil {
		return err
	}

	if err := replaceProgramDates(ctx, tx, program.ID, program.ProgramDates); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO program_workflows (program_id, current_node) VALUES ($1, $2)`,
		program.ID, models.WorkflowFirstNode)
	if err != nil {
		return fmt.Errorf("error initializing workflow: %w", err)
	}

	return tx.Commit(ctx)
}

func replaceProgramDates(ctx context.Context, tx pgx.Tx, programID int64, dates []time.Time) error {
	if _, err := tx.Exec(ctx, `DELETE FROM program_dates WHERE program_id = $1`, programID); err != nil {
		return fmt.Errorf("error clearing program dates: %w", err)
	}
	for _, date := range dates {
		if _, err := tx.Exec(ctx,
			`INSERT INTO program_dates (program_id, program_date) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			programID, date); err != nil {
			return fmt.Errorf("error inserting program date: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a program by ID with its dates and application count
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `SELECT` + programColumns + `,
		(SELECT COUNT(*) FROM program_applications pa
		 WHERE pa.program_id = p.id AND pa.status != 'DROPPED') AS application_count
		FROM programs p WHERE p.id = $1`

	var p models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Location, &p.Status,
		&p.MaxSewadars, &p.CreatedBy, &p.LastDateToApply,
		&p.LastDateToSubmitForm, &p.CreatedAt, &p.UpdatedAt,
		&p.ApplicationCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	if err := r.loadDates(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProgramRepository) loadDates(ctx context.Context, program *models.Program) error {
	rows, err := r.db.Query(ctx,
		`SELECT program_date FROM program_dates WHERE program_id = $1 ORDER BY program_date`,
		program.ID)
	if err != nil {
		return fmt.Errorf("error retrieving program dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return err
		}
		program.ProgramDates = append(program.ProgramDates, date)
	}

	return rows.Err()
}

// ProgramFilter holds the optional filters for listing programs
type ProgramFilter struct {
	Status    string
	Location  string
	CreatedBy string
}

// GetAll retrieves programs matching the given filters with pagination.
// Returns the page of programs and the total match count.
func (r *ProgramRepository) GetAll(ctx context.Context, filter ProgramFilter, offset uint64, limit int) ([]*models.Program, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("p.location ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}
	if filter.CreatedBy != "" {
		conditions = append(conditions, fmt.Sprintf("p.created_by = $%d", argIdx))
		args = append(args, filter.CreatedBy)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM programs p WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting programs: %w", err)
	}

	query := `SELECT` + programColumns + `,
		(SELECT COUNT(*) FROM program_applications pa
		 WHERE pa.program_id = p.id AND pa.status != 'DROPPED') AS application_count
		FROM programs p WHERE ` + where +
		fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Location, &p.Status,
			&p.MaxSewadars, &p.CreatedBy, &p.LastDateToApply,
			&p.LastDateToSubmitForm, &p.CreatedAt, &p.UpdatedAt,
			&p.ApplicationCount,
		); err != nil {
			return nil, 0, err
		}
		programs = append(programs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, program := range programs {
		if err := r.loadDates(ctx, program); err != nil {
			return nil, 0, err
		}
	}

	return programs, total, nil
}

// Update updates an existing program and replaces its date list
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE programs
		SET title = $1, description = $2, location = $3, max_sewadars = $4,
			last_date_to_apply = $5, last_date_to_submit_form = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := tx.Exec(ctx, query,
		program.Title, program.Description, program.Location, program.MaxSewadars,
		program.LastDateToApply, program.LastDateToSubmitForm, program.ID)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	if err := replaceProgramDates(ctx, tx, program.ID, program.ProgramDates); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateStatus transitions a program's lifecycle status
func (r *ProgramRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE programs SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating program status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// Delete deletes a program by ID. Child rows cascade at the schema level.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// GetApplicationStats aggregates per-program application counts for the
// dashboard, newest programs first.
func (r *ProgramRepository) GetApplicationStats(ctx context.Context) ([]ProgramApplicationCounts, error) {
	query := `
		SELECT p.id, p.title, p.status, p.max_sewadars,
			COUNT(*) FILTER (WHERE pa.status = 'PENDING'),
			COUNT(*) FILTER (WHERE pa.status = 'APPROVED'),
			COUNT(*) FILTER (WHERE pa.status = 'REJECTED'),
			COUNT(*) FILTER (WHERE pa.status = 'DROP_REQUESTED'),
			COUNT(*) FILTER (WHERE pa.status = 'DROPPED')
		FROM programs p
		LEFT JOIN program_applications pa ON pa.program_id = p.id
		GROUP BY p.id, p.title, p.status, p.max_sewadars
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ProgramApplicationCounts
	for rows.Next() {
		var s ProgramApplicationCounts
		if err := rows.Scan(
			&s.ProgramID, &s.Title, &s.Status, &s.MaxSewadars,
			&s.Pending, &s.Approved, &s.Rejected, &s.DropRequested, &s.Dropped,
		); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ProgramApplicationCounts holds raw per-program application counts
type ProgramApplicationCounts struct {
	ProgramID     int64
	Title         string
	Status        string
	MaxSewadars   *int
	Pending       int64
	Approved      int64
	Rejected      int64
	DropRequested int64
	Dropped       int64
}
