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

// WorkflowRepository handles database operations for program workflows
type WorkflowRepository struct {
	db *pgxpool.Pool
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *pgxpool.Pool) *WorkflowRepository {
	return &WorkflowRepository{
		db: db,
	}
}

const workflowColumns = `
	w.id, w.program_id, w.current_node, w.form_released, w.details_collected,
	w.created_at, w.updated_at
`

func scanWorkflow(row pgx.Row) (*models.ProgramWorkflow, error) {
	var w models.ProgramWorkflow
	err := row.Scan(
		&w.ID,
		&w.ProgramID,
		&w.CurrentNode,
		&w.FormReleased,
		&w.DetailsCollected,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a workflow row at node 1 for a program
func (r *WorkflowRepository) Create(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	query := `
		INSERT INTO program_workflows (program_id, current_node)
		VALUES ($1, $2)
		RETURNING id, program_id, current_node, form_released, details_collected, created_at, updated_at
	`

	workflow, err := scanWorkflow(r.db.QueryRow(ctx, query, programID, models.WorkflowFirstNode))
	if err != nil {
		return nil, fmt.Errorf("error creating workflow: %w", err)
	}
	return workflow, nil
}

// GetByProgramID retrieves the workflow row for a program
func (r *WorkflowRepository) GetByProgramID(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	query := `SELECT` + workflowColumns + `
		FROM program_workflows w WHERE w.program_id = $1`

	workflow, err := scanWorkflow(r.db.QueryRow(ctx, query, programID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("error retrieving workflow: %w", err)
	}

	return workflow, nil
}

// AdvanceNode moves the workflow from the expected node to the next one.
// The node number only ever increases; a concurrent advance loses the race
// and gets ErrIllegalTransition via the guarded update.
func (r *WorkflowRepository) AdvanceNode(ctx context.Context, programID int64, fromNode int) (*models.ProgramWorkflow, error) {
	query := `
		UPDATE program_workflows w
		SET current_node = current_node + 1, updated_at = NOW()
		WHERE w.program_id = $1 AND w.current_node = $2 AND w.current_node < $3
		RETURNING` + workflowColumns

	workflow, err := scanWorkflow(r.db.QueryRow(ctx, query, programID, fromNode, models.WorkflowLastNode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIllegalTransition
		}
		return nil, fmt.Errorf("error advancing workflow: %w", err)
	}
	return workflow, nil
}

// ReleaseForm marks the form released at node 3 and moves to node 4 in the
// same guarded update, so the gate and the advance are atomic.
func (r *WorkflowRepository) ReleaseForm(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	query := `
		UPDATE program_workflows w
		SET form_released = TRUE, current_node = $1, updated_at = NOW()
		WHERE w.program_id = $2 AND w.current_node = $3 AND w.form_released = FALSE
		RETURNING` + workflowColumns

	workflow, err := scanWorkflow(r.db.QueryRow(ctx, query,
		models.WorkflowNodeCollectDetails, programID, models.WorkflowNodeReleaseForm))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIllegalTransition
		}
		return nil, fmt.Errorf("error releasing form: %w", err)
	}
	return workflow, nil
}

// MarkDetailsCollected marks details collected at node 4 and moves to node 5
func (r *WorkflowRepository) MarkDetailsCollected(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	query := `
		UPDATE program_workflows w
		SET details_collected = TRUE, current_node = $1, updated_at = NOW()
		WHERE w.program_id = $2 AND w.current_node = $3 AND w.details_collected = FALSE
		RETURNING` + workflowColumns

	workflow, err := scanWorkflow(r.db.QueryRow(ctx, query,
		models.WorkflowNodeCollectDetails+1, programID, models.WorkflowNodeCollectDetails))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIllegalTransition
		}
		return nil, fmt.Errorf("error marking details collected: %w", err)
	}
	return workflow, nil
}

// WorkflowWithProgram pairs a workflow with its program's headline fields
type WorkflowWithProgram struct {
	Workflow     models.ProgramWorkflow
	ProgramTitle string
	CreatedBy    string
}

// GetByCreator retrieves the workflows of all programs created by the given
// incharge, newest programs first.
func (r *WorkflowRepository) GetByCreator(ctx context.Context, createdBy string) ([]WorkflowWithProgram, error) {
	query := `SELECT` + workflowColumns + `, p.title, p.created_by
		FROM program_workflows w
		JOIN programs p ON p.id = w.program_id
		WHERE p.created_by = $1
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []WorkflowWithProgram
	for rows.Next() {
		var item WorkflowWithProgram
		if err := rows.Scan(
			&item.Workflow.ID, &item.Workflow.ProgramID, &item.Workflow.CurrentNode,
			&item.Workflow.FormReleased, &item.Workflow.DetailsCollected,
			&item.Workflow.CreatedAt, &item.Workflow.UpdatedAt,
			&item.ProgramTitle, &item.CreatedBy,
		); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// GetIncompleteForActivePrograms retrieves workflows of active programs that
// have not reached the final node, for the daily notification sweep.
func (r *WorkflowRepository) GetIncompleteForActivePrograms(ctx context.Context) ([]WorkflowWithProgram, error) {
	query := `SELECT` + workflowColumns + `, p.title, p.created_by
		FROM program_workflows w
		JOIN programs p ON p.id = w.program_id
		WHERE p.status = $1 AND w.current_node < $2
		ORDER BY w.program_id`

	rows, err := r.db.Query(ctx, query, models.ProgramStatusActive, models.WorkflowLastNode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []WorkflowWithProgram
	for rows.Next() {
		var item WorkflowWithProgram
		if err := rows.Scan(
			&item.Workflow.ID, &item.Workflow.ProgramID, &item.Workflow.CurrentNode,
			&item.Workflow.FormReleased, &item.Workflow.DetailsCollected,
			&item.Workflow.CreatedAt, &item.Workflow.UpdatedAt,
			&item.ProgramTitle, &item.CreatedBy,
		); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}
