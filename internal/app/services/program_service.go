package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/app/stateview"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
	"github.com/rssb/sewadar-backend/internal/pkg/helpers"
)

// ProgramService handles program lifecycle operations
type ProgramService struct {
	programRepo     *repositories.ProgramRepository
	applicationRepo *repositories.ApplicationRepository
	workflowRepo    *repositories.WorkflowRepository
	logger          zerolog.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(
	programRepo *repositories.ProgramRepository,
	applicationRepo *repositories.ApplicationRepository,
	workflowRepo *repositories.WorkflowRepository,
	logger zerolog.Logger,
) *ProgramService {
	return &ProgramService{
		programRepo:     programRepo,
		applicationRepo: applicationRepo,
		workflowRepo:    workflowRepo,
		logger:          logger,
	}
}

// CreateProgram creates a program in the scheduled state with its workflow
// at node 1. The creator becomes the program's incharge of record.
func (s *ProgramService) CreateProgram(ctx context.Context, createdBy string, req *dto.CreateProgramRequest) (*models.Program, error) {
	program := &models.Program{
		Title:                req.Title,
		Description:          req.Description,
		Location:             req.Location,
		Status:               models.ProgramStatusScheduled,
		MaxSewadars:          req.MaxSewadars,
		CreatedBy:            createdBy,
		LastDateToApply:      req.LastDateToApply,
		LastDateToSubmitForm: req.LastDateToSubmitForm,
		ProgramDates:         req.ProgramDates,
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}

	s.logger.Info().Int64("programId", program.ID).Str("createdBy", createdBy).Msg("program created")

	return program, nil
}

// GetProgram retrieves a program by ID
func (s *ProgramService) GetProgram(ctx context.Context, id int64) (*models.Program, error) {
	return s.programRepo.GetByID(ctx, id)
}

// GetProgramView retrieves a program resolved for the requesting sewadar:
// the record plus their display state, legal actions and apply countdown.
func (s *ProgramService) GetProgramView(ctx context.Context, programID int64, zonalID string, role models.Role) (*dto.ProgramViewResponse, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.GetByProgramAndSewadar(ctx, programID, zonalID)
	if err != nil {
		return nil, err
	}

	return s.buildView(program, application, role, time.Now()), nil
}

// ListProgramViews retrieves a filtered, paginated program list resolved for
// the requesting sewadar.
func (s *ProgramService) ListProgramViews(ctx context.Context, zonalID string, role models.Role, filter *dto.ProgramFilterRequest) ([]*dto.ProgramViewResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)

	programs, total, err := s.programRepo.GetAll(ctx, repositories.ProgramFilter{
		Status:   filter.Status,
		Location: filter.Location,
	}, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing programs: %w", err)
	}

	now := time.Now()
	views := make([]*dto.ProgramViewResponse, 0, len(programs))
	for _, program := range programs {
		application, err := s.applicationRepo.GetByProgramAndSewadar(ctx, program.ID, zonalID)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		views = append(views, s.buildView(program, application, role, now))
	}

	return views, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

func (s *ProgramService) buildView(program *models.Program, application *models.ProgramApplication, role models.Role, now time.Time) *dto.ProgramViewResponse {
	resolved := stateview.ResolveApplicationView(program, application, role, now)

	actions := make([]string, 0, len(resolved.Actions))
	for _, action := range resolved.Actions {
		actions = append(actions, string(action))
	}

	return &dto.ProgramViewResponse{
		Program:        *program,
		LocationType:   program.LocationType(),
		ViewState:      string(resolved.State),
		Actions:        actions,
		ApplyCountdown: stateview.Countdown(program.LastDateToApply, now),
		Application:    application,
	}
}

// ListProgramsByCreator retrieves the programs an incharge created
func (s *ProgramService) ListProgramsByCreator(ctx context.Context, createdBy string) ([]*models.Program, error) {
	programs, _, err := s.programRepo.GetAll(ctx,
		repositories.ProgramFilter{CreatedBy: createdBy}, 0, helpers.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing programs by creator: %w", err)
	}
	return programs, nil
}

// UpdateProgram updates an existing program. Only the creator or an admin
// may modify it.
func (s *ProgramService) UpdateProgram(ctx context.Context, programID int64, actor string, actorRole models.Role, req *dto.UpdateProgramRequest) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(program, actor, actorRole); err != nil {
		return nil, err
	}

	program.Title = req.Title
	program.Description = req.Description
	program.Location = req.Location
	program.MaxSewadars = req.MaxSewadars
	program.LastDateToApply = req.LastDateToApply
	program.LastDateToSubmitForm = req.LastDateToSubmitForm
	program.ProgramDates = req.ProgramDates

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, fmt.Errorf("error updating program: %w", err)
	}

	return program, nil
}

// UpdateProgramStatus transitions a program's lifecycle status. Activating a
// program advances its workflow past the "Make Program Active" node.
func (s *ProgramService) UpdateProgramStatus(ctx context.Context, programID int64, actor string, actorRole models.Role, status string) (*models.Program, error) {
	if !models.IsValidProgramStatus(status) {
		return nil, apperrors.ErrInvalidProgramStatus
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(program, actor, actorRole); err != nil {
		return nil, err
	}

	if err := s.programRepo.UpdateStatus(ctx, programID, status); err != nil {
		return nil, err
	}
	program.Status = status

	if status == models.ProgramStatusActive {
		// Node 1 is satisfied by the activation itself. A program activated
		// twice loses the guarded update and stays where it was.
		if _, err := s.workflowRepo.AdvanceNode(ctx, programID, models.WorkflowFirstNode); err != nil &&
			!errors.Is(err, apperrors.ErrIllegalTransition) {
			return nil, err
		}
	}

	s.logger.Info().Int64("programId", programID).Str("status", status).Msg("program status updated")

	return program, nil
}

// DeleteProgram deletes a program. Only the creator or an admin may delete it.
func (s *ProgramService) DeleteProgram(ctx context.Context, programID int64, actor string, actorRole models.Role) error {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return err
	}

	if err := s.requireOwnership(program, actor, actorRole); err != nil {
		return err
	}

	return s.programRepo.Delete(ctx, programID)
}

func (s *ProgramService) requireOwnership(program *models.Program, actor string, actorRole models.Role) error {
	if actorRole == models.RoleAdmin || program.CreatedBy == actor {
		return nil
	}
	return apperrors.ErrNotProgramCreator
}
