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
	"github.com/rssb/sewadar-backend/internal/pkg/notify"
)

// ProgramReader is the slice of the program repository the application
// service depends on. Narrow interfaces keep the service testable.
type ProgramReader interface {
	GetByID(ctx context.Context, id int64) (*models.Program, error)
}

// ApplicationStore is the application repository surface used by the service
type ApplicationStore interface {
	Create(ctx context.Context, application *models.ProgramApplication) error
	Replace(ctx context.Context, application *models.ProgramApplication) error
	GetByID(ctx context.Context, id int64) (*models.ProgramApplication, error)
	GetByProgramAndSewadar(ctx context.Context, programID int64, zonalID string) (*models.ProgramApplication, error)
	GetByProgram(ctx context.Context, programID int64, status string) ([]*models.ProgramApplication, error)
	GetBySewadar(ctx context.Context, zonalID string) ([]*models.ProgramApplication, error)
	UpdateStatus(ctx context.Context, id int64, newStatus string, notes *string, expectedStatuses ...string) error
	RequestDrop(ctx context.Context, id int64, requestedAt time.Time) error
	ApproveDrop(ctx context.Context, id int64, approvedBy string, approvedAt time.Time) error
	CountApprovedByProgram(ctx context.Context, programID int64) (int64, error)
	GetPrioritized(ctx context.Context, programID int64, sortBy string) ([]repositories.PrioritizedRow, error)
}

// WorkflowAdvancer advances a program workflow from an expected node
type WorkflowAdvancer interface {
	AdvanceNode(ctx context.Context, programID int64, fromNode int) (*models.ProgramWorkflow, error)
}

// NotificationWriter records incharge notifications
type NotificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// SewadarReader looks up sewadars by zonal ID
type SewadarReader interface {
	GetByZonalID(ctx context.Context, zonalID string) (*models.Sewadar, error)
}

// ApplicationService handles the application lifecycle: apply, incharge
// decisions, the drop handshake and reapply.
type ApplicationService struct {
	programRepo      ProgramReader
	applicationRepo  ApplicationStore
	workflowRepo     WorkflowAdvancer
	notificationRepo NotificationWriter
	sewadarRepo      SewadarReader
	mailer           notify.Mailer
	logger           zerolog.Logger
	now              func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	programRepo ProgramReader,
	applicationRepo ApplicationStore,
	workflowRepo WorkflowAdvancer,
	notificationRepo NotificationWriter,
	sewadarRepo SewadarReader,
	mailer notify.Mailer,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		programRepo:      programRepo,
		applicationRepo:  applicationRepo,
		workflowRepo:     workflowRepo,
		notificationRepo: notificationRepo,
		sewadarRepo:      sewadarRepo,
		mailer:           mailer,
		logger:           logger,
		now:              time.Now,
	}
}

// Apply creates a PENDING application for an active program inside the apply
// window. A sewadar whose previous application was dropped gets a fresh
// application; the dropped row is replaced, not resurrected.
func (s *ApplicationService) Apply(ctx context.Context, programID int64, zonalID string, role models.Role, notes *string) (*models.ProgramApplication, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	existing, err := s.applicationRepo.GetByProgramAndSewadar(ctx, programID, zonalID)
	if err != nil {
		return nil, err
	}

	view := stateview.ResolveApplicationView(program, existing, role, s.now())
	switch view.State {
	case stateview.ViewCanApply:
	case stateview.ViewApplyWindowClosed:
		return nil, apperrors.ErrApplyWindowClosed
	case stateview.ViewNotEligible:
		return nil, apperrors.ErrProgramNotActive
	default:
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.ProgramApplication{
		ProgramID:      programID,
		SewadarZonalID: zonalID,
		Status:         models.ApplicationStatusPending,
		Notes:          notes,
	}

	if existing != nil {
		// Reapply after an approved drop: replace the DROPPED row.
		err = s.applicationRepo.Replace(ctx, application)
	} else {
		err = s.applicationRepo.Create(ctx, application)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating application: %w", err)
	}

	s.logger.Info().Int64("programId", programID).Str("zonalId", zonalID).Msg("application submitted")

	return application, nil
}

// GetMyApplications retrieves all applications of the given sewadar
func (s *ApplicationService) GetMyApplications(ctx context.Context, zonalID string) ([]*models.ProgramApplication, error) {
	return s.applicationRepo.GetBySewadar(ctx, zonalID)
}

// GetApplicationsByProgram retrieves a program's applications for its creator
func (s *ApplicationService) GetApplicationsByProgram(ctx context.Context, programID int64, actor string, actorRole models.Role, status string) ([]*models.ProgramApplication, error) {
	if err := s.requireProgramOwnership(ctx, programID, actor, actorRole); err != nil {
		return nil, err
	}
	return s.applicationRepo.GetByProgram(ctx, programID, status)
}

// Decide approves or rejects a PENDING application. Approving past the
// program's capacity is refused; filling the last slot advances the workflow
// past the application-message node.
func (s *ApplicationService) Decide(ctx context.Context, applicationID int64, actor string, actorRole models.Role, req *dto.UpdateApplicationStatusRequest) (*models.ProgramApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, application.ProgramID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	if req.Status == models.ApplicationStatusApproved && program.MaxSewadars != nil {
		approved, err := s.applicationRepo.CountApprovedByProgram(ctx, application.ProgramID)
		if err != nil {
			return nil, err
		}
		if approved >= int64(*program.MaxSewadars) {
			return nil, apperrors.NewConflictError("program has reached its maximum number of sewadars")
		}
	}

	err = s.applicationRepo.UpdateStatus(ctx, applicationID, req.Status, req.Notes,
		models.ApplicationStatusPending)
	if err != nil {
		return nil, err
	}
	application.Status = req.Status

	if req.Status == models.ApplicationStatusApproved && program.MaxSewadars != nil {
		approved, err := s.applicationRepo.CountApprovedByProgram(ctx, application.ProgramID)
		if err == nil && approved >= int64(*program.MaxSewadars) {
			// Capacity reached: the application round is over.
			if _, err := s.workflowRepo.AdvanceNode(ctx, application.ProgramID, models.WorkflowFirstNode+1); err != nil &&
				!errors.Is(err, apperrors.ErrIllegalTransition) {
				s.logger.Warn().Err(err).Int64("programId", application.ProgramID).Msg("could not advance workflow after filling capacity")
			}
		}
	}

	s.logger.Info().
		Int64("applicationId", applicationID).
		Str("status", req.Status).
		Str("decidedBy", actor).
		Msg("application decided")

	return application, nil
}

// RequestDrop lets the applicant ask to leave a program. Only PENDING and
// APPROVED applications can request a drop; the request needs incharge
// approval before the slot is vacated.
func (s *ApplicationService) RequestDrop(ctx context.Context, applicationID int64, zonalID string) (*models.ProgramApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.SewadarZonalID != zonalID {
		return nil, apperrors.NewForbiddenError("applications can only be withdrawn by their owner")
	}

	if err := s.applicationRepo.RequestDrop(ctx, applicationID, s.now()); err != nil {
		return nil, err
	}

	application, err = s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationId", applicationID).Str("zonalId", zonalID).Msg("drop requested")

	return application, nil
}

// ApproveDrop completes the drop handshake. Only the program creator may
// approve; a drop of a previously approved sewadar raises a refill alert for
// the incharge.
func (s *ApplicationService) ApproveDrop(ctx context.Context, applicationID int64, actor string, actorRole models.Role) (*models.ProgramApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, application.ProgramID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	if err := s.applicationRepo.ApproveDrop(ctx, applicationID, actor, s.now()); err != nil {
		return nil, err
	}

	s.raiseRefillAlert(ctx, program, application.SewadarZonalID)

	application, err = s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationId", applicationID).
		Str("approvedBy", actor).
		Msg("drop approved")

	return application, nil
}

func (s *ApplicationService) raiseRefillAlert(ctx context.Context, program *models.Program, droppedZonalID string) {
	dropped, err := s.sewadarRepo.GetByZonalID(ctx, droppedZonalID)
	droppedName := droppedZonalID
	if err == nil {
		droppedName = dropped.FullName()
	}

	notification := &models.Notification{
		ProgramID:        program.ID,
		DroppedZonalID:   droppedZonalID,
		InchargeZonalID:  program.CreatedBy,
		NotificationType: models.NotificationTypeRefillRequired,
		Message:          fmt.Sprintf("%s has dropped out of %s. The vacated position needs refilling.", droppedName, program.Title),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("programId", program.ID).Msg("failed to record refill notification")
		return
	}

	incharge, err := s.sewadarRepo.GetByZonalID(ctx, program.CreatedBy)
	if err != nil || incharge.EmailID == nil {
		return
	}
	if err := s.mailer.SendRefillAlert(*incharge.EmailID, incharge.FullName(), program.Title, droppedName); err != nil {
		s.logger.Warn().Err(err).Msg("failed to mail refill alert")
	}
}

// GetDropRequests retrieves a program's pending drop requests for its creator
func (s *ApplicationService) GetDropRequests(ctx context.Context, programID int64, actor string, actorRole models.Role) ([]*models.ProgramApplication, error) {
	if err := s.requireProgramOwnership(ctx, programID, actor, actorRole); err != nil {
		return nil, err
	}
	return s.applicationRepo.GetByProgram(ctx, programID, models.ApplicationStatusDropRequested)
}

// GetPrioritized retrieves the applicants of a program ranked by attendance
// history. The priority score is total attendance * 10 + total days.
func (s *ApplicationService) GetPrioritized(ctx context.Context, programID int64, actor string, actorRole models.Role, sortBy string) ([]dto.PrioritizedApplicationResponse, error) {
	if err := s.requireProgramOwnership(ctx, programID, actor, actorRole); err != nil {
		return nil, err
	}

	rows, err := s.applicationRepo.GetPrioritized(ctx, programID, sortBy)
	if err != nil {
		return nil, fmt.Errorf("error ranking applications: %w", err)
	}

	results := make([]dto.PrioritizedApplicationResponse, 0, len(rows))
	for _, row := range rows {
		results = append(results, dto.PrioritizedApplicationResponse{
			ApplicationID:          row.ApplicationID,
			SewadarZonalID:         row.SewadarZonalID,
			FirstName:              row.FirstName,
			LastName:               row.LastName,
			Mobile:                 row.Mobile,
			Profession:             row.Profession,
			JoiningDate:            row.JoiningDate,
			Status:                 row.Status,
			AppliedAt:              row.AppliedAt,
			TotalAttendanceCount:   row.TotalAttendanceCount,
			BeasAttendanceCount:    row.BeasAttendanceCount,
			NonBeasAttendanceCount: row.NonBeasAttendanceCount,
			TotalDaysAttended:      row.TotalDaysAttended,
			BeasDaysAttended:       row.BeasDaysAttended,
			NonBeasDaysAttended:    row.NonBeasDaysAttended,
			PriorityScore:          row.PriorityScore,
		})
	}
	return results, nil
}

func (s *ApplicationService) requireProgramOwnership(ctx context.Context, programID int64, actor string, actorRole models.Role) error {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return apperrors.ErrNotProgramCreator
	}
	return nil
}
