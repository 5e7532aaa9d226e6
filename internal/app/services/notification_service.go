package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/app/stateview"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// NotificationService handles the global notification defaults, the
// per-program overrides and the incharge alert inbox.
type NotificationService struct {
	prefRepo         *repositories.NotificationPreferenceRepository
	overrideRepo     *repositories.ProgramNotificationPreferenceRepository
	notificationRepo *repositories.NotificationRepository
	programRepo      *repositories.ProgramRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	prefRepo *repositories.NotificationPreferenceRepository,
	overrideRepo *repositories.ProgramNotificationPreferenceRepository,
	notificationRepo *repositories.NotificationRepository,
	programRepo *repositories.ProgramRepository,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		prefRepo:         prefRepo,
		overrideRepo:     overrideRepo,
		notificationRepo: notificationRepo,
		programRepo:      programRepo,
		logger:           logger,
	}
}

// ListGlobalPreferences retrieves the global default for every workflow node
func (s *NotificationService) ListGlobalPreferences(ctx context.Context) ([]*models.NotificationPreference, error) {
	return s.prefRepo.GetAll(ctx)
}

// UpdateGlobalPreference toggles a node's global default and optionally
// replaces its message template.
func (s *NotificationService) UpdateGlobalPreference(ctx context.Context, nodeNumber int, req *dto.UpdateNotificationPreferenceRequest) (*models.NotificationPreference, error) {
	if nodeNumber < models.WorkflowFirstNode || nodeNumber > models.WorkflowLastNode {
		return nil, apperrors.ErrInvalidNodeNumber
	}

	if err := s.prefRepo.Update(ctx, nodeNumber, *req.Enabled, req.Message); err != nil {
		return nil, err
	}

	s.logger.Info().Int("node", nodeNumber).Bool("enabled", *req.Enabled).Msg("global notification preference updated")

	return s.prefRepo.GetByNode(ctx, nodeNumber)
}

// GetProgramPreferences resolves the notification configuration of every
// node for one program: global default, override if any, effective result.
func (s *NotificationService) GetProgramPreferences(ctx context.Context, programID int64, actor string, actorRole models.Role) ([]dto.ProgramNotificationPreferenceResponse, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	globals, err := s.prefRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.GetByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProgramNotificationPreferenceResponse, 0, len(globals))
	for _, global := range globals {
		response := dto.ProgramNotificationPreferenceResponse{
			ProgramID:        programID,
			NodeNumber:       global.NodeNumber,
			NodeName:         global.NodeName,
			GlobalEnabled:    global.Enabled,
			EffectiveEnabled: global.Enabled,
			EffectiveMessage: global.NotificationMessage,
		}
		if override, ok := overrides[global.NodeNumber]; ok {
			response.Override = override.Enabled
			response.OverrideMessage = override.Message
			response.EffectiveEnabled = stateview.ResolveEffectiveNotification(global.Enabled, override.Enabled)
			if override.Message != nil {
				response.EffectiveMessage = *override.Message
			}
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// SetProgramPreference sets or clears the override for one node of a
// program. A null enabled clears the override so the program inherits the
// global setting again.
func (s *NotificationService) SetProgramPreference(ctx context.Context, programID int64, nodeNumber int, actor string, actorRole models.Role, req *dto.UpsertProgramNotificationPreferenceRequest) (*dto.ProgramNotificationPreferenceResponse, error) {
	if nodeNumber < models.WorkflowFirstNode || nodeNumber > models.WorkflowLastNode {
		return nil, apperrors.ErrInvalidNodeNumber
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	if req.Enabled == nil && req.Message == nil {
		if err := s.overrideRepo.Delete(ctx, programID, nodeNumber); err != nil {
			return nil, err
		}
	} else {
		if err := s.overrideRepo.Upsert(ctx, &models.ProgramNotificationPreference{
			ProgramID:  programID,
			NodeNumber: nodeNumber,
			Enabled:    req.Enabled,
			Message:    req.Message,
		}); err != nil {
			return nil, err
		}
	}

	global, err := s.prefRepo.GetByNode(ctx, nodeNumber)
	if err != nil {
		return nil, err
	}
	override, err := s.overrideRepo.GetByProgramAndNode(ctx, programID, nodeNumber)
	if err != nil {
		return nil, err
	}

	response := &dto.ProgramNotificationPreferenceResponse{
		ProgramID:        programID,
		NodeNumber:       nodeNumber,
		NodeName:         global.NodeName,
		GlobalEnabled:    global.Enabled,
		EffectiveEnabled: global.Enabled,
		EffectiveMessage: global.NotificationMessage,
	}
	if override != nil {
		response.Override = override.Enabled
		response.OverrideMessage = override.Message
		response.EffectiveEnabled = stateview.ResolveEffectiveNotification(global.Enabled, override.Enabled)
		if override.Message != nil {
			response.EffectiveMessage = *override.Message
		}
	}
	return response, nil
}

// GetInchargeNotifications retrieves an incharge's alert inbox
func (s *NotificationService) GetInchargeNotifications(ctx context.Context, inchargeZonalID string, unresolvedOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.GetByIncharge(ctx, inchargeZonalID, unresolvedOnly)
}

// ResolveNotification marks one of the incharge's alerts as handled
func (s *NotificationService) ResolveNotification(ctx context.Context, id int64, inchargeZonalID string) error {
	return s.notificationRepo.Resolve(ctx, id, inchargeZonalID)
}
