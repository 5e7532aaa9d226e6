package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/app/stateview"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
	"github.com/rssb/sewadar-backend/internal/pkg/notify"
)

// WorkflowStore is the workflow repository surface used by the service
type WorkflowStore interface {
	GetByProgramID(ctx context.Context, programID int64) (*models.ProgramWorkflow, error)
	AdvanceNode(ctx context.Context, programID int64, fromNode int) (*models.ProgramWorkflow, error)
	ReleaseForm(ctx context.Context, programID int64) (*models.ProgramWorkflow, error)
	MarkDetailsCollected(ctx context.Context, programID int64) (*models.ProgramWorkflow, error)
	GetByCreator(ctx context.Context, createdBy string) ([]repositories.WorkflowWithProgram, error)
	GetIncompleteForActivePrograms(ctx context.Context) ([]repositories.WorkflowWithProgram, error)
}

// FormSubmissionChecker reports which approved sewadars have not submitted forms
type FormSubmissionChecker interface {
	GetMissingSubmitters(ctx context.Context, programID int64) ([]string, error)
}

// PreferenceResolver supplies the global and per-program notification settings
type PreferenceResolver interface {
	GetByNode(ctx context.Context, nodeNumber int) (*models.NotificationPreference, error)
}

// OverrideResolver supplies per-program notification overrides
type OverrideResolver interface {
	GetByProgramAndNode(ctx context.Context, programID int64, nodeNumber int) (*models.ProgramNotificationPreference, error)
}

// WorkflowService drives programs through the fixed six-node process and
// runs the daily reminder sweep.
type WorkflowService struct {
	programRepo  ProgramReader
	workflowRepo WorkflowStore
	formRepo     FormSubmissionChecker
	prefRepo     PreferenceResolver
	overrideRepo OverrideResolver
	sewadarRepo  SewadarReader
	mailer       notify.Mailer
	logger       zerolog.Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	programRepo ProgramReader,
	workflowRepo WorkflowStore,
	formRepo FormSubmissionChecker,
	prefRepo PreferenceResolver,
	overrideRepo OverrideResolver,
	sewadarRepo SewadarReader,
	mailer notify.Mailer,
	logger zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		programRepo:  programRepo,
		workflowRepo: workflowRepo,
		formRepo:     formRepo,
		prefRepo:     prefRepo,
		overrideRepo: overrideRepo,
		sewadarRepo:  sewadarRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

// GetWorkflow retrieves a program's workflow with the next legal operation resolved
func (s *WorkflowService) GetWorkflow(ctx context.Context, programID int64) (*dto.ProgramWorkflowResponse, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	workflow, err := s.workflowRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}

	return buildWorkflowResponse(workflow, program.Title), nil
}

func buildWorkflowResponse(workflow *models.ProgramWorkflow, programTitle string) *dto.ProgramWorkflowResponse {
	return &dto.ProgramWorkflowResponse{
		ProgramID:        workflow.ProgramID,
		ProgramTitle:     programTitle,
		CurrentNode:      workflow.CurrentNode,
		CurrentNodeName:  models.NodeName(workflow.CurrentNode),
		FormReleased:     workflow.FormReleased,
		DetailsCollected: workflow.DetailsCollected,
		NextAction:       string(stateview.ResolveWorkflowNodeAction(*workflow)),
		UpdatedAt:        workflow.UpdatedAt,
	}
}

// GetWorkflowsForIncharge retrieves the workflows of all programs the
// incharge created.
func (s *WorkflowService) GetWorkflowsForIncharge(ctx context.Context, createdBy string) ([]*dto.ProgramWorkflowResponse, error) {
	items, err := s.workflowRepo.GetByCreator(ctx, createdBy)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProgramWorkflowResponse, 0, len(items))
	for i := range items {
		responses = append(responses, buildWorkflowResponse(&items[i].Workflow, items[i].ProgramTitle))
	}
	return responses, nil
}

// AdvanceNode moves a workflow to its next node. Nodes 3 and 4 cannot be
// skipped past their checkpoint: while the release-form or collect-details
// gate is pending, advancing is refused outright.
func (s *WorkflowService) AdvanceNode(ctx context.Context, programID int64, actor string, actorRole models.Role) (*dto.ProgramWorkflowResponse, error) {
	program, err := s.requireOwnedProgram(ctx, programID, actor, actorRole)
	if err != nil {
		return nil, err
	}

	workflow, err := s.workflowRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}

	switch stateview.ResolveWorkflowNodeAction(*workflow) {
	case stateview.WorkflowAdvanceNode:
	case stateview.WorkflowReleaseForm, stateview.WorkflowMarkDetailsCollected:
		return nil, apperrors.ErrGatePending
	case stateview.WorkflowComplete:
		return nil, apperrors.ErrWorkflowComplete
	}

	workflow, err = s.workflowRepo.AdvanceNode(ctx, programID, workflow.CurrentNode)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("programId", programID).
		Int("node", workflow.CurrentNode).
		Msg("workflow advanced")

	s.notifyNodeEntered(ctx, programID, workflow.CurrentNode, program.Title, program.CreatedBy)

	return buildWorkflowResponse(workflow, program.Title), nil
}

// ReleaseForm performs the manual gate at node 3: it opens the travel-detail
// form to approved sewadars and moves the workflow to node 4. Irreversible.
func (s *WorkflowService) ReleaseForm(ctx context.Context, programID int64, actor string, actorRole models.Role) (*dto.ProgramWorkflowResponse, error) {
	program, err := s.requireOwnedProgram(ctx, programID, actor, actorRole)
	if err != nil {
		return nil, err
	}

	workflow, err := s.workflowRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if workflow.FormReleased {
		return nil, apperrors.ErrFormAlreadyReleased
	}
	if stateview.ResolveWorkflowNodeAction(*workflow) != stateview.WorkflowReleaseForm {
		return nil, apperrors.ErrIllegalTransition
	}

	workflow, err = s.workflowRepo.ReleaseForm(ctx, programID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("programId", programID).Msg("form released")

	s.notifyNodeEntered(ctx, programID, workflow.CurrentNode, program.Title, program.CreatedBy)

	return buildWorkflowResponse(workflow, program.Title), nil
}

// MarkDetailsCollected performs the manual gate at node 4. It refuses while
// any approved sewadar is missing a form submission and names the laggards
// in the error, so the incharge knows exactly who to chase.
func (s *WorkflowService) MarkDetailsCollected(ctx context.Context, programID int64, actor string, actorRole models.Role) (*dto.ProgramWorkflowResponse, error) {
	program, err := s.requireOwnedProgram(ctx, programID, actor, actorRole)
	if err != nil {
		return nil, err
	}

	workflow, err := s.workflowRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if workflow.DetailsCollected {
		return nil, apperrors.ErrDetailsAlreadyCollected
	}
	if stateview.ResolveWorkflowNodeAction(*workflow) != stateview.WorkflowMarkDetailsCollected {
		return nil, apperrors.ErrIllegalTransition
	}

	missing, err := s.formRepo.GetMissingSubmitters(ctx, programID)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, apperrors.NewConflictError(
			"form submissions are missing for approved sewadars: " + strings.Join(missing, ", "))
	}

	workflow, err = s.workflowRepo.MarkDetailsCollected(ctx, programID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("programId", programID).Msg("details collected")

	s.notifyNodeEntered(ctx, programID, workflow.CurrentNode, program.Title, program.CreatedBy)

	return buildWorkflowResponse(workflow, program.Title), nil
}

// GetMissingSubmitters lists the approved sewadars still owing a form
func (s *WorkflowService) GetMissingSubmitters(ctx context.Context, programID int64, actor string, actorRole models.Role) (*dto.MissingFormSubmittersResponse, error) {
	if _, err := s.requireOwnedProgram(ctx, programID, actor, actorRole); err != nil {
		return nil, err
	}

	missing, err := s.formRepo.GetMissingSubmitters(ctx, programID)
	if err != nil {
		return nil, err
	}

	return &dto.MissingFormSubmittersResponse{
		ProgramID:       programID,
		MissingZonalIDs: missing,
	}, nil
}

// RunDailySweep mails every incharge whose active program is waiting on a
// workflow step, honoring the per-program notification overrides. Invoked
// manually by an admin; running it twice in a day just repeats the mails.
func (s *WorkflowService) RunDailySweep(ctx context.Context) (*dto.DailyNotificationSweepResponse, error) {
	items, err := s.workflowRepo.GetIncompleteForActivePrograms(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.DailyNotificationSweepResponse{}
	for _, item := range items {
		result.ProgramsChecked++

		// The pending node is the one the incharge needs to act on next.
		nodeNumber := item.Workflow.CurrentNode

		message, enabled, err := s.resolveNodeNotification(ctx, item.Workflow.ProgramID, nodeNumber)
		if err != nil {
			s.logger.Warn().Err(err).Int("node", nodeNumber).Msg("failed to resolve notification preference")
			continue
		}
		if !enabled {
			continue
		}

		incharge, err := s.sewadarRepo.GetByZonalID(ctx, item.CreatedBy)
		if err != nil || incharge.EmailID == nil {
			continue
		}

		rendered := strings.ReplaceAll(message, "{programTitle}", item.ProgramTitle)
		if err := s.mailer.SendWorkflowReminder(
			*incharge.EmailID, incharge.FullName(), item.ProgramTitle,
			models.NodeName(nodeNumber), rendered); err != nil {
			s.logger.Warn().Err(err).Int64("programId", item.Workflow.ProgramID).Msg("failed to send workflow reminder")
			continue
		}
		result.NotificationsSent++
	}

	s.logger.Info().
		Int("programsChecked", result.ProgramsChecked).
		Int("notificationsSent", result.NotificationsSent).
		Msg("daily notification sweep finished")

	return result, nil
}

// resolveNodeNotification resolves the effective notification setting for a
// program's node: the per-program override wins when set, the global
// preference applies otherwise. Returns the message to send and whether the
// notification is enabled.
func (s *WorkflowService) resolveNodeNotification(ctx context.Context, programID int64, nodeNumber int) (string, bool, error) {
	pref, err := s.prefRepo.GetByNode(ctx, nodeNumber)
	if err != nil {
		return "", false, err
	}

	override, err := s.overrideRepo.GetByProgramAndNode(ctx, programID, nodeNumber)
	if err != nil {
		return "", false, err
	}

	var overrideEnabled *bool
	message := pref.NotificationMessage
	if override != nil {
		overrideEnabled = override.Enabled
		if override.Message != nil {
			message = *override.Message
		}
	}
	return message, stateview.ResolveEffectiveNotification(pref.Enabled, overrideEnabled), nil
}

// notifyNodeEntered mails the program creator when the workflow enters a node
// whose effective notification preference is enabled. The transition has
// already committed, so delivery failures are logged rather than returned.
func (s *WorkflowService) notifyNodeEntered(ctx context.Context, programID int64, nodeNumber int, programTitle, createdBy string) {
	message, enabled, err := s.resolveNodeNotification(ctx, programID, nodeNumber)
	if err != nil {
		s.logger.Warn().Err(err).Int64("programId", programID).Int("node", nodeNumber).Msg("failed to resolve notification preference")
		return
	}
	if !enabled {
		return
	}

	incharge, err := s.sewadarRepo.GetByZonalID(ctx, createdBy)
	if err != nil || incharge.EmailID == nil {
		return
	}

	rendered := strings.ReplaceAll(message, "{programTitle}", programTitle)
	if err := s.mailer.SendWorkflowReminder(
		*incharge.EmailID, incharge.FullName(), programTitle,
		models.NodeName(nodeNumber), rendered); err != nil {
		s.logger.Warn().Err(err).Int64("programId", programID).Int("node", nodeNumber).Msg("failed to send workflow notification")
		return
	}

	s.logger.Info().Int64("programId", programID).Int("node", nodeNumber).Msg("workflow notification sent")
}

func (s *WorkflowService) requireOwnedProgram(ctx context.Context, programID int64, actor string, actorRole models.Role) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}
	return program, nil
}
