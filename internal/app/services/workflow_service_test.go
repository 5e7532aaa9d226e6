package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

type workflowServiceMocks struct {
	programs  *mockProgramReader
	workflows *mockWorkflowStore
	forms     *mockFormChecker
	prefs     *mockPreferenceResolver
	overrides *mockOverrideResolver
	sewadars  *mockSewadarReader
	mailer    *mockMailer
}

func newWorkflowService(t *testing.T) (*WorkflowService, *workflowServiceMocks) {
	t.Helper()
	m := &workflowServiceMocks{
		programs:  &mockProgramReader{},
		workflows: &mockWorkflowStore{},
		forms:     &mockFormChecker{},
		prefs:     &mockPreferenceResolver{},
		overrides: &mockOverrideResolver{},
		sewadars:  &mockSewadarReader{},
		mailer:    &mockMailer{},
	}
	svc := NewWorkflowService(
		m.programs, m.workflows, m.forms, m.prefs, m.overrides, m.sewadars,
		m.mailer, zerolog.Nop())
	return svc, m
}

func disabledPreference(node int) *models.NotificationPreference {
	return &models.NotificationPreference{
		NodeNumber:          node,
		NodeName:            models.NodeName(node),
		Enabled:             false,
		NotificationMessage: "Reminder for {programTitle}.",
	}
}

func TestAdvanceNode_BlockedByReleaseFormGate(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 3}, nil)

	_, err := svc.AdvanceNode(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.ErrorIs(t, err, apperrors.ErrGatePending)
	m.workflows.AssertNotCalled(t, "AdvanceNode", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceNode_CompleteWorkflowConflicts(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 6, FormReleased: true, DetailsCollected: true}, nil)

	_, err := svc.AdvanceNode(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.ErrorIs(t, err, apperrors.ErrWorkflowComplete)
}

func TestAdvanceNode_MovesToNextNode(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 4, FormReleased: true, DetailsCollected: true}, nil)
	m.workflows.On("AdvanceNode", ctx, int64(7), 4).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 5, FormReleased: true, DetailsCollected: true}, nil)
	m.prefs.On("GetByNode", ctx, 5).Return(disabledPreference(5), nil)
	m.overrides.On("GetByProgramAndNode", ctx, int64(7), 5).Return(nil, nil)

	response, err := svc.AdvanceNode(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.NoError(t, err)
	assert.Equal(t, 5, response.CurrentNode)
	assert.Equal(t, "Post Mail to Area Secretary", response.CurrentNodeName)
	m.mailer.AssertNotCalled(t, "SendWorkflowReminder",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceNode_NotifiesForNewNode(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	email := "incharge@example.com"

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 1}, nil)
	m.workflows.On("AdvanceNode", ctx, int64(7), 1).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 2}, nil)
	m.prefs.On("GetByNode", ctx, 2).Return(&models.NotificationPreference{
		NodeNumber: 2, NodeName: "Post Application Message", Enabled: true,
		NotificationMessage: "Post the application message for {programTitle}.",
	}, nil)
	m.overrides.On("GetByProgramAndNode", ctx, int64(7), 2).Return(nil, nil)
	m.sewadars.On("GetByZonalID", ctx, "ZN-2001").Return(
		&models.Sewadar{ZonalID: "ZN-2001", FirstName: "Mohan", LastName: "Verma", EmailID: &email}, nil)
	m.mailer.On("SendWorkflowReminder", email, "Mohan Verma", "Annual Bhandara",
		"Post Application Message", "Post the application message for Annual Bhandara.").Return(nil)

	response, err := svc.AdvanceNode(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.NoError(t, err)
	assert.Equal(t, 2, response.CurrentNode)
	m.mailer.AssertExpectations(t)
}

func TestReleaseForm_MovesToCollectDetails(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 3}, nil)
	m.workflows.On("ReleaseForm", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 4, FormReleased: true}, nil)
	m.prefs.On("GetByNode", ctx, 4).Return(disabledPreference(4), nil)
	m.overrides.On("GetByProgramAndNode", ctx, int64(7), 4).Return(nil, nil)

	response, err := svc.ReleaseForm(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.NoError(t, err)
	assert.True(t, response.FormReleased)
	assert.Equal(t, 4, response.CurrentNode)
	assert.Equal(t, "MARK_DETAILS_COLLECTED", response.NextAction)
}

func TestReleaseForm_OverrideSuppressesNotification(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	disabled := false

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 3}, nil)
	m.workflows.On("ReleaseForm", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 4, FormReleased: true}, nil)
	m.prefs.On("GetByNode", ctx, 4).Return(&models.NotificationPreference{
		NodeNumber: 4, NodeName: "Collect Details", Enabled: true,
		NotificationMessage: "Collect travel details for {programTitle}.",
	}, nil)
	m.overrides.On("GetByProgramAndNode", ctx, int64(7), 4).Return(
		&models.ProgramNotificationPreference{ProgramID: 7, NodeNumber: 4, Enabled: &disabled}, nil)

	_, err := svc.ReleaseForm(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.NoError(t, err)
	m.mailer.AssertNotCalled(t, "SendWorkflowReminder",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReleaseForm_AlreadyReleasedConflicts(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 4, FormReleased: true}, nil)

	_, err := svc.ReleaseForm(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.ErrorIs(t, err, apperrors.ErrFormAlreadyReleased)
}

func TestMarkDetailsCollected_NamesMissingSubmitters(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 4, FormReleased: true}, nil)
	m.forms.On("GetMissingSubmitters", ctx, int64(7)).Return([]string{"ZN-1042", "ZN-2088"}, nil)

	_, err := svc.MarkDetailsCollected(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "ZN-1042")
	assert.Contains(t, err.Error(), "ZN-2088")
	m.workflows.AssertNotCalled(t, "MarkDetailsCollected", mock.Anything, mock.Anything)
}

func TestMarkDetailsCollected_AllFormsIn(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.workflows.On("GetByProgramID", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 4, FormReleased: true}, nil)
	m.forms.On("GetMissingSubmitters", ctx, int64(7)).Return([]string{}, nil)
	m.workflows.On("MarkDetailsCollected", ctx, int64(7)).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 5, FormReleased: true, DetailsCollected: true}, nil)
	m.prefs.On("GetByNode", ctx, 5).Return(disabledPreference(5), nil)
	m.overrides.On("GetByProgramAndNode", ctx, int64(7), 5).Return(nil, nil)

	response, err := svc.MarkDetailsCollected(ctx, 7, "ZN-2001", models.RoleIncharge)

	assert.NoError(t, err)
	assert.True(t, response.DetailsCollected)
	assert.Equal(t, 5, response.CurrentNode)
}

func TestRunDailySweep_HonorsProgramOverride(t *testing.T) {
	svc, m := newWorkflowService(t)
	ctx := context.Background()

	disabled := false
	email := "incharge@example.com"

	m.workflows.On("GetIncompleteForActivePrograms", ctx).Return([]repositories.WorkflowWithProgram{
		{
			Workflow:     models.ProgramWorkflow{ProgramID: 7, CurrentNode: 3},
			ProgramTitle: "Annual Bhandara",
			CreatedBy:    "ZN-2001",
		},
		{
			Workflow:     models.ProgramWorkflow{ProgramID: 8, CurrentNode: 3},
			ProgramTitle: "Winter Seva",
			CreatedBy:    "ZN-2001",
		},
	}, nil)
	m.prefs.On("GetByNode", ctx, 3).Return(&models.NotificationPreference{
		NodeNumber: 3, NodeName: "Release Form", Enabled: true,
		NotificationMessage: "Please release the form for {programTitle}.",
	}, nil)
	// Program 7 inherits the enabled global; program 8 overrides it off.
	m.overrides.On("GetByProgramAndNode", ctx, int64(7), 3).Return(nil, nil)
	m.overrides.On("GetByProgramAndNode", ctx, int64(8), 3).Return(
		&models.ProgramNotificationPreference{ProgramID: 8, NodeNumber: 3, Enabled: &disabled}, nil)
	m.sewadars.On("GetByZonalID", ctx, "ZN-2001").Return(
		&models.Sewadar{ZonalID: "ZN-2001", FirstName: "Mohan", LastName: "Verma", EmailID: &email}, nil)
	m.mailer.On("SendWorkflowReminder", email, "Mohan Verma", "Annual Bhandara",
		"Release Form", "Please release the form for Annual Bhandara.").Return(nil)

	result, err := svc.RunDailySweep(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.ProgramsChecked)
	assert.Equal(t, 1, result.NotificationsSent)
	m.mailer.AssertNumberOfCalls(t, "SendWorkflowReminder", 1)
}
