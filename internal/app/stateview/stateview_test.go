package stateview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rssb/sewadar-backend/internal/app/models"
)

func activeProgram(lastDateToApply *time.Time) *models.Program {
	return &models.Program{
		ID:              1,
		Title:           "Annual Bhandara",
		Location:        "BEAS",
		Status:          models.ProgramStatusActive,
		LastDateToApply: lastDateToApply,
	}
}

func appWithStatus(status string) *models.ProgramApplication {
	return &models.ProgramApplication{
		ID:             10,
		ProgramID:      1,
		SewadarZonalID: "DL-1234",
		Status:         status,
	}
}

func TestResolveApplicationView_NoApplication(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	view := ResolveApplicationView(activeProgram(&deadline), nil, models.RoleSewadar, now)

	assert.Equal(t, ViewCanApply, view.State)
	assert.Equal(t, []Action{ActionApply}, view.Actions)
}

func TestResolveApplicationView_ApplicationStateWinsOverEligibility(t *testing.T) {
	// Even on a completed program past its deadline, an existing application's
	// state takes precedence.
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	program := activeProgram(&deadline)
	program.Status = models.ProgramStatusCompleted

	view := ResolveApplicationView(program, appWithStatus(models.ApplicationStatusApproved), models.RoleSewadar, now)

	assert.Equal(t, ViewApproved, view.State)
	assert.Equal(t, []Action{ActionRequestDrop}, view.Actions)
}

func TestResolveApplicationView_StatusMapping(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	program := activeProgram(nil)

	tests := []struct {
		status      string
		wantState   ViewState
		wantActions []Action
	}{
		{models.ApplicationStatusPending, ViewAwaitingDecision, []Action{ActionRequestDrop}},
		{models.ApplicationStatusApproved, ViewApproved, []Action{ActionRequestDrop}},
		{models.ApplicationStatusDropRequested, ViewDropRequested, nil},
		{models.ApplicationStatusRejected, ViewRejected, nil},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			view := ResolveApplicationView(program, appWithStatus(tt.status), models.RoleSewadar, now)
			assert.Equal(t, tt.wantState, view.State)
			assert.Equal(t, tt.wantActions, view.Actions)
		})
	}
}

func TestResolveApplicationView_DroppedAllowsReapply(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	view := ResolveApplicationView(activeProgram(&deadline), appWithStatus(models.ApplicationStatusDropped), models.RoleSewadar, now)

	assert.Equal(t, ViewCanApply, view.State)
	assert.Equal(t, []Action{ActionApply}, view.Actions)
}

func TestResolveApplicationView_InactiveProgramNotEligible(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, status := range []string{
		models.ProgramStatusScheduled,
		models.ProgramStatusCompleted,
		models.ProgramStatusCancelled,
	} {
		program := activeProgram(nil)
		program.Status = status
		view := ResolveApplicationView(program, nil, models.RoleSewadar, now)
		assert.Equal(t, ViewNotEligible, view.State, "status %s", status)
		assert.Empty(t, view.Actions)
	}
}

func TestResolveApplicationView_UnknownRoleNotEligible(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	view := ResolveApplicationView(activeProgram(nil), nil, models.Role("AUDITOR"), now)

	assert.Equal(t, ViewNotEligible, view.State)
	assert.Empty(t, view.Actions)
}

func TestResolveApplicationView_NilProgramNotEligible(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	view := ResolveApplicationView(nil, nil, models.RoleSewadar, now)

	assert.Equal(t, ViewNotEligible, view.State)
}

func TestResolveApplicationView_UnknownApplicationStatusOffersNothing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	view := ResolveApplicationView(activeProgram(nil), appWithStatus("ESCALATED"), models.RoleSewadar, now)

	assert.Equal(t, ViewNotEligible, view.State)
	assert.Empty(t, view.Actions)
}

func TestResolveApplicationView_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	program := activeProgram(&deadline)
	application := appWithStatus(models.ApplicationStatusPending)

	first := ResolveApplicationView(program, application, models.RoleSewadar, now)
	second := ResolveApplicationView(program, application, models.RoleSewadar, now)

	assert.Equal(t, first, second)
}

func TestIsApplyWindowClosed_LastDayFullyInclusive(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	// 23:59 on the stated last day is still open.
	lastMoment := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	assert.False(t, IsApplyWindowClosed(&deadline, lastMoment))

	// Midnight of the next day closes the window.
	nextMidnight := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsApplyWindowClosed(&deadline, nextMidnight))
}

func TestIsApplyWindowClosed_NilDeadlineNeverCloses(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.False(t, IsApplyWindowClosed(nil, now))
}

func TestResolveApplicationView_WindowClosedDisablesApply(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

	view := ResolveApplicationView(activeProgram(&deadline), nil, models.RoleSewadar, now)

	assert.Equal(t, ViewApplyWindowClosed, view.State)
	assert.Empty(t, view.Actions)
}

func TestResolveWorkflowNodeAction_GatePriority(t *testing.T) {
	tests := []struct {
		name     string
		workflow models.ProgramWorkflow
		want     WorkflowAction
	}{
		{"node 1", models.ProgramWorkflow{CurrentNode: 1}, WorkflowAdvanceNode},
		{"node 2", models.ProgramWorkflow{CurrentNode: 2}, WorkflowAdvanceNode},
		{"node 3 form not released", models.ProgramWorkflow{CurrentNode: 3}, WorkflowReleaseForm},
		{"node 3 form released", models.ProgramWorkflow{CurrentNode: 3, FormReleased: true}, WorkflowAdvanceNode},
		{"node 4 details pending", models.ProgramWorkflow{CurrentNode: 4, FormReleased: true}, WorkflowMarkDetailsCollected},
		{"node 4 details collected", models.ProgramWorkflow{CurrentNode: 4, FormReleased: true, DetailsCollected: true}, WorkflowAdvanceNode},
		{"node 5", models.ProgramWorkflow{CurrentNode: 5, FormReleased: true, DetailsCollected: true}, WorkflowAdvanceNode},
		{"node 6", models.ProgramWorkflow{CurrentNode: 6, FormReleased: true, DetailsCollected: true}, WorkflowComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWorkflowNodeAction(tt.workflow))
		})
	}
}

func TestResolveEffectiveNotification(t *testing.T) {
	yes := true
	no := false

	// Non-nil override wins regardless of the global value.
	assert.True(t, ResolveEffectiveNotification(false, &yes))
	assert.False(t, ResolveEffectiveNotification(true, &no))

	// Nil override inherits the global value.
	assert.True(t, ResolveEffectiveNotification(true, nil))
	assert.False(t, ResolveEffectiveNotification(false, nil))
}

func TestCapabilitiesForRole(t *testing.T) {
	assert.Equal(t, []Capability{CapApplyToPrograms}, CapabilitiesForRole(models.RoleSewadar))

	assert.True(t, HasCapability(models.RoleIncharge, CapManagePrograms))
	assert.False(t, HasCapability(models.RoleIncharge, CapManageSewadars))

	assert.True(t, HasCapability(models.RoleAdmin, CapManageSewadars))
	assert.Empty(t, CapabilitiesForRole(models.Role("GUEST")))
}
