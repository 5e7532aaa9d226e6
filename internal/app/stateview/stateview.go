// Package stateview derives UI-facing view state from server-authoritative
// records. Every function here is a pure projection with no I/O and no side
// effects, and is total over its input domain: malformed or missing optional
// fields map to the most conservative defined state instead of an error. The
// functions are advisory only; the authoritative accept/reject decision for
// any transition always belongs to the service layer.
package stateview

import (
	"time"

	"github.com/rssb/sewadar-backend/internal/app/models"
)

// ViewState is the display status derived for a (program, application, role) tuple.
type ViewState string

const (
	// ViewNotEligible - role unknown or program is not open for applications.
	ViewNotEligible ViewState = "NOT_ELIGIBLE"
	// ViewCanApply - no application (or a dropped one) and the apply window is open.
	ViewCanApply ViewState = "CAN_APPLY"
	// ViewApplyWindowClosed - apply would be possible but the last date to apply
	// has passed. The apply affordance is shown disabled, not hidden.
	ViewApplyWindowClosed ViewState = "APPLY_WINDOW_CLOSED"
	// ViewAwaitingDecision - application is PENDING an incharge decision.
	ViewAwaitingDecision ViewState = "AWAITING_DECISION"
	// ViewApproved - application is APPROVED.
	ViewApproved ViewState = "APPROVED"
	// ViewDropRequested - drop request pending incharge approval; no actions.
	ViewDropRequested ViewState = "DROP_REQUESTED"
	// ViewRejected - application was rejected; no actions.
	ViewRejected ViewState = "REJECTED"
)

// Action is a legal UI affordance for the current view state.
type Action string

const (
	ActionApply       Action = "APPLY"
	ActionRequestDrop Action = "REQUEST_DROP"
)

// ApplicationView is the resolved projection for one program as seen by one sewadar.
type ApplicationView struct {
	State   ViewState
	Actions []Action
}

// ResolveApplicationView computes the display status and the set of legal
// actions for a program/application pair. The application record may be nil
// (never applied). Application state always takes precedence over program
// eligibility; the program-active requirement and the apply window gate the
// apply path specifically.
func ResolveApplicationView(program *models.Program, application *models.ProgramApplication, role models.Role, now time.Time) ApplicationView {
	if program == nil || !role.IsValid() {
		return ApplicationView{State: ViewNotEligible}
	}

	if application != nil && application.Status != models.ApplicationStatusDropped {
		switch application.Status {
		case models.ApplicationStatusPending:
			return ApplicationView{State: ViewAwaitingDecision, Actions: []Action{ActionRequestDrop}}
		case models.ApplicationStatusApproved:
			return ApplicationView{State: ViewApproved, Actions: []Action{ActionRequestDrop}}
		case models.ApplicationStatusDropRequested:
			return ApplicationView{State: ViewDropRequested}
		case models.ApplicationStatusRejected:
			return ApplicationView{State: ViewRejected}
		default:
			// Unknown status from a newer server: offer nothing.
			return ApplicationView{State: ViewNotEligible}
		}
	}

	// Apply path: never applied, or the previous application was dropped
	// (reapply is always permitted after an approved drop).
	if program.Status != models.ProgramStatusActive {
		return ApplicationView{State: ViewNotEligible}
	}
	if IsApplyWindowClosed(program.LastDateToApply, now) {
		return ApplicationView{State: ViewApplyWindowClosed}
	}
	return ApplicationView{State: ViewCanApply, Actions: []Action{ActionApply}}
}

// IsApplyWindowClosed reports whether the last date to apply has passed.
// The deadline is a calendar date scoped to the applicant's local day: both
// instants are truncated to midnight before comparing, so the stated last
// day is fully inclusive and the window closes at the start of the next day.
// A nil deadline never closes the window.
func IsApplyWindowClosed(lastDateToApply *time.Time, now time.Time) bool {
	if lastDateToApply == nil {
		return false
	}
	return truncateToDay(now).After(truncateToDay(*lastDateToApply))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WorkflowAction is the single next legal operation on a program workflow.
type WorkflowAction string

const (
	WorkflowReleaseForm          WorkflowAction = "RELEASE_FORM"
	WorkflowMarkDetailsCollected WorkflowAction = "MARK_DETAILS_COLLECTED"
	WorkflowAdvanceNode          WorkflowAction = "ADVANCE_NODE"
	WorkflowComplete             WorkflowAction = "WORKFLOW_COMPLETE"
)

// ResolveWorkflowNodeAction returns the next legal workflow operation, in
// strict priority order. Nodes 3 and 4 carry a manual gate: releasing the
// travel-details form and collecting details are irreversible checkpoints
// that require a deliberate confirmation before the node number alone would
// permit advancing.
func ResolveWorkflowNodeAction(workflow models.ProgramWorkflow) WorkflowAction {
	switch {
	case workflow.CurrentNode == models.WorkflowNodeReleaseForm && !workflow.FormReleased:
		return WorkflowReleaseForm
	case workflow.CurrentNode == models.WorkflowNodeCollectDetails && !workflow.DetailsCollected:
		return WorkflowMarkDetailsCollected
	case workflow.CurrentNode < models.WorkflowLastNode:
		return WorkflowAdvanceNode
	default:
		return WorkflowComplete
	}
}

// ResolveEffectiveNotification applies the three-valued override-or-inherit
// rule for per-program notification preferences: a non-nil program override
// wins, otherwise the global default applies.
func ResolveEffectiveNotification(globalEnabled bool, programOverride *bool) bool {
	if programOverride != nil {
		return *programOverride
	}
	return globalEnabled
}
