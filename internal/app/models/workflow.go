package models

import (
	"time"
)

// Workflow node bounds. Every program moves through six sequential nodes.
const (
	WorkflowFirstNode = 1
	WorkflowLastNode  = 6

	WorkflowNodeReleaseForm    = 3
	WorkflowNodeCollectDetails = 4
)

// WorkflowNodeNames holds the display name for each node, indexed by node-1.
var WorkflowNodeNames = [WorkflowLastNode]string{
	"Make Program Active",
	"Post Application Message",
	"Release Form",
	"Collect Details",
	"Post Mail to Area Secretary",
	"Post General Instructions",
}

// NodeName returns the display name for a workflow node, or "Unknown" for
// an out-of-range node number.
func NodeName(node int) string {
	if node < WorkflowFirstNode || node > WorkflowLastNode {
		return "Unknown"
	}
	return WorkflowNodeNames[node-1]
}

// ProgramWorkflow tracks per-program progression through the fixed six-step
// process, based on the 'program_workflows' table. The current node only
// ever increases; form_released and details_collected are the manual gates
// at nodes 3 and 4.
type ProgramWorkflow struct {
	ID               int64      `json:"id" db:"id"`
	ProgramID        int64      `json:"programId" db:"program_id"`
	CurrentNode      int        `json:"currentNode" db:"current_node" example:"3"`
	FormReleased     bool       `json:"formReleased" db:"form_released"`
	DetailsCollected bool       `json:"detailsCollected" db:"details_collected"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
