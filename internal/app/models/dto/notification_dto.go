package dto

// UpdateNotificationPreferenceRequest toggles the global default for one
// workflow node and optionally replaces its message template.
type UpdateNotificationPreferenceRequest struct {
	Enabled *bool   `json:"enabled" binding:"required"`
	Message *string `json:"message,omitempty"`
}

// UpsertProgramNotificationPreferenceRequest sets or clears the per-program
// override for one node. A null enabled clears the override so the program
// inherits the global setting again.
type UpsertProgramNotificationPreferenceRequest struct {
	Enabled *bool   `json:"enabled"`
	Message *string `json:"message,omitempty"`
}

// ProgramNotificationPreferenceResponse shows one node's notification
// configuration for a program: the global default, the override if any, and
// the effective result of combining them.
type ProgramNotificationPreferenceResponse struct {
	ProgramID        int64   `json:"programId" example:"1"`
	NodeNumber       int     `json:"nodeNumber" example:"3"`
	NodeName         string  `json:"nodeName" example:"Release Form"`
	GlobalEnabled    bool    `json:"globalEnabled"`
	Override         *bool   `json:"override"`
	EffectiveEnabled bool    `json:"effectiveEnabled"`
	EffectiveMessage string  `json:"effectiveMessage"`
	OverrideMessage  *string `json:"overrideMessage,omitempty"`
}
