package stateview

import (
	"github.com/rssb/sewadar-backend/internal/app/models"
)

// Capability names a role-gated area of the system. Capabilities drive which
// navigation and actions a client renders; route-level enforcement happens
// independently in the auth middleware.
type Capability string

const (
	CapApplyToPrograms        Capability = "APPLY_TO_PROGRAMS"
	CapManagePrograms         Capability = "MANAGE_PROGRAMS"
	CapManageWorkflow         Capability = "MANAGE_WORKFLOW"
	CapMarkAttendance         Capability = "MARK_ATTENDANCE"
	CapConfigureNotifications Capability = "CONFIGURE_NOTIFICATIONS"
	CapManageSewadars         Capability = "MANAGE_SEWADARS"
	CapViewDashboards         Capability = "VIEW_DASHBOARDS"
)

// CapabilitiesForRole returns the fixed capability set for a role. An
// unrecognized role gets no capabilities.
func CapabilitiesForRole(role models.Role) []Capability {
	switch role {
	case models.RoleSewadar:
		return []Capability{CapApplyToPrograms}
	case models.RoleIncharge:
		return []Capability{
			CapApplyToPrograms,
			CapManagePrograms,
			CapManageWorkflow,
			CapMarkAttendance,
			CapConfigureNotifications,
			CapViewDashboards,
		}
	case models.RoleAdmin:
		return []Capability{
			CapApplyToPrograms,
			CapManagePrograms,
			CapManageWorkflow,
			CapMarkAttendance,
			CapConfigureNotifications,
			CapManageSewadars,
			CapViewDashboards,
		}
	default:
		return nil
	}
}

// HasCapability reports whether the role's capability set contains c.
func HasCapability(role models.Role, c Capability) bool {
	for _, have := range CapabilitiesForRole(role) {
		if have == c {
			return true
		}
	}
	return false
}
