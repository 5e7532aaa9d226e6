package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	SewadarRepository                       *SewadarRepository
	ProgramRepository                       *ProgramRepository
	ApplicationRepository                   *ApplicationRepository
	WorkflowRepository                      *WorkflowRepository
	FormSubmissionRepository                *FormSubmissionRepository
	AttendanceRepository                    *AttendanceRepository
	NotificationPreferenceRepository        *NotificationPreferenceRepository
	ProgramNotificationPreferenceRepository *ProgramNotificationPreferenceRepository
	NotificationRepository                  *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SewadarRepository:                       NewSewadarRepository(db),
		ProgramRepository:                       NewProgramRepository(db),
		ApplicationRepository:                   NewApplicationRepository(db),
		WorkflowRepository:                      NewWorkflowRepository(db),
		FormSubmissionRepository:                NewFormSubmissionRepository(db),
		AttendanceRepository:                    NewAttendanceRepository(db),
		NotificationPreferenceRepository:        NewNotificationPreferenceRepository(db),
		ProgramNotificationPreferenceRepository: NewProgramNotificationPreferenceRepository(db),
		NotificationRepository:                  NewNotificationRepository(db),
	}
}
