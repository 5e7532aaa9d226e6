package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

type applicationServiceMocks struct {
	programs      *mockProgramReader
	applications  *mockApplicationStore
	workflows     *mockWorkflowStore
	notifications *mockNotificationWriter
	sewadars      *mockSewadarReader
	mailer        *mockMailer
}

func newApplicationService(t *testing.T) (*ApplicationService, *applicationServiceMocks) {
	t.Helper()
	m := &applicationServiceMocks{
		programs:      &mockProgramReader{},
		applications:  &mockApplicationStore{},
		workflows:     &mockWorkflowStore{},
		notifications: &mockNotificationWriter{},
		sewadars:      &mockSewadarReader{},
		mailer:        &mockMailer{},
	}
	svc := NewApplicationService(
		m.programs, m.applications, m.workflows, m.notifications, m.sewadars,
		m.mailer, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, m
}

func testProgram(status string) *models.Program {
	deadline := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	maxSewadars := 2
	return &models.Program{
		ID:              7,
		Title:           "Annual Bhandara",
		Location:        "BEAS",
		Status:          status,
		MaxSewadars:     &maxSewadars,
		CreatedBy:       "ZN-2001",
		LastDateToApply: &deadline,
	}
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.applications.On("GetByProgramAndSewadar", ctx, int64(7), "ZN-1042").Return(nil, nil)
	m.applications.On("Create", ctx, mock.MatchedBy(func(a *models.ProgramApplication) bool {
		return a.ProgramID == 7 && a.SewadarZonalID == "ZN-1042" && a.Status == models.ApplicationStatusPending
	})).Return(nil)

	application, err := svc.Apply(ctx, 7, "ZN-1042", models.RoleSewadar, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	m.applications.AssertExpectations(t)
}

func TestApply_RejectsInactiveProgram(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusScheduled), nil)
	m.applications.On("GetByProgramAndSewadar", ctx, int64(7), "ZN-1042").Return(nil, nil)

	_, err := svc.Apply(ctx, 7, "ZN-1042", models.RoleSewadar, nil)

	assert.ErrorIs(t, err, apperrors.ErrProgramNotActive)
	m.applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApply_RejectsClosedWindow(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	program := testProgram(models.ProgramStatusActive)
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	program.LastDateToApply = &past

	m.programs.On("GetByID", ctx, int64(7)).Return(program, nil)
	m.applications.On("GetByProgramAndSewadar", ctx, int64(7), "ZN-1042").Return(nil, nil)

	_, err := svc.Apply(ctx, 7, "ZN-1042", models.RoleSewadar, nil)

	assert.ErrorIs(t, err, apperrors.ErrApplyWindowClosed)
}

func TestApply_RejectsDuplicateActiveApplication(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.applications.On("GetByProgramAndSewadar", ctx, int64(7), "ZN-1042").Return(
		&models.ProgramApplication{ID: 3, ProgramID: 7, SewadarZonalID: "ZN-1042", Status: models.ApplicationStatusPending}, nil)

	_, err := svc.Apply(ctx, 7, "ZN-1042", models.RoleSewadar, nil)

	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestApply_AfterDropReplacesOldApplication(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.applications.On("GetByProgramAndSewadar", ctx, int64(7), "ZN-1042").Return(
		&models.ProgramApplication{ID: 3, ProgramID: 7, SewadarZonalID: "ZN-1042", Status: models.ApplicationStatusDropped}, nil)
	m.applications.On("Replace", ctx, mock.MatchedBy(func(a *models.ProgramApplication) bool {
		return a.Status == models.ApplicationStatusPending
	})).Return(nil)

	application, err := svc.Apply(ctx, 7, "ZN-1042", models.RoleSewadar, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	m.applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.applications.AssertExpectations(t)
}

func TestDecide_ApproveAtCapacityConflicts(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.applications.On("GetByID", ctx, int64(3)).Return(
		&models.ProgramApplication{ID: 3, ProgramID: 7, SewadarZonalID: "ZN-1042", Status: models.ApplicationStatusPending}, nil)
	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.applications.On("CountApprovedByProgram", ctx, int64(7)).Return(int64(2), nil)

	_, err := svc.Decide(ctx, 3, "ZN-2001", models.RoleIncharge,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusApproved})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	m.applications.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_OnlyProgramCreatorMayDecide(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.applications.On("GetByID", ctx, int64(3)).Return(
		&models.ProgramApplication{ID: 3, ProgramID: 7, Status: models.ApplicationStatusPending}, nil)
	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)

	_, err := svc.Decide(ctx, 3, "ZN-9999", models.RoleIncharge,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusRejected})

	assert.ErrorIs(t, err, apperrors.ErrNotProgramCreator)
}

func TestDecide_FillingLastSlotAdvancesWorkflow(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.applications.On("GetByID", ctx, int64(3)).Return(
		&models.ProgramApplication{ID: 3, ProgramID: 7, Status: models.ApplicationStatusPending}, nil)
	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.applications.On("CountApprovedByProgram", ctx, int64(7)).Return(int64(1), nil).Once()
	m.applications.On("UpdateStatus", ctx, int64(3), models.ApplicationStatusApproved,
		(*string)(nil), []string{models.ApplicationStatusPending}).Return(nil)
	m.applications.On("CountApprovedByProgram", ctx, int64(7)).Return(int64(2), nil).Once()
	m.workflows.On("AdvanceNode", ctx, int64(7), 2).Return(
		&models.ProgramWorkflow{ProgramID: 7, CurrentNode: 3}, nil)

	application, err := svc.Decide(ctx, 3, "ZN-2001", models.RoleIncharge,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusApproved})

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, application.Status)
	m.workflows.AssertExpectations(t)
}

func TestRequestDrop_OnlyOwnerMayRequest(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.applications.On("GetByID", ctx, int64(3)).Return(
		&models.ProgramApplication{ID: 3, ProgramID: 7, SewadarZonalID: "ZN-1042", Status: models.ApplicationStatusApproved}, nil)

	_, err := svc.RequestDrop(ctx, 3, "ZN-5555")

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	m.applications.AssertNotCalled(t, "RequestDrop", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveDrop_RaisesRefillNotification(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	dropRequested := &models.ProgramApplication{
		ID: 3, ProgramID: 7, SewadarZonalID: "ZN-1042",
		Status: models.ApplicationStatusDropRequested,
	}
	email := "incharge@example.com"

	m.applications.On("GetByID", ctx, int64(3)).Return(dropRequested, nil)
	m.programs.On("GetByID", ctx, int64(7)).Return(testProgram(models.ProgramStatusActive), nil)
	m.applications.On("ApproveDrop", ctx, int64(3), "ZN-2001", mock.Anything).Return(nil)
	m.sewadars.On("GetByZonalID", ctx, "ZN-1042").Return(
		&models.Sewadar{ZonalID: "ZN-1042", FirstName: "Ravi", LastName: "Sharma"}, nil)
	m.sewadars.On("GetByZonalID", ctx, "ZN-2001").Return(
		&models.Sewadar{ZonalID: "ZN-2001", FirstName: "Mohan", LastName: "Verma", EmailID: &email}, nil)
	m.notifications.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.NotificationType == models.NotificationTypeRefillRequired &&
			n.InchargeZonalID == "ZN-2001" && n.DroppedZonalID == "ZN-1042"
	})).Return(nil)
	m.mailer.On("SendRefillAlert", email, "Mohan Verma", "Annual Bhandara", "Ravi Sharma").Return(nil)

	_, err := svc.ApproveDrop(ctx, 3, "ZN-2001", models.RoleIncharge)

	assert.NoError(t, err)
	m.notifications.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}
