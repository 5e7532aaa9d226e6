package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
)

type mockProgramReader struct {
	mock.Mock
}

func (m *mockProgramReader) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

type mockApplicationStore struct {
	mock.Mock
}

func (m *mockApplicationStore) Create(ctx context.Context, application *models.ProgramApplication) error {
	return m.Called(ctx, application).Error(0)
}

func (m *mockApplicationStore) Replace(ctx context.Context, application *models.ProgramApplication) error {
	return m.Called(ctx, application).Error(0)
}

func (m *mockApplicationStore) GetByID(ctx context.Context, id int64) (*models.ProgramApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramApplication), args.Error(1)
}

func (m *mockApplicationStore) GetByProgramAndSewadar(ctx context.Context, programID int64, zonalID string) (*models.ProgramApplication, error) {
	args := m.Called(ctx, programID, zonalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramApplication), args.Error(1)
}

func (m *mockApplicationStore) GetByProgram(ctx context.Context, programID int64, status string) ([]*models.ProgramApplication, error) {
	args := m.Called(ctx, programID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramApplication), args.Error(1)
}

func (m *mockApplicationStore) GetBySewadar(ctx context.Context, zonalID string) ([]*models.ProgramApplication, error) {
	args := m.Called(ctx, zonalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgramApplication), args.Error(1)
}

func (m *mockApplicationStore) UpdateStatus(ctx context.Context, id int64, newStatus string, notes *string, expectedStatuses ...string) error {
	return m.Called(ctx, id, newStatus, notes, expectedStatuses).Error(0)
}

func (m *mockApplicationStore) RequestDrop(ctx context.Context, id int64, requestedAt time.Time) error {
	return m.Called(ctx, id, requestedAt).Error(0)
}

func (m *mockApplicationStore) ApproveDrop(ctx context.Context, id int64, approvedBy string, approvedAt time.Time) error {
	return m.Called(ctx, id, approvedBy, approvedAt).Error(0)
}

func (m *mockApplicationStore) CountApprovedByProgram(ctx context.Context, programID int64) (int64, error) {
	args := m.Called(ctx, programID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockApplicationStore) GetPrioritized(ctx context.Context, programID int64, sortBy string) ([]repositories.PrioritizedRow, error) {
	args := m.Called(ctx, programID, sortBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.PrioritizedRow), args.Error(1)
}

type mockWorkflowStore struct {
	mock.Mock
}

func (m *mockWorkflowStore) GetByProgramID(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramWorkflow), args.Error(1)
}

func (m *mockWorkflowStore) AdvanceNode(ctx context.Context, programID int64, fromNode int) (*models.ProgramWorkflow, error) {
	args := m.Called(ctx, programID, fromNode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramWorkflow), args.Error(1)
}

func (m *mockWorkflowStore) ReleaseForm(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramWorkflow), args.Error(1)
}

func (m *mockWorkflowStore) MarkDetailsCollected(ctx context.Context, programID int64) (*models.ProgramWorkflow, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramWorkflow), args.Error(1)
}

func (m *mockWorkflowStore) GetByCreator(ctx context.Context, createdBy string) ([]repositories.WorkflowWithProgram, error) {
	args := m.Called(ctx, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.WorkflowWithProgram), args.Error(1)
}

func (m *mockWorkflowStore) GetIncompleteForActivePrograms(ctx context.Context) ([]repositories.WorkflowWithProgram, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.WorkflowWithProgram), args.Error(1)
}

type mockNotificationWriter struct {
	mock.Mock
}

func (m *mockNotificationWriter) Create(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

type mockSewadarReader struct {
	mock.Mock
}

func (m *mockSewadarReader) GetByZonalID(ctx context.Context, zonalID string) (*models.Sewadar, error) {
	args := m.Called(ctx, zonalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sewadar), args.Error(1)
}

type mockFormChecker struct {
	mock.Mock
}

func (m *mockFormChecker) GetMissingSubmitters(ctx context.Context, programID int64) ([]string, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockPreferenceResolver struct {
	mock.Mock
}

func (m *mockPreferenceResolver) GetByNode(ctx context.Context, nodeNumber int) (*models.NotificationPreference, error) {
	args := m.Called(ctx, nodeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationPreference), args.Error(1)
}

type mockOverrideResolver struct {
	mock.Mock
}

func (m *mockOverrideResolver) GetByProgramAndNode(ctx context.Context, programID int64, nodeNumber int) (*models.ProgramNotificationPreference, error) {
	args := m.Called(ctx, programID, nodeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramNotificationPreference), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWorkflowReminder(toEmail, toName, programTitle, nodeName, message string) error {
	return m.Called(toEmail, toName, programTitle, nodeName, message).Error(0)
}

func (m *mockMailer) SendRefillAlert(toEmail, toName, programTitle, droppedName string) error {
	return m.Called(toEmail, toName, programTitle, droppedName).Error(0)
}
