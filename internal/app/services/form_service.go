package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/app/stateview"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// FormService handles travel-detail form submissions
type FormService struct {
	programRepo     *repositories.ProgramRepository
	applicationRepo *repositories.ApplicationRepository
	workflowRepo    *repositories.WorkflowRepository
	formRepo        *repositories.FormSubmissionRepository
	logger          zerolog.Logger
}

// NewFormService creates a new FormService
func NewFormService(
	programRepo *repositories.ProgramRepository,
	applicationRepo *repositories.ApplicationRepository,
	workflowRepo *repositories.WorkflowRepository,
	formRepo *repositories.FormSubmissionRepository,
	logger zerolog.Logger,
) *FormService {
	return &FormService{
		programRepo:     programRepo,
		applicationRepo: applicationRepo,
		workflowRepo:    workflowRepo,
		formRepo:        formRepo,
		logger:          logger,
	}
}

// SubmitForm records a sewadar's travel details for a program. Requires the
// workflow to have released the form, an approved application, and a
// submission date inside the form window. Resubmitting replaces the
// previous details.
func (s *FormService) SubmitForm(ctx context.Context, programID int64, zonalID string, req *dto.SubmitFormRequest) (*models.SewadarFormSubmission, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	workflow, err := s.workflowRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !workflow.FormReleased {
		return nil, apperrors.ErrFormNotReleased
	}

	if stateview.IsPastDeadline(program.LastDateToSubmitForm, time.Now()) {
		return nil, apperrors.NewConflictError("last date to submit the form has passed")
	}

	application, err := s.applicationRepo.GetByProgramAndSewadar(ctx, programID, zonalID)
	if err != nil {
		return nil, err
	}
	if application == nil || application.Status != models.ApplicationStatusApproved {
		return nil, apperrors.ErrApplicationNotApproved
	}

	submission := &models.SewadarFormSubmission{
		ProgramID:                 programID,
		SewadarZonalID:            zonalID,
		StartingDateTimeFromHome:  req.StartingDateTimeFromHome,
		ReachingDateTimeToHome:    req.ReachingDateTimeToHome,
		OnwardTrainFlightDateTime: req.OnwardTrainFlightDateTime,
		OnwardTrainFlightNo:       req.OnwardTrainFlightNo,
		ReturnTrainFlightDateTime: req.ReturnTrainFlightDateTime,
		ReturnTrainFlightNo:       req.ReturnTrainFlightNo,
		StayInHotel:               req.StayInHotel,
		StayInPandal:              req.StayInPandal,
	}

	if err := s.formRepo.Upsert(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("programId", programID).Str("zonalId", zonalID).Msg("travel form submitted")

	return submission, nil
}

// UpdateSubmission replaces the travel details of an existing submission.
// Only the submitting sewadar may update it, and only while the form window
// for the program is still open.
func (s *FormService) UpdateSubmission(ctx context.Context, submissionID int64, actor string, actorRole models.Role, req *dto.SubmitFormRequest) (*models.SewadarFormSubmission, error) {
	submission, err := s.formRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && submission.SewadarZonalID != actor {
		return nil, apperrors.ErrPermissionDenied
	}

	program, err := s.programRepo.GetByID(ctx, submission.ProgramID)
	if err != nil {
		return nil, err
	}
	if stateview.IsPastDeadline(program.LastDateToSubmitForm, time.Now()) {
		return nil, apperrors.NewConflictError("last date to submit the form has passed")
	}

	submission.StartingDateTimeFromHome = req.StartingDateTimeFromHome
	submission.ReachingDateTimeToHome = req.ReachingDateTimeToHome
	submission.OnwardTrainFlightDateTime = req.OnwardTrainFlightDateTime
	submission.OnwardTrainFlightNo = req.OnwardTrainFlightNo
	submission.ReturnTrainFlightDateTime = req.ReturnTrainFlightDateTime
	submission.ReturnTrainFlightNo = req.ReturnTrainFlightNo
	submission.StayInHotel = req.StayInHotel
	submission.StayInPandal = req.StayInPandal

	if err := s.formRepo.Update(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("submissionId", submissionID).Str("zonalId", submission.SewadarZonalID).Msg("travel form updated")

	return submission, nil
}

// GetMySubmission retrieves the sewadar's own submission for a program
func (s *FormService) GetMySubmission(ctx context.Context, programID int64, zonalID string) (*models.SewadarFormSubmission, error) {
	return s.formRepo.GetByProgramAndSewadar(ctx, programID, zonalID)
}

// GetSubmissionForSewadar retrieves one sewadar's submission for the
// program creator.
func (s *FormService) GetSubmissionForSewadar(ctx context.Context, programID int64, zonalID string, actor string, actorRole models.Role) (*models.SewadarFormSubmission, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	return s.formRepo.GetByProgramAndSewadar(ctx, programID, zonalID)
}

// GetSubmissionsByProgram retrieves a program's submissions for its creator
func (s *FormService) GetSubmissionsByProgram(ctx context.Context, programID int64, actor string, actorRole models.Role) ([]*models.SewadarFormSubmission, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	return s.formRepo.GetByProgram(ctx, programID)
}
