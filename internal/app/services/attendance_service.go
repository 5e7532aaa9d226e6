package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// AttendanceService handles attendance marking and history aggregation
type AttendanceService struct {
	programRepo     *repositories.ProgramRepository
	applicationRepo *repositories.ApplicationRepository
	attendanceRepo  *repositories.AttendanceRepository
	logger          zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	programRepo *repositories.ProgramRepository,
	applicationRepo *repositories.ApplicationRepository,
	attendanceRepo *repositories.AttendanceRepository,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		programRepo:     programRepo,
		applicationRepo: applicationRepo,
		attendanceRepo:  attendanceRepo,
		logger:          logger,
	}
}

// MarkAttendance records attendance for a batch of sewadars in one program.
// Only the program creator may mark; every named sewadar must hold an
// approved application for the program.
func (s *AttendanceService) MarkAttendance(ctx context.Context, programID int64, actor string, actorRole models.Role, req *dto.MarkAttendanceRequest) ([]*models.Attendance, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	records := make([]*models.Attendance, 0, len(req.Records))
	for _, record := range req.Records {
		application, err := s.applicationRepo.GetByProgramAndSewadar(ctx, programID, record.SewadarZonalID)
		if err != nil {
			return nil, err
		}
		if application == nil || application.Status != models.ApplicationStatusApproved {
			return nil, apperrors.NewBadRequestError(
				fmt.Sprintf("sewadar %s does not have an approved application for this program", record.SewadarZonalID))
		}

		records = append(records, &models.Attendance{
			ProgramID:        programID,
			SewadarZonalID:   record.SewadarZonalID,
			Attended:         record.Attended,
			DaysParticipated: record.DaysParticipated,
			MarkedBy:         actor,
			Notes:            record.Notes,
		})
	}

	if err := s.attendanceRepo.UpsertBatch(ctx, records); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("programId", programID).
		Int("records", len(records)).
		Str("markedBy", actor).
		Msg("attendance marked")

	return records, nil
}

// UpdateAttendance corrects a single attendance record. Only the creator of
// the record's program may correct it.
func (s *AttendanceService) UpdateAttendance(ctx context.Context, attendanceID int64, actor string, actorRole models.Role, req *dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	record, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, record.ProgramID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	record.Attended = req.Attended
	record.DaysParticipated = req.DaysParticipated
	record.Notes = req.Notes
	record.MarkedBy = actor

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("attendanceId", attendanceID).
		Str("markedBy", actor).
		Msg("attendance corrected")

	return record, nil
}

// GetAttendanceBySewadar retrieves a sewadar's attendance history
func (s *AttendanceService) GetAttendanceBySewadar(ctx context.Context, zonalID string) ([]*models.Attendance, error) {
	return s.attendanceRepo.GetBySewadar(ctx, zonalID)
}

// GetAttendanceByProgram retrieves a program's attendance records for its creator
func (s *AttendanceService) GetAttendanceByProgram(ctx context.Context, programID int64, actor string, actorRole models.Role) ([]*models.Attendance, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && program.CreatedBy != actor {
		return nil, apperrors.ErrNotProgramCreator
	}

	return s.attendanceRepo.GetByProgram(ctx, programID)
}

// GetSummary aggregates a sewadar's attendance history split by the
// BEAS / NON_BEAS classification.
func (s *AttendanceService) GetSummary(ctx context.Context, zonalID string) (*models.AttendanceSummary, error) {
	return s.attendanceRepo.GetSummary(ctx, zonalID)
}
