package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
)

// DashboardService aggregates roster and application statistics
type DashboardService struct {
	sewadarRepo *repositories.SewadarRepository
	programRepo *repositories.ProgramRepository
	logger      zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	sewadarRepo *repositories.SewadarRepository,
	programRepo *repositories.ProgramRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		sewadarRepo: sewadarRepo,
		programRepo: programRepo,
		logger:      logger,
	}
}

// GetSewadarsDashboard aggregates the roster by role, location, profession
// and language.
func (s *DashboardService) GetSewadarsDashboard(ctx context.Context) (*dto.SewadarsDashboardResponse, error) {
	total, err := s.sewadarRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.SewadarsDashboardResponse{TotalCount: total}

	if response.RoleCounts, err = s.sewadarRepo.CountGroupedBy(ctx, "role"); err != nil {
		return nil, err
	}
	if response.LocationCounts, err = s.sewadarRepo.CountGroupedBy(ctx, "location"); err != nil {
		return nil, err
	}
	if response.ProfessionCounts, err = s.sewadarRepo.CountGroupedBy(ctx, "profession"); err != nil {
		return nil, err
	}
	if response.LanguageCounts, err = s.sewadarRepo.CountGroupedByLanguage(ctx); err != nil {
		return nil, err
	}

	return response, nil
}

// GetApplicationsDashboard summarizes application activity per program,
// including how many approved slots remain.
func (s *DashboardService) GetApplicationsDashboard(ctx context.Context) (*dto.ApplicationsDashboardResponse, error) {
	stats, err := s.programRepo.GetApplicationStats(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.ApplicationsDashboardResponse{
		Programs: make([]dto.ProgramApplicationStats, 0, len(stats)),
	}
	for _, stat := range stats {
		item := dto.ProgramApplicationStats{
			ProgramID:          stat.ProgramID,
			Title:              stat.Title,
			Status:             stat.Status,
			MaxSewadars:        stat.MaxSewadars,
			PendingCount:       stat.Pending,
			ApprovedCount:      stat.Approved,
			RejectedCount:      stat.Rejected,
			DropRequestedCount: stat.DropRequested,
			DroppedCount:       stat.Dropped,
		}
		if stat.MaxSewadars != nil {
			remaining := *stat.MaxSewadars - int(stat.Approved)
			if remaining < 0 {
				remaining = 0
			}
			item.SlotsRemaining = &remaining
		}
		response.Programs = append(response.Programs, item)
	}
	return response, nil
}
