package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
	"github.com/rssb/sewadar-backend/internal/pkg/auth"
	"github.com/rssb/sewadar-backend/internal/pkg/helpers"
	"github.com/rssb/sewadar-backend/internal/pkg/validation"
)

// SewadarService handles sewadar roster operations
type SewadarService struct {
	sewadarRepo *repositories.SewadarRepository
	logger      zerolog.Logger
}

// NewSewadarService creates a new SewadarService
func NewSewadarService(sewadarRepo *repositories.SewadarRepository, logger zerolog.Logger) *SewadarService {
	return &SewadarService{
		sewadarRepo: sewadarRepo,
		logger:      logger,
	}
}

// CreateSewadar registers a new sewadar with a hashed password. The zonal ID
// must be unique and well-formed; the role defaults to SEWADAR.
func (s *SewadarService) CreateSewadar(ctx context.Context, req *dto.CreateSewadarRequest) (*models.Sewadar, error) {
	zonalID := strings.ToUpper(strings.TrimSpace(req.ZonalID))
	if !validation.CompiledPatterns.ZonalID.MatchString(zonalID) {
		return nil, apperrors.ErrInvalidZonalID
	}
	if err := validateContactFields(req.Mobile, req.AadharNumber); err != nil {
		return nil, err
	}

	exists, err := s.sewadarRepo.ZonalIDExists(ctx, zonalID)
	if err != nil {
		return nil, fmt.Errorf("error checking zonal ID: %w", err)
	}
	if exists {
		return nil, apperrors.ErrZonalIDAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleSewadar
	}
	if !role.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown role: " + req.Role)
	}

	sewadar := &models.Sewadar{
		ZonalID:                      zonalID,
		FirstName:                    req.FirstName,
		LastName:                     req.LastName,
		Mobile:                       req.Mobile,
		EmailID:                      req.EmailID,
		Location:                     req.Location,
		Role:                         role,
		Password:                     hash,
		Profession:                   req.Profession,
		JoiningDate:                  req.JoiningDate,
		DateOfBirth:                  req.DateOfBirth,
		EmergencyContact:             req.EmergencyContact,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		PhotoURL:                     req.PhotoURL,
		AadharNumber:                 req.AadharNumber,
		Remarks:                      req.Remarks,
		Languages:                    req.Languages,
	}

	if err := s.sewadarRepo.Create(ctx, sewadar); err != nil {
		return nil, fmt.Errorf("error creating sewadar: %w", err)
	}

	s.logger.Info().Str("zonalId", zonalID).Str("role", string(role)).Msg("sewadar registered")

	return sewadar, nil
}

// GetSewadar retrieves a sewadar by zonal ID
func (s *SewadarService) GetSewadar(ctx context.Context, zonalID string) (*models.Sewadar, error) {
	return s.sewadarRepo.GetByZonalID(ctx, zonalID)
}

// ListSewadars retrieves a filtered, paginated page of the roster
func (s *SewadarService) ListSewadars(ctx context.Context, filter *dto.SewadarFilterRequest) ([]*models.Sewadar, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)

	sewadars, total, err := s.sewadarRepo.GetAll(ctx, repositories.SewadarFilter{
		Name:       filter.Name,
		Location:   filter.Location,
		Profession: filter.Profession,
		Language:   filter.Language,
		Role:       filter.Role,
	}, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing sewadars: %w", err)
	}

	return sewadars, helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// validateContactFields checks the optional mobile and aadhar fields against
// their fixed-format patterns.
func validateContactFields(mobile, aadhar *string) error {
	if mobile != nil && !validation.NewStringValidation(*mobile).
		WithPattern(validation.CompiledPatterns.Mobile).Validate() {
		return apperrors.NewBadRequestError("mobile must be a 10-digit number")
	}
	if aadhar != nil && !validation.NewStringValidation(*aadhar).
		WithPattern(validation.CompiledPatterns.Aadhar).Validate() {
		return apperrors.NewBadRequestError("aadhar number must be a 12-digit number")
	}
	return nil
}

// UpdateSewadar updates an existing sewadar's profile. The zonal ID cannot
// change. Incharges and admins may edit anyone; a plain sewadar may edit
// only their own profile and cannot change their role.
func (s *SewadarService) UpdateSewadar(ctx context.Context, zonalID string, actor string, actorRole models.Role, req *dto.UpdateSewadarRequest) (*models.Sewadar, error) {
	if actorRole != models.RoleAdmin && actorRole != models.RoleIncharge {
		if actor != zonalID {
			return nil, apperrors.ErrPermissionDenied
		}
		if req.Role != "" {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	sewadar, err := s.sewadarRepo.GetByZonalID(ctx, zonalID)
	if err != nil {
		return nil, err
	}

	if err := validateContactFields(req.Mobile, req.AadharNumber); err != nil {
		return nil, err
	}

	if req.Role != "" {
		role := models.Role(req.Role)
		if !role.IsValid() {
			return nil, apperrors.NewBadRequestError("unknown role: " + req.Role)
		}
		sewadar.Role = role
	}

	sewadar.FirstName = req.FirstName
	sewadar.LastName = req.LastName
	sewadar.Mobile = req.Mobile
	sewadar.EmailID = req.EmailID
	sewadar.Location = req.Location
	sewadar.Profession = req.Profession
	sewadar.JoiningDate = req.JoiningDate
	sewadar.DateOfBirth = req.DateOfBirth
	sewadar.EmergencyContact = req.EmergencyContact
	sewadar.EmergencyContactRelationship = req.EmergencyContactRelationship
	sewadar.PhotoURL = req.PhotoURL
	sewadar.AadharNumber = req.AadharNumber
	sewadar.Remarks = req.Remarks
	sewadar.Languages = req.Languages

	if err := s.sewadarRepo.Update(ctx, sewadar); err != nil {
		return nil, fmt.Errorf("error updating sewadar: %w", err)
	}

	return sewadar, nil
}

// DeleteSewadar removes a sewadar from the roster. Sewadars with program
// applications cannot be deleted.
func (s *SewadarService) DeleteSewadar(ctx context.Context, zonalID string) error {
	return s.sewadarRepo.Delete(ctx, zonalID)
}
