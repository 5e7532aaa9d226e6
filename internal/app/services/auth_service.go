package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/app/stateview"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
	"github.com/rssb/sewadar-backend/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	sewadarRepo *repositories.SewadarRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	sewadarRepo *repositories.SewadarRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		sewadarRepo: sewadarRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a sewadar by zonal ID and password and issues a token.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, zonalID, password string) (*dto.AuthResponse, error) {
	sewadar, err := s.sewadarRepo.GetByZonalID(ctx, zonalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSewadarNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(sewadar.Password, password) {
		s.logger.Warn().Str("zonalId", zonalID).Msg("failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, expiresIn, err := s.jwtService.GenerateToken(sewadar)
	if err != nil {
		return nil, err
	}

	capabilities := stateview.CapabilitiesForRole(sewadar.Role)
	capabilityNames := make([]string, 0, len(capabilities))
	for _, capability := range capabilities {
		capabilityNames = append(capabilityNames, string(capability))
	}

	s.logger.Info().Str("zonalId", zonalID).Str("role", string(sewadar.Role)).Msg("sewadar logged in")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Sewadar:      sewadar,
		Capabilities: capabilityNames,
	}, nil
}

// ChangePassword replaces the password of the logged-in account after
// verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, zonalID, currentPassword, newPassword string) error {
	sewadar, err := s.sewadarRepo.GetByZonalID(ctx, zonalID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(sewadar.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.sewadarRepo.UpdatePassword(ctx, zonalID, hash)
}
