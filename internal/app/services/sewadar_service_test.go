package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// The ownership guard runs before any repository access, so these tests get
// by without a database.

func TestUpdateSewadar_SewadarCannotEditOthers(t *testing.T) {
	svc := NewSewadarService(nil, zerolog.Nop())

	_, err := svc.UpdateSewadar(context.Background(), "ZN-9999", "ZN-1042", models.RoleSewadar,
		&dto.UpdateSewadarRequest{FirstName: "Asha", LastName: "Kaur"})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateSewadar_SewadarCannotChangeOwnRole(t *testing.T) {
	svc := NewSewadarService(nil, zerolog.Nop())

	_, err := svc.UpdateSewadar(context.Background(), "ZN-1042", "ZN-1042", models.RoleSewadar,
		&dto.UpdateSewadarRequest{FirstName: "Asha", LastName: "Kaur", Role: "ADMIN"})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
