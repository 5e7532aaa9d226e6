// Package seed creates the data the application cannot run without: the
// default admin account and the global notification preference row for each
// workflow node.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/rssb/sewadar-backend/internal/app/models"
	appRepos "github.com/rssb/sewadar-backend/internal/app/repositories"
	"github.com/rssb/sewadar-backend/internal/pkg/auth"
)

// defaultAdminZonalID is the zonal ID of the bootstrap admin account. The
// password must be changed after the first login.
const (
	defaultAdminZonalID  = "ADM-1"
	defaultAdminPassword = "Admin123!"
)

// defaultNodeMessages holds the initial reminder template for each workflow
// node, indexed by node-1. The {programTitle} placeholder is substituted at
// send time.
var defaultNodeMessages = [appModels.WorkflowLastNode]string{
	"Program {programTitle} is still scheduled. Activate it to open applications.",
	"Post the application message for {programTitle} so sewadars know the program is open.",
	"Release the travel-details form for {programTitle}.",
	"Collect the travel details for {programTitle}. Some sewadars have not submitted the form yet.",
	"Post the mail to the area secretary for {programTitle}.",
	"Post the general instructions for {programTitle}.",
}

// CreateDefaultData seeds the admin account and the six global notification
// preferences if they don't exist yet. Errors are collected so one failed
// row does not stop the rest of the seeding.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	sewadarRepo := appRepos.NewSewadarRepository(dbPool)

	var finalErr error

	// --- Default admin account --- //
	exists, err := sewadarRepo.ZonalIDExists(ctx, defaultAdminZonalID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Str("zonalId", defaultAdminZonalID).Msg("Creating default admin account...")

		hashedPassword, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.Sewadar{
				ZonalID:   defaultAdminZonalID,
				FirstName: "System",
				LastName:  "Administrator",
				Role:      appModels.RoleAdmin,
				Password:  hashedPassword,
			}
			if err := sewadarRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("id", admin.ID).Msg("Default admin account created")
			}
		}
	}

	// --- Global notification preferences, one row per workflow node --- //
	for node := appModels.WorkflowFirstNode; node <= appModels.WorkflowLastNode; node++ {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO notification_preferences (node_number, node_name, notification_message, enabled)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (node_number) DO NOTHING`,
			node, appModels.NodeName(node), defaultNodeMessages[node-1])
		if err != nil {
			lgr.Error().Err(err).Int("node", node).Msg("Error seeding notification preference")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check finished")
	return finalErr
}
