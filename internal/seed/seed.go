package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appServices "github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/config"
)

// CreateDefaultData provisions the configured default admin account if it is missing.
// Without a configured username nothing is created.
func CreateDefaultData(ctx context.Context, cfg *config.Config, adminAuthService appServices.AdminAuthService, lgr zerolog.Logger) error {
	if cfg.Admin.DefaultUsername == "" {
		lgr.Info().Msg("No default admin configured, skipping seed")
		return nil
	}

	lgr.Info().Str("username", cfg.Admin.DefaultUsername).Msg("Checking/Creating default admin...")
	if err := adminAuthService.EnsureDefaultAdmin(ctx, cfg.Admin.DefaultUsername, cfg.Admin.DefaultPassword); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return nil
}
