package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/metrics"
	"github.com/yigit/studentdesk/internal/pkg/validation"
)

// AdminAuthService handles admin authentication and token refresh
type AdminAuthService interface {
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	EnsureDefaultAdmin(ctx context.Context, username, password string) error
}

type adminAuthServiceImpl struct {
	adminRepo  repositories.IAdminRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAdminAuthService creates a new AdminAuthService
func NewAdminAuthService(adminRepo repositories.IAdminRepository, jwtService *auth.JWTService, logger zerolog.Logger) AdminAuthService {
	return &adminAuthServiceImpl{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		logger:     logger,
		now:        time.Now,
	}
}

// AdminLogin verifies admin credentials and issues a token pair
func (s *adminAuthServiceImpl) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			metrics.RecordAuthAttempt(string(models.CallerAdmin), metrics.OutcomeNotFound)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		metrics.RecordAuthAttempt(string(models.CallerAdmin), metrics.OutcomeFailure)
		s.logger.Warn().Str("username", req.Username).Msg("Admin login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !admin.IsActive {
		metrics.RecordAuthAttempt(string(models.CallerAdmin), metrics.OutcomeFailure)
		return nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.jwtService.GenerateAdminTokenPair(admin)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Int64("adminID", admin.ID).Msg("Failed to record admin last login")
	}
	metrics.RecordAuthAttempt(string(models.CallerAdmin), metrics.OutcomeSuccess)

	return &dto.AdminLoginResponse{
		Refresh:  pair.Refresh,
		Access:   pair.Access,
		Username: admin.Username,
	}, nil
}

// RefreshToken exchanges a refresh token of either caller type for a new access token
func (s *adminAuthServiceImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	access, _, err := s.jwtService.Refresh(req.Refresh)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshTokenResponse{Access: access}, nil
}

// EnsureDefaultAdmin creates the configured admin account when it does not exist yet.
// An empty username disables provisioning.
func (s *adminAuthServiceImpl) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	if len(password) < validation.PasswordMinLength || len(password) > validation.PasswordMaxBytes {
		return fmt.Errorf("default admin password must be %d to %d bytes long", validation.PasswordMinLength, validation.PasswordMaxBytes)
	}

	exists, err := s.adminRepo.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("error checking admin username: %w", err)
	}
	if exists {
		s.logger.Debug().Str("username", username).Msg("Default admin already present")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.Admin{
		Username: username,
		Password: hashed,
		IsActive: true,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrAdminAlreadyExists) {
			return nil
		}
		return err
	}

	s.logger.Info().Str("username", username).Msg("Default admin created")
	return nil
}
