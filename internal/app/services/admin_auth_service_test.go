package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/auth"
)

func TestEnsureDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.adminService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "", ""))
	exists, err := env.repos.AdminRepository.UsernameExists(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, svc.EnsureDefaultAdmin(ctx, "root", "short"))

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "root", "rootpassword"))
	// second call is a no-op
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "root", "differentpassword"))

	admin, err := env.repos.AdminRepository.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, admin.IsActive)
	assert.True(t, auth.CheckPassword(admin.Password, "rootpassword"))
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.adminService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "root", "rootpassword"))

	resp, err := svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "root", Password: "rootpassword"})
	require.NoError(t, err)
	assert.Equal(t, "root", resp.Username)

	claims, err := env.jwt.ValidateAccessToken(resp.Access)
	require.NoError(t, err)
	assert.Equal(t, models.CallerAdmin, claims.Type)

	admin, err := env.repos.AdminRepository.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.NotNil(t, admin.LastLoginAt)

	_, err = svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "root", Password: "nope-nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "ghost", Password: "rootpassword"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	svc := env.adminService()
	ctx := context.Background()

	hashed, err := auth.HashPassword("rootpassword")
	require.NoError(t, err)
	require.NoError(t, env.repos.AdminRepository.Create(ctx, &models.Admin{Username: "off", Password: hashed, IsActive: false}))

	_, err = svc.AdminLogin(ctx, &dto.AdminLoginRequest{Username: "off", Password: "rootpassword"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	svc := env.adminService()

	pair, err := env.jwt.GenerateStudentTokenPair(&models.Student{StudentID: "s-9"})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	claims, err := env.jwt.ValidateAccessToken(resp.Access)
	require.NoError(t, err)
	assert.Equal(t, "s-9", claims.StudentID)

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{Refresh: pair.Access})
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
