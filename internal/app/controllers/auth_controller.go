package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
)

// AuthController handles admin login and token refresh
type AuthController struct {
	adminAuthService services.AdminAuthService
	logger           zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(adminAuthService services.AdminAuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		adminAuthService: adminAuthService,
		logger:           logger,
	}
}

// AdminLogin handles admin login
// @Summary Admin login
// @Description Authenticates an admin and returns a refresh/access token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.adminAuthService.AdminLogin(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Admin login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Login successful"))
}

// RefreshToken exchanges a refresh token for a new access token
// @Summary Refresh access token
// @Description Works for student and admin refresh tokens alike
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.StructuredResponse{data=dto.RefreshTokenResponse} "Token refreshed"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/token/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.adminAuthService.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Token refreshed successfully"))
}
