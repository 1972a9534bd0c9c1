// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// StudentController handles student facing endpoints
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// callerID reads the student ID put in the context by the auth middleware
func callerID(ctx *gin.Context) (string, bool) {
	id, ok := middleware.StudentIDFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
	}
	return id, ok
}

// Register handles student registration
// @Summary Register a new student
// @Description Creates a student account. Accepts JSON or multipart form data; the avatar is only accepted as multipart.
// @Tags students
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterStudentRequest true "Student registration data"
// @Param avatar formData file false "Avatar image"
// @Success 201 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 413 {object} dto.ErrorResponse "Request body too large"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 409 {object} dto.ErrorResponse "Student ID already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	student, err := c.studentService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(student, "Student registered successfully"))
}

// Login handles student login
// @Summary Student login
// @Description Authenticates a student and returns a refresh/access token pair with the profile
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentLoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /students/login [post]
func (c *StudentController) Login(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.studentService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Login successful"))
}

// GetProfile returns the authenticated student's profile
// @Summary Get own profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Student access required"
// @Router /students/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(profile, "Profile retrieved successfully"))
}

// UpdateProfile handles partial profile updates
// @Summary Update own profile
// @Description Only the name and the avatar can be changed. Other fields in the body are ignored.
// @Tags students
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest false "Profile changes"
// @Param avatar formData file false "New avatar image"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 413 {object} dto.ErrorResponse "Request body too large"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Student access required"
// @Router /students/profile [patch]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	profile, err := c.studentService.UpdateProfile(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(profile, "Profile updated successfully"))
}

// DeleteAvatar removes the authenticated student's avatar
// @Summary Remove own avatar
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Avatar deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Avatar not found"
// @Router /students/profile/avatar [delete]
func (c *StudentController) DeleteAvatar(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteAvatar(ctx.Request.Context(), studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Avatar deleted successfully"))
}

// ChangePassword handles a student's own password change
// @Summary Change own password
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.StructuredResponse "Password updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Incorrect old password or validation error"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /students/change-password [post]
func (c *StudentController) ChangePassword(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	if err := c.studentService.ChangePassword(ctx.Request.Context(), studentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated successfully"))
}
