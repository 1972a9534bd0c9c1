package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
)

// AdminStudentController handles student management by admins
type AdminStudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewAdminStudentController creates a new AdminStudentController
func NewAdminStudentController(studentService services.StudentService, logger zerolog.Logger) *AdminStudentController {
	return &AdminStudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// List returns all students
// @Summary List students
// @Description Returns every student ordered by student ID
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.StudentResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/students [get]
func (c *AdminStudentController) List(ctx *gin.Context) {
	students, err := c.studentService.AdminList(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(students, "Students retrieved successfully"))
}

// Get returns one student
// @Summary Get a student
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param student_id path string true "Student ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{student_id} [get]
func (c *AdminStudentController) Get(ctx *gin.Context) {
	student, err := c.studentService.AdminGet(ctx.Request.Context(), ctx.Param("student_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(student, "Student retrieved successfully"))
}

// Update applies a partial update to a student
// @Summary Update a student
// @Description Name, level, attendance and avatar can be changed. The student ID and password cannot.
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param student_id path string true "Student ID"
// @Param request body dto.AdminUpdateStudentRequest false "Changes"
// @Param avatar formData file false "New avatar image"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 413 {object} dto.ErrorResponse "Request body too large"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{student_id} [patch]
func (c *AdminStudentController) Update(ctx *gin.Context) {
	var req dto.AdminUpdateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	student, err := c.studentService.AdminUpdate(ctx.Request.Context(), ctx.Param("student_id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(student, "Student updated successfully"))
}

// SetPassword overwrites a student's password
// @Summary Set a student's password
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetStudentPasswordRequest true "Student ID and new password"
// @Success 200 {object} dto.StructuredResponse "Password updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown student or validation error"
// @Router /admin/students/set-password [post]
func (c *AdminStudentController) SetPassword(ctx *gin.Context) {
	var req dto.SetStudentPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	if err := c.studentService.AdminSetPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated successfully"))
}

// Delete removes a student
// @Summary Delete a student
// @Tags admin
// @Security BearerAuth
// @Param student_id path string true "Student ID"
// @Success 204 "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{student_id} [delete]
func (c *AdminStudentController) Delete(ctx *gin.Context) {
	if err := c.studentService.AdminDelete(ctx.Request.Context(), ctx.Param("student_id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
