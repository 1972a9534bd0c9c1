package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/logger"
	"github.com/yigit/studentdesk/internal/pkg/validation"
)

// apiError is one row of the sentinel to response mapping
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorTable is matched in order with errors.Is
var errorTable = []apiError{
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrAvatarNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Avatar not found"},
	{apperrors.ErrAdminNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Admin not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student with this student_id already exists"},
	{apperrors.ErrAdminAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Admin username already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenMissing, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Authentication credentials were not provided"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "You do not have permission to perform this action"},
	{apperrors.ErrIncorrectOldPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Incorrect old password"},
	{apperrors.ErrInvalidAvatar, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Invalid avatar file"},
	{apperrors.ErrInvalidStudentID, http.StatusBadRequest, dto.ErrorCodeInvalidStudentID, "Invalid student ID"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
}

// HandleAPIError maps an error returned by a service to a JSON error response.
// A CustomError message and field override the defaults of the matched sentinel.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	for _, e := range errorTable {
		if !errors.Is(err, e.target) {
			continue
		}

		detail := dto.NewErrorDetail(e.code, e.message)
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if custom.Message != "" {
				detail.Message = custom.Message
			}
			if custom.Field != "" {
				detail.WithField(custom.Field).WithDetails([]validation.FieldMessage{{Field: custom.Field, Error: custom.Message}})
			}
		}
		if e.status == http.StatusUnauthorized {
			detail.WithSeverity(dto.ErrorSeverityWarning)
		}
		return e.status, detail
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
}

// RespondValidationError writes a 400 response for a request binding failure.
// A body cut off by BodyLimit is reported as 413 instead.
func RespondValidationError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeRequestTooLarge, "Request body too large")))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
