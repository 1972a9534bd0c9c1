package middleware

import (
	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextCallerType = "callerType"
	ContextStudentID  = "studentID"
	ContextStudent    = "student"
	ContextAdminID    = "adminID"
	ContextAdmin      = "admin"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService    *auth.JWTService
	authorization *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authorization *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:    jwtService,
		authorization: authorization,
	}
}

// authenticate verifies the bearer token of the request
func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		HandleAPIError(c, err)
		return nil, false
	}

	claims, err := m.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		HandleAPIError(c, err)
		return nil, false
	}
	return claims, true
}

// StudentAuth admits requests carrying a valid student access token
func (m *AuthMiddleware) StudentAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		student, err := m.authorization.AuthorizeStudent(c.Request.Context(), claims)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextCallerType, models.CallerStudent)
		c.Set(ContextStudentID, student.StudentID)
		c.Set(ContextStudent, student)
		c.Next()
	}
}

// AdminAuth admits requests carrying a valid access token of an active admin
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		admin, err := m.authorization.AuthorizeAdmin(c.Request.Context(), claims)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextCallerType, models.CallerAdmin)
		c.Set(ContextAdminID, admin.ID)
		c.Set(ContextAdmin, admin)
		c.Next()
	}
}

// StudentIDFrom returns the authenticated student's ID set by StudentAuth
func StudentIDFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextStudentID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
