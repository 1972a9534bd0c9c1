package auth

import (
	"context"
	"errors"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	pkgauth "github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

// AuthorizationService decides whether a verified token may act as a student or as an admin
type AuthorizationService struct {
	studentRepo repositories.IStudentRepository
	adminRepo   repositories.IAdminRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(studentRepo repositories.IStudentRepository, adminRepo repositories.IAdminRepository) *AuthorizationService {
	return &AuthorizationService{
		studentRepo: studentRepo,
		adminRepo:   adminRepo,
	}
}

// AuthorizeStudent requires a student token whose student still exists.
// A token of another caller type yields ErrPermissionDenied; a deleted student yields ErrTokenInvalid.
func (s *AuthorizationService) AuthorizeStudent(ctx context.Context, claims *pkgauth.Claims) (*models.Student, error) {
	if claims.Type != models.CallerStudent {
		return nil, apperrors.ErrPermissionDenied
	}

	student, err := s.studentRepo.GetByStudentID(ctx, claims.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Str("studentID", claims.StudentID).Msg("Error loading student in AuthorizeStudent")
		return nil, err
	}
	return student, nil
}

// AuthorizeAdmin requires an admin token whose account exists and is active
func (s *AuthorizationService) AuthorizeAdmin(ctx context.Context, claims *pkgauth.Claims) (*models.Admin, error) {
	if claims.Type != models.CallerAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("adminID", claims.UserID).Msg("Error loading admin in AuthorizeAdmin")
		return nil, err
	}
	if !admin.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return admin, nil
}
