package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/filestorage"
	"github.com/yigit/studentdesk/internal/pkg/helpers"
	"github.com/yigit/studentdesk/internal/pkg/metrics"
	"github.com/yigit/studentdesk/internal/pkg/validation"
)

// avatarDir is the storage subdirectory holding student avatars
const avatarDir = "avatars"

// StudentService defines the interface for student operations
type StudentService interface {
	Register(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error)
	Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentLoginResponse, error)
	GetProfile(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, studentID string, req *dto.UpdateProfileRequest) (*dto.StudentResponse, error)
	ChangePassword(ctx context.Context, studentID string, req *dto.ChangePasswordRequest) error
	DeleteAvatar(ctx context.Context, studentID string) error

	AdminList(ctx context.Context) ([]dto.StudentResponse, error)
	AdminGet(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	AdminUpdate(ctx context.Context, studentID string, req *dto.AdminUpdateStudentRequest) (*dto.StudentResponse, error)
	AdminSetPassword(ctx context.Context, req *dto.SetStudentPasswordRequest) error
	AdminDelete(ctx context.Context, studentID string) error
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	jwtService  *auth.JWTService
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	jwtService *auth.JWTService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		jwtService:  jwtService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *studentServiceImpl) toResponse(student *models.Student) *dto.StudentResponse {
	resp := dto.NewStudentResponse(student, s.fileStorage.URL)
	return &resp
}

// cleanName sanitizes a display name and rejects names that end up empty
func cleanName(name string) (string, error) {
	cleaned := validation.SanitizeText(name)
	if cleaned == "" {
		return "", apperrors.NewFieldError("name", "This field may not be blank.")
	}
	if len([]rune(cleaned)) > validation.NameMaxLength {
		return "", apperrors.NewFieldError("name", fmt.Sprintf("Ensure this field has no more than %d characters.", validation.NameMaxLength))
	}
	return cleaned, nil
}

// hashPassword hashes a password supplied in the named request field.
// Inputs bcrypt cannot take become a field error instead of a server error.
func hashPassword(field, password string) (string, error) {
	hashed, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewFieldError(field, fmt.Sprintf("Ensure this field has no more than %d bytes.", validation.PasswordMaxBytes))
	}
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hashed, nil
}

// saveAvatar stores an uploaded avatar. A nil header yields a nil path.
func (s *studentServiceImpl) saveAvatar(fileHeader *multipart.FileHeader) (*string, error) {
	if fileHeader == nil {
		return nil, nil
	}
	path, err := s.fileStorage.SaveImage(fileHeader, avatarDir)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// discardAvatar removes a stored avatar, logging instead of failing
func (s *studentServiceImpl) discardAvatar(path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := s.fileStorage.DeleteFile(*path); err != nil {
		s.logger.Warn().Err(err).Str("path", *path).Msg("Failed to delete avatar file")
	}
}

// Register creates a new student account
func (s *studentServiceImpl) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error) {
	if !validation.IsValidStudentID(req.StudentID) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrInvalidStudentID,
			Message: "Enter a valid student ID consisting of letters, numbers, underscores or hyphens (max 32).",
			Field:   "student_id",
		}
	}

	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.studentRepo.StudentIDExists(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student ID: %w", err)
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	hashed, err := hashPassword("password", req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		StudentID:  req.StudentID,
		Name:       name,
		Password:   hashed,
		Level:      models.DefaultStudentLevel,
		Attendance: models.DefaultStudentAttendance,
	}
	if req.Level != nil {
		student.Level = *req.Level
	}
	if req.Attendance != nil {
		student.Attendance = *req.Attendance
	}

	student.Avatar, err = s.saveAvatar(req.Avatar)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		s.discardAvatar(student.Avatar)
		return nil, err
	}

	s.logger.Info().Str("studentID", student.StudentID).Msg("Student registered")
	return s.toResponse(student), nil
}

// Login verifies student credentials and issues a token pair
func (s *studentServiceImpl) Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentLoginResponse, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			metrics.RecordAuthAttempt(string(models.CallerStudent), metrics.OutcomeNotFound)
		}
		return nil, err
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		metrics.RecordAuthAttempt(string(models.CallerStudent), metrics.OutcomeFailure)
		s.logger.Warn().Str("studentID", req.StudentID).Msg("Student login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateStudentTokenPair(student)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}
	metrics.RecordAuthAttempt(string(models.CallerStudent), metrics.OutcomeSuccess)

	return &dto.StudentLoginResponse{
		Refresh:    pair.Refresh,
		Access:     pair.Access,
		StudentID:  student.StudentID,
		Name:       student.Name,
		Avatar:     s.fileStorage.URL(helpers.StringOrEmpty(student.Avatar)),
		Level:      student.Level,
		Attendance: student.Attendance,
	}, nil
}

// GetProfile returns the caller's own record
func (s *studentServiceImpl) GetProfile(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(student), nil
}

// update persists a change set together with an optional new avatar.
// The replaced avatar file is removed once the row is updated; the new one is removed if the update fails.
func (s *studentServiceImpl) update(ctx context.Context, studentID string, changes models.StudentChanges, avatar *multipart.FileHeader) (*dto.StudentResponse, error) {
	newAvatar, err := s.saveAvatar(avatar)
	if err != nil {
		return nil, err
	}
	if newAvatar != nil {
		changes.Avatar = newAvatar
	}

	previous, err := s.studentRepo.Update(ctx, studentID, changes)
	if err != nil {
		s.discardAvatar(newAvatar)
		return nil, err
	}

	oldAvatar := previous.Avatar
	changes.Apply(previous)
	if (newAvatar != nil || changes.ClearAvatar) && oldAvatar != nil {
		s.discardAvatar(oldAvatar)
	}
	return s.toResponse(previous), nil
}

// UpdateProfile lets a student change their name and avatar
func (s *studentServiceImpl) UpdateProfile(ctx context.Context, studentID string, req *dto.UpdateProfileRequest) (*dto.StudentResponse, error) {
	var changes models.StudentChanges
	if req.Name != nil {
		name, err := cleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		changes.Name = &name
	}

	resp, err := s.update(ctx, studentID, changes, req.Avatar)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("studentID", studentID).Msg("Student profile updated")
	return resp, nil
}

// ChangePassword replaces the caller's password after checking the current one
func (s *studentServiceImpl) ChangePassword(ctx context.Context, studentID string, req *dto.ChangePasswordRequest) error {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(student.Password, req.OldPassword) {
		return apperrors.ErrIncorrectOldPassword
	}

	hashed, err := hashPassword("new_password", req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.studentRepo.UpdatePassword(ctx, studentID, hashed); err != nil {
		return err
	}

	s.logger.Info().Str("studentID", studentID).Msg("Student changed password")
	return nil
}

// DeleteAvatar removes the caller's avatar
func (s *studentServiceImpl) DeleteAvatar(ctx context.Context, studentID string) error {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return err
	}
	if !student.HasAvatar() {
		return apperrors.ErrAvatarNotFound
	}

	_, err = s.update(ctx, studentID, models.StudentChanges{ClearAvatar: true}, nil)
	return err
}

// AdminList returns every student ordered by student ID
func (s *studentServiceImpl) AdminList(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentListResponse(students, s.fileStorage.URL), nil
}

// AdminGet returns a single student
func (s *studentServiceImpl) AdminGet(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	return s.GetProfile(ctx, studentID)
}

// AdminUpdate changes name, level, attendance and avatar of a student
func (s *studentServiceImpl) AdminUpdate(ctx context.Context, studentID string, req *dto.AdminUpdateStudentRequest) (*dto.StudentResponse, error) {
	changes := models.StudentChanges{
		Level:      req.Level,
		Attendance: req.Attendance,
	}
	if req.Name != nil {
		name, err := cleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		changes.Name = &name
	}

	resp, err := s.update(ctx, studentID, changes, req.Avatar)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("studentID", studentID).Msg("Student updated by admin")
	return resp, nil
}

// AdminSetPassword overwrites a student's password without the old one
func (s *studentServiceImpl) AdminSetPassword(ctx context.Context, req *dto.SetStudentPasswordRequest) error {
	exists, err := s.studentRepo.StudentIDExists(ctx, req.StudentID)
	if err != nil {
		return fmt.Errorf("error checking student ID: %w", err)
	}
	if !exists {
		return apperrors.NewFieldError("student_id", "Student with this ID does not exist.")
	}

	hashed, err := hashPassword("new_password", req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.studentRepo.UpdatePassword(ctx, req.StudentID, hashed); err != nil {
		return err
	}

	s.logger.Info().Str("studentID", req.StudentID).Msg("Student password set by admin")
	return nil
}

// AdminDelete removes a student together with their avatar file
func (s *studentServiceImpl) AdminDelete(ctx context.Context, studentID string) error {
	deleted, err := s.studentRepo.Delete(ctx, studentID)
	if err != nil {
		return err
	}
	s.discardAvatar(deleted.Avatar)
	s.logger.Info().Str("studentID", studentID).Msg("Student deleted by admin")
	return nil
}
