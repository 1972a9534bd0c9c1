package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/dberrors"
	"github.com/yigit/studentdesk/internal/pkg/logger"
	"gorm.io/gorm"
)

// StudentRepository stores students through gorm
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			logger.Warn().Str("studentID", student.StudentID).Msg("Attempted to create student with duplicate student ID")
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	logger.Info().Int64("id", student.ID).Str("studentID", student.StudentID).Msg("Student created successfully")
	return nil
}

// GetByStudentID retrieves a student by their public identifier
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.get(r.db.WithContext(ctx), studentID)
}

func (r *StudentRepository) get(tx *gorm.DB, studentID string) (*models.Student, error) {
	var student models.Student
	err := tx.Where("student_id = ?", studentID).Take(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// StudentIDExists checks if a student ID already exists
func (r *StudentRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("student_id = ?", studentID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("error checking student ID existence: %w", err)
	}
	return count > 0, nil
}

// List returns every student ordered by student ID
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	students := make([]*models.Student, 0)
	if err := r.db.WithContext(ctx).Order("student_id ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// Update applies a partial change set and returns the row as it was before the change
func (r *StudentRepository) Update(ctx context.Context, studentID string, changes models.StudentChanges) (*models.Student, error) {
	var previous *models.Student

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		previous, err = r.get(tx, studentID)
		if err != nil {
			return err
		}
		if changes.IsEmpty() {
			return nil
		}

		values := map[string]interface{}{"updated_at": time.Now()}
		if changes.Name != nil {
			values["name"] = *changes.Name
		}
		if changes.Level != nil {
			values["level"] = *changes.Level
		}
		if changes.Attendance != nil {
			values["attendance"] = *changes.Attendance
		}
		switch {
		case changes.ClearAvatar:
			values["avatar"] = nil
		case changes.Avatar != nil:
			values["avatar"] = *changes.Avatar
		}

		return tx.Model(&models.Student{}).Where("id = ?", previous.ID).Updates(values).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return previous, nil
}

// UpdatePassword replaces the stored password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, studentID, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("student_id = ?", studentID).
		Updates(map[string]interface{}{"password": passwordHash, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("error updating student password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student and returns the deleted row
func (r *StudentRepository) Delete(ctx context.Context, studentID string) (*models.Student, error) {
	var deleted *models.Student

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = r.get(tx, studentID)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Student{}, deleted.ID).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error deleting student: %w", err)
	}

	logger.Info().Str("studentID", studentID).Msg("Student deleted")
	return deleted, nil
}
