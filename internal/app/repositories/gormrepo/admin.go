package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/dberrors"
	"gorm.io/gorm"
)

// AdminRepository stores admin accounts through gorm
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrAdminAlreadyExists
		}
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &admin, nil
}

// GetByID retrieves an admin by primary key
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByUsername retrieves an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.getOne(ctx, "username = ?", username)
}

// UsernameExists checks if a username is already taken
func (r *AdminRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return count > 0, nil
}

// UpdateLastLogin stamps the last successful login
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", at)
	if result.Error != nil {
		return fmt.Errorf("error updating last login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAdminNotFound
	}
	return nil
}
