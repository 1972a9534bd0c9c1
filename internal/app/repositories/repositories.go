package repositories

import (
	"context"
	"time"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/repositories/gormrepo"
	"github.com/yigit/studentdesk/internal/app/repositories/postgres"
	"github.com/yigit/studentdesk/internal/db"
	"gorm.io/gorm"
)

// IStudentRepository defines the interface for student persistence.
// Lookups of a missing student return apperrors.ErrStudentNotFound.
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	List(ctx context.Context) ([]*models.Student, error)
	// Update returns the row as it was before the change
	Update(ctx context.Context, studentID string, changes models.StudentChanges) (*models.Student, error)
	UpdatePassword(ctx context.Context, studentID, passwordHash string) error
	// Delete returns the removed row
	Delete(ctx context.Context, studentID string) (*models.Student, error)
}

// IAdminRepository defines the interface for admin account persistence
type IAdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository IStudentRepository
	AdminRepository   IAdminRepository
}

// NewPostgresRepositories wires the pgx backed repositories
func NewPostgresRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		StudentRepository: postgres.NewStudentRepository(database),
		AdminRepository:   postgres.NewAdminRepository(database),
	}
}

// NewGormRepositories wires the gorm backed repositories
func NewGormRepositories(gdb *gorm.DB) *Repositories {
	return &Repositories{
		StudentRepository: gormrepo.NewStudentRepository(gdb),
		AdminRepository:   gormrepo.NewAdminRepository(gdb),
	}
}
