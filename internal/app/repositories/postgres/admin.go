package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/db"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/dberrors"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

const usernameConstraint = "admins_username_key"

var adminColumns = []string{"id", "username", "password", "is_active", "created_at", "last_login_at"}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// AdminRepository handles admin account persistence
type AdminRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(database *db.PostgresDB) *AdminRepository {
	return &AdminRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.Password, &a.IsActive, &a.CreatedAt, &a.LastLoginAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new admin
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	sql, args, err := r.sb.Insert("admins").
		Columns("username", "password", "is_active").
		Values(admin.Username, admin.Password, admin.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, usernameConstraint) {
			return apperrors.ErrAdminAlreadyExists
		}
		logger.Error().Err(err).Str("username", admin.Username).Msg("Error creating admin")
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Admin, error) {
	sql, args, err := r.sb.Select(adminColumns...).
		From("admins").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	admin, err := scanAdmin(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return admin, nil
}

// GetByID retrieves an admin by primary key
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// UsernameExists checks if a username is already taken
func (r *AdminRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build username exists query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return exists, nil
}

// UpdateLastLogin stamps the last successful login
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	sql, args, err := r.sb.Update("admins").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}
	return nil
}
