package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/db"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/dberrors"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

const studentIDConstraint = "students_student_id_key"

var studentColumns = []string{"id", "student_id", "name", "password", "avatar", "level", "attendance", "created_at", "updated_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.StudentID, &s.Name, &s.Password, &s.Avatar, &s.Level, &s.Attendance, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student and fills in the generated columns
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("student_id", "name", "password", "avatar", "level", "attendance").
		Values(student.StudentID, student.Name, student.Password, student.Avatar, student.Level, student.Attendance).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentIDConstraint) {
			logger.Warn().Str("studentID", student.StudentID).Msg("Attempted to create student with duplicate student ID")
			return apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("id", student.ID).Str("studentID", student.StudentID).Msg("Student created successfully")
	return nil
}

// GetByStudentID retrieves a student by their public identifier
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// StudentIDExists checks if a student ID already exists
func (r *StudentRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"student_id": studentID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student ID exists query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error checking student ID existence")
		return false, fmt.Errorf("error checking student ID existence: %w", err)
	}
	return exists, nil
}

// List returns every student ordered by student ID
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("student_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// Update applies a partial change set and returns the row as it was before the change.
// The row is locked for the duration so concurrent updates cannot interleave.
func (r *StudentRepository) Update(ctx context.Context, studentID string, changes models.StudentChanges) (*models.Student, error) {
	var previous *models.Student

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select(studentColumns...).
			From("students").
			Where(squirrel.Eq{"student_id": studentID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock student query: %w", err)
		}

		previous, err = scanStudent(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error locking student: %w", err)
		}

		if changes.IsEmpty() {
			return nil
		}

		update := r.sb.Update("students").
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": previous.ID})
		if changes.Name != nil {
			update = update.Set("name", *changes.Name)
		}
		if changes.Level != nil {
			update = update.Set("level", *changes.Level)
		}
		if changes.Attendance != nil {
			update = update.Set("attendance", *changes.Attendance)
		}
		switch {
		case changes.ClearAvatar:
			update = update.Set("avatar", nil)
		case changes.Avatar != nil:
			update = update.Set("avatar", *changes.Avatar)
		}

		sql, args, err = update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update student query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			logger.Error().Err(err).Str("studentID", studentID).Msg("Error updating student")
		}
		return nil, err
	}
	return previous, nil
}

// UpdatePassword replaces the stored password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, studentID, passwordHash string) error {
	sql, args, err := r.sb.Update("students").
		Set("password", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error updating student password")
		return fmt.Errorf("error updating student password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student and returns the deleted row
func (r *StudentRepository) Delete(ctx context.Context, studentID string) (*models.Student, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"student_id": studentID}).
		Suffix("RETURNING " + joinColumns(studentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete student query: %w", err)
	}

	student, err := scanStudent(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error deleting student")
		return nil, fmt.Errorf("error deleting student: %w", err)
	}

	logger.Info().Str("studentID", studentID).Msg("Student deleted")
	return student, nil
}
