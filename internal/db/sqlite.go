package db

import (
	"fmt"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteDB wraps a gorm handle on an SQLite database
type SQLiteDB struct {
	Gorm *gorm.DB
}

// NewSQLiteDB opens (or creates) the SQLite database at dsn and migrates the schema.
// Use "file:<name>?mode=memory&cache=shared" for an in-memory database.
func NewSQLiteDB(dsn string) (*SQLiteDB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// SQLite allows a single writer; one connection avoids "database is locked" errors
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&models.Student{}, &models.Admin{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	logger.Info().Str("dsn", dsn).Msg("SQLite database ready")
	return &SQLiteDB{Gorm: gdb}, nil
}

// Close closes the underlying connection pool
func (db *SQLiteDB) Close() {
	if db.Gorm == nil {
		return
	}
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to get sqlite handle")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close sqlite database")
	}
}
