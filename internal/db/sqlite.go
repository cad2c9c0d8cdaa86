package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens (creating the directory if needed) the database file and
// applies pending migrations.
func OpenSQLite(ctx context.Context, dbPath string, log *zap.Logger) (*gorm.DB, int, error) {
	dbPath = strings.TrimPrefix(dbPath, "file:")
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, 0, fmt.Errorf("create db directory: %w", err)
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			zap.NewStdLog(log.Named("gorm")),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := applyEmbeddedMigrations(ctx, sqliteMigrations{database: database}, "sqlite")
	if err != nil {
		if sqlDB, dbErr := database.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, applied, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, applied, nil
}
