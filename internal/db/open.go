package db

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"habitTrackerAPI/internal/record"
)

// IsPostgresURL reports whether the connection string targets Postgres;
// anything else is treated as a SQLite file path.
func IsPostgresURL(databaseURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(databaseURL))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// OpenRecordStore opens the backend named by databaseURL and returns it
// together with the number of migrations applied on the way.
func OpenRecordStore(ctx context.Context, databaseURL string, maxConns int32, log *zap.Logger) (record.Store, int, error) {
	if IsPostgresURL(databaseURL) {
		pool, applied, err := OpenPostgres(ctx, databaseURL, maxConns)
		if err != nil {
			return nil, applied, err
		}
		return NewPostgresRecordStore(pool), applied, nil
	}

	database, applied, err := OpenSQLite(ctx, databaseURL, log)
	if err != nil {
		return nil, applied, err
	}
	return NewSQLiteRecordStore(database), applied, nil
}
