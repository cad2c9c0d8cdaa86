package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"habitTrackerAPI/internal/action"
	"habitTrackerAPI/internal/db"
)

const commandTimeout = 2 * time.Minute

type CLI struct {
	Version     kong.VersionFlag
	DatabaseURL string `help:"Postgres URL or SQLite file path." env:"DATABASE_URL" default:"data/habits.db" name:"database-url"`

	Migrate        MigrateCmd        `cmd:"" help:"Apply pending schema migrations."`
	BackfillOffset BackfillOffsetCmd `cmd:"" name:"backfill-offset" help:"Set utc_offset_minutes on records stored without one."`
}

// App is passed to every command's Run.
type App struct {
	DatabaseURL string
	Log         *zap.Logger
	Out         io.Writer
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(app *App) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	store, applied, err := db.OpenRecordStore(ctx, app.DatabaseURL, 2, app.Log)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer store.Close()

	fmt.Fprintf(app.Out, "Applied %d migration(s)\n", applied)
	return nil
}

type BackfillOffsetCmd struct {
	Minutes int `help:"UTC offset in minutes to assign." env:"DEFAULT_UTC_OFFSET_MINUTES" default:"-420"`
}

func (c *BackfillOffsetCmd) Validate() error {
	if !action.ValidOffset(float64(c.Minutes)) {
		return fmt.Errorf("--minutes must be between %d and %d", action.MinUTCOffsetMinutes, action.MaxUTCOffsetMinutes)
	}
	return nil
}

func (c *BackfillOffsetCmd) Run(app *App) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	store, _, err := db.OpenRecordStore(ctx, app.DatabaseURL, 2, app.Log)
	if err != nil {
		return fmt.Errorf("backfill-offset: %w", err)
	}
	defer store.Close()

	updated, err := store.BackfillUTCOffset(ctx, c.Minutes)
	if err != nil {
		return fmt.Errorf("backfill-offset: %w", err)
	}

	fmt.Fprintf(app.Out, "Updated %d record(s) with utc_offset_minutes = %d\n", updated, c.Minutes)
	return nil
}
