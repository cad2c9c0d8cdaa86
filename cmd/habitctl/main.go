package main

import (
	"os"

	"github.com/alecthomas/kong"

	"habitTrackerAPI/internal/config"
	"habitTrackerAPI/internal/logger"
)

func main() {
	config.LoadDotEnv()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("habitctl"),
		kong.Description("Maintenance commands for the habit tracker database."),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	log := logger.New(os.Getenv("ENV"))
	defer func() { _ = log.Sync() }()

	err := ctx.Run(&App{DatabaseURL: cli.DatabaseURL, Log: log, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
