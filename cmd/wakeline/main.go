package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/akarsten/wakeline/internal/cli"
	"github.com/akarsten/wakeline/internal/config"
	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data file path (.json or .db). Overrides the config file." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize wakeline storage."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive timeline." default:"1"`
	Wake  cli.WakeCmd  `cmd:"" help:"Start a new wake day."`
	Sleep cli.SleepCmd `cmd:"" help:"Complete the current day."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit to the current day."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit a habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List the current day's habits."`
		Done   cli.HabitDoneCmd   `cmd:"" help:"Toggle a habit's completion."`
	} `cmd:"" help:"Manage habits."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the data file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage data backups."`
	Day   cli.DayCmd   `cmd:"" help:"Show a wake day."`
	Stats cli.StatsCmd `cmd:"" help:"Show completion stats."`
	Sync  cli.SyncCmd  `cmd:"" help:"Sync with the configured mirror."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wakeline"),
		kong.Description("Wake-relative daily routine tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Data != "" {
		cfg.DataFile = CLI.Data
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	logger.Init(logger.Config{Debug: cfg.Debug, DataDir: filepath.Dir(cfg.DataFile)})

	var store storage.Provider
	if strings.HasSuffix(cfg.DataFile, ".json") {
		store = storage.NewJSONStore(cfg.DataFile)
	} else {
		store = storage.NewSQLiteStore(cfg.DataFile)
	}
	defer store.Close()

	appCtx := &cli.Context{Config: cfg, Store: store}
	if cfg.Mirror.Enabled && cfg.Mirror.DSN != "" {
		mirror, err := storage.NewPostgresMirror(cfg.Mirror.DSN, cfg.Mirror.UserID)
		if err != nil {
			logger.Warn("mirror unavailable, continuing local-only", "error", err)
		} else {
			defer mirror.Close()
			appCtx.Mirror = mirror
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
