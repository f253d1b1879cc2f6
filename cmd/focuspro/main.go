package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/cli"
	"github.com/alexanderramin/focuspro/internal/clock"
	"github.com/alexanderramin/focuspro/internal/config"
	"github.com/alexanderramin/focuspro/internal/db"
	"github.com/alexanderramin/focuspro/internal/repository"
	"github.com/alexanderramin/focuspro/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: FOCUSPRO_CONFIG or ~/.focuspro/focuspro.yaml
	cfgPath := os.Getenv("FOCUSPRO_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Log to a file so the track view is not disturbed.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and services
	stateRepo := repository.NewSQLiteClientStateRepo(database)
	journalRepo := repository.NewSQLiteJournalRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	var callObserver backend.Observer = backend.NoopObserver{}
	if cfg.LogCalls {
		callObserver = backend.NewLogObserver(logger)
	}

	app := &cli.App{
		Config:   cfg,
		Identity: service.NewIdentityService(stateRepo, uow, observer),
		Journal:  service.NewJournalService(journalRepo, uow, observer),
		API:      backend.NewClient(cfg.APIEndpoint, cfg.RequestTimeout(), callObserver),
		Logger:   logger,
		Clock:    clock.Real(),
	}

	// Forms and the track view need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	return cli.NewRootCmd(app).Execute()
}
