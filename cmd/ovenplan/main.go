package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bakeryops/ovenplan/internal/cli"
	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/repository"
	"github.com/bakeryops/ovenplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.ovenplan/ovenplan.db
	dbPath := os.Getenv("OVENPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ovenplan", "ovenplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workCenterRepo := repository.NewSQLiteWorkCenterRepo(database)
	routeRepo := repository.NewSQLiteRouteRepo(database)
	productivityRepo := repository.NewSQLiteProductivityRepo(database)
	restTimeRepo := repository.NewSQLiteRestTimeRepo(database)
	shiftBlockRepo := repository.NewSQLiteShiftBlockRepo(database)
	staffingRepo := repository.NewSQLiteStaffingRepo(database)
	entryRepo := repository.NewSQLiteScheduleEntryRepo(database)
	orderRepo := repository.NewSQLiteOrderRepo(database)
	windowRepo := repository.NewSQLiteScheduleWindowRepo(database)
	sequenceRepo := repository.NewSQLiteOrderSequenceRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging is opt-in to keep normal CLI output clean.
	var observers []service.UseCaseObserver
	if os.Getenv("OVENPLAN_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Cascade: service.NewCascadeService(
			workCenterRepo, routeRepo, productivityRepo, restTimeRepo,
			shiftBlockRepo, staffingRepo, entryRepo, orderRepo,
			windowRepo, sequenceRepo, uow, observers...,
		),
		Schedule: service.NewScheduleService(entryRepo, orderRepo),
		Plant: service.NewPlantService(
			workCenterRepo, routeRepo, productivityRepo, restTimeRepo,
			shiftBlockRepo, staffingRepo,
		),
		Import: service.NewImportService(uow, observers...),
	}

	// Detect interactive terminal for confirmation prompts and the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
