package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seed(ctx, cfg, db); err != nil {
		slog.Error("seed failed", "error", err)
		db.Close()
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, db *database.DB) error {
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := fixtures.Reset(ctx, db); err != nil {
		return err
	}
	slog.Info("cleared existing data")

	seeder := fixtures.NewSeeder(
		postgresql.NewTxManager(db),
		postgresql.NewUserRepository(db),
		postgresql.NewTimesheetRepository(db),
		cfg.Location(),
	)
	result, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println("\nTest credentials:")
	for _, u := range result.Users {
		fmt.Printf("  %-9s %-26s %-12s %s\n", u.User.Role, u.User.Email, u.Password, u.User.EmployeeCode)
	}
	return nil
}
