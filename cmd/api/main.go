package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/timesheet-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
	"github.com/go-chi/httplog/v3"
)

const (
	serviceName    = "timesheet-backend"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("service.name", serviceName),
		slog.String("service.version", serviceVersion),
		slog.String("service.environment", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	slog.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	if cfg.App.RunMigrations {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	loc := cfg.Location()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authService := serviceAuth.NewAuthService(userRepo, JWTService, cfg.App.AllowSelfRegister)
	timesheetSvc := timesheetService.NewTimesheetService(txManager, timesheetRepo, userRepo, loc)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRepo, userRepo)
	reportSvc := reportService.NewReportService(reportRepo, userRepo, loc)
	employeeSvc := employeeService.NewEmployeeService(userRepo)

	router := appHTTP.NewRouter(JWTService, userRepo, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(authService),
		Timesheet: appHTTP.NewTimesheetHandler(timesheetSvc),
		Leave:     appHTTP.NewLeaveHandler(leaveSvc),
		Report:    appHTTP.NewReportHandler(reportSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Health:    appHTTP.NewHealthHandler(db, serviceName, serviceVersion),
	}, appHTTP.RouterOptions{
		Logger:      logger,
		FrontendURL: cfg.App.FrontendURL,
		APILimiter:  middleware.NewIPRateLimiter(cfg.RateLimit.APIPerWindow, cfg.RateLimit.Window),
		AuthLimiter: middleware.NewIPRateLimiter(cfg.RateLimit.AuthPerWindow, cfg.RateLimit.Window),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
