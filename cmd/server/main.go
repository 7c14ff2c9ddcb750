package main

import (
	"brevet-times-service/internal/adapters/repositories"
	"brevet-times-service/internal/api"
	"brevet-times-service/internal/config"
	"brevet-times-service/internal/platform/db"
	"brevet-times-service/internal/platform/obs"
	"brevet-times-service/internal/ports"
	"brevet-times-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires a concrete storage adapter behind the ControlRepository port and starts the HTTP server.
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("brevet-server", args)
	if err != nil {
		return err
	}

	logger, flush, err := obs.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer flush()

	if !cfg.DotEnvLoaded {
		logger.Info("No .env file found (using environment variables)")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	repo, err := initRepository(ctx, cfg, conn)
	if err != nil {
		return err
	}

	calc := services.Calculator{FinishTolerance: cfg.FinishTolerance}
	router := api.NewRouter(repo, calc, loc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening",
			zap.String("addr", srv.Addr),
			zap.String("db_driver", cfg.DBDriver),
			zap.Float64("finish_tolerance", cfg.FinishTolerance),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DBDriver == db.DriverSQLite && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("openDB: create directory for %q: %w", cfg.DBPath, err)
		}
	}
	return db.OpenDriver(cfg.DBDriver, cfg.DSN())
}

// initRepository creates the schema, picks the adapter for the driver and
// optionally seeds it.
func initRepository(ctx context.Context, cfg config.Config, conn *sql.DB) (ports.ControlRepository, error) {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	var repo ports.ControlRepository
	if cfg.DBDriver == db.DriverPostgres {
		repo = repositories.NewSQLControlRepository(conn)
	} else {
		repo = repositories.NewSqliteControlRepository(conn)
	}

	if cfg.SeedPath != "" {
		if err := repositories.SeedFromJSON(ctx, repo, cfg.SeedPath); err != nil {
			return nil, fmt.Errorf("init repository: %w", err)
		}
	}

	return repo, nil
}
