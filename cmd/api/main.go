// Command api serves the dev-events HTTP API.
//
//	api                 run the server
//	api token <subject> print a bearer token signed with JWT_SECRET
//
// @title DevEvents API
// @version 1.0
// @description CRUD API for developer events and their speakers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"devevents/config"
	_ "devevents/docs"
	"devevents/internal/adapters/auth"
	transporthttp "devevents/internal/delivery/http"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/domain"
	"devevents/internal/repository/sqlrepo"
	"devevents/internal/services"
	"devevents/migrations"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	devTokenExpiry  = 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	if len(os.Args) > 1 {
		if err := runCommand(cfg, os.Args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func runCommand(cfg *config.Config, args []string) error {
	switch args[0] {
	case "token":
		if len(args) != 2 {
			return errors.New("usage: api token <subject>")
		}
		if !cfg.AuthEnabled() {
			return errors.New("JWT_SECRET is not set")
		}
		token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(args[1], devTokenExpiry)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := openDB(startupCtx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Apply(startupCtx, db, dialectFor(cfg.DBDriver)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	eventRepo := sqlrepo.NewEventRepository(db)
	speakerRepo := sqlrepo.NewSpeakerRepository(db)
	svc := services.NewDevEventService(eventRepo, speakerRepo, cfg.RequestTimeout)
	ctrl := controllers.NewDevEventController(logger, svc)

	var verifier domain.TokenVerifier
	if cfg.AuthEnabled() {
		verifier = auth.NewJWTVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set, mutating routes are public")
	}

	mux := transporthttp.NewRouter(ctrl, verifier, logger)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("api listening", "port", cfg.Port, "driver", cfg.DBDriver, "env", cfg.Environment)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openDB opens and pings the configured database. The DB_DRIVER value is the registered driver name.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func dialectFor(driver string) string {
	if driver == config.DriverSQLite {
		return migrations.DialectSQLite
	}
	return migrations.DialectPostgres
}
