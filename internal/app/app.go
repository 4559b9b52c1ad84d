package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/config"
	"github.com/fliprlabs/portfolio-api/internal/db"
	"github.com/fliprlabs/portfolio-api/internal/httpapi"
	"github.com/fliprlabs/portfolio-api/internal/logging"
	"github.com/fliprlabs/portfolio-api/internal/session"
	"github.com/fliprlabs/portfolio-api/internal/settings"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Migrate opens the database and runs schema migrations.
func Migrate(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging)

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the HTTP server with database-backed components and runs
// until the context is cancelled.
func RunServer(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging)

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errRefresh := settings.Refresh(ctx, conn); errRefresh != nil {
		return errRefresh
	}

	if cfg.Server.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	sessions := session.NewStore(time.Duration(cfg.Session.TTLHours) * time.Hour)
	engine := httpapi.NewRouter(conn, sessions, cfg)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Addr())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
