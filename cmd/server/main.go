package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"syscall"

	"github.com/enrichman/httpgrace"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hiredesk/hiredesk/internal/api/route"
	"github.com/hiredesk/hiredesk/internal/app"
	"github.com/hiredesk/hiredesk/internal/config"
	"github.com/hiredesk/hiredesk/internal/logger"
	"github.com/hiredesk/hiredesk/internal/registry"
	"github.com/hiredesk/hiredesk/internal/repository"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s', using 'info': %v", cfg.Misc.LogLevel, err)
	}
	logger.WithComponent("main").Infof("candidate store will run on port: %d", cfg.Server.Port)

	repo, err := repository.NewJSONRepository(cfg.Data.FilePath)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init repository: %v", err)
	}

	appCtx, err := setup(cfg, repo)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer appCtx.Shutdown()

	if err := appCtx.StartWatchers(); err != nil {
		logger.WithComponent("main").Fatalf("cannot start data file watcher: %v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := route.SetupRoutes(appCtx, logger.Logger)
	srv := createGraceHTTPServer(cfg.Server, r)

	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

// setup loads the data file and assembles the application container.
func setup(cfg *config.Config, repo repository.Repository) (*app.App, error) {
	doc, err := repo.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load data file: %w", err)
	}

	store := registry.NewStore(*doc)
	return app.New(cfg, repo, store)
}

func createGraceHTTPServer(serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	return httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Info("Shutting down candidate store server....")
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
		),
	)
}
