package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"

	"task-tracker/backend/internal/config"
	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/logger"
	"task-tracker/backend/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal: invalid configuration: %v", err)
	}

	appLogger := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(appLogger)
	gin.SetMode(cfg.GinMode)

	// DB接続はプロセス全体で1つ。終了時にシャットダウン処理の中で閉じる。
	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}
	appLogger.Info("Successfully connected to database", "driver", cfg.Database.Driver)

	router, err := routes.SetupRouter(db, cfg, appLogger)
	if err != nil {
		db.Close()
		log.Fatalf("Fatal: failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server listening", "port", cfg.Port, "base_path", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server error", "error", err)
			db.Close()
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// サーバーを止めてからDBを閉じる必要があるため1つの処理にまとめる
			"http-server-and-db": func(ctx context.Context) error {
				appLogger.Info("Graceful shutdown initiated...")
				shutdownErr := srv.Shutdown(ctx)
				return errors.Join(shutdownErr, db.Close())
			},
		},
	)

	exitCode := <-wait
	appLogger.Info("Application exited", "code", exitCode)
	os.Exit(exitCode)
}
