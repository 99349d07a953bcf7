// Package routesはroutingを行います。
package routes

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task-tracker/backend/internal/config"
	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/handlers"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
// gin のモードは呼び出し側で設定してください。
func SetupRouter(db *database.DB, cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	if err := handlers.RegisterValidations(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService, logger)
	healthHandler := handlers.NewHealthHandler(db, logger)

	// ルーティング
	api := r.Group(cfg.BasePath)
	api.GET("/health", healthHandler.HealthCheckHandler)

	todos := api.Group("/todos")
	{
		todos.GET("", todoHandler.GetTodosHandler)
		todos.POST("", todoHandler.CreateTodoHandler)
		todos.GET("/:id", todoHandler.GetTodoByIDHandler)
		todos.PUT("/:id", todoHandler.UpdateTodoHandler)
		todos.DELETE("/:id", todoHandler.DeleteTodoHandler)
	}

	return r, nil
}

// corsConfig はUIのオリジンからのアクセスを許可します。"*" は全オリジン許可です。
func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	config.ExposeHeaders = []string{RequestIDHeader}
	config.MaxAge = 12 * time.Hour
	return config
}
