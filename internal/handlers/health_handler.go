package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger はデータベースの疎通確認に使います。*database.DB が実装します。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はデータベース接続の健全性を確認します。
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler は新しいHealthHandlerを作成します。
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheckHandler はDBにPingし、失敗した場合は 503 を返します。
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "DB ping failed", "error", err, RequestIDKey, RequestID(c))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
}
