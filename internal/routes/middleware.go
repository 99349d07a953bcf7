package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-tracker/backend/internal/handlers"
)

// RequestIDHeader はリクエストIDを受け渡すHTTPヘッダーです。
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware はクライアントから渡されたリクエストIDを引き継ぎ、
// 無ければ新しいUUIDを発行してコンテキストとレスポンスヘッダーに設定します。
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LoggingMiddleware はリクエストごとにメソッド、パス、ステータス、処理時間をログに出力します。
func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.InfoContext(c.Request.Context(), "HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			handlers.RequestIDKey, handlers.RequestID(c),
		)
	}
}
