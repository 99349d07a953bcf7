// Package handlers はHTTPハンドラーを提供します。
package handlers

import "github.com/gin-gonic/gin"

// RequestIDKey はリクエストIDを gin.Context とログに格納するキーです。
const RequestIDKey = "request_id"

// RequestID はミドルウェアが設定したリクエストIDを返します。未設定なら空文字です。
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
