// Package logger はアプリケーション共通の構造化ロガーを生成します。
package logger

import (
	"io"
	"log/slog"
)

// New は format ("text" / "json") に応じたslogロガーを返します。
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard はテスト用にすべての出力を捨てるロガーを返します。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
