// Package config は環境変数 (および .env) からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// サポートするデータベースドライバー
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DatabaseConfig はデータベース接続設定です。
// DSN が指定された場合は個別の項目より優先されます。
type DatabaseConfig struct {
	Driver string
	Path   string // SQLite のファイルパス (":memory:" 可)
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string
	DSN    string
}

// Config はアプリケーション全体の設定です。
type Config struct {
	Port             string
	GinMode          string
	BasePath         string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
	LogLevel         slog.Level
	LogFormat        string
	Database         DatabaseConfig
}

// Load は .env ファイル (存在すれば) と環境変数から設定を読み込みます。
// envFiles を省略した場合はカレントディレクトリの .env を読み込みます。
// すでに設定されている環境変数は .env で上書きされません。
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("api_base_path", "/api")
	v.SetDefault("cors_allow_origins", "http://localhost:3000")
	v.SetDefault("shutdown_timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_path", "todos.db")

	cfg := &Config{
		Port:             v.GetString("port"),
		GinMode:          v.GetString("gin_mode"),
		BasePath:         strings.TrimRight(v.GetString("api_base_path"), "/"),
		CORSAllowOrigins: splitList(v.GetString("cors_allow_origins")),
		LogFormat:        strings.ToLower(v.GetString("log_format")),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("db_driver")),
			Path:   v.GetString("db_path"),
			User:   v.GetString("db_user"),
			Pass:   v.GetString("db_pass"),
			Host:   v.GetString("db_host"),
			Port:   v.GetString("db_port"),
			Name:   v.GetString("db_name"),
			DSN:    v.GetString("db_dsn"),
		},
	}

	timeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を確認します。
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if len(c.CORSAllowOrigins) == 0 {
		return errors.New("CORS_ALLOW_ORIGINS must contain at least one origin")
	}
	for _, o := range c.CORSAllowOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("invalid CORS origin %q", o)
		}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	return c.Database.Validate()
}

// Validate はドライバーごとに必要な項目が揃っているか確認します。
func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" && d.DSN == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL, DriverPostgres:
		if d.DSN != "" {
			return nil
		}
		var missing []string
		for _, kv := range [][2]string{
			{"DB_USER", d.User}, {"DB_HOST", d.Host}, {"DB_PORT", d.Port}, {"DB_NAME", d.Name},
		} {
			if kv[1] == "" {
				missing = append(missing, kv[0])
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("database environment variables are not set: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
