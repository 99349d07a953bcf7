package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/config"
)

var envKeys = []string{
	"PORT", "GIN_MODE", "API_BASE_PATH", "CORS_ALLOW_ORIGINS", "SHUTDOWN_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT", "DB_DRIVER", "DB_PATH", "DB_USER", "DB_PASS",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_DSN",
}

// clearEnv は空文字を設定します。viper は空の環境変数を未設定として扱います。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "todos.db", cfg.Database.Path)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_PATH", "/v1/")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, https://b.example ,")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "todos")

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/v1", cfg.BasePath)
	assert.Equal(t, []string{"http://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "todos", cfg.Database.Name)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv は既存の環境変数を上書きしないので、対象のキーは未設定にしておく
	require.NoError(t, os.Unsetenv("PORT"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7070\n"), 0o600))

	cfg, err := config.Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"invalid timeout", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, "invalid SHUTDOWN_TIMEOUT"},
		{"negative timeout", map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, "SHUTDOWN_TIMEOUT must be positive"},
		{"invalid log level", map[string]string{"LOG_LEVEL": "loud"}, "invalid LOG_LEVEL"},
		{"invalid log format", map[string]string{"LOG_FORMAT": "xml"}, "unsupported LOG_FORMAT"},
		{"invalid origin", map[string]string{"CORS_ALLOW_ORIGINS": "localhost:3000"}, "invalid CORS origin"},
		{"unsupported driver", map[string]string{"DB_DRIVER": "oracle"}, "unsupported DB_DRIVER"},
		{
			"mysql without connection settings",
			map[string]string{"DB_DRIVER": "mysql", "DB_USER": "app"},
			"database environment variables are not set: DB_HOST, DB_PORT, DB_NAME",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load(missingEnvFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_Validate(t *testing.T) {
	// --- Test Case 1: DSN があれば個別の項目は不要 ---
	t.Run("DSN overrides individual settings", func(t *testing.T) {
		d := config.DatabaseConfig{Driver: config.DriverMySQL, DSN: "app:pw@tcp(db:3306)/todos"}
		assert.NoError(t, d.Validate())
	})

	// --- Test Case 2: SQLite はパスが必須 ---
	t.Run("sqlite requires a path", func(t *testing.T) {
		assert.Error(t, config.DatabaseConfig{Driver: config.DriverSQLite}.Validate())
		assert.NoError(t, config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}.Validate())
	})

	// --- Test Case 3: パスワードは空でもよい ---
	t.Run("password may be empty", func(t *testing.T) {
		d := config.DatabaseConfig{Driver: config.DriverPostgres, User: "u", Host: "h", Port: "5432", Name: "n"}
		assert.NoError(t, d.Validate())
	})
}

func TestConfig_WildcardOrigin(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOW_ORIGINS", "*")

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}
