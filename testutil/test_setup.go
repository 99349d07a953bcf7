// Package testutil はテスト用のデータベースとルーターを準備するヘルパーを提供します。
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/config"
	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/logger"
	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/routes"
)

// TestBasePath はテスト用ルーターのAPIプレフィックスです。
const TestBasePath = "/api"

// NewTestDB はスキーマ適用済みのインメモリSQLiteを作成します。
// テスト終了時に自動でCloseされます。
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() { db.Close() })
	return db
}

// SetupTestDB はテスト用のデータベース、ルーター、リポジトリをまとめて準備します。
func SetupTestDB(t *testing.T) (*database.DB, *gin.Engine, *repositories.TodoRepository) {
	t.Helper()

	db := NewTestDB(t)
	router := SetupTestRouter(t, db)
	return db, router, repositories.NewTodoRepository(db)
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, db *database.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:             "0",
		BasePath:         TestBasePath,
		CORSAllowOrigins: []string{"http://localhost:3000"},
		ShutdownTimeout:  time.Second,
		LogFormat:        "text",
		Database:         config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
	}
	r, err := routes.SetupRouter(db, cfg, logger.Discard())
	require.NoError(t, err)
	return r
}

// DoJSON はJSONボディ付きのリクエストをルーターに送ります。body が nil の場合はボディ無しです。
func DoJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// CreateTestTodo はAPI経由でTODOを作成し、作成されたTODOを返します。
func CreateTestTodo(t *testing.T, router http.Handler, title string, description *string) *models.Todo {
	t.Helper()

	payload := map[string]any{"title": title}
	if description != nil {
		payload["description"] = *description
	}
	resp := DoJSON(t, router, http.MethodPost, TestBasePath+"/todos", payload)
	require.Equal(t, http.StatusCreated, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var created models.Todo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return &created
}

// StepClock は呼ばれるたびに step ずつ進む時計です。リポジトリの Now に設定して使います。
func StepClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}
