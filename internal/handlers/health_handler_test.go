package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/testutil"
)

func TestHealthCheckHandler(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)

	// --- Test Case 1: DBに接続できる ---
	t.Run("Healthy database", func(t *testing.T) {
		w := testutil.DoJSON(t, router, http.MethodGet, testutil.TestBasePath+"/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ok", response["status"])
	})

	// --- Test Case 2: DBが閉じられている ---
	t.Run("Closed database", func(t *testing.T) {
		require.NoError(t, db.Close())

		w := testutil.DoJSON(t, router, http.MethodGet, testutil.TestBasePath+"/health", nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "error", response["status"])
		assert.Equal(t, "Database connection failed", response["message"])
	})
}
