package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/storage/providers/local"
)

func setupHealthTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()

	dbPath := "./test_health_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, "silent")
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

type failingPinger struct{}

func (failingPinger) Ping() error { return errors.New("disk I/O error") }

type unreachableStore struct {
	storage.Client
}

func (unreachableStore) Exists(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func healthStatus(t *testing.T, db Pinger, store storage.Client) (int, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", NewHealthController(db, store, "1.0.0").Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		store, err := local.NewClient(t.TempDir())
		require.NoError(t, err)

		code, response := healthStatus(t, db, store)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok", response.Checks["storage"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports not configured components", func(t *testing.T) {
		code, response := healthStatus(t, nil, nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Equal(t, "not configured", response.Checks["storage"])
	})

	t.Run("returns unhealthy when ping fails", func(t *testing.T) {
		code, response := healthStatus(t, failingPinger{}, nil)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "error: disk I/O error", response.Checks["database"])
	})

	t.Run("returns unhealthy when storage is unreachable", func(t *testing.T) {
		code, response := healthStatus(t, nil, unreachableStore{})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "error: connection refused", response.Checks["storage"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()
		require.NoError(t, db.Close())

		code, response := healthStatus(t, db, nil)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Contains(t, response.Checks["database"], "error:")
	})
}
