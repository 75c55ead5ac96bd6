package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smarthouse-backend/config"
	"smarthouse-backend/internal/api"
	"smarthouse-backend/internal/collector"
	"smarthouse-backend/internal/db"
	"smarthouse-backend/internal/store"
)

const (
	tempID  = "4d8b1d62-7921-4917-9b70-bbd31f6e2e8e"
	ovenID  = "c1e8fa9c-4b8d-487a-a1a5-2b148ee9d2d1"
	ghostID = "00000000-0000-0000-0000-000000000000"
)

// TestReadingLifecycle runs collected readings through the store and reads
// them back over HTTP, the way the daemon wires things together.
func TestReadingLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	// --- Setup ---
	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "db.sql"),
		SeedDemo: true,
	}, log)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	appStore := store.NewGormStore(gormDB, log)
	house, err := appStore.LoadSmartHouseDeep(context.Background())
	require.NoError(t, err)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp collector.ApiResponse
		resp.Data.Page = 1
		resp.Data.PageSize = 10
		resp.Data.Items = []collector.Reading{
			{Device: tempID, Value: 19, Timestamp: "2024-01-27 09:00:00"},
			{Device: tempID, Value: 23, Unit: "°C", Timestamp: "2024-01-27 18:00:00"},
			{Device: ovenID, Value: 1, Timestamp: "2024-01-27 09:00:00"},
			{Device: ghostID, Value: 1, Timestamp: "2024-01-27 09:00:00"},
		}
		resp.Data.Total = len(resp.Data.Items)
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer upstream.Close()

	collectorSvc := collector.NewService(&config.CollectorConfig{
		Enabled:  true,
		Timezone: "UTC",
		Request:  config.CollectorRequest{URL: upstream.URL, PageSize: 10},
	}, appStore, house, log)

	router := api.NewRouter(api.NewHandler(appStore, house, nil, nil, log), &config.ServerConfig{
		RateLimitPerSec: 100,
		RateLimitBurst:  100,
		CacheTTLSeconds: 60,
	})
	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	// --- Collect ---
	t.Run("Collector stores sensor readings only", func(t *testing.T) {
		assert.Equal(t, 2, collectorSvc.CollectOnce(context.Background()))
	})

	// --- Read back ---
	t.Run("Latest reading is served", func(t *testing.T) {
		w := get("/smarthouse/sensor/" + strings.ToUpper(tempID) + "/current")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":23,"unit":"°C","timestamp":"2024-01-27T18:00:00Z"}`, w.Body.String())
	})

	t.Run("Daily average covers collected readings", func(t *testing.T) {
		w := get("/smarthouse/floor/2/room/6/temperature")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"2024-01-27":21}`, w.Body.String())
	})

	t.Run("Actuator state is untouched by the collector", func(t *testing.T) {
		w := get("/smarthouse/actuator/" + ovenID + "/current")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"`+ovenID+`","on":false,"level":null,"state":null}`, w.Body.String())
	})
}
