package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/config"
)

func testConfig(store models.SessionStore, dir string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Session.Store = string(store)
	cfg.Session.TTL = "2h"
	cfg.Session.CleanupInterval = "1m"
	cfg.Token.Secret = "bootstrap-secret"
	cfg.Token.Issuer = "gpacalc.test"
	cfg.Database.SQLitePath = filepath.Join(dir, "sessions.db")
	return cfg
}

func TestBuildAndServe(t *testing.T) {
	for _, store := range []models.SessionStore{models.SessionStoreMemory, models.SessionStoreSQLite} {
		t.Run(string(store), func(t *testing.T) {
			cfg := testConfig(store, t.TempDir())
			lgr := zerolog.Nop()

			repos, closeStore, err := SetupStore(context.Background(), cfg, lgr)
			require.NoError(t, err)
			t.Cleanup(closeStore)

			deps, err := BuildDependencies(cfg, repos, lgr)
			require.NoError(t, err)
			assert.Equal(t, 2*time.Hour, deps.SessionTTL)
			assert.Equal(t, time.Minute, deps.CleanupInterval)

			router := SetupRouter(cfg, deps, lgr)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, w.Code)
			var health struct {
				Status string `json:"status"`
				Store  string `json:"store"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
			assert.Equal(t, "ok", health.Status)
			assert.Equal(t, string(store), health.Store)

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
			assert.Equal(t, http.StatusCreated, w.Code)

			update, err := snapshotFunc(deps.CalculatorService)(context.Background(), "not-a-session")
			assert.Error(t, err)
			assert.Nil(t, update)
		})
	}
}

func TestBuildDependencies_BadSeedFile(t *testing.T) {
	cfg := testConfig(models.SessionStoreMemory, t.TempDir())
	cfg.Session.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	repos, closeStore, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeStore()

	_, err = BuildDependencies(cfg, repos, zerolog.Nop())
	assert.Error(t, err)
}
