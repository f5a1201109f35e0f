package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:            config.Test,
		StorageBackend: config.BackendSQLite,
		StorageKey:     "recipes",
		DataDir:        t.TempDir(),
		SQLitePath:     "recipes.db",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

func postgresConfig(t *testing.T) *config.Config {
	dsn := testhelpers.StartPostgres(t)
	params := map[string]string{}
	for _, field := range strings.Fields(dsn) {
		if k, v, ok := strings.Cut(field, "="); ok {
			params[k] = v
		}
	}
	return &config.Config{
		Env:            config.Test,
		StorageBackend: config.BackendPostgres,
		StorageKey:     "recipes",
		DBHost:         params["host"],
		DBPort:         params["port"],
		DBUser:         params["user"],
		DBPassword:     params["password"],
		DBName:         params["dbname"],
		DBSSLMode:      "disable",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

func openApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	return a
}

func send(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// runPancakesScenario submits, reads back, restarts, filters and deletes a
// recipe through the HTTP API.
func runPancakesScenario(t *testing.T, cfg *config.Config) {
	a := openApp(t, cfg)
	router := a.Router()

	w := send(t, router, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"title":        "Pancakes",
		"ingredients":  "flour\nmilk\neggs",
		"instructions": "mix\ncook",
		"prep_time":    "10",
		"cook_time":    "15",
		"servings":     "4",
		"category":     "breakfast",
		"difficulty":   "easy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// A new process over the same medium sees the same record.
	require.NoError(t, a.Close())
	a = openApp(t, cfg)
	defer a.Close()
	router = a.Router()

	w = send(t, router, http.MethodGet, "/api/v1/recipes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail api.RecipeDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, created, detail.Recipe)
	assert.Equal(t, []string{"flour", "milk", "eggs"}, detail.IngredientList)
	assert.Equal(t, 25, detail.TotalTime)

	w = send(t, router, http.MethodGet, "/api/v1/recipes?"+url.Values{"category": {"dinner"}}.Encode(), nil)
	assert.JSONEq(t, `{"recipes":[]}`, w.Body.String())

	w = send(t, router, http.MethodGet, "/api/v1/recipes?search=pan", nil)
	assert.Contains(t, w.Body.String(), created.ID)

	w = send(t, router, http.MethodDelete, "/api/v1/recipes/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = send(t, router, http.MethodDelete, "/api/v1/recipes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	list, err := a.Store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPancakesScenarioSQLite(t *testing.T) {
	runPancakesScenario(t, sqliteConfig(t))
}

func TestPancakesScenarioPostgres(t *testing.T) {
	runPancakesScenario(t, postgresConfig(t))
}

func TestManyRecipesKeepUniqueIDs(t *testing.T) {
	a := openApp(t, sqliteConfig(t))
	defer a.Close()
	router := a.Router()

	for i := 0; i < 20; i++ {
		w := send(t, router, http.MethodPost, "/api/v1/recipes", map[string]string{"title": fmt.Sprintf("Recipe %d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	list, err := a.Store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 20)
	seen := map[string]bool{}
	for _, r := range list {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}
