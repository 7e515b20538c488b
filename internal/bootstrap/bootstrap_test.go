package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/bearnet/internal/config"
	"github.com/yigit/bearnet/internal/db"
	appMiddleware "github.com/yigit/bearnet/internal/middleware"
	"github.com/yigit/bearnet/internal/seed"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.Mode = "test"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = db.MemoryPath
	cfg.Logging.Level = "error"
	return cfg
}

func setupApp(t *testing.T, cfg *config.Config) (*gin.Engine, *Dependencies) {
	t.Helper()
	database, err := SetupDatabase(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(database.Close)

	deps := BuildDependencies(database.Repositories(), zerolog.Nop())
	return SetupRouter(cfg, deps, zerolog.Nop()), deps
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoadConfigAndSetupLogger_FromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", db.MemoryPath)
	t.Setenv("LOG_LEVEL", "error")

	cfg, _, err := LoadConfigAndSetupLogger()
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, db.MemoryPath, cfg.Database.Path)
}

func TestLoadConfigAndSetupLogger_InvalidConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_DRIVER", "mysql")

	_, _, err := LoadConfigAndSetupLogger()
	assert.Error(t, err)
}

func TestSetupDatabase_SeedsDefaultCourses(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Seed = true

	router, _ := setupApp(t, cfg)

	w := serve(router, http.MethodGet, "/courses", "")
	require.Equal(t, http.StatusOK, w.Code)
	for _, title := range seed.DefaultCourseTitles {
		assert.Contains(t, w.Body.String(), title)
	}
}

func TestRouter_EnrollmentFlow(t *testing.T) {
	router, _ := setupApp(t, testConfig())

	require.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/students", `{"name":"Ada"}`).Code)
	require.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/courses", `{"title":"Algorithms"}`).Code)

	w := serve(router, http.MethodPost, "/students/1/courses/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"courses":["Algorithms"]`)

	w = serve(router, http.MethodGet, "/courses", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"studentNames":["Ada"]`)

	w = serve(router, http.MethodPost, "/students/1/courses/7", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SRV_001"`)

	w = serve(router, http.MethodGet, "/students", "")
	assert.Contains(t, w.Body.String(), `"courses":["Algorithms"]`)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _ := setupApp(t, testConfig())
	serve(router, http.MethodPost, "/students", `{"name":"Ada"}`)
	serve(router, http.MethodPost, "/courses", `{"title":"Algorithms"}`)
	serve(router, http.MethodPost, "/students/1/courses/1", "")

	w := serve(router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "bearnet_enrollments_total 1")
	assert.Contains(t, body, `bearnet_http_requests_total{method="POST",route="/students",status="201"} 1`)
	assert.Contains(t, body, `route="/students/:studentId/courses/:courseId"`)
}

func TestRouter_AmbientEndpoints(t *testing.T) {
	router, _ := setupApp(t, testConfig())

	w := serve(router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong","status":"success"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(appMiddleware.RequestIDHeader))

	w = serve(router, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BearNet API")
	assert.Contains(t, w.Body.String(), "/students/{studentId}/courses/{courseId}")
}

func TestRouter_CORS(t *testing.T) {
	router, _ := setupApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set("Origin", "http://frontend.test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"http://a.test", "*"})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	listed := corsConfig([]string{"http://a.test"})
	assert.False(t, listed.AllowAllOrigins)
	assert.Equal(t, []string{"http://a.test"}, listed.AllowOrigins)
}
