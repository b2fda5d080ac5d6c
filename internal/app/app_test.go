package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Order ID,Platform,Order Value (INR),Delivery Time (Minutes),Product Category,Service Rating
ORD-001,Blinkit,450.50,12,Grocery,4.5
ORD-002,Zepto,199.00,9,Snacks,4.0
`

func testApplication(t *testing.T) *Application {
	t.Helper()

	dir := t.TempDir()
	dataFile := filepath.Join(dir, "delivery.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(sampleCSV), 0o644))

	t.Setenv("DELIVERY_LOGGING_OUTPUT", "stdout")
	t.Setenv("DELIVERY_LOGGING_LEVEL", "error")
	t.Setenv("DELIVERY_PATHS_REPORTS_DIR", filepath.Join(dir, "reports"))
	t.Setenv("DELIVERY_PATHS_LOGS_DIR", filepath.Join(dir, "logs"))

	app, err := NewApplication(Options{DataFile: dataFile})
	require.NoError(t, err)
	return app
}

func TestNewApplication(t *testing.T) {
	app := testApplication(t)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.Equal(t, 2, app.Dataset.Len())
}

func TestNewApplicationMissingDataFile(t *testing.T) {
	t.Setenv("DELIVERY_LOGGING_OUTPUT", "stdout")
	t.Setenv("DELIVERY_PATHS_REPORTS_DIR", filepath.Join(t.TempDir(), "reports"))
	t.Setenv("DELIVERY_PATHS_LOGS_DIR", filepath.Join(t.TempDir(), "logs"))

	app, err := NewApplication(Options{DataFile: filepath.Join(t.TempDir(), "nope.csv")})
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "dataset")
}

func TestRouterServesDashboard(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Delivery Analytics")
}

func TestRouterServesAggregates(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/aggregates", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterServesMetrics(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deliverypulse_")
}

func TestRouterNotFoundIsProblemJSON(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}
