package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/config"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Server.Host = "127.0.0.1"
	cfg.Server.PortHTTP = 0
	cfg.Storage.Driver = driver
	cfg.Storage.DSN = filepath.Join(t.TempDir(), "notes.db")
	return cfg
}

func newTestServer(t *testing.T, driver string) (*Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	s, err := NewServer(testContext(t), testConfig(t, driver), logger)
	require.NoError(t, err)
	return s, hook
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(testContext(t), &config.ConfigStorage{Driver: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestNewServer_ServesAPI(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverMemory} {
		t.Run(driver, func(t *testing.T) {
			s, hook := newTestServer(t, driver)
			t.Cleanup(func() { _ = s.Shutdown() })

			req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title": "shopping", "text": "milk"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, req)

			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

			req = httptest.NewRequest(http.MethodGet, "/api/notes/shopping", nil)
			rec = httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"text":"milk"`)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, "/api/notes/:title", entry.Data["route"])
			assert.Equal(t, http.StatusOK, entry.Data["status"])
		})
	}
}

func TestNewServer_RecoversFromPanic(t *testing.T) {
	s, hook := newTestServer(t, DriverMemory)
	t.Cleanup(func() { _ = s.Shutdown() })
	s.Echo.GET("/boom", func(c echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
}

func TestNewServer_BodyLimit(t *testing.T) {
	cfg := testConfig(t, DriverMemory)
	cfg.Server.BodyLimit = "16B"
	logger, _ := test.NewNullLogger()
	s, err := NewServer(testContext(t), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title": "a note with a long body"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	s, _ := newTestServer(t, DriverSQLite)
	errChan := s.Start()

	var addr string
	require.Eventually(t, func() bool {
		if a := s.Echo.ListenerAddr(); a != nil {
			addr = a.String()
			return true
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Shutdown())

	select {
	case err := <-errChan:
		t.Fatalf("unexpected server error: %v", err)
	default:
	}
}

func TestNewServer_SwaggerToggle(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		cfg := testConfig(t, DriverMemory)
		cfg.Swagger.Enabled = enabled
		logger, _ := test.NewNullLogger()
		s, err := NewServer(testContext(t), cfg, logger)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger.json", nil))

		if enabled {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}
		require.NoError(t, s.Shutdown())
	}
}

func TestNewServer_TracingExportsRequestSpans(t *testing.T) {
	// Arrange
	cfg := testConfig(t, DriverMemory)
	cfg.Tracing.Enabled = true
	logger, hook := test.NewNullLogger()
	s, err := NewServer(testContext(t), cfg, logger)
	require.NoError(t, err)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/api/notes/ghost", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")

	// Act
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	// Shutdown сбрасывает накопленные span'ы экспортеру
	require.NoError(t, s.Shutdown())

	// Assert
	require.Equal(t, http.StatusNotFound, rec.Code)

	var span log.Fields
	for _, entry := range hook.AllEntries() {
		if entry.Message == "span ended" {
			span = entry.Data
		}
	}
	require.NotNil(t, span, "request span must be exported")
	assert.Equal(t, "GET /api/notes/:title", span["span"])
	assert.Equal(t, "server", span["kind"])
	assert.Equal(t, traceID, span["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", span["parent_span_id"])
	assert.Equal(t, "404", span["http.response.status_code"])
}

func TestNewServer_TracingDisabledExportsNothing(t *testing.T) {
	s, hook := newTestServer(t, DriverMemory)

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, s.Shutdown())

	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, "span ended", entry.Message)
	}
}

func TestNewServer_UnknownTracingExporter(t *testing.T) {
	cfg := testConfig(t, DriverMemory)
	cfg.Tracing.Enabled = true
	cfg.Tracing.Exporter = "zipkin"
	logger, _ := test.NewNullLogger()

	_, err := NewServer(testContext(t), cfg, logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "zipkin")
}

// testContext stands in for testing.T.Context (Go 1.24+): a context that is
// cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
