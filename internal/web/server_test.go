package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/fifastats/internal/config"
	"github.com/JonMunkholm/fifastats/internal/core"
)

func playerLine(name, age, nation, overall, pos string) string {
	fields := make([]string, 62)
	fields[1] = name
	fields[2] = age
	fields[4] = nation
	fields[6] = overall
	fields[61] = pos
	return strings.Join(fields, ",")
}

func writeDataset(t *testing.T, dir, name string, rows ...string) {
	t.Helper()
	lines := append([]string{"ID,Name,Age", "header 2"}, rows...)
	lines = append(lines, "trailer")
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

type testEnv struct {
	server  *Server
	limiter *core.BuildLimiter
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	writeDataset(t, dir, "FIFA20.csv",
		playerLine("A", "25", "Spain", "80", "ST"),
		playerLine("<b>B</b>", "30", "France", "70", "GK"),
	)
	writeDataset(t, dir, "bad.csv", playerLine("X", "old", "Spain", "80", "ST"))

	cfg := &config.Config{
		Data:   config.DataConfig{Files: []string{"FIFA20.csv", "bad.csv", "missing.csv"}, Labels: []string{"FIFA 20", "Bad", "Missing"}, Dir: dir},
		CSV:    config.CSVConfig{Splitter: "comma", SkipBOM: true},
		Load:   config.LoadConfig{DimensionCache: true, MaxConcurrent: 2},
		Roster: config.RosterConfig{FirstRow: 3, NameColumn: 2, AgeColumn: 3, NationalityColumn: 5, OverallColumn: 7, PositionColumn: 62},
	}
	svc, err := core.NewService(cfg)
	require.NoError(t, err)

	limiter := core.NewBuildLimiter(1, 50*time.Millisecond)
	srv := NewServer(svc, limiter, config.ServerConfig{RequestTimeout: 5 * time.Second})
	return &testEnv{server: srv, limiter: limiter}
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 1, body.Builds.MaxConcurrent)
	require.NotNil(t, body.Cache)
	assert.Equal(t, 0, body.Cache.Hits)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestListDatasets(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/api/datasets")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []core.DatasetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, "FIFA 20", body[0].Name)
}

func TestDatasetReport(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/api/datasets/FIFA%2020")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Name    string `json:"name"`
		Players int    `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "FIFA 20", body.Name)
	assert.Equal(t, 2, body.Players)
}

func TestDatasetReport_MissingFileIsEmpty(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/api/datasets/Missing")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Players   int    `json:"players"`
		LoadError string `json:"load_error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Players)
	assert.Contains(t, body.LoadError, "missing.csv")
}

func TestDatasetReport_Unknown(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/api/datasets/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DS001", decodeError(t, rec).Code)
}

func TestDatasetReport_ConversionFailure(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/api/datasets/Bad")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "CONV001", body.Code)
	assert.NotContains(t, rec.Body.String(), "bad.csv")
}

func TestRunReport_ConversionFailureAborts(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/api/run")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "CONV001", decodeError(t, rec).Code)
}

func TestBusy(t *testing.T) {
	env := newTestServer(t)
	require.NoError(t, env.limiter.Acquire(context.Background()))
	defer env.limiter.Release()

	rec := env.get(t, "/api/datasets/FIFA%2020")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SRV001", decodeError(t, rec).Code)
	assert.Equal(t, "5", rec.Header().Get("Retry-After"))
}

func TestDatasetPage_EscapesHTML(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/datasets/FIFA%2020")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>FIFA 20</h2>")
	assert.Contains(t, body, "&lt;b&gt;B&lt;/b&gt;")
	assert.NotContains(t, body, "<b>B</b>")
}

func TestDatasetPage_UnknownRendersAlert(t *testing.T) {
	env := newTestServer(t)
	rec := env.get(t, "/datasets/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `role="alert"`)
	assert.Contains(t, rec.Body.String(), "DS001")
}

func TestServeAndShutdown(t *testing.T) {
	env := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- env.server.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, env.server.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestShutdownWithoutStart(t *testing.T) {
	env := newTestServer(t)
	assert.NoError(t, env.server.Shutdown(context.Background()))
}
