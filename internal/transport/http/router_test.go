package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netspeed-monitor/internal/config"
	"netspeed-monitor/internal/core"
	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/pkg"
)

const testSecret = "0123456789abcdef0123"

func newTestServer(t *testing.T, secret string) (*core.SnapshotStore, *httptest.Server) {
	t.Helper()

	store := core.NewSnapshotStore()
	ws := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, _ := GetSubject(r.Context())
		w.Write([]byte("ws:" + sub))
	})
	s := NewServer(&config.Config{JWTSecret: secret}, store, ws, logger.Discard())

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return store, srv
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTP_Rate_UnavailableBeforeFirstReading(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t, "")

	resp := get(t, srv.URL+"/api/rate", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHTTP_Rate_ReturnsLatestReading(t *testing.T) {
	t.Parallel()

	store, srv := newTestServer(t, "")
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.Present(domain.Reading{Download: "1.0 MB/s", Upload: "0.0 B/s", DownloadBytesPerSecond: 1048576, MeasuredAt: at})

	resp := get(t, srv.URL+"/api/rate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Data domain.Reading `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "1.0 MB/s", body.Data.Download)
	require.Equal(t, 1048576.0, body.Data.DownloadBytesPerSecond)
	require.True(t, at.Equal(body.Data.MeasuredAt))
}

func TestHTTP_JWT_GuardsAPIAndWebsocket(t *testing.T) {
	t.Parallel()

	store, srv := newTestServer(t, testSecret)
	store.Present(domain.Reading{Download: "150 KB/s"})

	require.Equal(t, http.StatusUnauthorized, get(t, srv.URL+"/api/rate", "").StatusCode)
	require.Equal(t, http.StatusUnauthorized, get(t, srv.URL+"/api/rate", "garbage").StatusCode)
	require.Equal(t, http.StatusUnauthorized, get(t, srv.URL+"/ws", "").StatusCode)

	tok, err := pkg.IssueToken(testSecret, "tray", time.Hour, time.Now())
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, get(t, srv.URL+"/api/rate", tok).StatusCode)

	resp := get(t, srv.URL+"/ws?access_token="+tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ws:tray", string(body))
}

func TestHTTP_HealthAndMetricsAreOpen(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t, testSecret)

	require.Equal(t, http.StatusOK, get(t, srv.URL+"/healthz", "").StatusCode)
	require.Equal(t, http.StatusOK, get(t, srv.URL+"/metrics", "").StatusCode)
}
