//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/config"
	"github.com/sells-group/leak-calc/internal/leak"
	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/monitoring"
	"github.com/sells-group/leak-calc/internal/report"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:           8080,
		RateLimit:      1000,
		RateBurst:      1000,
		AllowedOrigins: []string{"*"},
	}
}

func buildTestRouter(t *testing.T, sc config.ServerConfig) (http.Handler, *api) {
	t.Helper()
	a := &api{
		engine:  leak.NewEngine(assumptions.Default()),
		metrics: monitoring.NewCollector(),
	}
	return buildRouter(a, sc), a
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestExposureEndpoint(t *testing.T) {
	h, a := buildTestRouter(t, testServerConfig())

	rr := post(t, h, "/v1/exposure", `{"inquiries_weekly":80,"missed_per_10":3,"avg_ticket":4500,"close_rate":0.35}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res model.ExposureResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.InDelta(t, 0.3, res.MissedRate, 1e-9)
	assert.InDelta(t, 24, res.MissedWeekly, 1e-9)
	assert.InDelta(t, 96, res.MissedMonthly, 1e-9)
	assert.InDelta(t, 151200, res.Monthly, 1e-6)
	assert.InDelta(t, 5040, res.Daily, 1e-6)
	assert.InDelta(t, 1814400, res.Yearly, 1e-6)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.Evaluations.WithLabelValues(monitoring.KindExposure)))
}

func TestCockpitEndpoint(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	rr := post(t, h, "/v1/cockpit", `{"inquiries_weekly":80,"missed_per_10":3,"avg_ticket":4500,"close_rate":0.35}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res model.CockpitResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, model.StatusQualified, res.Status)
	assert.Equal(t, model.ModeFloor, res.ExposureMode)
	assert.InDelta(t, 151200, res.MonthlyExposure, 1e-6)
	assert.Empty(t, res.DisqualifyReasons)
}

func TestCockpitEndpoint_Booked(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	rr := post(t, h, "/v1/cockpit", `{"inquiries_weekly":2,"booked":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res model.CockpitResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, model.StatusBooked, res.Status)
}

func TestLeaksEndpoint(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	rr := post(t, h, "/v1/leaks", referenceJSON)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.NotEmpty(t, rep.EvaluationID)
	assert.Equal(t, "Acme HVAC", rep.Business)
	require.NotNil(t, rep.Result)
	assert.InDelta(t, 71508, rep.Result.TotalMonthlyLoss, 1e-6)
	assert.InDelta(t, 858096, rep.Result.TotalAnnualLoss, 1e-6)
	require.NotEmpty(t, rep.Result.Leaks)
	assert.Equal(t, 1, rep.Result.Leaks[0].Rank)
}

func TestLeaksEndpoint_UniqueEvaluationIDs(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		rr := post(t, h, "/v1/leaks", referenceJSON)
		require.Equal(t, http.StatusOK, rr.Code)
		var rep report.Report
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
		ids[rep.EvaluationID] = true
	}
	assert.Len(t, ids, 3)
}

func TestEndpoints_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/v1/leaks", "not json"},
		{"array body", "/v1/leaks", "[1,2]"},
		{"null body", "/v1/exposure", "null"},
		{"unknown field", "/v1/leaks", `{"monthly_inquiries":10,"color":"red"}`},
		{"wrong type", "/v1/cockpit", `{"inquiries_weekly":"eighty"}`},
		{"wrong bool type", "/v1/cockpit", `{"booked":"yes"}`},
	}

	h, _ := buildTestRouter(t, testServerConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "invalid input", body.Error)
			assert.NotEmpty(t, body.Problems)
		})
	}
}

func TestEndpoints_NullMeansZero(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	rr := post(t, h, "/v1/leaks", `{"monthly_inquiries":100,"appointments_booked":null,"has_dormant_leads":null,"response_time":null}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = post(t, h, "/v1/cockpit", `{"inquiries_weekly":80,"missed_per_10":3,"avg_ticket":4500,"close_rate":null,"booked":null}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res model.CockpitResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, model.StatusDisqualified, res.Status)
	assert.Contains(t, res.DisqualifyReasons, "low_exposure")
}

func TestEndpoints_MethodNotAllowed(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/v1/leaks", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRateLimit_Rejects(t *testing.T) {
	sc := testServerConfig()
	sc.RateLimit = 0.001
	sc.RateBurst = 1
	h, a := buildTestRouter(t, sc)

	body := `{"inquiries_weekly":80,"missed_per_10":3,"avg_ticket":4500,"close_rate":0.35}`
	first := post(t, h, "/v1/exposure", body)
	assert.Equal(t, http.StatusOK, first.Code)

	second := post(t, h, "/v1/exposure", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.RateLimited))

	// Health is outside the limited group.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	sc := testServerConfig()
	sc.RateLimit = 0
	sc.RateBurst = 0
	h, _ := buildTestRouter(t, sc)

	for i := 0; i < 5; i++ {
		rr := post(t, h, "/v1/exposure", `{}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	sc := testServerConfig()
	sc.AllowedOrigins = []string{"https://app.example.com"}
	h, _ := buildTestRouter(t, sc)

	req := httptest.NewRequest(http.MethodOptions, "/v1/leaks", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := buildTestRouter(t, testServerConfig())

	post(t, h, "/v1/leaks", referenceJSON)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `leakcalc_evaluations_total{kind="leaks"} 1`)
	assert.Contains(t, rr.Body.String(), "leakcalc_leaks_found_total")
}

func TestResolvePort(t *testing.T) {
	assert.Equal(t, 9090, resolvePort(9090, 8080))
	assert.Equal(t, 8080, resolvePort(0, 8080))
	assert.Equal(t, 0, resolvePort(0, 0))
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h, _ := buildTestRouter(t, testServerConfig())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(ctx, h, port) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
