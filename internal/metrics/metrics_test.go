package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewCollector_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(403)
	c.RecordRequestLatency(15 * time.Millisecond)
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordSessionRevoked()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := make(map[string]bool)
	for _, f := range families {
		found[f.GetName()] = true
	}

	want := []string{
		"quaintstore_http_status_total",
		"quaintstore_request_latency_seconds",
		"quaintstore_login_success_total",
		"quaintstore_login_fail_total",
		"quaintstore_sessions_revoked_total",
	}
	for _, name := range want {
		if !found[name] {
			t.Errorf("metric %q not registered", name)
		}
	}
}

func TestCollector_HTTPStatusLabeledByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(403)
	c.RecordHTTPStatus(403)
	c.RecordHTTPStatus(204)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, f := range families {
		if f.GetName() != "quaintstore_http_status_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			code := ""
			for _, l := range m.GetLabel() {
				if l.GetName() == "status_code" {
					code = l.GetValue()
				}
			}
			switch code {
			case "403":
				if m.GetCounter().GetValue() != 2 {
					t.Errorf("403 count = %v, want 2", m.GetCounter().GetValue())
				}
			case "204":
				if m.GetCounter().GetValue() != 1 {
					t.Errorf("204 count = %v, want 1", m.GetCounter().GetValue())
				}
			}
		}
		return
	}
	t.Fatal("quaintstore_http_status_total not found")
}

func TestSetupMetricsRoute_ServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLoginSuccess()

	handler := SetupMetricsRoute(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "quaintstore_login_success_total 1") {
		t.Errorf("scrape output should contain login success counter, got:\n%s", body)
	}
}

func TestSetupMetricsRoute_UnknownPath_Returns404(t *testing.T) {
	handler := SetupMetricsRoute(prometheus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/other", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}
