package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMetrics_RecordRefresh(t *testing.T) {
	m := New()

	m.RecordRefresh("judging", OutcomeOK)
	m.RecordRefresh("judging", OutcomeOK)
	m.RecordRefresh("judging", OutcomeSuperseded)

	out := scrape(t, m)
	if !strings.Contains(out, `judgedesk_provider_refreshes_total{outcome="ok",provider="judging"} 2`) {
		t.Errorf("expected 2 ok refreshes, got:\n%s", out)
	}
	if !strings.Contains(out, `judgedesk_provider_refreshes_total{outcome="superseded",provider="judging"} 1`) {
		t.Errorf("expected 1 superseded refresh, got:\n%s", out)
	}
}

func TestMetrics_CountersIgnoreNonPositive(t *testing.T) {
	m := New()

	m.RecordSanitized("invalid", 0)
	m.RecordSanitized("invalid", 3)
	m.RecordRejected("scores", -1)

	out := scrape(t, m)
	if !strings.Contains(out, `judgedesk_scores_sanitized_total{reason="invalid"} 3`) {
		t.Errorf("expected 3 sanitized, got:\n%s", out)
	}
	if strings.Contains(out, `judgedesk_remote_records_rejected_total{`) {
		t.Error("negative counts must not create a series")
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.RecordRefresh("judging", OutcomeError)
	m.ObserveRemote("progress", "200", time.Second)
	m.RecordRejected("scores", 1)
	m.RecordSanitized("invalid", 1)
	m.SetWSClients(2)

	if m.Registry() != nil {
		t.Error("expected nil registry")
	}
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.SetWSClients(4)
	m.ObserveRemote("progress", "200", 20*time.Millisecond)

	out := scrape(t, m)
	if !strings.Contains(out, "judgedesk_websocket_clients 4") {
		t.Errorf("expected gauge in output, got:\n%s", out)
	}
	if !strings.Contains(out, `judgedesk_remote_request_duration_seconds_count{endpoint="progress",status="200"} 1`) {
		t.Errorf("expected histogram sample, got:\n%s", out)
	}
}
