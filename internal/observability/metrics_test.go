package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/spec-kit/event-status-service/internal/domain"
)

func TestMetricsRecordsRequestsAndStatuses(t *testing.T) {
	m := NewMetrics("test")
	m.RecordRequest("/groups/:groupId/events/last/status", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/groups/:groupId/events/last/status", "GET", 200, 5*time.Millisecond)
	m.RecordError("/groups/:groupId/events", "POST", "VALIDATION_FAILED")
	m.RecordStatusCheck(domain.EventStatusInReview)

	if got := testutil.ToFloat64(m.requestCount.WithLabelValues("/groups/:groupId/events/last/status", "GET", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.errorCount.WithLabelValues("/groups/:groupId/events", "POST", "VALIDATION_FAILED")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if got := testutil.ToFloat64(m.statusChecks.WithLabelValues("in_review")); got != 1 {
		t.Fatalf("expected 1 status check, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordStatusCheck(domain.EventStatusClosed)
	if m.Registry() != nil {
		t.Fatalf("expected nil registry")
	}
	if m.Handler() == nil {
		t.Fatalf("expected a fallback handler")
	}
}
