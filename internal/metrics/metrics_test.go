package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAndReject(t *testing.T) {
	m := New()
	m.Observe(KindDetailed, 8.2)
	m.Observe(KindDetailed, 3.1)
	m.Reject(KindSimple)

	if got := testutil.ToFloat64(m.calculations.WithLabelValues(KindDetailed, OutcomeOK)); got != 2 {
		t.Fatalf("detailed ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.calculations.WithLabelValues(KindSimple, OutcomeInvalid)); got != 1 {
		t.Fatalf("simple invalid = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Observe(KindSimple, 1)
	m.Reject(KindSimple)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Observe(KindSimple, 6.75)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `heizlast_calculations_total{kind="simple",outcome="ok"} 1`) {
		t.Fatalf("counter missing from output:\n%s", body)
	}
}
