package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOracleCountsOutcomes(t *testing.T) {
	beforeOK := testutil.ToFloat64(OracleCalls.WithLabelValues("test_mode", OutcomeSuccess))
	beforeFail := testutil.ToFloat64(OracleCalls.WithLabelValues("test_mode", OutcomeUnavailable))

	ObserveOracle("test_mode", true, 10*time.Millisecond)
	ObserveOracle("test_mode", false, 10*time.Millisecond)
	ObserveOracle("test_mode", false, 10*time.Millisecond)

	if got := testutil.ToFloat64(OracleCalls.WithLabelValues("test_mode", OutcomeSuccess)) - beforeOK; got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(OracleCalls.WithLabelValues("test_mode", OutcomeUnavailable)) - beforeFail; got != 2 {
		t.Fatalf("expected 2 unavailable, got %v", got)
	}
}

func TestObserveFallback(t *testing.T) {
	before := testutil.ToFloat64(FallbacksServed.WithLabelValues("test_component"))
	ObserveFallback("test_component")
	if got := testutil.ToFloat64(FallbacksServed.WithLabelValues("test_component")) - before; got != 1 {
		t.Fatalf("expected 1 fallback, got %v", got)
	}
}
