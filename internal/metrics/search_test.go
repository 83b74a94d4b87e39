package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveResults_CountsEmpty(t *testing.T) {
	before := testutil.ToFloat64(EngineEmptyResultsTotal.WithLabelValues("suggest"))

	ObserveResults("suggest", 3)
	ObserveResults("suggest", 0)

	if got := testutil.ToFloat64(EngineEmptyResultsTotal.WithLabelValues("suggest")) - before; got != 1 {
		t.Errorf("empty results = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(EngineResultsReturned); n < 1 {
		t.Errorf("histogram series = %d", n)
	}
}

func TestRegisterEngineAndStoreMetrics_Idempotent(t *testing.T) {
	RegisterEngineMetrics()
	RegisterEngineMetrics()
	RegisterStoreMetrics()
	RegisterStoreMetrics()
}
