package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterFeedMetrics_Idempotent(t *testing.T) {
	RegisterFeedMetrics()
	RegisterFeedMetrics()

	FeedEnrichmentFailuresTotal.WithLabelValues("verification").Inc()
	if v := testutil.ToFloat64(FeedEnrichmentFailuresTotal.WithLabelValues("verification")); v < 1 {
		t.Errorf("expected counter >= 1, got %v", v)
	}

	// already registered collectors are rejected by the default registry
	err := prometheus.Register(FeedStageDuration)
	if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
		t.Errorf("expected AlreadyRegisteredError, got %v", err)
	}
}
