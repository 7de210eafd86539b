package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersWalletMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Swap the default registry so promauto registers into an inspectable one.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.TransactionsPosted == nil || m.HTTPRequests == nil || m.WalletsCreated == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	// Vec metrics only show up in Gather once a label combination exists.
	m.TransactionsPosted.Inc()
	m.TransactionsRejected.WithLabelValues("insufficient_balance").Inc()
	m.HTTPRequests.WithLabelValues("POST", "/api/v1/wallets/:id/transactions", "201").Inc()
	m.OutboxPublished.Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	registered := make(map[string]bool, len(families))
	for _, mf := range families {
		registered[mf.GetName()] = true
		if !strings.HasPrefix(mf.GetName(), "walletd_") {
			t.Errorf("metric %q does not carry the walletd_ prefix", mf.GetName())
		}
	}

	for _, name := range []string{
		"walletd_transactions_posted_total",
		"walletd_transactions_rejected_total",
		"walletd_wallets_created_total",
		"walletd_wallets_deleted_total",
		"walletd_recompute_duration_seconds",
		"walletd_http_requests_total",
		"walletd_outbox_published_total",
	} {
		if !registered[name] {
			t.Errorf("expected %q to be registered", name)
		}
	}

	if got := testutil.ToFloat64(m.TransactionsRejected.WithLabelValues("insufficient_balance")); got != 1 {
		t.Errorf("expected rejection counter to be 1, got %v", got)
	}
}
