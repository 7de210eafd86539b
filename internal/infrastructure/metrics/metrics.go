package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsPosted   prometheus.Counter
	TransactionsRejected *prometheus.CounterVec
	TransactionAmount    prometheus.Histogram
	TransactionDuration  prometheus.Histogram

	// Wallet metrics
	WalletsCreated    prometheus.Counter
	WalletsDeleted    prometheus.Counter
	RecomputeDuration prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished     prometheus.Counter
	OutboxPublishErrors prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_transactions_posted_total",
			Help: "Total number of transactions posted",
		}),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_transactions_rejected_total",
				Help: "Total number of rejected transactions by reason",
			},
			[]string{"reason"},
		),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_transaction_amount",
			Help:    "Absolute transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransactionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_transaction_duration_seconds",
			Help:    "Duration of transaction posting",
			Buckets: prometheus.DefBuckets,
		}),

		// Wallet metrics
		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		WalletsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallets_deleted_total",
			Help: "Total number of wallets deleted",
		}),
		RecomputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_recompute_duration_seconds",
			Help:    "Duration of balance recomputation",
			Buckets: prometheus.DefBuckets,
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletd_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Outbox metrics
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_outbox_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_outbox_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),
	}
}
