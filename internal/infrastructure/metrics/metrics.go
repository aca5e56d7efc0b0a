package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Deposit metrics
	DepositsSubmitted prometheus.Counter
	DepositsVerified  prometheus.Counter
	DepositsRejected  prometheus.Counter
	DepositAmount     prometheus.Histogram

	// Policy metrics
	PoliciesCreated     prometheus.Counter
	PoliciesDeleted     prometheus.Counter
	PolicyResolutions   *prometheus.CounterVec
	PolicyCacheHitRatio prometheus.Gauge

	// Fund metrics
	FundsCreated prometheus.Counter
	FundBalance  *prometheus.GaugeVec

	// Reminder metrics
	RemindersSent    prometheus.Counter
	ReminderSweepDur prometheus.Histogram

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Activity metrics
	ActivityLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_transfers_created_total",
			Help: "Total number of fund transfers created",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "esusu_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "esusu_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		DepositsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_deposits_submitted_total",
			Help: "Total number of deposits submitted",
		}),
		DepositsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_deposits_verified_total",
			Help: "Total number of deposits verified",
		}),
		DepositsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_deposits_rejected_total",
			Help: "Total number of deposits rejected",
		}),
		DepositAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "esusu_deposit_amount",
			Help:    "Deposit amounts",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000},
		}),

		PoliciesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_policies_created_total",
			Help: "Total number of deposit policies created",
		}),
		PoliciesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_policies_deleted_total",
			Help: "Total number of deposit policies deleted",
		}),
		PolicyResolutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_policy_resolutions_total",
				Help: "Total policy resolutions by source",
			},
			[]string{"source"},
		),
		PolicyCacheHitRatio: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "esusu_policy_cache_hit_ratio",
			Help: "Hit ratio of the effective-policy cache",
		}),

		FundsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_funds_created_total",
			Help: "Total number of funds created",
		}),
		FundBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "esusu_fund_balance",
				Help: "Current fund balance",
			},
			[]string{"fund_id", "currency"},
		),

		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esusu_reminders_sent_total",
			Help: "Total number of deposit reminders sent",
		}),
		ReminderSweepDur: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "esusu_reminder_sweep_duration_seconds",
			Help:    "Duration of reminder sweep runs",
			Buckets: prometheus.DefBuckets,
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "esusu_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "esusu_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		ActivityLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esusu_activity_logs_total",
				Help: "Total activity log entries created",
			},
			[]string{"action"},
		),
	}
}
