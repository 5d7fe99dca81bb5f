package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is the subset of pgxpool statistics exported as metrics.
type PoolStats struct {
	AcquiredConns   int32
	IdleConns       int32
	TotalConns      int32
	MaxConns        int32
	AcquireCount    int64
	AcquireDuration time.Duration
	EmptyAcquires   int64
}

// StatsFromPool snapshots the statistics of a live pool.
func StatsFromPool(pool *pgxpool.Pool) func() PoolStats {
	return func() PoolStats {
		s := pool.Stat()
		return PoolStats{
			AcquiredConns:   s.AcquiredConns(),
			IdleConns:       s.IdleConns(),
			TotalConns:      s.TotalConns(),
			MaxConns:        s.MaxConns(),
			AcquireCount:    s.AcquireCount(),
			AcquireDuration: s.AcquireDuration(),
			EmptyAcquires:   s.EmptyAcquireCount(),
		}
	}
}

// PoolStatsCollector implements prometheus.Collector for connection pool metrics.
type PoolStatsCollector struct {
	stats   func() PoolStats
	service string

	acquiredConns   *prometheus.Desc
	idleConns       *prometheus.Desc
	totalConns      *prometheus.Desc
	maxConns        *prometheus.Desc
	acquireCount    *prometheus.Desc
	acquireDuration *prometheus.Desc
	emptyAcquires   *prometheus.Desc
}

// NewPoolStatsCollector creates a collector that reads stats on every scrape.
func NewPoolStatsCollector(stats func() PoolStats, service string) *PoolStatsCollector {
	labels := []string{"service"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(name, help, labels, nil)
	}
	return &PoolStatsCollector{
		stats:           stats,
		service:         service,
		acquiredConns:   desc("db_pool_acquired_connections", "Number of currently acquired connections"),
		idleConns:       desc("db_pool_idle_connections", "Number of currently idle connections"),
		totalConns:      desc("db_pool_total_connections", "Total number of connections in the pool"),
		maxConns:        desc("db_pool_max_connections", "Maximum number of connections allowed"),
		acquireCount:    desc("db_pool_acquire_count_total", "Total number of connection acquires"),
		acquireDuration: desc("db_pool_acquire_duration_seconds_total", "Total time spent acquiring connections in seconds"),
		emptyAcquires:   desc("db_pool_empty_acquire_count_total", "Total number of acquires that had to wait for a connection"),
	}
}

// Describe sends the descriptors of all metrics to the provided channel.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredConns
	ch <- c.idleConns
	ch <- c.totalConns
	ch <- c.maxConns
	ch <- c.acquireCount
	ch <- c.acquireDuration
	ch <- c.emptyAcquires
}

// Collect reads current pool statistics and sends them as Prometheus metrics.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()

	ch <- prometheus.MustNewConstMetric(c.acquiredConns, prometheus.GaugeValue, float64(s.AcquiredConns), c.service)
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(s.IdleConns), c.service)
	ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(s.TotalConns), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(s.MaxConns), c.service)
	ch <- prometheus.MustNewConstMetric(c.acquireCount, prometheus.CounterValue, float64(s.AcquireCount), c.service)
	ch <- prometheus.MustNewConstMetric(c.acquireDuration, prometheus.CounterValue, s.AcquireDuration.Seconds(), c.service)
	ch <- prometheus.MustNewConstMetric(c.emptyAcquires, prometheus.CounterValue, float64(s.EmptyAcquires), c.service)
}

// RegisterPoolMetrics registers a pool collector with reg. Registering the
// same service twice is not an error.
func RegisterPoolMetrics(reg prometheus.Registerer, stats func() PoolStats, service string) error {
	err := reg.Register(NewPoolStatsCollector(stats, service))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}
