package database

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exports database/sql pool statistics on every scrape
type PoolCollector struct {
	stats func() sql.DBStats

	maxOpen      *prometheus.Desc
	open         *prometheus.Desc
	inUse        *prometheus.Desc
	idle         *prometheus.Desc
	waitCount    *prometheus.Desc
	waitDuration *prometheus.Desc
	idleClosed   *prometheus.Desc
	lifeClosed   *prometheus.Desc
}

// NewPoolCollector creates a collector reading from stats
func NewPoolCollector(stats func() sql.DBStats) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("sauki_db_"+name, help, nil, nil)
	}
	return &PoolCollector{
		stats:        stats,
		maxOpen:      desc("max_open_connections", "Maximum number of open connections to the database."),
		open:         desc("open_connections", "The number of established connections both in use and idle."),
		inUse:        desc("in_use_connections", "The number of connections currently in use."),
		idle:         desc("idle_connections", "The number of idle connections."),
		waitCount:    desc("wait_count_total", "The total number of connections waited for."),
		waitDuration: desc("wait_duration_seconds_total", "The total time blocked waiting for a new connection."),
		idleClosed:   desc("max_idle_closed_total", "The total number of connections closed due to SetMaxIdleConns."),
		lifeClosed:   desc("max_lifetime_closed_total", "The total number of connections closed due to SetConnMaxLifetime."),
	}
}

// PoolCollector returns a collector for the connected pool
func (m *Manager) PoolCollector() (*PoolCollector, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, err
	}
	return NewPoolCollector(sqlDB.Stats), nil
}

// Describe implements prometheus.Collector
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxOpen
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitCount
	ch <- c.waitDuration
	ch <- c.idleClosed
	ch <- c.lifeClosed
}

// Collect implements prometheus.Collector
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.maxOpen, prometheus.GaugeValue, float64(s.MaxOpenConnections))
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(s.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(s.WaitCount))
	ch <- prometheus.MustNewConstMetric(c.waitDuration, prometheus.CounterValue, s.WaitDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.idleClosed, prometheus.CounterValue, float64(s.MaxIdleClosed))
	ch <- prometheus.MustNewConstMetric(c.lifeClosed, prometheus.CounterValue, float64(s.MaxLifetimeClosed))
}
