// Package metrics exposes the Prometheus counters and gauges the core
// maintains: cumulative per-session transfer counters, active session
// count, and physics tick duration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds every metric the core registers. Construct once at
// startup with NewCollector and share it across sessions and the
// driver.
type Collector struct {
	BytesSent      *prometheus.CounterVec
	FramesSent     *prometheus.CounterVec
	SessionsActive prometheus.Gauge
	TickDuration   prometheus.Histogram
}

// NewCollector builds and registers every metric against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		BytesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forcegraph_session_bytes_sent_total",
			Help: "Cumulative bytes sent per session, labeled by session id.",
		}, []string{"session"}),
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forcegraph_session_frames_sent_total",
			Help: "Cumulative binary physics frames sent per session, labeled by session id.",
		}, []string{"session"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forcegraph_sessions_active",
			Help: "Number of streaming sessions currently established.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forcegraph_physics_tick_duration_seconds",
			Help:    "Wall-clock duration of one physics driver tick.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.BytesSent, c.FramesSent, c.SessionsActive, c.TickDuration)
	return c
}

// ObserveTick records the duration of one completed driver tick.
func (c *Collector) ObserveTick(d time.Duration) {
	if c == nil {
		return
	}
	c.TickDuration.Observe(d.Seconds())
}

// RecordFrame accounts for one binary frame sent on a session.
func (c *Collector) RecordFrame(sessionID string, bytes int) {
	if c == nil {
		return
	}
	c.FramesSent.WithLabelValues(sessionID).Inc()
	c.BytesSent.WithLabelValues(sessionID).Add(float64(bytes))
}

// SessionOpened increments the active-session gauge.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.SessionsActive.Inc()
}

// SessionClosed decrements the active-session gauge.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.SessionsActive.Dec()
}
