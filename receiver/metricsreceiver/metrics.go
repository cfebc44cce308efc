package metricsreceiver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/philipp01105/nlogcast/core"
)

// Receiver counts events in Prometheus metrics
type Receiver struct {
	messagesTotal *prometheus.CounterVec
	lastElapsed   prometheus.Gauge
}

// New creates a metrics receiver and registers its collectors with reg.
// A nil reg falls back to prometheus.DefaultRegisterer. The series count of
// nlogcast_messages_total grows with the number of distinct senders.
func New(reg prometheus.Registerer) *Receiver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Receiver{
		messagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nlogcast_messages_total",
				Help: "Total number of log messages received, by level and sender",
			},
			[]string{"level", "sender"},
		),
		lastElapsed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nlogcast_last_message_elapsed_seconds",
				Help: "Logger uptime in seconds at the most recent log message",
			},
		),
	}
}

// OnLogMessage increments the per-level, per-sender counter
func (r *Receiver) OnLogMessage(sender, _ string, level core.Level, elapsed float64) {
	r.messagesTotal.WithLabelValues(level.String(), sender).Inc()
	r.lastElapsed.Set(elapsed)
}
