// Package telemetry provides the Prometheus metrics of the bot.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// CommandsTotal counts handled commands by name and outcome
	CommandsTotal *prometheus.CounterVec

	// PullsTotal counts reaction pulls by result
	PullsTotal *prometheus.CounterVec

	// SessionsActive tracks running blind bag sessions
	SessionsActive prometheus.Gauge

	// DirectMessageFailures counts DMs that could not be delivered
	DirectMessageFailures prometheus.Counter
)

// Outcomes recorded on CommandsTotal
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blindbag_commands_total",
			Help: "Number of bot commands handled",
		}, []string{"command", "outcome"})
		PullsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blindbag_pulls_total",
			Help: "Number of reaction pulls by result",
		}, []string{"result"})
		SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "blindbag_sessions_active",
			Help: "Current number of running blind bag sessions",
		})
		DirectMessageFailures = promauto.NewCounter(prometheus.CounterOpts{
			Name: "blindbag_dm_failures_total",
			Help: "Number of direct messages that could not be delivered",
		})
	})
}

// RecordCommand counts a handled command
func RecordCommand(command, outcome string) {
	if CommandsTotal != nil {
		CommandsTotal.WithLabelValues(command, outcome).Inc()
	}
}

// RecordPull counts a pull result
func RecordPull(result string) {
	if PullsTotal != nil {
		PullsTotal.WithLabelValues(result).Inc()
	}
}

// SessionStarted increments the active session gauge
func SessionStarted() {
	if SessionsActive != nil {
		SessionsActive.Inc()
	}
}

// SessionEnded decrements the active session gauge
func SessionEnded() {
	if SessionsActive != nil {
		SessionsActive.Dec()
	}
}

// RecordDirectMessageFailure counts an undeliverable DM
func RecordDirectMessageFailure() {
	if DirectMessageFailures != nil {
		DirectMessageFailures.Inc()
	}
}
