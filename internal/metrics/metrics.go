// Package metrics collects and exposes Prometheus metrics for the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface handlers and services record through.
type Recorder interface {
	RecordUpdate(kind string)
	RecordProposal()
	RecordDecision(status string)
	RecordRegistration(outcome string)
	RecordExport(format string)
	RecordFanoutFailure()
	SetHalted(halted bool)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	updates       *prometheus.CounterVec
	proposals     prometheus.Counter
	decisions     *prometheus.CounterVec
	registrations *prometheus.CounterVec
	exports       *prometheus.CounterVec
	fanoutFail    prometheus.Counter
	halted        prometheus.Gauge
}

// NewCollector builds a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lecturebot_updates_total",
			Help: "Processed Telegram updates by kind.",
		}, []string{"kind"}),
		proposals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lecturebot_proposals_total",
			Help: "Lecture proposals submitted.",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lecturebot_decisions_total",
			Help: "Admin decisions on proposals by resulting status.",
		}, []string{"status"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lecturebot_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lecturebot_exports_total",
			Help: "Generated export artifacts by format.",
		}, []string{"format"}),
		fanoutFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lecturebot_fanout_failures_total",
			Help: "Failed proactive message deliveries.",
		}),
		halted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lecturebot_halted",
			Help: "Whether the service is in maintenance mode (1) or running (0).",
		}),
	}

	reg.MustRegister(
		c.updates,
		c.proposals,
		c.decisions,
		c.registrations,
		c.exports,
		c.fanoutFail,
		c.halted,
	)

	return c
}

func (c *Collector) RecordUpdate(kind string) {
	c.updates.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordProposal() {
	c.proposals.Inc()
}

func (c *Collector) RecordDecision(status string) {
	c.decisions.WithLabelValues(status).Inc()
}

func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordExport(format string) {
	c.exports.WithLabelValues(format).Inc()
}

func (c *Collector) RecordFanoutFailure() {
	c.fanoutFail.Inc()
}

func (c *Collector) SetHalted(halted bool) {
	if halted {
		c.halted.Set(1)
		return
	}
	c.halted.Set(0)
}

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
