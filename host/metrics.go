package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const promNamespace = "govlock"

// Metrics are the runtime indicators. They register on the Registerer handed
// to New, so tests can use a private registry.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	messages    *prometheus.CounterVec
	height      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Metrics{
		invocations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: promNamespace,
				Name:      "invocations_total",
				Help:      "Contract invocations by contract, action and result",
			},
			[]string{"contract", "action", "result"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: promNamespace,
				Name:      "invocation_duration_seconds",
				Help:      "Duration of a contract invocation in seconds, commit included",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"contract", "entry"},
		),
		messages: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: promNamespace,
				Name:      "dispatched_messages_total",
				Help:      "Deferred messages dispatched by kind",
			},
			[]string{"kind"},
		),
		height: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: promNamespace,
				Name:      "block_height",
				Help:      "Current block height of the runtime clock",
			},
		),
	}
}

// ObserveInvocation records one finished invocation.
func (m *Metrics) ObserveInvocation(contract, entry, action string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.invocations.With(prometheus.Labels{"contract": contract, "action": action, "result": result}).Inc()
	m.duration.With(prometheus.Labels{"contract": contract, "entry": entry}).Observe(seconds)
}

func (m *Metrics) AddMessage(kind string) {
	m.messages.With(prometheus.Labels{"kind": kind}).Inc()
}

func (m *Metrics) SetHeight(h uint64) {
	m.height.Set(float64(h))
}
