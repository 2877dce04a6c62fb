package report

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

const namespace = "vacuum"

// MetricsReporter counts run events into a prometheus registry.
// Counters accumulate across runs so batch mode can share one reporter.
type MetricsReporter struct {
	Registry *prometheus.Registry

	runs            *prometheus.CounterVec
	actions         *prometheus.CounterVec
	regrowth        prometheus.Counter
	roomsCleaned    prometheus.Counter
	energyConsumed  prometheus.Counter
	remainingEnergy prometheus.Gauge
	steps           prometheus.Histogram
}

var _ Reporter = &MetricsReporter{}

func NewMetricsReporter() *MetricsReporter {
	m := &MetricsReporter{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished simulation runs by outcome.",
		}, []string{"outcome"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Actions performed by the agent.",
		}, []string{"action"}),
		regrowth: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regrowth_events_total",
			Help:      "Clean rooms that became dirty again.",
		}),
		roomsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_cleaned_total",
			Help:      "Successful cleaning actions.",
		}),
		energyConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "energy_consumed_total",
			Help:      "Energy spent by the agent.",
		}),
		remainingEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_energy",
			Help:      "Energy left at the end of the last run.",
		}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_steps",
			Help:      "Actions performed per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	m.Registry.MustRegister(
		m.runs,
		m.actions,
		m.regrowth,
		m.roomsCleaned,
		m.energyConsumed,
		m.remainingEnergy,
		m.steps,
	)
	return m
}

func (m *MetricsReporter) Start(core.InitialState) {}

func (m *MetricsReporter) Step(e core.StepEvent) {
	m.actions.WithLabelValues(e.Action.String()).Inc()
	m.regrowth.Add(float64(len(e.Regrowth)))
}

func (m *MetricsReporter) Finish(s core.Summary) {
	m.runs.WithLabelValues(s.Outcome.String()).Inc()
	m.roomsCleaned.Add(float64(s.RoomsCleaned))
	if s.EnergyConsumed > 0 {
		m.energyConsumed.Add(float64(s.EnergyConsumed))
	}
	m.remainingEnergy.Set(s.RemainingEnergy)
	m.steps.Observe(float64(s.Steps))
}

// RunsCounter returns the counter of finished runs with the given outcome
func (m *MetricsReporter) RunsCounter(o core.Outcome) prometheus.Counter {
	return m.runs.WithLabelValues(o.String())
}

// ActionsCounter returns the counter for one action label
func (m *MetricsReporter) ActionsCounter(a core.Action) prometheus.Counter {
	return m.actions.WithLabelValues(a.String())
}

// WriteTextfile dumps the registry in the node exporter textfile format
func (m *MetricsReporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
