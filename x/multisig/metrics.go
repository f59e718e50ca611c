package multisig

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver exposes vault events as prometheus metrics.
type MetricsObserver struct {
	events    *prometheus.CounterVec
	deposited prometheus.Counter
	executed  prometheus.Counter
}

var _ Observer = (*MetricsObserver)(nil)

// NewMetricsObserver creates the metrics and registers them with reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	m := &MetricsObserver{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "multisig",
			Name:      "events_total",
			Help:      "Number of vault events by kind.",
		}, []string{"kind"}),
		deposited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "multisig",
			Name:      "deposited_value_total",
			Help:      "Value deposited into the vault.",
		}),
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "multisig",
			Name:      "executed_value_total",
			Help:      "Value paid out by executed transactions.",
		}),
	}
	for _, c := range []prometheus.Collector{m.events, m.deposited, m.executed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements Observer.
func (m *MetricsObserver) Observe(ctx context.Context, e Event) {
	m.events.WithLabelValues(e.Kind.String()).Inc()
	switch e.Kind {
	case EventDeposit:
		m.deposited.Add(float64(e.Amount))
	case EventExecuted:
		m.executed.Add(float64(e.Amount))
	}
}
