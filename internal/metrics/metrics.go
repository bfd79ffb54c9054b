// Package metrics exposes training progress as Prometheus metrics.
package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CSMONE/mlpack/dcd"
)

// Metrics holds a private registry and the trainer's collectors.
type Metrics struct {
	registry *prometheus.Registry

	Epochs         prometheus.Counter
	Updates        prometheus.Counter
	Gap            prometheus.Gauge
	State          *prometheus.GaugeVec
	SupportVectors prometheus.Gauge
	Objective      prometheus.Gauge
	Accuracy       *prometheus.GaugeVec
}

// New registers the collectors, labelled with the run name.
func New(run string) *Metrics {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"run": run}

	m := &Metrics{registry: reg}
	m.Epochs = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "dcd_epochs_total",
		Help:        "Number of epochs run.",
		ConstLabels: constLabels,
	})
	m.Updates = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "dcd_coordinate_updates_total",
		Help:        "Number of coordinate steps that changed a dual variable.",
		ConstLabels: constLabels,
	})
	m.Gap = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "dcd_optimality_gap",
		Help:        "Projected gradient gap of the last epoch.",
		ConstLabels: constLabels,
	})
	m.State = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        "dcd_training_state",
		Help:        "1 for the state the run is in, 0 otherwise.",
		ConstLabels: constLabels,
	}, []string{"state"})
	m.SupportVectors = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "dcd_support_vectors",
		Help:        "Number of samples with a non-zero dual variable.",
		ConstLabels: constLabels,
	})
	m.Objective = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "dcd_objective_value",
		Help:        "Dual objective value after training.",
		ConstLabels: constLabels,
	})
	m.Accuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        "dcd_accuracy_ratio",
		Help:        "Fraction of correctly predicted samples.",
		ConstLabels: constLabels,
	}, []string{"set"})

	reg.MustRegister(m.Epochs, m.Updates, m.Gap, m.State, m.SupportVectors, m.Objective, m.Accuracy)
	m.setState(dcd.Running)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observer returns an epoch observer for dcd.WithObserver.
func (m *Metrics) Observer() dcd.EpochObserver {
	return func(stats dcd.EpochStats) {
		m.Epochs.Inc()
		m.Updates.Add(float64(stats.Updates))
		m.Gap.Set(stats.Gap)
	}
}

// RecordModel publishes the terminal state and diagnostics of a run.
func (m *Metrics) RecordModel(model *dcd.Model) {
	if model == nil {
		return
	}
	m.setState(model.State)
	if d := model.Diagnostics; d != nil && d.Valid {
		m.SupportVectors.Set(float64(d.SupportVectors))
		m.Objective.Set(d.Objective)
	}
}

// RecordAccuracy publishes the accuracy measured on a named set.
func (m *Metrics) RecordAccuracy(set string, accuracy float64) {
	m.Accuracy.WithLabelValues(set).Set(accuracy)
}

func (m *Metrics) setState(current dcd.State) {
	for _, s := range []dcd.State{dcd.Running, dcd.Converged, dcd.EpochLimitReached, dcd.Stopped} {
		v := 0.0
		if s == current {
			v = 1
		}
		m.State.WithLabelValues(s.String()).Set(v)
	}
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
