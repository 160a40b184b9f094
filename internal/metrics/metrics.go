// Package metrics counts what happens in diagnosis sessions.
//
// The collectors are fed by domain.LifecycleHooks and live in their own
// registry, written out at the end of a run in the node_exporter textfile
// format. The CLI is short-lived, so nothing is served over HTTP.
package metrics

import (
	"context"
	"fmt"

	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "diagtree"

// Diagnosis outcomes.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
)

// Save results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the session collectors.
type Metrics struct {
	Registry *prometheus.Registry

	// AnswersTotal counts answered questions. Labels: answer (yes, no).
	AnswersTotal *prometheus.CounterVec
	// DiagnosesTotal counts confirmed diagnoses. Labels: outcome (correct, incorrect).
	DiagnosesTotal *prometheus.CounterVec
	LearnedTotal   prometheus.Counter
	// SavesTotal counts persistence attempts. Labels: result (success, error).
	SavesTotal   *prometheus.CounterVec
	SaveDuration prometheus.Histogram
	TreeNodes    prometheus.Gauge
}

// New creates the collectors and registers them in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		AnswersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Total number of answered questions.",
		}, []string{"answer"}),
		DiagnosesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnoses_total",
			Help:      "Total number of diagnoses confirmed or rejected by users.",
		}, []string{"outcome"}),
		LearnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "learned_total",
			Help:      "Total number of diagnoses learned after a rejection.",
		}),
		SavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Total number of tree saves.",
		}, []string{"result"}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Duration of tree saves.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		TreeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_nodes",
			Help:      "Number of nodes in the last saved tree.",
		}),
	}

	m.Registry.MustRegister(
		m.AnswersTotal,
		m.DiagnosesTotal,
		m.LearnedTotal,
		m.SavesTotal,
		m.SaveDuration,
		m.TreeNodes,
	)
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAnswer: func(_ context.Context, e *domain.AnswerEvent) {
			m.AnswersTotal.WithLabelValues(e.Answer.String()).Inc()
		},
		OnConfirm: func(_ context.Context, e *domain.ConfirmEvent) {
			outcome := OutcomeIncorrect
			if e.Correct {
				outcome = OutcomeCorrect
			}
			m.DiagnosesTotal.WithLabelValues(outcome).Inc()
		},
		OnLearn: func(_ context.Context, _ *domain.LearnEvent) {
			m.LearnedTotal.Inc()
		},
		OnSave: func(_ context.Context, e *domain.SaveEvent) {
			if e.Err != nil {
				m.SavesTotal.WithLabelValues(ResultError).Inc()
				return
			}
			m.SavesTotal.WithLabelValues(ResultSuccess).Inc()
			m.SaveDuration.Observe(e.Duration.Seconds())
			m.TreeNodes.Set(float64(e.Nodes))
		},
	}
}

// WriteFile writes every collector to path in the text exposition format.
// The file is replaced atomically, as the textfile collector expects.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
