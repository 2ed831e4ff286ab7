// SPDX-License-Identifier: MIT

// Package observability wires Prometheus metrics and OpenTelemetry tracing
// for scenario runs.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeComplete   = "complete"
	OutcomeIncomplete = "incomplete"
	OutcomeFailed     = "failed"
)

// RunCollector bundles the Prometheus metrics of scenario runs and travel
// matrix builds.
type RunCollector struct {
	gatherer prometheus.Gatherer

	ScenariosPlanned   prometheus.Gauge
	ScenariosEvaluated prometheus.Counter
	ActiveWorkers      prometheus.Gauge
	ChunkDuration      prometheus.Histogram
	Runs               *prometheus.CounterVec
	RunDuration        *prometheus.HistogramVec
	MatrixBuilds       *prometheus.HistogramVec
}

// NewRunCollector registers the run metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewRunCollector(reg prometheus.Registerer) (*RunCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	planned, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gm_scenarios_planned",
		Help: "Number of scenarios the current run enumerates.",
	}), "gm_scenarios_planned")
	if err != nil {
		return nil, err
	}
	evaluated, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gm_scenarios_evaluated_total",
		Help: "Cumulative number of scenarios evaluated and written to a result table.",
	}), "gm_scenarios_evaluated_total")
	if err != nil {
		return nil, err
	}
	workers, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gm_active_workers",
		Help: "Number of scenario workers currently running.",
	}), "gm_active_workers")
	if err != nil {
		return nil, err
	}
	chunks, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gm_chunk_duration_seconds",
		Help:    "Time to evaluate one chunk of scenario ids.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}), "gm_chunk_duration_seconds")
	if err != nil {
		return nil, err
	}
	runs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gm_runs_total",
		Help: "Scenario runs, labeled by outcome (complete, incomplete, failed).",
	}, []string{"outcome"}), "gm_runs_total")
	if err != nil {
		return nil, err
	}
	runDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gm_run_duration_seconds",
		Help:    "Wall time of scenario runs, labeled by outcome.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"outcome"}), "gm_run_duration_seconds")
	if err != nil {
		return nil, err
	}
	builds, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gm_travel_matrix_build_seconds",
		Help:    "Time to compute a travel matrix from a road network, labeled by router.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"router"}), "gm_travel_matrix_build_seconds")
	if err != nil {
		return nil, err
	}

	return &RunCollector{
		gatherer:           gathererFor(reg),
		ScenariosPlanned:   planned,
		ScenariosEvaluated: evaluated,
		ActiveWorkers:      workers,
		ChunkDuration:      chunks,
		Runs:               runs,
		RunDuration:        runDuration,
		MatrixBuilds:       builds,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *RunCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// RunStarted records the size of a new run.
func (c *RunCollector) RunStarted(scenarios, workers int) {
	if c == nil {
		return
	}
	c.ScenariosPlanned.Set(float64(scenarios))
	c.ActiveWorkers.Set(float64(workers))
}

// ChunkDone records one finished chunk of scenarios.
func (c *RunCollector) ChunkDone(scenarios int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.ScenariosEvaluated.Add(float64(scenarios))
	c.ChunkDuration.Observe(elapsed.Seconds())
}

// WorkerDone records a worker exiting.
func (c *RunCollector) WorkerDone() {
	if c == nil {
		return
	}
	c.ActiveWorkers.Dec()
}

// RunFinished records the outcome and wall time of a run.
func (c *RunCollector) RunFinished(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.ActiveWorkers.Set(0)
	c.Runs.WithLabelValues(outcome).Inc()
	c.RunDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// MatrixBuilt records the time a router took to compute a travel matrix.
func (c *RunCollector) MatrixBuilt(router string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.MatrixBuilds.WithLabelValues(router).Observe(elapsed.Seconds())
}
