// SPDX-License-Identifier: MIT

package engine

import (
	"time"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Defaults.
const (
	// DefaultMaxCells bounds the result table at 2^28 float64 cells (2 GiB).
	DefaultMaxCells = 1 << 28

	// DefaultChunksPerWorker controls automatic chunk sizing.
	DefaultChunksPerWorker = 8

	// MaxAutoChunk caps automatically sized chunks.
	MaxAutoChunk = 1 << 14
)

// Sentinel errors.
var (
	// ErrNilMatrix indicates Run was called without a travel matrix.
	ErrNilMatrix = errkind.Configuration("engine: travel matrix is nil")

	// ErrTooLarge indicates the result table would exceed MaxCells.
	ErrTooLarge = errkind.ResourceLimit("engine: result table exceeds the cell limit")

	// ErrBadOption indicates a nonsensical option value (negative workers,
	// chunk size or cell limit).
	ErrBadOption = errkind.Configuration("engine: invalid option value")
)

// Recorder receives run progress, typically backed by Prometheus collectors.
type Recorder interface {
	RunStarted(scenarios, workers int)
	ChunkDone(scenarios int, elapsed time.Duration)
	WorkerDone()
	RunFinished(outcome string, elapsed time.Duration)
}

// Options configures Run.
//
// Threshold – coverage threshold (> 0). Default scenario.DefaultThreshold.
// Workers   – goroutines evaluating scenarios. 0 means GOMAXPROCS.
// ChunkSize – scenario ids per claimed chunk. 0 means automatic.
// MinSize   – smallest subset size. Default 1.
// MaxSize   – largest subset size. 0 means M.
// MaxCells  – upper bound on rows × cols of the result table.
type Options struct {
	Threshold float64
	Workers   int
	ChunkSize int
	MinSize   int
	MaxSize   int
	MaxCells  int

	Logger   logging.Logger
	Recorder Recorder
	Tracer   trace.Tracer
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Threshold: scenario.DefaultThreshold,
		MinSize:   1,
		MaxCells:  DefaultMaxCells,
		Logger:    logging.Noop(),
		Recorder:  noopRecorder{},
		Tracer:    noop.NewTracerProvider().Tracer(""),
	}
}

// WithThreshold sets the coverage threshold. Invalid values are reported by
// Run as scenario.ErrBadThreshold.
func WithThreshold(threshold float64) Option {
	return func(o *Options) { o.Threshold = threshold }
}

// WithWorkers sets the worker count; 0 selects GOMAXPROCS.
// Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(ErrBadOption.Error())
	}

	return func(o *Options) { o.Workers = n }
}

// WithChunkSize sets the number of ids per chunk; 0 selects automatic sizing.
// Panics if n < 0.
func WithChunkSize(n int) Option {
	if n < 0 {
		panic(ErrBadOption.Error())
	}

	return func(o *Options) { o.ChunkSize = n }
}

// WithMinSize restricts scenarios to at least k open locations.
func WithMinSize(k int) Option {
	return func(o *Options) { o.MinSize = k }
}

// WithMaxSize restricts scenarios to at most k open locations; 0 means M.
func WithMaxSize(k int) Option {
	return func(o *Options) { o.MaxSize = k }
}

// WithMaxCells sets the result table cell limit. Panics if n ≤ 0.
func WithMaxCells(n int) Option {
	if n <= 0 {
		panic(ErrBadOption.Error())
	}

	return func(o *Options) { o.MaxCells = n }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the metrics recorder. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}

// WithTracer sets the tracer used for run and chunk spans. A nil tracer is ignored.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

type noopRecorder struct{}

func (noopRecorder) RunStarted(int, int)               {}
func (noopRecorder) ChunkDone(int, time.Duration)      {}
func (noopRecorder) WorkerDone()                       {}
func (noopRecorder) RunFinished(string, time.Duration) {}
