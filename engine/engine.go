// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/internal/observability"
	"github.com/KerryPearn/routino-gm-scenarios/scenario"
	"github.com/KerryPearn/routino-gm-scenarios/subset"
	"github.com/KerryPearn/routino-gm-scenarios/table"
	"github.com/KerryPearn/routino-gm-scenarios/travel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// plan is the validated shape of one run.
type plan struct {
	opts    Options
	tm      *travel.Matrix
	layout  *table.Layout
	count   int
	workers int
	chunk   int
	chunks  int
}

// Run evaluates every scenario of tm and returns the result table.
//
// Implementation:
//   - Stage 1: validate options and size the id space (fail fast).
//   - Stage 2: allocate the table and start the worker pool.
//   - Stage 3: finalize, or return the partial table on cancellation.
//
// Errors:
//   - ErrNilMatrix, scenario.ErrBadThreshold, subset.ErrBadSize (configuration).
//   - subset.ErrTooManySubsets, ErrTooLarge (resource limit).
//   - table.ErrIncomplete wrapped with the context cause when ctx ends early;
//     the partial table is returned alongside.
//
// Complexity: O(S·N·(k + log N)) for S scenarios, N points and subset size k.
func Run(ctx context.Context, tm *travel.Matrix, opts ...Option) (*table.Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, log := logging.WithRunLogger(ctx, o.Logger)
	started := time.Now()

	ctx, span := o.Tracer.Start(ctx, "engine.Run")
	defer span.End()

	p, err := newPlan(tm, o)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		o.Recorder.RunFinished(observability.OutcomeFailed, time.Since(started))
		log.Error(ctx, "run rejected", logging.Err(err))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("gm.points", tm.NumPoints()),
		attribute.Int("gm.locations", tm.NumLocations()),
		attribute.Int("gm.scenarios", p.count),
		attribute.Int("gm.workers", p.workers),
		attribute.Int("gm.chunk_size", p.chunk),
	)
	log.Info(ctx, "run started",
		logging.Int("points", tm.NumPoints()),
		logging.Int("locations", tm.NumLocations()),
		logging.Int("scenarios", p.count),
		logging.Int("workers", p.workers),
		logging.Int("chunk_size", p.chunk),
		logging.Float("threshold", o.Threshold),
	)

	builder, err := table.NewBuilder(p.layout, p.count)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		o.Recorder.RunFinished(observability.OutcomeFailed, time.Since(started))
		return nil, err
	}

	o.Recorder.RunStarted(p.count, p.workers)
	runErr := p.execute(ctx, builder, log)
	elapsed := time.Since(started)

	switch {
	case runErr != nil:
		span.SetStatus(codes.Error, runErr.Error())
		o.Recorder.RunFinished(observability.OutcomeFailed, elapsed)
		log.Error(ctx, "run failed", logging.Err(runErr), logging.Duration("elapsed", elapsed))
		return nil, runErr

	case ctx.Err() != nil:
		partial := builder.FinalizePartial()
		if !partial.Complete() {
			err = fmt.Errorf("%d of %d scenarios written: %w: %w",
				partial.WrittenRows(), partial.Rows(), table.ErrIncomplete, context.Cause(ctx))
			span.SetStatus(codes.Error, err.Error())
			o.Recorder.RunFinished(observability.OutcomeIncomplete, elapsed)
			log.Warn(ctx, "run stopped early",
				logging.Int("written", partial.WrittenRows()),
				logging.Int("scenarios", partial.Rows()),
				logging.Duration("elapsed", elapsed),
			)
			return partial, err
		}
	}

	tbl, err := builder.Finalize()
	if err != nil {
		o.Recorder.RunFinished(observability.OutcomeFailed, elapsed)
		return nil, err
	}
	o.Recorder.RunFinished(observability.OutcomeComplete, elapsed)
	log.Info(ctx, "run finished", logging.Int("scenarios", tbl.Rows()), logging.Duration("elapsed", elapsed))

	return tbl, nil
}

// newPlan validates o against tm and derives worker and chunk counts.
func newPlan(tm *travel.Matrix, o Options) (*plan, error) {
	if tm == nil {
		return nil, ErrNilMatrix
	}
	if err := scenario.ValidateThreshold(o.Threshold); err != nil {
		return nil, err
	}
	if o.MinSize < 1 || o.MaxSize < 0 {
		return nil, fmt.Errorf("min size %d, max size %d: %w", o.MinSize, o.MaxSize, subset.ErrBadSize)
	}
	m := tm.NumLocations()
	enumOpts := []subset.Option{subset.WithMinSize(o.MinSize)}
	if o.MaxSize > 0 {
		enumOpts = append(enumOpts, subset.WithMaxSize(o.MaxSize))
	}
	en, err := subset.NewEnumerator(m, enumOpts...)
	if errors.Is(err, subset.ErrTooManySubsets) {
		return nil, fmt.Errorf("use a maximum subset size of at most %d: %w",
			SuggestMaxSize(m, o.MinSize, o.MaxCells), err)
	}
	if err != nil {
		return nil, err
	}
	layout, err := table.NewLayout(m, o.Threshold)
	if err != nil {
		return nil, err
	}
	count, cols := en.Count(), layout.Cols()
	if count > o.MaxCells/cols {
		return nil, fmt.Errorf("%d scenarios × %d columns > %d cells; use a maximum subset size of at most %d: %w",
			count, cols, o.MaxCells, SuggestMaxSize(m, o.MinSize, o.MaxCells), ErrTooLarge)
	}

	workers := o.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}
	chunk := o.ChunkSize
	if chunk == 0 {
		chunk = count / (workers * DefaultChunksPerWorker)
		chunk = max(1, min(chunk, MaxAutoChunk))
	}

	return &plan{
		opts:    o,
		tm:      tm,
		layout:  layout,
		count:   count,
		workers: workers,
		chunk:   chunk,
		chunks:  (count + chunk - 1) / chunk,
	}, nil
}

// SuggestMaxSize returns the largest subset size k ≥ minSize whose scenario
// count fits a table of maxCells cells over m locations, or 0 if none does.
func SuggestMaxSize(m, minSize, maxCells int) int {
	if m <= 0 || minSize < 1 || minSize > m {
		return 0
	}
	cols := 4 + 6*m
	best := 0
	for k := minSize; k <= m; k++ {
		en, err := subset.NewEnumerator(m, subset.WithMinSize(minSize), subset.WithMaxSize(k))
		if err != nil || en.Count() > maxCells/cols {
			break
		}
		best = k
	}

	return best
}

// execute runs the worker pool and returns the first worker error.
// Cancellation is not an error here; the caller inspects ctx.
func (p *plan) execute(ctx context.Context, b *table.Builder, log logging.Logger) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		next     atomic.Int64
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel(err)
		})
	}

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			defer p.opts.Recorder.WorkerDone()
			if err := p.work(ctx, worker, &next, b, log); err != nil {
				fail(err)
			}
		}(w)
	}
	wg.Wait()

	return firstErr
}

// work claims chunks until none is left or ctx ends.
func (p *plan) work(ctx context.Context, worker int, next *atomic.Int64, b *table.Builder, log logging.Logger) error {
	enumOpts := []subset.Option{subset.WithMinSize(p.opts.MinSize)}
	if p.opts.MaxSize > 0 {
		enumOpts = append(enumOpts, subset.WithMaxSize(p.opts.MaxSize))
	}
	en, err := subset.NewEnumerator(p.tm.NumLocations(), enumOpts...)
	if err != nil {
		return err
	}
	agg, err := scenario.NewAggregator(p.tm, p.opts.Threshold)
	if err != nil {
		return err
	}
	var (
		ev = scenario.NewEvaluator(p.tm)
		sc = scenario.Empty(p.tm.NumLocations())
		as = scenario.NewAssignment(p.tm.NumPoints())
		st scenario.Statistics
	)

	for {
		c := int(next.Add(1) - 1)
		if c >= p.chunks || ctx.Err() != nil {
			return nil
		}
		start := c * p.chunk
		end := min(start+p.chunk, p.count)

		chunkStarted := time.Now()
		_, span := p.opts.Tracer.Start(ctx, "engine.chunk", trace.WithAttributes(
			attribute.Int("gm.worker", worker),
			attribute.Int("gm.first_id", start),
			attribute.Int("gm.last_id", end-1),
		))
		done, err := p.runChunk(ctx, en, start, end, ev, agg, sc, as, &st, b)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		p.opts.Recorder.ChunkDone(done, time.Since(chunkStarted))
		if err != nil {
			return err
		}
		log.Debug(ctx, "chunk done",
			logging.Int("worker", worker),
			logging.Int("first_id", start),
			logging.Int("scenarios", done),
			logging.Duration("elapsed", time.Since(chunkStarted)),
		)
	}
}

// runChunk evaluates ids [start, end) and returns how many were written.
func (p *plan) runChunk(
	ctx context.Context,
	en *subset.Enumerator,
	start, end int,
	ev *scenario.Evaluator,
	agg *scenario.Aggregator,
	sc *scenario.Scenario,
	as *scenario.Assignment,
	st *scenario.Statistics,
	b *table.Builder,
) (int, error) {
	if err := en.Seek(start); err != nil {
		return 0, err
	}
	done := 0
	for id := start; id < end; id++ {
		if ctx.Err() != nil {
			return done, nil
		}
		got, members, ok := en.Next()
		if !ok || got != id {
			return done, fmt.Errorf("enumerator yielded id %d, want %d: %w", got, id, subset.ErrOutOfRange)
		}
		if err := sc.Load(id, members); err != nil {
			return done, err
		}
		if err := ev.Evaluate(sc, as); err != nil {
			return done, err
		}
		if err := agg.Aggregate(sc, as, st); err != nil {
			return done, err
		}
		if err := b.Put(st); err != nil {
			return done, err
		}
		done++
	}

	return done, nil
}
