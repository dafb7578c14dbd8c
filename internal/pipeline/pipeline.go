package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/worker"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Evaluator converts a raw request event into a serialized result.
type Evaluator interface {
	Evaluate(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline orchestrates the extract-evaluate-load loop.
type Pipeline struct {
	extractor BatchExtractor
	evaluator Evaluator
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	batchSize int
	workers   int
}

// New creates a Pipeline with the given stages and observability. Each batch
// is evaluated by up to workers goroutines.
func New(e BatchExtractor, ev Evaluator, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize, workers int) *Pipeline {
	return &Pipeline{
		extractor: e,
		evaluator: ev,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
		workers:   workers,
	}
}

// CheckReadiness returns nil if the pipeline has loaded at least one result,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Ready reports whether at least one batch has been loaded.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "workers", p.workers)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	pool := worker.NewWorkerPool(p.workers, p.batchSize, p.evaluateJob)
	pool.Start(ctx)
	defer pool.Stop()

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, pool, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-evaluate-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, pool *worker.WorkerPool, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	loaded, ok := p.evaluateAndLoad(ctx, pool, rawBatch, backoff, maxBackoff)
	if !ok {
		return false
	}

	if loaded > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// evalJob is one message of a batch. The worker fills out and err.
type evalJob struct {
	raw  domain.RawEvent
	out  domain.OutputEvent
	err  error
	done *sync.WaitGroup
}

func (p *Pipeline) evaluateJob(ctx context.Context, j worker.Job) {
	job := j.(*evalJob)
	defer job.done.Done()
	job.out, job.err = p.evaluator.Evaluate(ctx, job.raw)
}

// evaluateAndLoad evaluates the batch on the pool, loads the successes in
// source order, and commits offsets. Returns the number of loaded messages
// and false if the pipeline should stop.
func (p *Pipeline) evaluateAndLoad(ctx context.Context, pool *worker.WorkerPool, rawBatch []domain.RawEvent, backoff *time.Duration, maxBackoff time.Duration) (int, bool) {
	jobs := make([]*evalJob, len(rawBatch))
	var wg sync.WaitGroup
	for i, raw := range rawBatch {
		jobs[i] = &evalJob{raw: raw, done: &wg}
		wg.Add(1)
		if err := pool.Submit(ctx, jobs[i]); err != nil {
			wg.Done()
			wg.Wait()
			return 0, false
		}
	}
	wg.Wait()

	outBatch := make([]domain.OutputEvent, 0, len(rawBatch))
	successfulRaws := make([]domain.RawEvent, 0, len(rawBatch))
	for _, job := range jobs {
		if job.err != nil {
			p.logger.Warn("evaluation failed, skipping message",
				"error", job.err,
				"topic", job.raw.Topic,
				"partition", job.raw.Partition,
				"offset", job.raw.Offset,
			)
			p.metrics.EvaluationErrors.WithLabelValues(errorReason(job.err)).Inc()
			p.commitOffset(ctx, job.raw)
			continue
		}
		outBatch = append(outBatch, job.out)
		successfulRaws = append(successfulRaws, job.raw)
	}

	if len(outBatch) == 0 {
		return 0, true
	}

	if err := p.loader.LoadBatch(ctx, outBatch); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(outBatch))
		return 0, p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	p.metrics.MessagesProduced.Add(float64(len(outBatch)))
	for _, out := range outBatch {
		p.metrics.Evaluations.WithLabelValues(out.Headers["kind"], "pipeline").Inc()
	}

	for _, raw := range successfulRaws {
		p.commitOffset(ctx, raw)
	}

	return len(outBatch), true
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
