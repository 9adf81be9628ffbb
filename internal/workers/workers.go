package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"posflow/internal/engine/webhooks"
	"posflow/internal/pkg/metrics"
	"posflow/internal/platform/config"
	"posflow/internal/platform/queue"
)

// Pool pulls webhook events from the durable queue and runs the processor.
// An event is processed to completion or fails whole; only retryable
// outcomes go back on the queue, capped by the attempt budget.
type Pool struct {
	log       zerolog.Logger
	queue     *queue.Queue
	processor *webhooks.Processor
	cfg       config.WorkersConfig

	wg sync.WaitGroup
}

func NewPool(log zerolog.Logger, q *queue.Queue, processor *webhooks.Processor, cfg config.WorkersConfig) *Pool {
	return &Pool{log: log, queue: q, processor: processor, cfg: cfg}
}

// Run starts the workers and blocks until ctx is canceled and all in-flight
// events have finished.
func (p *Pool) Run(ctx context.Context) {
	for i := 0; i < p.cfg.Count; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.loop(ctx, id)
		}(i)
	}
	p.wg.Wait()
}

func (p *Pool) loop(ctx context.Context, id int) {
	log := p.log.With().Int("worker", id).Logger()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("failed to dequeue webhook event")
			time.Sleep(time.Second)
			continue
		}
		if msg == nil {
			continue
		}

		p.handle(ctx, log, msg)
	}
}

func (p *Pool) handle(ctx context.Context, log zerolog.Logger, msg *queue.Message) {
	start := time.Now()
	outcome, err := p.processor.Process(ctx, msg.Provider, msg.Payload, msg.ReceivedAt)
	metrics.EventProcessingDuration.Observe(time.Since(start).Seconds())
	metrics.EventsProcessedTotal.WithLabelValues(msg.Provider, outcome.String()).Inc()

	if outcome != webhooks.OutcomeRetry {
		return
	}

	if msg.Attempts+1 >= p.cfg.MaxAttempts {
		log.Error().Err(err).Str("provider", msg.Provider).Int("attempts", msg.Attempts+1).Msg("webhook event exhausted retries, dead-lettering")
		metrics.DeadLetteredTotal.Inc()
		if dlErr := p.queue.DeadLetter(ctx, msg); dlErr != nil {
			log.Error().Err(dlErr).Msg("failed to dead-letter webhook event")
		}
		return
	}

	log.Warn().Err(err).Str("provider", msg.Provider).Int("attempts", msg.Attempts+1).Msg("webhook event failed, requeueing")
	if p.cfg.RetryBackoff > 0 {
		time.Sleep(backoff(msg.Attempts, p.cfg.RetryBackoff))
	}
	if rqErr := p.queue.Requeue(ctx, msg); rqErr != nil {
		log.Error().Err(rqErr).Msg("failed to requeue webhook event")
	}
}

func backoff(attempts int, base time.Duration) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > 6 {
		attempts = 6
	}
	d := base * time.Duration(1<<attempts)
	if d > time.Minute {
		d = time.Minute
	}
	return d
}
