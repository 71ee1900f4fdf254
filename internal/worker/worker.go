package worker

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Source hands out job identifiers.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (id string, ok bool, err error)
}

// JobProcessor runs one job.
type JobProcessor interface {
	Process(ctx context.Context, id string) error
}

// retryDelay is the pause after a failed poll.
const retryDelay = time.Second

// Worker polls a Source and runs each job through its processor, one job
// at a time.
type Worker struct {
	ID         string
	Source     Source
	Processor  JobProcessor
	PopTimeout time.Duration
	Stats      *Stats
	Log        *logrus.Entry
}

// Run polls until ctx ends. A job already started when ctx ends is run
// to completion first, so it is never left in the processing state.
func (w *Worker) Run(ctx context.Context) error {
	log := w.Log.WithField("worker", w.ID)
	log.Debug("Worker started")

	for ctx.Err() == nil {
		id, ok, err := w.Source.Pop(ctx, w.PopTimeout)
		if err != nil {
			if ctx.Err() != nil {
				break
			}

			log.WithError(err).Error("Queue poll failed")
			sleep(ctx, retryDelay)

			continue
		}

		if !ok {
			continue
		}

		err = w.Processor.Process(context.WithoutCancel(ctx), id)
		if w.Stats != nil {
			w.Stats.Record(err)
		}
	}

	log.Debug("Worker stopped")

	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Pool runs several workers against the same source and reports shared
// statistics.
type Pool struct {
	Workers       []*Worker
	RunFor        time.Duration
	StatsInterval time.Duration
	Stats         *Stats
	Log           *logrus.Entry
}

// Run starts every worker and the statistics reporter and waits until
// ctx ends or RunFor elapses.
func (p *Pool) Run(ctx context.Context) error {
	if len(p.Workers) == 0 {
		return errors.New("worker: pool has no workers")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if p.RunFor > 0 {
		var stop context.CancelFunc

		ctx, stop = context.WithTimeout(ctx, p.RunFor)
		defer stop()
	}

	stats := p.Stats
	if stats == nil {
		stats = NewStats(time.Now())
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, w := range p.Workers {
		w.Stats = stats

		g.Go(func() error { return w.Run(gctx) })
	}

	if p.StatsInterval > 0 {
		g.Go(func() error {
			stats.Report(gctx, p.Log, p.StatsInterval)
			return nil
		})
	}

	return g.Wait()
}
