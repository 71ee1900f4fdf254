package worker

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Stats counts jobs across all workers of a pool.
type Stats struct {
	start     time.Time
	processed atomic.Int64
	failed    atomic.Int64
}

// NewStats starts the clock at now.
func NewStats(now time.Time) *Stats {
	return &Stats{start: now}
}

// Record counts one finished job.
func (s *Stats) Record(err error) {
	s.processed.Add(1)

	if err != nil {
		s.failed.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Elapsed       time.Duration
	Processed     int64
	Failed        int64
	JobsPerMinute float64
}

// Snapshot returns the counters as of now.
func (s *Stats) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Elapsed:   now.Sub(s.start),
		Processed: s.processed.Load(),
		Failed:    s.failed.Load(),
	}

	if minutes := snap.Elapsed.Minutes(); minutes > 0 {
		snap.JobsPerMinute = float64(snap.Processed) / minutes
	}

	return snap
}

// Fields renders the snapshot for logging.
func (s Snapshot) Fields() logrus.Fields {
	return logrus.Fields{
		"elapsed_s":    int64(s.Elapsed.Seconds()),
		"jobs":         s.Processed,
		"failed":       s.Failed,
		"jobs_per_min": math.Round(s.JobsPerMinute*10) / 10,
	}
}

// Report logs a snapshot every interval until ctx ends, then logs a final
// one.
func (s *Stats) Report(ctx context.Context, log *logrus.Entry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithFields(s.Snapshot(time.Now()).Fields()).Info("Final statistics")
			return
		case now := <-ticker.C:
			log.WithFields(s.Snapshot(now).Fields()).Info("Worker statistics")
		}
	}
}
