package worker

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type chanSource struct {
	ids chan string
}

func newChanSource(ids ...string) *chanSource {
	s := &chanSource{ids: make(chan string, len(ids))}
	for _, id := range ids {
		s.ids <- id
	}

	return s
}

func (s *chanSource) Pop(ctx context.Context, timeout time.Duration) (string, bool, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case id := <-s.ids:
		return id, true, nil
	case <-t.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

type recorder struct {
	mu   sync.Mutex
	seen []string
	fail map[string]bool
	done chan struct{}
	want int
}

func newRecorder(want int, fail ...string) *recorder {
	r := &recorder{fail: map[string]bool{}, done: make(chan struct{}), want: want}
	for _, id := range fail {
		r.fail[id] = true
	}

	return r
}

func (r *recorder) Process(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen = append(r.seen, id)
	if len(r.seen) == r.want {
		close(r.done)
	}

	if r.fail[id] {
		return errors.New("boom")
	}

	return nil
}

func (r *recorder) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.seen)
	slices.Sort(out)

	return out
}

func nullEntry() (*logrus.Entry, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return logrus.NewEntry(logger), hook
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs not processed in time")
	}
}

func TestWorkerRunProcessesUntilCanceled(t *testing.T) {
	t.Parallel()

	log, _ := nullEntry()
	rec := newRecorder(3, "b")
	stats := NewStats(time.Now())

	w := &Worker{
		ID:         "w0",
		Source:     newChanSource("a", "b", "c"),
		Processor:  rec,
		PopTimeout: 10 * time.Millisecond,
		Stats:      stats,
		Log:        log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)

	go func() { errc <- w.Run(ctx) }()

	waitDone(t, rec.done)
	cancel()

	if err := <-errc; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := rec.ids(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("processed %v", got)
	}

	snap := stats.Snapshot(time.Now())
	if snap.Processed != 3 || snap.Failed != 1 {
		t.Fatalf("snapshot = %+v, want 3 processed 1 failed", snap)
	}
}

type blockingProcessor struct {
	started chan struct{}
	release chan struct{}
	ctxErr  error
}

func (b *blockingProcessor) Process(ctx context.Context, _ string) error {
	close(b.started)
	<-b.release
	b.ctxErr = ctx.Err()

	return nil
}

func TestWorkerFinishesJobAfterCancel(t *testing.T) {
	t.Parallel()

	log, _ := nullEntry()
	proc := &blockingProcessor{started: make(chan struct{}), release: make(chan struct{})}

	w := &Worker{
		ID:         "w0",
		Source:     newChanSource("slow"),
		Processor:  proc,
		PopTimeout: 10 * time.Millisecond,
		Log:        log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)

	go func() { errc <- w.Run(ctx) }()

	<-proc.started
	cancel()
	close(proc.release)

	if err := <-errc; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if proc.ctxErr != nil {
		t.Fatalf("job context canceled: %v", proc.ctxErr)
	}
}

type failingSource struct {
	cancel context.CancelFunc
}

func (f *failingSource) Pop(context.Context, time.Duration) (string, bool, error) {
	f.cancel()
	return "", false, errors.New("connection refused")
}

func TestWorkerStopsWhenPollFailsDuringShutdown(t *testing.T) {
	t.Parallel()

	log, hook := nullEntry()
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{ID: "w0", Source: &failingSource{cancel: cancel}, Processor: newRecorder(1), Log: log}

	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			t.Fatalf("unexpected error log %q", e.Message)
		}
	}
}

func TestPoolRunFor(t *testing.T) {
	t.Parallel()

	log, hook := nullEntry()
	src := newChanSource("1", "2", "3", "4", "5", "6")
	rec := newRecorder(6)
	stats := NewStats(time.Now())

	pool := &Pool{
		RunFor:        300 * time.Millisecond,
		StatsInterval: 50 * time.Millisecond,
		Stats:         stats,
		Log:           log,
	}

	for _, id := range []string{"w0", "w1"} {
		pool.Workers = append(pool.Workers, &Worker{
			ID: id, Source: src, Processor: rec, PopTimeout: 10 * time.Millisecond, Log: log,
		})
	}

	start := time.Now()
	if err := pool.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("pool stopped after %v", elapsed)
	}

	waitDone(t, rec.done)

	if snap := stats.Snapshot(time.Now()); snap.Processed != 6 {
		t.Fatalf("processed = %d, want 6", snap.Processed)
	}

	final := slices.ContainsFunc(hook.AllEntries(), func(e *logrus.Entry) bool {
		return e.Message == "Final statistics" && e.Data["jobs"] == int64(6)
	})
	if !final {
		t.Fatal("final statistics not logged")
	}
}

func TestPoolWithoutWorkers(t *testing.T) {
	t.Parallel()

	if err := (&Pool{}).Run(context.Background()); err == nil {
		t.Fatal("expected error for empty pool")
	}
}

func TestStatsSnapshot(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStats(start)

	if snap := s.Snapshot(start); snap.JobsPerMinute != 0 {
		t.Fatalf("rate at zero elapsed = %v", snap.JobsPerMinute)
	}

	for range 9 {
		s.Record(nil)
	}

	s.Record(errors.New("x"))

	snap := s.Snapshot(start.Add(4 * time.Minute))
	if snap.Processed != 10 || snap.Failed != 1 || snap.JobsPerMinute != 2.5 {
		t.Fatalf("snapshot = %+v", snap)
	}

	fields := snap.Fields()
	if fields["elapsed_s"] != int64(240) || fields["jobs_per_min"] != 2.5 {
		t.Fatalf("fields = %v", fields)
	}
}
