package main

import (
	"context"
	"encoding/base64"
	"flag"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cwbudde/algo-fxworker/internal/metadata"
	"github.com/cwbudde/algo-fxworker/internal/queue"
	"github.com/cwbudde/algo-fxworker/internal/testutil"
	"github.com/cwbudde/algo-fxworker/internal/wavfile"
)

func TestParseEffects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"unset", nil, nil},
		{"empty", []string{"-effects", ""}, []string{}},
		{"list", []string{"-effects", " low_pass, echo ,,reverb"}, []string{"low_pass", "echo", "reverb"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			raw := fs.String("effects", "", "")

			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}

			got := parseEffects(fs, *raw)
			if (got == nil) != (tc.want == nil) || !slices.Equal(got, tc.want) {
				t.Fatalf("parseEffects() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestIsWAV(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]bool{
		"a.wav":      true,
		"dir/B.WAV":  true,
		"c.wave":     false,
		"wav":        false,
		"d.wav.part": false,
	} {
		if got := isWAV(path); got != want {
			t.Errorf("isWAV(%q) = %v", path, got)
		}
	}
}

func newQueue(t *testing.T) *queue.Client {
	t.Helper()

	mr := miniredis.RunT(t)

	q, err := queue.Dial(context.Background(), &redis.Options{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	t.Cleanup(func() { _ = q.Close() })

	return q
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	q := newQueue(t)
	ctx := context.Background()

	samples := testutil.Sine(1000, 22050, 9000, 512)

	wav, err := wavfile.Encode(testutil.Buffer(t, samples, 22050))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "take.wav")
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	id, err := submit(ctx, q, path, []string{"echo"}, now)
	if err != nil {
		t.Fatalf("submit() error = %v", err)
	}

	if !strings.HasPrefix(id, "wav-") || len(id) != len("wav-")+36 {
		t.Fatalf("id = %q", id)
	}

	if n, _ := q.Len(ctx); n != 1 {
		t.Fatalf("queue length = %d, want 1", n)
	}

	input, err := q.Input(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := base64.StdEncoding.DecodeString(input)
	if err != nil || len(raw) != 2*len(samples) {
		t.Fatalf("input = %d bytes, %v", len(raw), err)
	}

	doc, _ := q.Metadata(ctx, id)
	if metadata.Field(doc, "source") != "take.wav" || metadata.Field(doc, "created_at") != "2025-06-01T08:30:00" {
		t.Fatalf("metadata = %s", doc)
	}

	req := metadata.Parse(doc)
	if req.SampleRate != 22050 || !slices.Equal(req.Selection.Names(), []string{"echo"}) {
		t.Fatalf("parsed = %d Hz %v", req.SampleRate, req.Selection.Names())
	}
}

func TestSubmitRejectsNonWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.wav")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := submit(context.Background(), newQueue(t), path, nil, time.Now()); err == nil {
		t.Fatal("expected error")
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	payload := []byte("RIFF....WAVE")

	complete := func(t *testing.T, q *queue.Client, id, workerVersion string) {
		t.Helper()

		must(t, q.Enqueue(ctx, id, "", "{}"))
		must(t, q.StoreResult(ctx, id, base64.StdEncoding.EncodeToString(payload)))
		must(t, q.StoreMetadata(ctx, id, `{"worker_version":"`+workerVersion+`"}`))
		must(t, q.SetStatus(ctx, id, queue.StatusCompleted))
	}

	t.Run("writes result", func(t *testing.T) {
		t.Parallel()

		q := newQueue(t)
		complete(t, q, "wav-1", "1.2.0")

		dir := t.TempDir()

		out, err := fetch(ctx, q, "wav-1", options{pollInterval: time.Millisecond, outDir: dir, requireWorker: ">=1.2"})
		if err != nil {
			t.Fatalf("fetch() error = %v", err)
		}

		if out != filepath.Join(dir, "output_wav-1.wav") {
			t.Fatalf("output path = %s", out)
		}

		got, err := os.ReadFile(out)
		if err != nil || string(got) != string(payload) {
			t.Fatalf("output = %q, %v", got, err)
		}
	})

	t.Run("old worker", func(t *testing.T) {
		t.Parallel()

		q := newQueue(t)
		complete(t, q, "wav-2", "1.1.9")

		_, err := fetch(ctx, q, "wav-2", options{pollInterval: time.Millisecond, outDir: t.TempDir(), requireWorker: ">=1.2"})
		if err == nil || !strings.Contains(err.Error(), "does not satisfy") {
			t.Fatalf("fetch() error = %v", err)
		}
	})

	t.Run("failed job", func(t *testing.T) {
		t.Parallel()

		q := newQueue(t)
		must(t, q.Enqueue(ctx, "wav-3", "", "{}"))
		must(t, q.Fail(ctx, "wav-3", "Input data not found"))

		_, err := fetch(ctx, q, "wav-3", options{pollInterval: time.Millisecond, outDir: t.TempDir()})
		if err == nil || !strings.Contains(err.Error(), "Input data not found") {
			t.Fatalf("fetch() error = %v", err)
		}
	})
}

func must(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatal(err)
	}
}
