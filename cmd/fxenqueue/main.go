// Command fxenqueue submits WAV files to the fxworker queue and optionally
// waits for the processed results.
//
// Usage:
//
//	fxenqueue [flags] file.wav ...
//	fxenqueue [flags] -watch dir
//
// Without -effects the worker applies its default chain. An empty list
// (-effects "") requests no effects, which only normalizes.
//
// Examples:
//
//	fxenqueue -effects low_pass,echo voice.wav
//	fxenqueue -wait -out processed/ take1.wav take2.wav
//	fxenqueue -wait -require-worker ">=1.2" -watch incoming/
package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fxworker/internal/config"
	"github.com/cwbudde/algo-fxworker/internal/metadata"
	"github.com/cwbudde/algo-fxworker/internal/queue"
	"github.com/cwbudde/algo-fxworker/internal/version"
	"github.com/cwbudde/algo-fxworker/internal/wavfile"
)

type options struct {
	effects       []string
	wait          bool
	waitTimeout   time.Duration
	pollInterval  time.Duration
	outDir        string
	requireWorker string
}

func main() {
	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fs := flag.NewFlagSet("fxenqueue", flag.ExitOnError)
	cfg.RedisFlags(fs)

	var (
		opts    options
		effects string
		watch   string
	)

	fs.StringVar(&effects, "effects", "", "comma-separated effect names (unset = worker defaults)")
	fs.BoolVar(&opts.wait, "wait", false, "wait for each job and download the result")
	fs.DurationVar(&opts.waitTimeout, "wait-timeout", 2*time.Minute, "maximum time to wait for one job")
	fs.DurationVar(&opts.pollInterval, "poll", 250*time.Millisecond, "status poll interval while waiting")
	fs.StringVar(&opts.outDir, "out", ".", "directory for downloaded results")
	fs.StringVar(&opts.requireWorker, "require-worker", "", "semver constraint the worker version must satisfy, e.g. \">=1.2\"")
	fs.StringVar(&watch, "watch", "", "directory to watch for new WAV files")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxenqueue [flags] file.wav ...\n       fxenqueue [flags] -watch dir\n\nFlags:\n")
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[1:])

	opts.effects = parseEffects(fs, effects)

	if watch == "" && fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	log := logrus.NewEntry(logrus.New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := queue.Dial(ctx, cfg.RedisOptions())
	if err != nil {
		log.WithError(err).Fatal("Cannot connect to Redis")
	}
	defer q.Close()

	failed := false

	for _, path := range fs.Args() {
		if err := handle(ctx, q, path, opts, log); err != nil {
			log.WithError(err).WithField("file", path).Error("Job failed")

			failed = true
		}
	}

	if watch != "" {
		err := watchDir(ctx, watch, func(path string) {
			if err := handle(ctx, q, path, opts, log); err != nil {
				log.WithError(err).WithField("file", path).Error("Job failed")
			}
		}, log)
		if err != nil {
			log.WithError(err).Error("Watch failed")

			failed = true
		}
	}

	if failed {
		stop()
		os.Exit(1)
	}
}

// parseEffects returns nil when -effects was not given and the
// (possibly empty) list otherwise.
func parseEffects(fs *flag.FlagSet, raw string) []string {
	given := false

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "effects" {
			given = true
		}
	})

	if !given {
		return nil
	}

	names := []string{}

	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func handle(ctx context.Context, q *queue.Client, path string, opts options, log *logrus.Entry) error {
	id, err := submit(ctx, q, path, opts.effects, time.Now())
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"file": path, "job_id": id}).Info("Job queued")

	if !opts.wait {
		return nil
	}

	wctx, cancel := context.WithTimeout(ctx, opts.waitTimeout)
	defer cancel()

	out, err := fetch(wctx, q, id, opts)
	if err != nil {
		return fmt.Errorf("job %s: %w", id, err)
	}

	log.WithFields(logrus.Fields{"job_id": id, "output": out}).Info("Result saved")

	return nil
}

// submit queues the WAV file at path and returns the job id.
func submit(ctx context.Context, q *queue.Client, path string, effects []string, now time.Time) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := wavfile.Decode(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	host, _ := os.Hostname()

	doc, err := metadata.Submission{
		CreatedAt:  now,
		Hostname:   host,
		Effects:    effects,
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
		Source:     filepath.Base(path),
	}.Encode()
	if err != nil {
		return "", err
	}

	id := "wav-" + uuid.NewString()
	input := base64.StdEncoding.EncodeToString(buf.Bytes())

	if err := q.Enqueue(ctx, id, input, doc); err != nil {
		return "", err
	}

	return id, nil
}

// fetch waits for job id and writes its result to opts.outDir.
func fetch(ctx context.Context, q *queue.Client, id string, opts options) (string, error) {
	status, err := q.Wait(ctx, id, opts.pollInterval)
	if err != nil {
		return "", err
	}

	if status == queue.StatusFailed {
		msg, _ := q.Error(ctx, id)
		return "", fmt.Errorf("worker reported: %s", msg)
	}

	if opts.requireWorker != "" {
		doc, err := q.Metadata(ctx, id)
		if err != nil {
			return "", err
		}

		v := metadata.Field(doc, "worker_version")

		ok, err := version.Satisfies(v, opts.requireWorker)
		if err != nil {
			return "", err
		}

		if !ok {
			return "", fmt.Errorf("worker version %q does not satisfy %q", v, opts.requireWorker)
		}
	}

	result, err := q.Result(ctx, id)
	if err != nil {
		return "", err
	}

	wav, err := base64.StdEncoding.DecodeString(result)
	if err != nil {
		return "", fmt.Errorf("result: %w", err)
	}

	out := filepath.Join(opts.outDir, "output_"+id+".wav")

	return out, os.WriteFile(out, wav, 0o644)
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// watchDir calls fn for every WAV file created in dir until ctx ends.
func watchDir(ctx context.Context, dir string, fn func(path string), log *logrus.Entry) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	log.WithField("dir", dir).Info("Watching for WAV files")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Has(fsnotify.Create) && isWAV(ev.Name) && !strings.HasPrefix(filepath.Base(ev.Name), "output_") {
				fn(ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.Warn("Watch events dropped")
				continue
			}

			return err
		}
	}
}
