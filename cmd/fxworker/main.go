// Command fxworker consumes audio jobs from a Redis queue, applies the
// requested effects and stores the results as WAV files.
//
// Usage:
//
//	fxworker [flags]
//
// Connection settings come from REDIS_URL, REDIS_HOST, REDIS_PORT,
// REDIS_PASSWORD (or REDIS_PASS) and REDIS_DB; flags override them.
//
// Examples:
//
//	fxworker -host redis -workers 4
//	fxworker -duration 10 -verbose
//	REDIS_URL=redis://:secret@cache:6379/1 fxworker -log-json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fxworker/internal/config"
	"github.com/cwbudde/algo-fxworker/internal/metadata"
	"github.com/cwbudde/algo-fxworker/internal/queue"
	"github.com/cwbudde/algo-fxworker/internal/version"
	"github.com/cwbudde/algo-fxworker/internal/worker"
)

func main() {
	cfg, err := config.Load("fxworker", os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.ShowVersion {
		fmt.Println("fxworker", version.Version)
		return
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("Worker failed")
		stop()
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	features := configureCPU(cfg.ForceGeneric)
	log := logrus.NewEntry(logger)

	log.WithFields(logrus.Fields{
		"version": version.Version,
		"redis":   cfg.Addr(),
		"workers": cfg.Workers,
		"arch":    features.Architecture,
		"simd":    simdLevel(features).String(),
	}).Info("Starting audio effects worker")

	q, err := queue.Dial(ctx, cfg.RedisOptions())
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Addr(), err)
	}
	defer q.Close()

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	defaults := metadata.Defaults{SampleRate: cfg.SampleRate, Channels: cfg.Channels}
	pool := &worker.Pool{
		RunFor:        cfg.RunFor,
		StatsInterval: cfg.StatsInterval,
		Log:           log,
	}

	for i := range cfg.Workers {
		id := fmt.Sprintf("%s-%d", host, i)

		pool.Workers = append(pool.Workers, &worker.Worker{
			ID:     id,
			Source: q,
			Processor: worker.NewProcessor(q, log.WithField("worker", id),
				worker.WithDefaults(defaults),
				worker.WithIdentity(host, id),
			),
			PopTimeout: cfg.PopTimeout,
			Log:        log,
		})
	}

	err = pool.Run(ctx)

	log.Info("Worker shut down")

	return err
}

// configureCPU returns the features the vecmath kernels dispatch on. With
// forceGeneric every kernel falls back to pure Go.
func configureCPU(forceGeneric bool) cpu.Features {
	f := cpu.DetectFeatures()
	if forceGeneric {
		f.ForceGeneric = true
		cpu.SetForcedFeatures(f)
	}

	return f
}

// simdLevel returns the widest SIMD level f supports.
func simdLevel(f cpu.Features) cpu.SIMDLevel {
	for _, level := range []cpu.SIMDLevel{cpu.SIMDAVX512, cpu.SIMDAVX2, cpu.SIMDAVX, cpu.SIMDSSE2, cpu.SIMDNEON} {
		if cpu.Supports(f, level) {
			return level
		}
	}

	return cpu.SIMDNone
}
