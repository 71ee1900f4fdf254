// Package worker runs audio jobs from the queue through the effect chain.
package worker

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fxworker/dsp/effectchain"
	"github.com/cwbudde/algo-fxworker/dsp/pcm"
	"github.com/cwbudde/algo-fxworker/internal/analysis"
	"github.com/cwbudde/algo-fxworker/internal/metadata"
	"github.com/cwbudde/algo-fxworker/internal/queue"
	"github.com/cwbudde/algo-fxworker/internal/version"
	"github.com/cwbudde/algo-fxworker/internal/wavfile"
)

// Messages stored as the job error. Clients match on them.
const (
	MsgNoInput = "Input data not found"
	MsgDecode  = "Failed to decode input data"
	MsgProcess = "Audio processing failed"
	MsgEncode  = "Failed to create WAV file"
)

// Job failure classes returned by Process.
var (
	ErrNoInput = errors.New("worker: input not found")
	ErrDecode  = errors.New("worker: input not decodable")
	ErrProcess = errors.New("worker: effect chain failed")
	ErrEncode  = errors.New("worker: result encoding failed")
)

// Store is the part of the job store a Processor uses.
type Store interface {
	SetStatus(ctx context.Context, id string, s queue.Status) error
	Input(ctx context.Context, id string) (string, error)
	Metadata(ctx context.Context, id string) (string, error)
	StoreResult(ctx context.Context, id, result string) error
	StoreMetadata(ctx context.Context, id, doc string) error
	Fail(ctx context.Context, id, msg string) error
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithDefaults sets the input format assumed when metadata has none.
func WithDefaults(d metadata.Defaults) ProcessorOption {
	return func(p *Processor) { p.defaults = d }
}

// WithIdentity sets the hostname and worker id recorded on completion.
func WithIdentity(hostname, workerID string) ProcessorOption {
	return func(p *Processor) {
		p.hostname = hostname
		p.workerID = workerID
	}
}

// WithChain replaces the effect chain.
func WithChain(c *effectchain.Chain) ProcessorOption {
	return func(p *Processor) { p.chain = c }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) { p.now = now }
}

// Processor executes single jobs.
type Processor struct {
	store    Store
	chain    *effectchain.Chain
	defaults metadata.Defaults
	hostname string
	workerID string
	now      func() time.Time
	log      *logrus.Entry
}

// NewProcessor returns a Processor using store. By default the chain rolls
// back on failure and input is assumed to be 44.1 kHz mono.
func NewProcessor(store Store, log *logrus.Entry, opts ...ProcessorOption) *Processor {
	p := &Processor{
		store: store,
		chain: effectchain.New(effectchain.WithRollback()),
		defaults: metadata.Defaults{
			SampleRate: metadata.DefaultSampleRate,
			Channels:   metadata.DefaultChannels,
		},
		hostname: "unknown",
		now:      time.Now,
		log:      log,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process runs job id to completion: it marks the job processing, applies
// the requested effects to the decoded input, stores the WAV result and
// the enriched metadata, and marks the job completed. On failure the job
// is marked failed with one of the Msg* texts and the matching Err* class
// is returned.
func (p *Processor) Process(ctx context.Context, id string) error {
	start := p.now()
	log := p.log.WithField("job_id", id)

	if err := p.store.SetStatus(ctx, id, queue.StatusProcessing); err != nil {
		return err
	}

	input, err := p.store.Input(ctx, id)
	if err != nil {
		return p.fail(ctx, log, id, MsgNoInput, fmt.Errorf("%w: %w", ErrNoInput, err))
	}

	doc, err := p.store.Metadata(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Metadata unavailable, using defaults")

		doc = "{}"
	}

	raw, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return p.fail(ctx, log, id, MsgDecode, fmt.Errorf("%w: %w", ErrDecode, err))
	}

	req := p.defaults.Parse(doc)
	if len(req.Unknown) > 0 {
		log.WithField("names", req.Unknown).Warn("Ignoring unknown effects")
	}

	in, err := pcm.FromBytes(raw, req.SampleRate, req.Channels)
	if err != nil {
		return p.fail(ctx, log, id, MsgDecode, fmt.Errorf("%w: %w", ErrDecode, err))
	}

	names := req.Selection.Names()
	log.WithFields(logrus.Fields{
		"samples":     in.Len(),
		"sample_rate": in.SampleRate,
		"effects":     names,
		"defaulted":   req.Defaulted,
	}).Debug("Processing job")

	job := &effectchain.Job{ID: id, Input: in, Selection: req.Selection}
	if err := p.chain.Process(ctx, job); err != nil {
		return p.fail(ctx, log, id, MsgProcess+": "+err.Error(), fmt.Errorf("%w: %w", ErrProcess, err))
	}

	wav, err := wavfile.Encode(job.Output)
	if err != nil {
		return p.fail(ctx, log, id, MsgEncode, fmt.Errorf("%w: %w", ErrEncode, err))
	}

	if err := p.store.StoreResult(ctx, id, base64.StdEncoding.EncodeToString(wav)); err != nil {
		return err
	}

	report := analysis.Analyze(job.Output.Samples(), float64(job.Output.SampleRate))
	elapsed := p.now().Sub(start)

	updated, err := metadata.Complete(doc, metadata.Completion{
		ProcessedAt:    p.now(),
		ProcessingTime: elapsed,
		Hostname:       p.hostname,
		WorkerID:       p.workerID,
		WorkerVersion:  version.Version,
		EffectsApplied: names,
		Analysis:       &report,
	})
	if err != nil {
		log.WithError(err).Warn("Could not build completion metadata")
	} else if err := p.store.StoreMetadata(ctx, id, updated); err != nil {
		return err
	}

	if err := p.store.SetStatus(ctx, id, queue.StatusCompleted); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"effects":     names,
		"duration_ms": elapsed.Milliseconds(),
		"peak_dbfs":   report.PeakDBFS,
		"result_size": len(wav),
	}).Info("Job completed")

	return nil
}

func (p *Processor) fail(ctx context.Context, log *logrus.Entry, id, msg string, cause error) error {
	log.WithError(cause).Error(msg)

	if err := p.store.Fail(ctx, id, msg); err != nil {
		return errors.Join(cause, err)
	}

	return cause
}
