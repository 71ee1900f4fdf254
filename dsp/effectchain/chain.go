package effectchain

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-fxworker/dsp/effects"
	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Job is one unit of work for a Chain. Input is only read; Output is
// overwritten and allocated by Process when nil.
type Job struct {
	ID        string
	Input     *pcm.Buffer
	Output    *pcm.Buffer
	Selection Selection
}

// StageError reports the stage that aborted a chain run.
type StageError struct {
	Kind Kind
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("effectchain: %s stage failed: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Option configures a Chain.
type Option func(*Chain)

// WithRollback makes a failed run restore Output to an untouched copy of
// Input instead of leaving the partially processed samples in place.
func WithRollback() Option {
	return func(c *Chain) { c.rollback = true }
}

// Chain applies the selected stages of a Job in evaluation order and
// then normalizes the output.
type Chain struct {
	rollback bool
}

// New creates a Chain.
func New(opts ...Option) *Chain {
	c := &Chain{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Process copies job.Input into job.Output and runs every selected stage
// on the copy, stopping at the first failure. The normalizer runs last
// regardless of the selection.
//
// ctx is checked between stages; a stage already running is not
// interrupted.
func (c *Chain) Process(ctx context.Context, job *Job) error {
	if job == nil || job.Input == nil {
		return fmt.Errorf("effectchain: job without input: %w", pcm.ErrInvalidArgument)
	}

	if job.Output == nil {
		out, err := pcm.New(job.Input.Len(), job.Input.SampleRate, job.Input.Channels)
		if err != nil {
			return err
		}

		job.Output = out
	}

	if err := pcm.Copy(job.Output, job.Input); err != nil {
		return err
	}

	for _, fx := range job.Selection.Effects() {
		if err := ctx.Err(); err != nil {
			return c.fail(job, err)
		}

		if err := fx.apply(job.Output); err != nil {
			return c.fail(job, &StageError{Kind: fx.Kind(), Err: err})
		}
	}

	return effects.Normalize(job.Output)
}

func (c *Chain) fail(job *Job, err error) error {
	if c.rollback {
		if cerr := pcm.Copy(job.Output, job.Input); cerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, cerr)
		}
	}

	return err
}
