// Package queue is the Redis-backed job store shared by producers and
// workers.
//
// A job is a string identifier pushed onto the list audio:queue. Its
// payloads live in plain string keys:
//
//	audio:job:<id>:input     base64 PCM, written by the producer
//	audio:job:<id>:metadata  JSON document
//	audio:job:<id>:status    queued | processing | completed | failed
//	audio:job:<id>:result    base64 WAV file, written on success
//	audio:job:<id>:error     message, written on failure
//
// Every key is written with a TTL, one hour unless configured otherwise.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is the retention of every job key.
const DefaultTTL = time.Hour

const (
	keyPrefix = "audio:"
	queueKey  = keyPrefix + "queue"
)

// Status is the lifecycle state of a job.
type Status string

// Job states.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are expected.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ErrNotFound is returned when a job key does not exist or has expired.
var ErrNotFound = errors.New("queue: not found")

// Option configures a Client.
type Option func(*Client)

// WithTTL overrides the key retention.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// Client wraps a go-redis client with the job key layout.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps an existing go-redis client. The Client takes ownership and
// closes it on Close.
func New(rdb *redis.Client, opts ...Option) *Client {
	c := &Client{rdb: rdb, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Dial connects with the given options and verifies the server answers.
func Dial(ctx context.Context, ro *redis.Options, opts ...Option) (*Client, error) {
	c := New(redis.NewClient(ro), opts...)

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func jobKey(id, field string) string {
	return keyPrefix + "job:" + id + ":" + field
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("queue: ping %s: %w", c.rdb.Options().Addr, err)
	}

	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Pop blocks up to timeout for the next job identifier. ok is false when
// the timeout elapsed without a job.
func (c *Client) Pop(ctx context.Context, timeout time.Duration) (id string, ok bool, err error) {
	res, err := c.rdb.BRPop(ctx, timeout, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("queue: pop: %w", err)
	}

	// res is [key, value].
	if len(res) != 2 {
		return "", false, fmt.Errorf("queue: pop: unexpected reply %q", res)
	}

	return res[1], true, nil
}

// Enqueue stores a job's input and metadata, marks it queued and pushes
// its identifier, in one transaction.
func (c *Client) Enqueue(ctx context.Context, id, input, metadata string) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, jobKey(id, "input"), input, c.ttl)
		p.Set(ctx, jobKey(id, "metadata"), metadata, c.ttl)
		p.Set(ctx, jobKey(id, "status"), string(StatusQueued), c.ttl)
		p.LPush(ctx, queueKey, id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("queue: enqueue %s: %w", id, err)
	}

	return nil
}

// SetStatus records the job state.
func (c *Client) SetStatus(ctx context.Context, id string, s Status) error {
	return c.set(ctx, id, "status", string(s))
}

// StoreResult records the base64 WAV result.
func (c *Client) StoreResult(ctx context.Context, id, result string) error {
	return c.set(ctx, id, "result", result)
}

// StoreError records a failure message.
func (c *Client) StoreError(ctx context.Context, id, msg string) error {
	return c.set(ctx, id, "error", msg)
}

// StoreMetadata replaces the metadata document.
func (c *Client) StoreMetadata(ctx context.Context, id, doc string) error {
	return c.set(ctx, id, "metadata", doc)
}

// Fail records msg and marks the job failed in one round trip.
func (c *Client) Fail(ctx context.Context, id, msg string) error {
	_, err := c.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, jobKey(id, "error"), msg, c.ttl)
		p.Set(ctx, jobKey(id, "status"), string(StatusFailed), c.ttl)

		return nil
	})
	if err != nil {
		return fmt.Errorf("queue: fail %s: %w", id, err)
	}

	return nil
}

// Input returns the base64 input payload.
func (c *Client) Input(ctx context.Context, id string) (string, error) {
	return c.get(ctx, id, "input")
}

// Metadata returns the metadata document, "{}" when none was stored.
func (c *Client) Metadata(ctx context.Context, id string) (string, error) {
	doc, err := c.get(ctx, id, "metadata")
	if errors.Is(err, ErrNotFound) {
		return "{}", nil
	}

	return doc, err
}

// Result returns the base64 WAV result.
func (c *Client) Result(ctx context.Context, id string) (string, error) {
	return c.get(ctx, id, "result")
}

// Error returns the stored failure message.
func (c *Client) Error(ctx context.Context, id string) (string, error) {
	return c.get(ctx, id, "error")
}

// Status returns the job state.
func (c *Client) Status(ctx context.Context, id string) (Status, error) {
	s, err := c.get(ctx, id, "status")

	return Status(s), err
}

// Len returns the number of jobs waiting in the queue.
func (c *Client) Len(ctx context.Context) (int64, error) {
	n, err := c.rdb.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("queue: length: %w", err)
	}

	return n, nil
}

func (c *Client) set(ctx context.Context, id, field, value string) error {
	if err := c.rdb.Set(ctx, jobKey(id, field), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("queue: set %s %s: %w", id, field, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, id, field string) (string, error) {
	v, err := c.rdb.Get(ctx, jobKey(id, field)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s %s", ErrNotFound, id, field)
	}

	if err != nil {
		return "", fmt.Errorf("queue: get %s %s: %w", id, field, err)
	}

	return v, nil
}

// Wait polls the job status every interval until it is terminal or ctx
// ends, and returns the last status seen.
func (c *Client) Wait(ctx context.Context, id string, interval time.Duration) (Status, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s, err := c.Status(ctx, id)
		if err != nil {
			return s, err
		}

		if s.Terminal() {
			return s, nil
		}

		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case <-ticker.C:
		}
	}
}
