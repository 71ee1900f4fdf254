package metadata

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/cwbudde/algo-fxworker/internal/analysis"
)

// TimestampLayout formats processed_at and created_at, always in UTC.
const TimestampLayout = "2006-01-02T15:04:05"

// Completion describes a finished job.
type Completion struct {
	ProcessedAt    time.Time
	ProcessingTime time.Duration
	Hostname       string
	WorkerID       string
	WorkerVersion  string
	EffectsApplied []string
	Analysis       *analysis.Report
}

// Complete returns original with the completion fields added. Fields of
// the original document are kept; a malformed original is replaced by an
// empty object.
func Complete(original string, c Completion) (string, error) {
	root, ok := decodeObject(original)
	if !ok {
		root = map[string]any{}
	}

	root["processed_at"] = c.ProcessedAt.UTC().Format(TimestampLayout)
	root["processing_time_ms"] = c.ProcessingTime.Milliseconds()
	root["hostname"] = c.Hostname

	if c.WorkerID != "" {
		root["worker_id"] = c.WorkerID
	}

	if c.WorkerVersion != "" {
		root["worker_version"] = c.WorkerVersion
	}

	applied := c.EffectsApplied
	if applied == nil {
		applied = []string{}
	}

	root["effects_applied"] = applied

	if c.Analysis != nil {
		root["analysis"] = c.Analysis
	}

	return encode(root)
}

// Submission is the document written when a job is enqueued. A nil
// Effects leaves the choice to the worker's defaults; an empty non-nil
// slice asks for normalization only.
type Submission struct {
	CreatedAt  time.Time
	Hostname   string
	Effects    []string
	SampleRate int
	Channels   int
	Source     string
}

// Encode renders the submission as a metadata document.
func (s Submission) Encode() (string, error) {
	doc := map[string]any{
		"created_at":  s.CreatedAt.UTC().Format(TimestampLayout),
		"sample_rate": s.SampleRate,
		"channels":    s.Channels,
	}

	if s.Hostname != "" {
		doc["hostname"] = s.Hostname
	}

	if s.Effects != nil {
		doc["effects"] = s.Effects
	}

	if s.Source != "" {
		doc["source"] = s.Source
	}

	return encode(doc)
}

// Field extracts a top-level string field from a document, or "".
func Field(raw, key string) string {
	root, ok := decodeObject(raw)
	if !ok {
		return ""
	}

	s, _ := root[key].(string)

	return s
}

func encode(v any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
