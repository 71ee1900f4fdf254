// Package metadata interprets the JSON document stored alongside a job:
// which effects to run, their parameters and the PCM format of the input.
// It also produces the enriched document written back on completion.
package metadata

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/effectchain"
)

// Format assumed for input PCM when the document does not say otherwise.
const (
	DefaultSampleRate = 44100
	DefaultChannels   = 1
)

// Request is the processing request described by a metadata document.
type Request struct {
	Selection  effectchain.Selection
	SampleRate int
	Channels   int

	// Unknown lists effect names that no stage is registered for.
	Unknown []string

	// Defaulted is set when the document carried no usable effects list
	// and the default selection was used.
	Defaulted bool
}

// Defaults is the input format assumed when a document does not name one.
type Defaults struct {
	SampleRate int
	Channels   int
}

// Parse reads a metadata document assuming DefaultSampleRate and
// DefaultChannels.
func Parse(raw string) Request {
	return Defaults{SampleRate: DefaultSampleRate, Channels: DefaultChannels}.Parse(raw)
}

// Parse reads a metadata document. It never fails: a malformed document,
// or one without an "effects" array, yields the default selection. A
// present "effects" array, even an empty one, replaces the defaults.
func (d Defaults) Parse(raw string) Request {
	if d.SampleRate <= 0 {
		d.SampleRate = DefaultSampleRate
	}

	if d.Channels <= 0 {
		d.Channels = DefaultChannels
	}

	req := Request{
		Selection:  effectchain.DefaultSelection(),
		SampleRate: d.SampleRate,
		Channels:   d.Channels,
		Defaulted:  true,
	}

	root, ok := decodeObject(raw)
	if !ok {
		return req
	}

	req.SampleRate = positiveInt(root["sample_rate"], d.SampleRate)
	req.Channels = positiveInt(root["channels"], d.Channels)

	list, ok := root["effects"].([]any)
	if !ok {
		return req
	}

	names := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}

	ctx := effectchain.Context{SampleRate: float64(req.SampleRate)}
	req.Selection, req.Unknown = effectchain.ParseSelection(ctx, names, parameters(root["parameters"]))
	req.Defaulted = false

	return req
}

// decodeObject parses raw as a JSON object, keeping numbers as json.Number
// so that fields passed through untouched keep their exact text.
func decodeObject(raw string) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil || root == nil {
		return nil, false
	}

	return root, true
}

func parameters(v any) map[string]effectchain.Params {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	out := make(map[string]effectchain.Params, len(obj))

	for name, fields := range obj {
		m, ok := fields.(map[string]any)
		if !ok {
			continue
		}

		p := effectchain.Params{Type: name, Num: make(map[string]float64, len(m))}

		for key, raw := range m {
			if f, ok := number(raw); ok {
				p.Num[key] = f
			}
		}

		out[name] = p
	}

	return out
}

func number(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	f, err := n.Float64()
	if err != nil {
		return 0, false
	}

	return f, true
}

func positiveInt(v any, def int) int {
	f, ok := number(v)
	if !ok || f < 1 || f > math.MaxInt32 || f != math.Trunc(f) {
		return def
	}

	return int(f)
}
