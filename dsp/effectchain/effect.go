package effectchain

import (
	"github.com/cwbudde/algo-fxworker/dsp/effects"
	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Effect is one selected stage together with its parameters. The set of
// implementations is closed: LowPassEffect, HighPassEffect, ReverbEffect,
// EchoEffect, PitchShiftEffect and DistortionEffect.
type Effect interface {
	Kind() Kind
	apply(buf *pcm.Buffer) error
}

// LowPassEffect selects the low-pass stage.
type LowPassEffect struct{ Params effects.FilterParams }

// HighPassEffect selects the high-pass stage.
type HighPassEffect struct{ Params effects.FilterParams }

// ReverbEffect selects the reverb stage.
type ReverbEffect struct{ Params effects.ReverbParams }

// EchoEffect selects the echo stage.
type EchoEffect struct{ Params effects.EchoParams }

// PitchShiftEffect selects the pitch shifter.
type PitchShiftEffect struct{ Params effects.PitchParams }

// DistortionEffect selects the distortion stage.
type DistortionEffect struct{ Params effects.DistortionParams }

func (LowPassEffect) Kind() Kind    { return LowPass }
func (HighPassEffect) Kind() Kind   { return HighPass }
func (ReverbEffect) Kind() Kind     { return Reverb }
func (EchoEffect) Kind() Kind       { return Echo }
func (PitchShiftEffect) Kind() Kind { return PitchShift }
func (DistortionEffect) Kind() Kind { return Distortion }

func (e LowPassEffect) apply(buf *pcm.Buffer) error    { return effects.LowPass(buf, &e.Params) }
func (e HighPassEffect) apply(buf *pcm.Buffer) error   { return effects.HighPass(buf, &e.Params) }
func (e ReverbEffect) apply(buf *pcm.Buffer) error     { return effects.Reverb(buf, &e.Params) }
func (e EchoEffect) apply(buf *pcm.Buffer) error       { return effects.Echo(buf, &e.Params) }
func (e PitchShiftEffect) apply(buf *pcm.Buffer) error { return effects.PitchShift(buf, &e.Params) }
func (e DistortionEffect) apply(buf *pcm.Buffer) error { return effects.Distortion(buf, &e.Params) }

// DefaultEffect returns the variant for k carrying its default parameters.
func DefaultEffect(k Kind) (Effect, bool) {
	switch k {
	case LowPass:
		return LowPassEffect{Params: effects.DefaultLowPass()}, true
	case HighPass:
		return HighPassEffect{Params: effects.DefaultHighPass()}, true
	case Reverb:
		return ReverbEffect{Params: effects.DefaultReverb()}, true
	case Echo:
		return EchoEffect{Params: effects.DefaultEcho()}, true
	case PitchShift:
		return PitchShiftEffect{Params: effects.DefaultPitch()}, true
	case Distortion:
		return DistortionEffect{Params: effects.DefaultDistortion()}, true
	}

	return nil, false
}
