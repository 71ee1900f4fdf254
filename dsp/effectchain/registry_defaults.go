package effectchain

import (
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/effects"
)

const minThreshold = 1e-6

var defaultRegistry = DefaultRegistry()

// DefaultRegistry returns a Registry pre-populated with the six built-in
// stages under their wire names.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(LowPass.String(), func(ctx Context, p Params) Effect {
		return LowPassEffect{Params: filterParams(ctx, p, effects.DefaultLowPass())}
	})
	r.MustRegister(HighPass.String(), func(ctx Context, p Params) Effect {
		return HighPassEffect{Params: filterParams(ctx, p, effects.DefaultHighPass())}
	})
	r.MustRegister(Reverb.String(), func(_ Context, p Params) Effect {
		def := effects.DefaultReverb()

		return ReverbEffect{Params: effects.ReverbParams{
			RoomSize: p.getNumIf("room_size", def.RoomSize, positive),
			Damping:  p.GetNum("damping", def.Damping),
			WetLevel: p.GetNum("wet_level", def.WetLevel),
		}}
	})
	r.MustRegister(Echo.String(), func(_ Context, p Params) Effect {
		def := effects.DefaultEcho()

		repeats := p.GetInt("repeat_count", def.RepeatCount)
		if repeats < 0 {
			repeats = def.RepeatCount
		}

		return EchoEffect{Params: effects.EchoParams{
			DelayMs:     p.getNumIf("delay_ms", def.DelayMs, nonNegative),
			Decay:       p.GetNum("decay", def.Decay),
			RepeatCount: repeats,
		}}
	})
	r.MustRegister(PitchShift.String(), func(_ Context, p Params) Effect {
		def := effects.DefaultPitch()

		return PitchShiftEffect{Params: effects.PitchParams{
			Semitones: p.GetNum("semitones", def.Semitones),
		}}
	})
	r.MustRegister(Distortion.String(), func(_ Context, p Params) Effect {
		def := effects.DefaultDistortion()
		threshold := p.getNumIf("threshold", def.Threshold, func(v float64) bool {
			return math.Abs(v) >= minThreshold
		})

		return DistortionEffect{Params: effects.DistortionParams{
			Gain:      p.GetNum("gain", def.Gain),
			Threshold: threshold,
		}}
	})

	return r
}

// ParseSelection resolves names through the default registry.
func ParseSelection(ctx Context, names []string, params map[string]Params) (Selection, []string) {
	return defaultRegistry.ParseSelection(ctx, names, params)
}

// filterParams accepts a cutoff strictly between 0 and Nyquist; anything
// else keeps the default.
func filterParams(ctx Context, p Params, def effects.FilterParams) effects.FilterParams {
	cutoff := p.getNumIf("cutoff_freq", def.CutoffFreq, func(v float64) bool {
		return v > 0 && (ctx.SampleRate <= 0 || v < ctx.SampleRate/2)
	})

	return effects.FilterParams{
		CutoffFreq: cutoff,
		Order:      p.GetInt("order", def.Order),
	}
}

func positive(v float64) bool    { return v > 0 }
func nonNegative(v float64) bool { return v >= 0 }
