package effects

import (
	"github.com/cwbudde/algo-fxworker/dsp/filter/biquad"
	"github.com/cwbudde/algo-fxworker/dsp/filter/design"
	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

type designFunc func(freq, q, sampleRate float64) biquad.Coefficients

// LowPass runs buf through a second-order Butterworth low-pass at
// p.CutoffFreq. History starts at zero for every call.
func LowPass(buf *pcm.Buffer, p *FilterParams) error {
	return applyFilter("low-pass", buf, p, design.Lowpass)
}

// HighPass runs buf through a second-order Butterworth high-pass at
// p.CutoffFreq.
func HighPass(buf *pcm.Buffer, p *FilterParams) error {
	return applyFilter("high-pass", buf, p, design.Highpass)
}

func applyFilter(stage string, buf *pcm.Buffer, p *FilterParams, fn designFunc) error {
	if err := checkBuffer(stage, buf); err != nil {
		return err
	}

	if err := checkParams(stage, p); err != nil {
		return err
	}

	if err := checkRate(stage, buf); err != nil {
		return err
	}

	if err := checkFinite(stage, p.CutoffFreq); err != nil {
		return err
	}

	work, err := pcm.Floats(buf.Samples())
	if err != nil {
		return err
	}

	section := biquad.NewSection(fn(p.CutoffFreq, design.ButterworthQ, float64(buf.SampleRate)))
	section.ProcessBlock(work)
	pcm.FromFloat(buf.Samples(), work)

	return nil
}
