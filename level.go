package ambitone

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Peak returns the largest absolute sample value in the buffer.
func Peak(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	return vek32.Max(vek32.Abs(buffer))
}

// RMS returns the root-mean-square level of the buffer.
func RMS(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	power := vek32.Mean(vek32.Mul(buffer, buffer))
	return float32(math.Sqrt(float64(power)))
}

// BinMagnitude measures the normalized magnitude of a single frequency over
// the [from, to) time slice of an interleaved buffer rendered with cfg,
// using the Goertzel recurrence on the first channel. For a pure sine of
// amplitude A on the bin the result approaches A/2, so relative comparisons
// between frequencies tell which partials dominate a slice.
func BinMagnitude(buffer []float32, cfg RenderConfig, freq, from, to float64) float64 {
	start := int(from * float64(cfg.SampleRate))
	end := int(to * float64(cfg.SampleRate))
	if frames := len(buffer) / cfg.ChannelCount; end > frames {
		end = frames
	}
	if start < 0 || start >= end {
		return 0
	}
	coeff := 2 * math.Cos(2*math.Pi*freq/float64(cfg.SampleRate))
	var s0, s1, s2 float64
	for i := start; i < end; i++ {
		s0 = float64(buffer[i*cfg.ChannelCount]) + coeff*s1 - s2
		s2, s1 = s1, s0
	}
	power := s1*s1 + s2*s2 - coeff*s1*s2
	return math.Sqrt(math.Max(power, 0)) / float64(end-start)
}
