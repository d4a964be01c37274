package ambitone

import (
	"fmt"
	"math"
)

const (
	voiceGain   = 0.2 // gain per chord voice before summing
	clipCeiling = 0.7 // output level after tanh saturation
)

// Render synthesizes the progression into an interleaved float32 buffer of
// cfg.FrameCount() frames times cfg.ChannelCount samples. Each frame sums,
// for every frequency of the chord active at that instant, a sine
// fundamental plus second and third harmonics at half and quarter amplitude,
// shapes the sum with the whole-render fade envelope and bounds it with tanh
// soft clipping. The content is mono, duplicated to every channel.
//
// Render is pure and deterministic: identical inputs produce bit-identical
// buffers. It runs synchronously with no internal concurrency; a five second
// stereo render at 44.1 kHz takes on the order of tens of milliseconds.
func Render(cfg RenderConfig, prog Progression) ([]float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := prog.Validate(); err != nil {
		return nil, err
	}
	frames := cfg.FrameCount()
	cycle := prog.TotalDuration()
	buffer := make([]float32, frames*cfg.ChannelCount)
	for frame := 0; frame < frames; frame++ {
		t := float64(frame) / float64(cfg.SampleRate)
		chord := prog.At(math.Mod(t, cycle))
		var sum float64
		for _, f := range chord.Frequencies {
			sum += math.Sin(2*math.Pi*f*t) +
				0.5*math.Sin(4*math.Pi*f*t) +
				0.25*math.Sin(6*math.Pi*f*t)
		}
		sample := sum * voiceGain * fadeEnvelope(t, cfg)
		v := float32(math.Tanh(sample) * clipCeiling)
		for c := 0; c < cfg.ChannelCount; c++ {
			buffer[frame*cfg.ChannelCount+c] = v
		}
	}
	return buffer, nil
}

// fadeEnvelope ramps linearly from 0 to 1 over the first cfg.Fade seconds of
// the render and back down to 0 over the last cfg.Fade seconds.
func fadeEnvelope(t float64, cfg RenderConfig) float64 {
	if cfg.Fade == 0 {
		return 1
	}
	env := math.Min(math.Min(t/cfg.Fade, (cfg.Duration-t)/cfg.Fade), 1)
	return math.Max(env, 0)
}

// RenderToFile renders the progression and replaces the file at path with
// the result as a WAV file, 16-bit PCM for BitDepth 16 and IEEE float for
// 32. The write is all or nothing: either the complete file exists at path
// afterwards, or the previous state of the path is untouched and an error
// wrapping one of the package error kinds is returned. Returns the path it
// wrote.
func RenderToFile(cfg RenderConfig, prog Progression, path string) (string, error) {
	buffer, err := Render(cfg, prog)
	if err != nil {
		return "", err
	}
	data, err := Wav(buffer, cfg)
	if err != nil {
		return "", fmt.Errorf("could not generate wav data: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}
