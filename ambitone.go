package ambitone

import (
	"errors"
	"fmt"
)

// The error kinds a render can fail with. Every error returned from this
// package wraps one of these, so callers can tell them apart with errors.Is:
// ErrInvalidConfig means a config or progression invariant was violated and
// no file I/O was attempted; ErrPathUnwritable means the destination could
// not be created or replaced; ErrEncodingFailed means the container writer
// rejected the data mid-stream.
var (
	ErrInvalidConfig  = errors.New("invalid render config")
	ErrPathUnwritable = errors.New("output path unwritable")
	ErrEncodingFailed = errors.New("encoding failed")
)

type (
	// ChordEvent is one chord of a progression: the fundamental frequencies
	// sounding simultaneously, in Hz, and how long the chord plays before
	// the progression advances to the next one.
	ChordEvent struct {
		Frequencies []float64 `yaml:"frequencies,flow"`
		Duration    float64   `yaml:"duration"`
	}

	// Progression is an ordered sequence of chords. A render longer than the
	// progression loops it seamlessly every TotalDuration seconds.
	Progression []ChordEvent

	// RenderConfig sets the length and output format of a render. Duration
	// and Fade are in seconds; the fade is a linear ramp applied
	// symmetrically at the head and tail of the whole render, not per chord.
	// BitDepth selects the sample format of the persisted file: 16 for
	// signed PCM, 32 for IEEE float.
	RenderConfig struct {
		Duration     float64 `yaml:"duration"`
		SampleRate   int     `yaml:"samplerate"`
		ChannelCount int     `yaml:"channels"`
		BitDepth     int     `yaml:"bitdepth"`
		Fade         float64 `yaml:"fade"`
	}
)

// DefaultRenderConfig returns the config of the stock ambient tone: five
// seconds of 16-bit 44.1 kHz stereo with a 100 ms fade at both ends.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Duration:     5,
		SampleRate:   44100,
		ChannelCount: 2,
		BitDepth:     16,
		Fade:         0.1,
	}
}

func (c RenderConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidConfig, c.SampleRate)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.ChannelCount < 1 {
		return fmt.Errorf("%w: channel count must be at least 1, got %v", ErrInvalidConfig, c.ChannelCount)
	}
	if c.BitDepth != 16 && c.BitDepth != 32 {
		return fmt.Errorf("%w: bit depth must be 16 or 32, got %v", ErrInvalidConfig, c.BitDepth)
	}
	if c.Fade < 0 || c.Fade*2 > c.Duration {
		return fmt.Errorf("%w: fade %v does not fit twice in duration %v", ErrInvalidConfig, c.Fade, c.Duration)
	}
	return nil
}

// FrameCount returns the number of frames a render of this config produces.
func (c RenderConfig) FrameCount() int {
	return int(float64(c.SampleRate) * c.Duration)
}

func (p Progression) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: progression has no chords", ErrInvalidConfig)
	}
	for i, e := range p {
		if len(e.Frequencies) == 0 {
			return fmt.Errorf("%w: chord %v has no frequencies", ErrInvalidConfig, i)
		}
		for _, f := range e.Frequencies {
			if f <= 0 {
				return fmt.Errorf("%w: chord %v has non-positive frequency %v", ErrInvalidConfig, i, f)
			}
		}
		if e.Duration <= 0 {
			return fmt.Errorf("%w: chord %v has non-positive duration %v", ErrInvalidConfig, i, e.Duration)
		}
	}
	return nil
}

// TotalDuration returns the length of one pass through the progression, in
// seconds.
func (p Progression) TotalDuration() float64 {
	var total float64
	for _, e := range p {
		total += e.Duration
	}
	return total
}

// At returns the chord active at cycleTime, which the caller must already
// have wrapped to [0, TotalDuration()). If floating-point remainder
// imprecision leaves cycleTime just past the last chord's end boundary, At
// falls back to the first chord for that instant; the original player
// behaved this way and changing it would alter audible output, so it is kept
// as documented behavior. Assumes a validated, non-empty progression.
func (p Progression) At(cycleTime float64) ChordEvent {
	var start float64
	for _, e := range p {
		if cycleTime >= start && cycleTime < start+e.Duration {
			return e
		}
		start += e.Duration
	}
	return p[0]
}
