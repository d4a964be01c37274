// Package oto plays rendered buffers through the ebitengine/oto library.
// The renderer itself never touches an audio device; this package is the
// audition path for callers that want to hear a buffer they just rendered.
package oto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ambitone/ambitone"
)

// Play converts the interleaved float32 buffer to 16-bit little-endian
// samples and plays it once through the default audio device, blocking
// until playback finishes. The oto context cannot be torn down again, so
// Play is meant for one-shot command line use rather than long-lived
// applications.
func Play(cfg ambitone.RenderConfig, buffer []float32) error {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	player := context.NewPlayer(bytes.NewReader(FloatBufferTo16BitLE(buffer, nil)))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
