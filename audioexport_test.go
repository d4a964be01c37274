package ambitone_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambitone/ambitone"
)

func TestWavHeaderPCM(t *testing.T) {
	cfg := ambitone.RenderConfig{Duration: 1, SampleRate: 8000, ChannelCount: 1, BitDepth: 16}
	buffer := []float32{0, 0.25, -0.25, 0.5}
	data, err := ambitone.Wav(buffer, cfg)
	require.NoError(t, err)
	require.Len(t, data, 44+2*len(buffer))

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(36+2*len(buffer)), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:22]), "wave format should be PCM")
	assert.Equal(t, uint16(cfg.ChannelCount), binary.LittleEndian.Uint16(data[22:24]))
	assert.Equal(t, uint32(cfg.SampleRate), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint32(cfg.SampleRate*cfg.ChannelCount*2), binary.LittleEndian.Uint32(data[28:32]))
	assert.Equal(t, uint16(cfg.ChannelCount*2), binary.LittleEndian.Uint16(data[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:36]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(2*len(buffer)), binary.LittleEndian.Uint32(data[40:44]))
}

func TestWavHeaderFloat(t *testing.T) {
	cfg := ambitone.RenderConfig{Duration: 1, SampleRate: 44100, ChannelCount: 2, BitDepth: 32}
	buffer := []float32{0.5, 0.5, -0.5, -0.5}
	data, err := ambitone.Wav(buffer, cfg)
	require.NoError(t, err)
	require.Len(t, data, 58+4*len(buffer))

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(50+4*len(buffer)), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(data[20:22]), "wave format should be IEEE float")
	assert.Equal(t, uint16(32), binary.LittleEndian.Uint16(data[34:36]))
	assert.Equal(t, "fact", string(data[38:42]), "float wavs need a fact chunk")
	assert.Equal(t, uint32(len(buffer)), binary.LittleEndian.Uint32(data[46:50]))
	assert.Equal(t, "data", string(data[50:54]))
	assert.Equal(t, uint32(4*len(buffer)), binary.LittleEndian.Uint32(data[54:58]))
	assert.Equal(t, math.Float32bits(0.5), binary.LittleEndian.Uint32(data[58:62]))
}

func TestRawPCMClamps(t *testing.T) {
	cfg := ambitone.RenderConfig{Duration: 1, SampleRate: 8000, ChannelCount: 1, BitDepth: 16}
	raw, err := ambitone.Raw([]float32{0, 0.5, 1.5, -1.5}, cfg)
	require.NoError(t, err)
	require.Len(t, raw, 8)

	want := []int16{0, 16383, math.MaxInt16, math.MinInt16}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
		assert.Equal(t, w, got, "sample %d", i)
	}
}

func TestRenderToFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	long := ambitone.RenderConfig{Duration: 0.5, SampleRate: 8000, ChannelCount: 1, BitDepth: 16, Fade: 0.1}
	short := ambitone.RenderConfig{Duration: 0.25, SampleRate: 8000, ChannelCount: 1, BitDepth: 16, Fade: 0.1}
	prog := ambitone.DefaultProgression()

	_, err := ambitone.RenderToFile(long, prog, path)
	require.NoError(t, err)
	_, err = ambitone.RenderToFile(short, prog, path)
	require.NoError(t, err)

	buffer, err := ambitone.Render(short, prog)
	require.NoError(t, err)
	want, err := ambitone.Wav(buffer, short)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want, got), "file should match the second render")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary or leftover files should remain")
}

func TestRenderToFileDeterministic(t *testing.T) {
	dir := t.TempDir()
	cfg := ambitone.RenderConfig{Duration: 0.5, SampleRate: 8000, ChannelCount: 2, BitDepth: 16, Fade: 0.1}
	prog := ambitone.DefaultProgression()

	first, err := ambitone.RenderToFile(cfg, prog, filepath.Join(dir, "a.wav"))
	require.NoError(t, err)
	second, err := ambitone.RenderToFile(cfg, prog, filepath.Join(dir, "b.wav"))
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "two renders of the same inputs should be byte identical")
}

func TestRenderToFileUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tone.wav")
	cfg := ambitone.RenderConfig{Duration: 0.5, SampleRate: 8000, ChannelCount: 1, BitDepth: 16, Fade: 0.1}

	_, err := ambitone.RenderToFile(cfg, ambitone.DefaultProgression(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ambitone.ErrPathUnwritable)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should exist after a failed render")
}

func TestRenderToFileInvalidConfigTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := ambitone.RenderConfig{Duration: 0, SampleRate: 8000, ChannelCount: 1, BitDepth: 16}

	_, err := ambitone.RenderToFile(cfg, ambitone.DefaultProgression(), filepath.Join(dir, "tone.wav"))
	assert.ErrorIs(t, err, ambitone.ErrInvalidConfig)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "validation failures must happen before any file I/O")
}
