package ambitone

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Wav serializes an interleaved float32 buffer into a complete RIFF WAV
// file. BitDepth 16 in the config produces signed 16-bit PCM samples;
// BitDepth 32 keeps the samples as IEEE float.
func Wav(buffer []float32, cfg RenderConfig) ([]byte, error) {
	buf := new(bytes.Buffer)
	wavHeader(len(buffer), cfg, buf)
	err := rawToBuffer(buffer, cfg.BitDepth == 16, buf)
	if err != nil {
		return nil, fmt.Errorf("Wav failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Raw serializes the buffer without any header, in the same sample format
// Wav would use.
func Raw(buffer []float32, cfg RenderConfig) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := rawToBuffer(buffer, cfg.BitDepth == 16, buf)
	if err != nil {
		return nil, fmt.Errorf("Raw failed: %w", err)
	}
	return buf.Bytes(), nil
}

func rawToBuffer(data []float32, pcm16 bool, buf *bytes.Buffer) error {
	var err error
	if pcm16 {
		int16data := make([]int16, len(data))
		for i, v := range data {
			int16data[i] = int16(clamp(int(v*math.MaxInt16), math.MinInt16, math.MaxInt16))
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, data)
	}
	if err != nil {
		return fmt.Errorf("%w: could not binary write data to binary buffer: %v", ErrEncodingFailed, err)
	}
	return nil
}

// wavHeader writes a wave header for either int16 or float32 samples into
// the bytes.Buffer. bufferLength is the total number of samples across all
// channels; sample rate and channel count come from the config. BitDepth 16
// means a PCM header, anything else a float header with the fact chunk the
// float format requires.
func wavHeader(bufferLength int, cfg RenderConfig, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	numChannels := cfg.ChannelCount
	sampleRate := cfg.SampleRate
	var bytesPerSample, chunkSize, fmtChunkSize, waveFormat int
	var factChunk bool
	if cfg.BitDepth == 16 {
		bytesPerSample = 2
		chunkSize = 36 + bytesPerSample*bufferLength
		fmtChunkSize = 16
		waveFormat = 1 // PCM
		factChunk = false
	} else {
		bytesPerSample = 4
		chunkSize = 50 + bytesPerSample*bufferLength
		fmtChunkSize = 18
		waveFormat = 3 // IEEE float
		factChunk = true
	}
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(chunkSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(waveFormat))
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*numChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))            // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                      // bits per sample
	if fmtChunkSize > 16 {
		binary.Write(buf, binary.LittleEndian, uint16(0)) // size of extension
	}
	if factChunk {
		buf.Write([]byte("fact"))
		binary.Write(buf, binary.LittleEndian, uint32(4))            // fact chunk size
		binary.Write(buf, binary.LittleEndian, uint32(bufferLength)) // sample length
	}
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(bytesPerSample*bufferLength))
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// WriteFile writes an encoded render to path with the same all-or-nothing
// replace semantics RenderToFile uses.
func WriteFile(path string, data []byte) error {
	return writeFileAtomic(path, data)
}

// writeFileAtomic replaces the file at path with data, or leaves the
// previous state of the path untouched: the bytes go to a temporary sibling
// first and are renamed over path only after a complete write. The rename
// also gives the overwrite-on-repeat behavior for free.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, name+".tmp")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary file in %v: %v", ErrPathUnwritable, dir, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: could not write %v: %v", ErrPathUnwritable, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: could not close %v: %v", ErrPathUnwritable, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: could not move %v to %v: %v", ErrPathUnwritable, tmp.Name(), path, err)
	}
	return nil
}
