package oto

import "math"

// FloatBufferTo16BitLE converts a []float32 buffer to 16-bit little-endian
// integer bytes, appending to dst and returning it. Values outside [-1, 1]
// hard clip; the renderer's soft clipping keeps its own output well inside
// that range.
func FloatBufferTo16BitLE(buff []float32, dst []byte) []byte {
	for _, v := range buff {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		dst = append(dst, byte(uv), byte(uv>>8))
	}
	return dst
}
