// ABOUTME: Sample conversion between 16-bit PCM and engine float samples
// ABOUTME: Deinterleaves transfer-buffer bytes into per-channel planar output
package bridge

import (
	"encoding/binary"
	"math"
)

// convertSample maps one signed 16-bit sample to [-1.0, 1.0]. The negative
// range scales against math.MinInt16 and the non-negative range against
// math.MaxInt16. The mapping is slightly asymmetric at the extremes; it
// matches the fixed-point-to-float convention of the audio engines this
// feeds and must stay bit-compatible with them.
func convertSample(s int16) float32 {
	if s < 0 {
		return float32(s) / -math.MinInt16
	}
	return float32(s) / math.MaxInt16
}

// deinterleave converts nframes of interleaved little-endian 16-bit frames
// from src into the planar output buffers, one converted sample per channel
// in channel order, starting at frame offset in each output buffer.
func deinterleave(src []byte, out [][]float32, offset, nframes int) {
	idx := 0
	for f := offset; f < offset+nframes; f++ {
		for ch := range out {
			s := int16(binary.LittleEndian.Uint16(src[idx:]))
			out[ch][f] = convertSample(s)
			idx += 2
		}
	}
}
