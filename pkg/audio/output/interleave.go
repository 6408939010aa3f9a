// ABOUTME: Planar-to-interleaved float32 packing helpers
// ABOUTME: Shared by the malgo and oto backends to fill device byte buffers
package output

import (
	"encoding/binary"
	"math"
)

// interleaveFloat32 packs planar float32 samples into an interleaved
// little-endian float32 byte buffer. dst must hold nframes*len(src)*4 bytes
// starting at the given byte offset.
func interleaveFloat32(dst []byte, src [][]float32, nframes, dstOffset int) {
	idx := dstOffset
	for f := 0; f < nframes; f++ {
		for ch := range src {
			binary.LittleEndian.PutUint32(dst[idx:], math.Float32bits(src[ch][f]))
			idx += 4
		}
	}
}

// zeroFill writes silence into an interleaved byte buffer.
func zeroFill(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
}
