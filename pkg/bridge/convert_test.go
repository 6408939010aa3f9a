// ABOUTME: Tests for sample conversion and deinterleaving
// ABOUTME: Pins the asymmetric 16-bit-to-float mapping exactly
package bridge

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestConvertSample(t *testing.T) {
	tests := []struct {
		sample   int16
		expected float32
	}{
		{0, 0.0},
		{math.MaxInt16, 1.0},
		{math.MinInt16, -1.0},
		{1, 1.0 / 32767.0},
		{-1, -1.0 / 32768.0},
		{16384, 16384.0 / 32767.0},
		{-16384, -0.5},
	}

	for _, tt := range tests {
		if got := convertSample(tt.sample); got != tt.expected {
			t.Errorf("convertSample(%d): expected %v, got %v", tt.sample, tt.expected, got)
		}
	}
}

// The negative range divides by 32768 and the positive by 32767; the mapping
// is intentionally not mirror-symmetric and must stay that way.
func TestConvertSampleAsymmetry(t *testing.T) {
	if convertSample(-32767) == -convertSample(32767) {
		t.Error("expected asymmetric mapping, got mirror symmetry")
	}
	if convertSample(-32767) != -32767.0/32768.0 {
		t.Errorf("convertSample(-32767) = %v", convertSample(-32767))
	}
}

func TestDeinterleave(t *testing.T) {
	// Three stereo frames: (100, -100), (200, -200), (300, -300).
	samples := []int16{100, -100, 200, -200, 300, -300}
	src := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(src[i*2:], uint16(s))
	}

	out := [][]float32{make([]float32, 5), make([]float32, 5)}
	deinterleave(src, out, 1, 3)

	for f := 0; f < 3; f++ {
		wantL := convertSample(samples[f*2])
		wantR := convertSample(samples[f*2+1])
		if out[0][f+1] != wantL {
			t.Errorf("frame %d left: expected %v, got %v", f, wantL, out[0][f+1])
		}
		if out[1][f+1] != wantR {
			t.Errorf("frame %d right: expected %v, got %v", f, wantR, out[1][f+1])
		}
	}

	// Frames outside [offset, offset+nframes) stay untouched.
	if out[0][0] != 0 || out[0][4] != 0 {
		t.Error("deinterleave wrote outside the requested frame range")
	}
}
