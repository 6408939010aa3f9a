// ABOUTME: Audio host interface tests
// ABOUTME: Verifies Host implementations and the interleaving helpers
package output

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestHostImplementations(t *testing.T) {
	var _ Host = (*Malgo)(nil)
	var _ Host = (*Oto)(nil)
	var _ Host = (*PortAudio)(nil)
}

func TestInterleaveFloat32(t *testing.T) {
	src := [][]float32{
		{0.5, -0.25},
		{-1.0, 1.0},
	}
	dst := make([]byte, 2*2*4)

	interleaveFloat32(dst, src, 2, 0)

	expected := []float32{0.5, -1.0, -0.25, 1.0}
	for i, want := range expected {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[i*4:]))
		if got != want {
			t.Errorf("sample %d: expected %f, got %f", i, want, got)
		}
	}
}

func TestInterleaveFloat32Offset(t *testing.T) {
	src := [][]float32{{1.0}}
	dst := make([]byte, 8)

	interleaveFloat32(dst, src, 1, 4)

	if got := binary.LittleEndian.Uint32(dst[0:]); got != 0 {
		t.Errorf("bytes before offset touched: %x", got)
	}
	got := math.Float32frombits(binary.LittleEndian.Uint32(dst[4:]))
	if got != 1.0 {
		t.Errorf("expected 1.0 at offset, got %f", got)
	}
}

func TestOtoReaderRendersWholeFrames(t *testing.T) {
	o := &Oto{
		sampleRate: 44100,
		channels:   2,
		planar:     make([][]float32, 2),
		views:      make([][]float32, 2),
	}
	var gotFrames int
	o.process = func(out [][]float32) {
		gotFrames = len(out[0])
		for ch := range out {
			for i := range out[ch] {
				out[ch][i] = float32(ch)
			}
		}
	}
	r := &otoRenderReader{host: o}

	// 10 frames plus a partial trailing frame: the partial must be left
	// for the next pull.
	p := make([]byte, 10*2*4+3)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if n != 10*2*4 {
		t.Errorf("expected %d bytes, got %d", 10*2*4, n)
	}
	if gotFrames != 10 {
		t.Errorf("expected 10 frames rendered, got %d", gotFrames)
	}

	// Channel 1 samples are 1.0 interleaved at odd positions.
	got := math.Float32frombits(binary.LittleEndian.Uint32(p[4:]))
	if got != 1.0 {
		t.Errorf("expected channel 1 sample 1.0, got %f", got)
	}
}

func TestOtoReaderSilenceWithoutCallback(t *testing.T) {
	o := &Oto{
		sampleRate: 44100,
		channels:   2,
		planar:     make([][]float32, 2),
		views:      make([][]float32, 2),
	}
	r := &otoRenderReader{host: o}

	p := make([]byte, 4*2*4)
	for i := range p {
		p[i] = 0xff
	}
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	for i := 0; i < n; i++ {
		if p[i] != 0 {
			t.Fatalf("byte %d not silent: %x", i, p[i])
		}
	}
}
