// ABOUTME: Tests for the PCM decoder
// ABOUTME: Covers frame alignment, partial-frame carry and format validation
package decode

import (
	"bytes"
	"io"
	"testing"

	"github.com/Resonate-Protocol/outbridge-go/pkg/audio"
)

func stereoFormat() audio.Format {
	return audio.Format{Codec: "pcm", SampleRate: 44100, Channels: 2, BitDepth: 16}
}

func TestNewPCM(t *testing.T) {
	decoder, err := NewPCM(bytes.NewReader(nil), stereoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}
	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
	if got := decoder.Format(); got.Channels != 2 || got.SampleRate != 44100 {
		t.Errorf("unexpected format: %+v", got)
	}
}

func TestNewPCM_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		format audio.Format
	}{
		{"wrong codec", audio.Format{Codec: "mp3", SampleRate: 44100, Channels: 2, BitDepth: 16}},
		{"24-bit", audio.Format{Codec: "pcm", SampleRate: 44100, Channels: 2, BitDepth: 24}},
		{"zero rate", audio.Format{Codec: "pcm", Channels: 2, BitDepth: 16}},
		{"zero channels", audio.Format{Codec: "pcm", SampleRate: 44100, BitDepth: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPCM(bytes.NewReader(nil), tt.format); err == nil {
				t.Errorf("expected error for %+v", tt.format)
			}
		})
	}
}

func TestPCMReadWholeFrames(t *testing.T) {
	// 10 stereo frames = 40 bytes.
	input := make([]byte, 40)
	for i := range input {
		input[i] = byte(i)
	}
	decoder, err := NewPCM(bytes.NewReader(input), stereoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// A 13-byte destination holds exactly 3 whole frames.
	p := make([]byte, 13)
	n, err := decoder.ReadFrames(p)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 12 {
		t.Errorf("expected 12 bytes (3 whole frames), got %d", n)
	}
	if !bytes.Equal(p[:n], input[:12]) {
		t.Error("decoded bytes diverge from input")
	}
}

func TestPCMCarriesPartialFrame(t *testing.T) {
	input := make([]byte, 16)
	for i := range input {
		input[i] = byte(i + 1)
	}
	// Deliver the stream in awkward 5-byte reads.
	decoder, err := NewPCM(iotest5{bytes.NewReader(input)}, stereoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	var got []byte
	p := make([]byte, 8)
	for len(got) < len(input) {
		n, err := decoder.ReadFrames(p)
		got = append(got, p[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}

	if !bytes.Equal(got, input) {
		t.Errorf("expected %v, got %v", input, got)
	}
	if len(got)%4 != 0 {
		t.Errorf("read returned a partial frame: %d bytes total", len(got))
	}
}

func TestPCMTinyDestination(t *testing.T) {
	decoder, err := NewPCM(bytes.NewReader(make([]byte, 8)), stereoFormat())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Destination smaller than one frame: no progress, no error.
	n, err := decoder.ReadFrames(make([]byte, 3))
	if n != 0 || err != nil {
		t.Errorf("expected (0, nil), got (%d, %v)", n, err)
	}
}

// iotest5 limits every Read to at most 5 bytes.
type iotest5 struct {
	r io.Reader
}

func (r iotest5) Read(p []byte) (int, error) {
	if len(p) > 5 {
		p = p[:5]
	}
	return r.r.Read(p)
}
