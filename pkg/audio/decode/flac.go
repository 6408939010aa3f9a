// ABOUTME: FLAC stream decoder
// ABOUTME: Decodes FLAC frames and requantizes them to interleaved 16-bit PCM
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/outbridge-go/pkg/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// FLACDecoder decodes a FLAC stream frame by frame, requantizing samples to
// the bridge's 16-bit frame encoding.
type FLACDecoder struct {
	stream  *flac.Stream
	format  audio.Format
	srcBits int

	// One decoded FLAC frame, re-encoded as interleaved s16le, consumed
	// across ReadFrames calls.
	pending []byte
	off     int
}

// NewFLAC creates a FLAC decoder for the stream on r.
func NewFLAC(r io.Reader) (Decoder, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create flac decoder: %w", err)
	}

	info := stream.Info
	if info.NChannels == 0 {
		stream.Close()
		return nil, fmt.Errorf("flac stream reports zero channels")
	}

	return &FLACDecoder{
		stream:  stream,
		srcBits: int(info.BitsPerSample),
		format: audio.Format{
			Codec:      "flac",
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			BitDepth:   16,
		},
	}, nil
}

// Format describes the decoded output stream.
func (d *FLACDecoder) Format() audio.Format {
	return d.format
}

// ReadFrames fills p with whole interleaved frames from the stream.
func (d *FLACDecoder) ReadFrames(p []byte) (int, error) {
	frameBytes := d.format.FrameBytes()
	usable := len(p) / frameBytes * frameBytes
	if usable == 0 {
		return 0, nil
	}

	for d.off >= len(d.pending) {
		fr, err := d.stream.ParseNext()
		if err != nil {
			return 0, err // io.EOF at end of stream
		}
		d.encodeFrame(fr)
		d.off = 0
	}

	// pending holds whole frames and usable is a frame multiple, so n is
	// always frame-aligned.
	n := copy(p[:usable], d.pending[d.off:])
	d.off += n
	return n, nil
}

// encodeFrame interleaves one decoded FLAC frame into pending as s16le.
func (d *FLACDecoder) encodeFrame(fr *frame.Frame) {
	channels := len(fr.Subframes)
	nsamples := len(fr.Subframes[0].Samples)

	need := nsamples * channels * 2
	if cap(d.pending) < need {
		d.pending = make([]byte, need)
	}
	d.pending = d.pending[:need]

	idx := 0
	for i := 0; i < nsamples; i++ {
		for ch := 0; ch < channels; ch++ {
			s := requantize16(fr.Subframes[ch].Samples[i], d.srcBits)
			binary.LittleEndian.PutUint16(d.pending[idx:], uint16(s))
			idx += 2
		}
	}
}

// requantize16 scales a sample of the given source bit depth to 16 bits.
func requantize16(s int32, srcBits int) int16 {
	switch {
	case srcBits > 16:
		return int16(s >> (srcBits - 16))
	case srcBits < 16:
		return int16(s << (16 - srcBits))
	default:
		return int16(s)
	}
}

// Close releases decoder resources.
func (d *FLACDecoder) Close() error {
	return d.stream.Close()
}
