// ABOUTME: PCM stream decoder
// ABOUTME: Passes raw 16-bit interleaved audio through with frame alignment
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/outbridge-go/pkg/audio"
)

// PCMDecoder reads raw interleaved 16-bit LE PCM.
type PCMDecoder struct {
	*frameReader
	format audio.Format
}

// NewPCM creates a raw PCM decoder. The format describes the stream on r;
// only 16-bit input is supported since that is the bridge's frame encoding.
func NewPCM(r io.Reader, format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("invalid pcm format: %d Hz, %d channels", format.SampleRate, format.Channels)
	}

	return &PCMDecoder{
		frameReader: newFrameReader(r, format.FrameBytes()),
		format:      format,
	}, nil
}

// Format describes the decoded output stream.
func (d *PCMDecoder) Format() audio.Format {
	return d.format
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
