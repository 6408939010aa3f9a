// ABOUTME: MP3 stream decoder
// ABOUTME: Decodes MP3 to interleaved 16-bit stereo frames via go-mp3
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/outbridge-go/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes an MP3 stream. go-mp3 always emits 16-bit LE stereo,
// which is exactly the bridge's frame encoding.
type MP3Decoder struct {
	*frameReader
	decoder *mp3.Decoder
	format  audio.Format
}

// NewMP3 creates an MP3 decoder for the stream on r.
func NewMP3(r io.Reader) (Decoder, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	format := audio.Format{
		Codec:      "mp3",
		SampleRate: decoder.SampleRate(),
		Channels:   2,
		BitDepth:   16,
	}
	return &MP3Decoder{
		frameReader: newFrameReader(decoder, format.FrameBytes()),
		decoder:     decoder,
		format:      format,
	}, nil
}

// Format describes the decoded output stream.
func (d *MP3Decoder) Format() audio.Format {
	return d.format
}

// Close releases decoder resources
func (d *MP3Decoder) Close() error {
	return nil
}
