// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all stream decoders feeding the bridge
package decode

import "github.com/Resonate-Protocol/outbridge-go/pkg/audio"

// Decoder reads an encoded stream and produces interleaved 16-bit
// little-endian PCM frames, the fixed encoding the bridge consumes.
type Decoder interface {
	// ReadFrames fills p with decoded frames and returns the number of
	// bytes read, always a whole number of frames. It follows io.Reader
	// error conventions: io.EOF once the stream is exhausted.
	ReadFrames(p []byte) (int, error)

	// Format describes the decoded output stream.
	Format() audio.Format

	// Close releases decoder resources.
	Close() error
}
