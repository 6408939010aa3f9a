// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and frame arithmetic shared by decoders and the bridge
package audio

import "time"

// Format describes a PCM audio stream.
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// FrameBytes returns the size of one interleaved frame in bytes.
func (f Format) FrameBytes() int {
	return f.Channels * f.BitDepth / 8
}

// FramesDuration converts a frame count to wall-clock time at this
// format's sample rate.
func (f Format) FramesDuration(frames int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}
