// ABOUTME: Audio decoding package for feeding the bridge
// ABOUTME: Provides PCM, MP3 and FLAC decoders emitting interleaved s16le frames
// Package decode provides stream decoders that produce interleaved 16-bit
// little-endian PCM frames, the fixed frame encoding consumed by the bridge.
//
// Supported inputs:
//   - Raw PCM (passthrough with frame alignment)
//   - MP3 via hajimehoshi/go-mp3
//   - FLAC via mewkiz/flac (requantized to 16 bits)
//
// Example:
//
//	f, _ := os.Open("song.mp3")
//	dec, err := decode.NewMP3(f)
//	format := dec.Format()
//	n, err := dec.ReadFrames(buf)
package decode
