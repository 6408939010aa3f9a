// ABOUTME: Audio fundamentals package providing shared types
// ABOUTME: Defines the Format type used by decoders, outputs and the bridge
// Package audio provides fundamental audio types shared across the library.
//
// The central type is Format, which describes a PCM stream (codec, sample
// rate, channel count, bit depth) and provides frame arithmetic helpers:
//
//	format := audio.Format{
//	    Codec:      "pcm",
//	    SampleRate: 44100,
//	    Channels:   2,
//	    BitDepth:   16,
//	}
//	frameBytes := format.FrameBytes() // 4
package audio
