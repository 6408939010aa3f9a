// ABOUTME: Bridge package carrying decoded audio into realtime render callbacks
// ABOUTME: Lock-free transfer buffer, flush control and output delay estimation
// Package bridge delivers a continuous stream of decoded PCM frames from a
// non-realtime producer into a host audio engine's realtime render callback.
//
// A Session owns a bounded lock-free transfer buffer between the two sides.
// The producer calls Submit with interleaved 16-bit frames; the host invokes
// the session's render callback once per hardware period, which converts
// queued frames to planar float32 output and pads underruns with silence.
// Flush discards queued audio on the next callback, and Delay estimates
// end-to-end output latency in frames.
//
// Example:
//
//	host := output.NewMalgo()
//	if err := host.Open(44100, 2); err != nil { ... }
//
//	session, err := bridge.New(bridge.Config{SampleRate: 44100, Channels: 2})
//	if err := session.Attach(host); err != nil { ... }
//
//	accepted := session.Submit(pcm) // interleaved s16le frames
//	delay, err := session.Delay()
package bridge
