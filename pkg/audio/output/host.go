// ABOUTME: Host interface definition for callback-driven audio engines
// ABOUTME: Models the realtime scheduler that pulls audio from the bridge
package output

// ProcessFunc is the realtime render callback. It is invoked by the host's
// audio scheduler with one planar float32 buffer per channel; every buffer
// has the same length, which is the number of frames required this period.
// The callback must fill all of them before returning and must not block
// or allocate.
type ProcessFunc func(out [][]float32)

// Host represents a callback-driven audio engine. The engine owns the
// realtime thread; the library only supplies the logic invoked on it.
//
// Lifecycle: Open negotiates the format, then callbacks are registered,
// then Start activates the realtime callback. Close detaches the callback
// before returning, so no invocation can race resource teardown.
type Host interface {
	// Open initializes the engine for the given format. It fails if the
	// engine cannot run at exactly this sample rate and channel count.
	Open(sampleRate, channels int) error

	// SampleRate returns the negotiated sample rate after Open.
	SampleRate() int

	// OnProcess registers the realtime render callback. Must be called
	// before Start.
	OnProcess(fn ProcessFunc)

	// OnRouteChange registers a callback invoked when the downstream
	// signal path changes (device reroute, graph reorder). Advisory;
	// engines that cannot observe routing changes may never invoke it.
	OnRouteChange(fn func())

	// ChannelLatency reports the maximum downstream latency in frames
	// from the engine's input to audible output for one channel.
	ChannelLatency(ch int) int

	// Start activates the realtime callback.
	Start() error

	// Close stops the callback and releases engine resources.
	Close() error
}
