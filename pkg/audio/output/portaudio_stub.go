//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"
)

// PortAudio host implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a PortAudio-backed host.
func NewPortAudio() Host {
	return &PortAudio{}
}

// Open initializes PortAudio
func (p *PortAudio) Open(sampleRate, channels int) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// SampleRate returns the negotiated sample rate.
func (p *PortAudio) SampleRate() int {
	return 0
}

// OnProcess registers the render callback.
func (p *PortAudio) OnProcess(fn ProcessFunc) {}

// OnRouteChange registers the topology-change callback.
func (p *PortAudio) OnRouteChange(fn func()) {}

// ChannelLatency reports the downstream latency in frames.
func (p *PortAudio) ChannelLatency(ch int) int {
	return 0
}

// Start activates the stream.
func (p *PortAudio) Start() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Close releases resources
func (p *PortAudio) Close() error {
	return nil
}
