//go:build portaudio

// ABOUTME: PortAudio host implementation
// ABOUTME: Cross-platform callback-driven output using PortAudio
package output

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
)

// PortAudio is a Host backed by PortAudio. Its stream callback already
// delivers planar float32 buffers, so the render callback is invoked
// directly on them.
type PortAudio struct {
	stream *portaudio.Stream

	sampleRate int
	channels   int

	process       ProcessFunc
	routeChange   func()
	latencyFrames int
}

// NewPortAudio creates a PortAudio-backed host.
func NewPortAudio() Host {
	return &PortAudio{}
}

// Open initializes the PortAudio library.
func (p *PortAudio) Open(sampleRate, channels int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	p.sampleRate = sampleRate
	p.channels = channels
	return nil
}

// SampleRate returns the negotiated sample rate.
func (p *PortAudio) SampleRate() int {
	return p.sampleRate
}

// OnProcess registers the render callback.
func (p *PortAudio) OnProcess(fn ProcessFunc) {
	p.process = fn
}

// OnRouteChange registers the topology-change callback. PortAudio exposes
// no routing notifications, so the callback is never invoked.
func (p *PortAudio) OnRouteChange(fn func()) {
	p.routeChange = fn
}

// ChannelLatency reports the stream's output latency in frames.
func (p *PortAudio) ChannelLatency(ch int) int {
	return p.latencyFrames
}

// Start opens and starts the default output stream.
func (p *PortAudio) Start() error {
	stream, err := portaudio.OpenDefaultStream(0, p.channels, float64(p.sampleRate), 0,
		func(out [][]float32) {
			if p.process == nil {
				for ch := range out {
					for i := range out[ch] {
						out[ch][i] = 0
					}
				}
				return
			}
			p.process(out)
		})
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	p.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}

	info := stream.Info()
	p.latencyFrames = int(info.OutputLatency.Seconds() * float64(p.sampleRate))
	log.Printf("Audio host initialized: %dHz, %d channels (portaudio, %v output latency)",
		p.sampleRate, p.channels, info.OutputLatency)

	return nil
}

// Close stops the stream and terminates PortAudio.
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			return err
		}
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	return portaudio.Terminate()
}
