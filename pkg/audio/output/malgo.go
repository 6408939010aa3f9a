// ABOUTME: Malgo-based audio host implementation
// ABOUTME: Drives the render callback from a miniaudio playback device
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"
)

const (
	// malgoPeriodFrames fixes the device period so the planar scratch
	// buffers can be sized once at Open; the data callback must not
	// allocate.
	malgoPeriodFrames = 1024
	malgoPeriods      = 3
)

// Malgo is a Host backed by miniaudio.
type Malgo struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device

	sampleRate int
	channels   int

	process     ProcessFunc
	routeChange func()

	// Planar scratch for the render callback, allocated at Open. views
	// holds resliced windows of planar so chunked periods reuse the same
	// backing arrays.
	planar [][]float32
	views  [][]float32

	mu sync.Mutex
}

// NewMalgo creates a miniaudio-backed host.
func NewMalgo() Host {
	return &Malgo{}
}

// Open initializes the miniaudio context and playback device.
func (m *Malgo) Open(sampleRate, channels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("malgo host already open")
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoCtx = ctx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = malgoPeriodFrames
	deviceConfig.Periods = malgoPeriods
	deviceConfig.Alsa.NoMMap = 1

	m.planar = make([][]float32, channels)
	m.views = make([][]float32, channels)
	for ch := range m.planar {
		m.planar[ch] = make([]float32, malgoPeriodFrames)
	}

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			m.dataCallback(pOutput, frameCount)
		},
		// miniaudio stops the device on default-device reroutes; treat
		// that as a downstream topology change.
		Stop: func() {
			if m.routeChange != nil {
				m.routeChange()
			}
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		m.closeContext()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	m.device = device
	m.sampleRate = sampleRate
	m.channels = channels

	log.Printf("Audio host initialized: %dHz, %d channels (malgo, period %d frames)",
		sampleRate, channels, malgoPeriodFrames)

	return nil
}

// SampleRate returns the negotiated sample rate.
func (m *Malgo) SampleRate() int {
	return m.sampleRate
}

// OnProcess registers the render callback.
func (m *Malgo) OnProcess(fn ProcessFunc) {
	m.process = fn
}

// OnRouteChange registers the topology-change callback.
func (m *Malgo) OnRouteChange(fn func()) {
	m.routeChange = fn
}

// ChannelLatency reports the device queue depth in frames.
func (m *Malgo) ChannelLatency(ch int) int {
	return malgoPeriodFrames * malgoPeriods
}

// Start activates the playback device.
func (m *Malgo) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return fmt.Errorf("malgo host not open")
	}
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	return nil
}

// dataCallback renders into the interleaved device buffer, one period-sized
// chunk at a time so the preallocated planar scratch always suffices.
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	if m.process == nil {
		zeroFill(pOutput)
		return
	}

	stride := m.channels * 4
	for done := 0; done < int(frameCount); {
		chunk := int(frameCount) - done
		if chunk > malgoPeriodFrames {
			chunk = malgoPeriodFrames
		}
		for ch := range m.planar {
			m.views[ch] = m.planar[ch][:chunk]
		}
		m.process(m.views)
		interleaveFloat32(pOutput, m.views, chunk, done*stride)
		done += chunk
	}
}

// Close stops the device and tears down the miniaudio context. The render
// callback cannot fire once this returns.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
	}
	m.closeContext()
	return nil
}

// closeContext releases the malgo context (must hold m.mu).
func (m *Malgo) closeContext() {
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
}
