// ABOUTME: Oto-based audio host implementation
// ABOUTME: Adapts oto's pull-based reader model to the render callback contract
package output

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoBuffer is the device-side queue depth requested from oto.
const otoBuffer = 50 * time.Millisecond

// Oto is a Host backed by ebitengine/oto. Oto pulls samples through an
// io.Reader on its own playback goroutine; the reader invokes the render
// callback and interleaves its planar output, so the callback contract is
// the same as for the other backends.
type Oto struct {
	otoCtx *oto.Context
	player *oto.Player

	sampleRate int
	channels   int

	process     ProcessFunc
	routeChange func()

	planar [][]float32
	views  [][]float32
}

// NewOto creates an oto-backed host.
func NewOto() Host {
	return &Oto{}
}

// Open initializes the oto context with the given format.
func (o *Oto) Open(sampleRate, channels int) error {
	if o.otoCtx != nil {
		return fmt.Errorf("oto host already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBuffer,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.planar = make([][]float32, channels)
	o.views = make([][]float32, channels)

	log.Printf("Audio host initialized: %dHz, %d channels (oto, %v buffer)",
		sampleRate, channels, otoBuffer)

	return nil
}

// SampleRate returns the negotiated sample rate.
func (o *Oto) SampleRate() int {
	return o.sampleRate
}

// OnProcess registers the render callback.
func (o *Oto) OnProcess(fn ProcessFunc) {
	o.process = fn
}

// OnRouteChange registers the topology-change callback. Oto exposes no
// routing notifications, so the callback is never invoked.
func (o *Oto) OnRouteChange(fn func()) {
	o.routeChange = fn
}

// ChannelLatency reports the oto queue depth in frames.
func (o *Oto) ChannelLatency(ch int) int {
	return int(otoBuffer * time.Duration(o.sampleRate) / time.Second)
}

// Start creates the oto player and begins pulling audio.
func (o *Oto) Start() error {
	if o.otoCtx == nil {
		return fmt.Errorf("oto host not open")
	}
	o.player = o.otoCtx.NewPlayer(&otoRenderReader{host: o})
	o.player.Play()
	return nil
}

// Close stops the player. The oto context itself cannot be torn down, so it
// is suspended instead.
func (o *Oto) Close() error {
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

// otoRenderReader feeds oto from the render callback.
type otoRenderReader struct {
	host *Oto
}

// Read fills p with interleaved float32 LE samples produced by the render
// callback. Oto sizes p itself, so partial trailing frames are left for the
// next pull.
func (r *otoRenderReader) Read(p []byte) (int, error) {
	o := r.host
	stride := o.channels * 4
	frames := len(p) / stride
	if frames == 0 {
		return 0, nil
	}
	if o.process == nil {
		zeroFill(p[:frames*stride])
		return frames * stride, nil
	}

	// Grow the planar scratch if oto asks for a larger pull than before.
	// This runs on oto's playback goroutine, not a hardware callback, so
	// the occasional allocation here is tolerable.
	if len(o.planar[0]) < frames {
		for ch := range o.planar {
			o.planar[ch] = make([]float32, frames)
		}
	}
	for ch := range o.planar {
		o.views[ch] = o.planar[ch][:frames]
	}

	o.process(o.views)
	interleaveFloat32(p, o.views, frames, 0)
	return frames * stride, nil
}
