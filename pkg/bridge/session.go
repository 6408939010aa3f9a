// ABOUTME: Output session bridging a non-realtime producer to a realtime render callback
// ABOUTME: Owns the transfer buffer, flush flag, latency estimate and delay arithmetic
package bridge

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/outbridge-go/pkg/audio/output"
)

const bytesPerSample = 2 // fixed 16-bit frame encoding

// ErrNotAttached is returned by Delay before the session has an active host.
var ErrNotAttached = errors.New("bridge: no active host session")

// Config fixes the session format at construction. All fields are immutable
// for the session's lifetime.
type Config struct {
	// SampleRate in frames per second. The host must run at exactly this
	// rate; Attach fails otherwise.
	SampleRate int

	// Channels is the fixed channel count of the interleaved input and
	// the fan-out of the planar output.
	Channels int

	// BufferFrames sizes the transfer buffer. Zero selects four seconds
	// of audio at SampleRate.
	BufferFrames int
}

// Session carries decoded audio frames from a non-realtime producer into a
// host's realtime render callback.
//
// Submit and Delay share one mutex and may block briefly on each other; the
// render callback shares nothing with them and runs lock-free against the
// transfer buffer.
type Session struct {
	sampleRate int
	channels   int
	frameBytes int

	ring *RingBuffer

	// mu serializes Submit and Delay so occupancy and the last-transfer
	// time are always read as a consistent pair. The render callback
	// never takes it.
	mu           sync.Mutex
	lastTransfer time.Time
	now          func() time.Time

	flushPending  atomic.Bool
	latencyFrames atomic.Int64

	// stitch reassembles a frame that straddles the ring's physical
	// boundary. Preallocated; the render callback must not allocate.
	stitch []byte

	host     output.Host
	attached atomic.Bool
}

// New creates a session for the given fixed format.
func New(cfg Config) (*Session, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("bridge: invalid sample rate %d", cfg.SampleRate)
	}
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("bridge: invalid channel count %d", cfg.Channels)
	}
	bufferFrames := cfg.BufferFrames
	if bufferFrames == 0 {
		bufferFrames = cfg.SampleRate * 4
	}
	if bufferFrames < 1 {
		return nil, fmt.Errorf("bridge: invalid buffer size %d frames", cfg.BufferFrames)
	}

	s := &Session{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		frameBytes: cfg.Channels * bytesPerSample,
		now:        time.Now,
	}
	s.stitch = make([]byte, s.frameBytes)
	s.ring = NewRingBuffer(bufferFrames * s.frameBytes)
	s.lastTransfer = s.now()
	return s, nil
}

// Attach registers the session's callbacks with an opened host and starts
// it. It fails without starting if the host's negotiated sample rate differs
// from the session's; the session must not run half-initialized.
func (s *Session) Attach(h output.Host) error {
	if s.attached.Load() {
		return fmt.Errorf("bridge: session already attached")
	}
	if rate := h.SampleRate(); rate != s.sampleRate {
		return fmt.Errorf("bridge: host sample rate %d does not match session rate %d", rate, s.sampleRate)
	}

	h.OnProcess(s.process)
	h.OnRouteChange(s.updateLatency)
	s.host = h
	s.updateLatency()

	if err := h.Start(); err != nil {
		s.host = nil
		return fmt.Errorf("bridge: failed to start host: %w", err)
	}
	s.attached.Store(true)
	return nil
}

// Close detaches the render callback by closing the host. The transfer
// buffer outlives the callback, so nothing can race its release.
func (s *Session) Close() error {
	if !s.attached.Swap(false) {
		return nil
	}
	return s.host.Close()
}

// Submit queues interleaved 16-bit little-endian frames for playback and
// returns the number of frames accepted. Only whole frames are written; a
// short count means the transfer buffer overran and the excess was dropped.
// The caller decides whether that is worth a warning.
func (s *Session) Submit(pcm []byte) int {
	want := len(pcm) / s.frameBytes * s.frameBytes

	s.mu.Lock()
	// Truncate to whole frames of free space so a partial frame can never
	// sit in the ring and shift channel alignment.
	free := s.ring.Free() / s.frameBytes * s.frameBytes
	n := want
	if n > free {
		n = free
	}
	written := s.ring.Write(pcm[:n])
	s.lastTransfer = s.now()
	s.mu.Unlock()

	return written / s.frameBytes
}

// Flush asks the render callback to discard everything queued at the moment
// it next runs. Safe from any thread, non-blocking, and idempotent: repeated
// requests before the callback acts collapse into one. The discard itself
// happens on the realtime thread because only the consumer may move the
// ring's read cursor.
func (s *Session) Flush() {
	s.flushPending.Store(true)
}

// Delay estimates the total output delay in frames: the averaged downstream
// latency, plus transfer-buffer occupancy, minus the frames the engine is
// assumed to have consumed since the last Submit. Occupancy only observes
// the producer-to-ring transfer; elapsed wall-clock time stands in for
// consumption that the realtime path cannot report without being locked.
// The result is an approximation, not exact accounting, and can briefly go
// negative around an underrun.
func (s *Session) Delay() (int64, error) {
	if !s.attached.Load() {
		return 0, ErrNotAttached
	}

	s.mu.Lock()
	elapsed := s.now().Sub(s.lastTransfer)
	occupancy := int64(s.ring.Length() / s.frameBytes)
	s.mu.Unlock()

	consumed := int64(elapsed.Seconds() * float64(s.sampleRate))
	return s.latencyFrames.Load() + occupancy - consumed, nil
}

// process is the realtime render callback. It pulls whatever whole frames
// the transfer buffer holds, converts them into the planar output buffers,
// and pads any shortfall with silence. It always produces exactly one full
// period of output and never blocks or allocates. Underrun is deliberately
// silent; it only shows up as Delay trending toward zero.
func (s *Session) process(out [][]float32) {
	if len(out) == 0 {
		return
	}
	nframes := len(out[0])
	framesWritten := 0
	needed := nframes

	if s.flushPending.Load() {
		// Discard everything currently queued without touching it and
		// render this whole period as silence.
		s.ring.AdvanceRead(s.ring.Length())
		s.flushPending.Store(false)
	} else {
		v := s.ring.ReadVector()
		consumed := 0

		// Whole frames in the first span.
		frames := len(v[0].Buf) / s.frameBytes
		if frames > needed {
			frames = needed
		}
		deinterleave(v[0].Buf, out, framesWritten, frames)
		framesWritten += frames
		needed -= frames
		consumed += frames * s.frameBytes

		if needed > 0 && len(v[1].Buf) > 0 {
			span := v[1].Buf
			// A frame straddles the physical boundary when the frame
			// size does not divide the ring's power-of-two capacity.
			// Stitch it back together before walking the second span.
			if head := len(v[0].Buf) - frames*s.frameBytes; head > 0 {
				if head+len(span) < s.frameBytes {
					span = nil
				} else {
					copy(s.stitch[:head], v[0].Buf[len(v[0].Buf)-head:])
					copy(s.stitch[head:], span[:s.frameBytes-head])
					deinterleave(s.stitch, out, framesWritten, 1)
					framesWritten++
					needed--
					consumed += s.frameBytes
					span = span[s.frameBytes-head:]
				}
			}
			frames = len(span) / s.frameBytes
			if frames > needed {
				frames = needed
			}
			if frames > 0 {
				deinterleave(span, out, framesWritten, frames)
				framesWritten += frames
				needed -= frames
				consumed += frames * s.frameBytes
			}
		}
		s.ring.AdvanceRead(consumed)
	}

	for f := framesWritten; f < nframes; f++ {
		for ch := range out {
			out[ch][f] = 0
		}
	}
}

// updateLatency is invoked on the host's topology-change notification. It
// averages the per-channel maximum downstream latencies into the scalar the
// delay estimator reads. Best-effort: a stale estimate degrades Delay
// accuracy but never touches the audio path.
func (s *Session) updateLatency() {
	h := s.host
	if h == nil {
		return
	}
	total := 0
	for ch := 0; ch < s.channels; ch++ {
		total += h.ChannelLatency(ch)
	}
	avg := total / s.channels
	s.latencyFrames.Store(int64(avg))
	log.Printf("Downstream latency updated: %d frames average across %d channels", avg, s.channels)
}
