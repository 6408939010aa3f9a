// ABOUTME: Entry point for the outbridge demo player
// ABOUTME: Decodes a local audio file and pumps it through the realtime output bridge
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/outbridge-go/pkg/audio"
	"github.com/Resonate-Protocol/outbridge-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/outbridge-go/pkg/audio/output"
	"github.com/Resonate-Protocol/outbridge-go/pkg/bridge"
	"github.com/google/uuid"
)

var (
	file          = flag.String("file", "", "Audio file to play (mp3, flac, or raw pcm)")
	codec         = flag.String("codec", "", "Codec override: pcm, mp3, flac (default: by file extension)")
	backend       = flag.String("backend", "malgo", "Audio backend: malgo, oto, portaudio")
	bufferSeconds = flag.Int("buffer-seconds", 4, "Transfer buffer capacity in seconds")
	name          = flag.String("name", "", "Client name (default: hostname-outbridge-<id>)")
	pcmRate       = flag.Int("pcm-rate", 44100, "Sample rate for raw pcm input")
	pcmChannels   = flag.Int("pcm-channels", 2, "Channel count for raw pcm input")
)

func main() {
	flag.Parse()

	if *file == "" {
		log.Fatal("No input: -file is required")
	}

	clientName := *name
	if clientName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		clientName = fmt.Sprintf("%s-outbridge-%s", hostname, uuid.NewString()[:8])
	}
	log.Printf("Starting outbridge player: %s", clientName)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer func() { _ = f.Close() }()

	dec, err := newDecoder(f)
	if err != nil {
		log.Fatalf("Failed to create decoder: %v", err)
	}
	defer func() { _ = dec.Close() }()

	format := dec.Format()
	log.Printf("Input: %s, %dHz, %d channels", format.Codec, format.SampleRate, format.Channels)

	host := newHost(*backend)
	if err := host.Open(format.SampleRate, format.Channels); err != nil {
		log.Fatalf("Failed to open %s host: %v", *backend, err)
	}

	session, err := bridge.New(bridge.Config{
		SampleRate:   format.SampleRate,
		Channels:     format.Channels,
		BufferFrames: *bufferSeconds * format.SampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to create bridge session: %v", err)
	}
	if err := session.Attach(host); err != nil {
		log.Fatalf("Failed to attach session: %v", err)
	}
	defer func() { _ = session.Close() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if err := pump(session, dec, format, sigCh); err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
}

// pump feeds decoded frames into the session, pacing by the session's own
// delay estimate so the transfer buffer stays roughly half full.
func pump(session *bridge.Session, dec decode.Decoder, format audio.Format, sigCh <-chan os.Signal) error {
	frameBytes := format.FrameBytes()
	chunk := make([]byte, frameBytes*4096)
	highWater := int64(*bufferSeconds) * int64(format.SampleRate) / 2

	lastReport := time.Now()

	for {
		select {
		case <-sigCh:
			log.Printf("Interrupted, flushing queued audio")
			session.Flush()
			// Give the render callback one period to act on the flush
			// before the host is detached.
			time.Sleep(100 * time.Millisecond)
			return nil
		default:
		}

		n, err := dec.ReadFrames(chunk)
		if n > 0 {
			frames := n / frameBytes
			accepted := session.Submit(chunk[:n])
			if accepted < frames {
				log.Printf("Warning: transfer buffer overrun, dropped %d of %d frames",
					frames-accepted, frames)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("decode error: %w", err)
		}

		if delay, derr := session.Delay(); derr == nil {
			if time.Since(lastReport) > 2*time.Second {
				log.Printf("Output delay: %d frames (%v)", delay, format.FramesDuration(int(delay)))
				lastReport = time.Now()
			}
			for delay > highWater {
				time.Sleep(50 * time.Millisecond)
				if delay, derr = session.Delay(); derr != nil {
					break
				}
			}
		}
	}

	// Drain: wait for the queued tail to reach the speakers.
	log.Printf("End of stream, draining")
	deadline := time.Now().Add(time.Duration(*bufferSeconds+1) * time.Second)
	for time.Now().Before(deadline) {
		delay, err := session.Delay()
		if err != nil || delay <= 0 {
			break
		}
		select {
		case <-sigCh:
			session.Flush()
			time.Sleep(100 * time.Millisecond)
			return nil
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}

// newDecoder picks a decoder from the -codec flag or the file extension.
func newDecoder(f *os.File) (decode.Decoder, error) {
	c := *codec
	if c == "" {
		switch strings.ToLower(filepath.Ext(f.Name())) {
		case ".mp3":
			c = "mp3"
		case ".flac":
			c = "flac"
		default:
			c = "pcm"
		}
	}

	switch c {
	case "mp3":
		return decode.NewMP3(f)
	case "flac":
		return decode.NewFLAC(f)
	case "pcm":
		return decode.NewPCM(f, audio.Format{
			Codec:      "pcm",
			SampleRate: *pcmRate,
			Channels:   *pcmChannels,
			BitDepth:   16,
		})
	default:
		return nil, fmt.Errorf("unknown codec %q", c)
	}
}

// newHost picks an output backend by name.
func newHost(backend string) output.Host {
	switch backend {
	case "oto":
		return output.NewOto()
	case "portaudio":
		return output.NewPortAudio()
	default:
		return output.NewMalgo()
	}
}
