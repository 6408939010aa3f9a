// ABOUTME: Audio output package providing callback-driven host backends
// ABOUTME: Provides the Host interface with malgo, oto and portaudio implementations
// Package output provides callback-driven audio engine backends.
//
// A Host owns the realtime audio thread and periodically invokes a
// registered ProcessFunc with planar float32 output buffers to fill.
// Three backends are provided:
//
//   - Malgo: miniaudio via gen2brain/malgo (default, cross-platform)
//   - Oto: ebitengine/oto, pull-based through an io.Reader
//   - PortAudio: gordonklaus/portaudio, compiled with -tags portaudio
//
// Example:
//
//	host := output.NewMalgo()
//	err := host.Open(44100, 2)
//	host.OnProcess(render)
//	err = host.Start()
package output
