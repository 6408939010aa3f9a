// ABOUTME: Whole-frame reader adapter
// ABOUTME: Wraps a byte stream so reads never split an interleaved frame
package decode

import "io"

// frameReader adapts an io.Reader emitting 16-bit LE PCM bytes into
// whole-frame reads. A trailing partial frame is carried over to the next
// call so channel alignment can never shift mid-stream.
type frameReader struct {
	r          io.Reader
	frameBytes int
	rem        []byte
	remLen     int
}

func newFrameReader(r io.Reader, frameBytes int) *frameReader {
	return &frameReader{
		r:          r,
		frameBytes: frameBytes,
		rem:        make([]byte, frameBytes),
	}
}

func (fr *frameReader) ReadFrames(p []byte) (int, error) {
	usable := len(p) / fr.frameBytes * fr.frameBytes
	if usable == 0 {
		return 0, nil
	}

	n := copy(p, fr.rem[:fr.remLen])
	fr.remLen = 0

	m, err := fr.r.Read(p[n:usable])
	total := n + m

	whole := total / fr.frameBytes * fr.frameBytes
	fr.remLen = copy(fr.rem, p[whole:total])

	if whole == 0 && err == nil {
		// Short read left only a partial frame; report progress as zero
		// and let the caller retry.
		return 0, nil
	}
	return whole, err
}
