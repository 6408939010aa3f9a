// ABOUTME: Tests for the MP3 decoder
// ABOUTME: Covers construction failure on invalid streams
package decode

import (
	"bytes"
	"testing"
)

func TestNewMP3_InvalidData(t *testing.T) {
	invalidData := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}

	decoder, err := NewMP3(bytes.NewReader(invalidData))
	if err == nil {
		decoder.Close()
		t.Fatal("expected error for invalid MP3 data, got nil")
	}
}

func TestNewMP3_EmptyData(t *testing.T) {
	_, err := NewMP3(bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error for empty MP3 data, got nil")
	}
}
