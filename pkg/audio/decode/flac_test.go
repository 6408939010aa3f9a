// ABOUTME: Tests for the FLAC decoder
// ABOUTME: Covers sample requantization and construction failure
package decode

import (
	"bytes"
	"testing"
)

func TestRequantize16(t *testing.T) {
	tests := []struct {
		name     string
		sample   int32
		srcBits  int
		expected int16
	}{
		{"16-bit passthrough", 12345, 16, 12345},
		{"16-bit negative", -12345, 16, -12345},
		{"24-bit max", 8388607, 24, 32767},
		{"24-bit min", -8388608, 24, -32768},
		{"24-bit scaled", 1 << 15, 24, 1 << 7},
		{"8-bit scaled up", 127, 8, 127 << 8},
		{"8-bit negative", -128, 8, -128 << 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requantize16(tt.sample, tt.srcBits); got != tt.expected {
				t.Errorf("requantize16(%d, %d): expected %d, got %d",
					tt.sample, tt.srcBits, tt.expected, got)
			}
		})
	}
}

func TestNewFLAC_InvalidData(t *testing.T) {
	invalidData := []byte("definitely not a flac stream")

	decoder, err := NewFLAC(bytes.NewReader(invalidData))
	if err == nil {
		decoder.Close()
		t.Fatal("expected error for invalid FLAC data, got nil")
	}
}
