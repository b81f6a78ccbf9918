// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package bitio

import "testing"

// The writer appends bits forward and flushes low bytes first; the
// reader locates the trailing sentinel and walks the buffer backward.
// Reading back the exact values written therefore requires replaying
// the write calls in reverse order, the same convention
// internal/fse and internal/huff0 rely on (encode a sequence back to
// front, decode it front to back).
func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	vals := []struct {
		v  uint32
		nb uint
	}{
		{1, 1}, {0, 3}, {7, 3}, {255, 8}, {12345, 16}, {1, 1}, {0, 5},
	}
	for _, tc := range vals {
		w.AddBits32(tc.v, tc.nb)
	}
	buf := w.Close()

	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	for i := len(vals) - 1; i >= 0; i-- {
		tc := vals[i]
		got := r.ReadBits(tc.nb)
		want := tc.v & ((1 << tc.nb) - 1)
		if got != want {
			t.Fatalf("ReadBits(%d) = %d, want %d", tc.nb, got, want)
		}
	}
}

func TestNewReaderEmpty(t *testing.T) {
	if _, err := NewReader(nil); err != ErrOverread {
		t.Fatalf("NewReader(nil) err = %v, want ErrOverread", err)
	}
}
