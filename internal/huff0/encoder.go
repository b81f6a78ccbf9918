// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package huff0

import "github.com/zstdgo/zstd/internal/bitio"

// Encode1 encodes src as a single Huffman bitstream.
func Encode1(t *CTable, src []byte) []byte {
	w := bitio.NewWriter()
	for i := len(src) - 1; i >= 0; i-- {
		code, length := t.Code(src[i])
		w.AddBits32(code, uint(length))
	}
	return w.Close()
}

// Encode4 splits src into four equal segments (remainder in the last,
//.2) and encodes each independently, prefixed by a
// 6-byte jump table of the first three segments' compressed sizes.
func Encode4(t *CTable, src []byte) []byte {
	n := len(src)
	seg := n / 4
	bounds := [5]int{0, seg, seg * 2, seg * 3, n}

	var streams [4][]byte
	for i := 0; i < 4; i++ {
		streams[i] = Encode1(t, src[bounds[i]:bounds[i+1]])
	}

	out := make([]byte, 6, 6+len(streams[0])+len(streams[1])+len(streams[2])+len(streams[3]))
	out[0] = byte(len(streams[0]))
	out[1] = byte(len(streams[0]) >> 8)
	out[2] = byte(len(streams[1]))
	out[3] = byte(len(streams[1]) >> 8)
	out[4] = byte(len(streams[2]))
	out[5] = byte(len(streams[2]) >> 8)
	for _, s := range streams {
		out = append(out, s...)
	}
	return out
}

// BuildFromFrequencies is a convenience wrapper: count -> length-limited
// canonical code lengths -> CTable, in one call.
func BuildFromFrequencies(freqs []uint32, maxBits int) (*CTable, error) {
	lengths, err := BuildCodeLengths(freqs, maxBits)
	if err != nil {
		return nil, err
	}
	return BuildCTable(lengths), nil
}
