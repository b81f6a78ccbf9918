// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// frameMagic opens every frame this package writes.
const frameMagic = uint32(0xFD2FB528)

const skippableFrameMagicBase = uint32(0x184D2A50)

// Frame_Header_Descriptor bit layout: bits 0-1 dictionary-id field
// size code, bit 2 the content-checksum flag, bit 3 reserved (must be
// zero), bit 4 unused, bit 5 the single-segment flag, bits 6-7 the
// frame-content-size field size code.
const (
	fhdDictIDMask    = 0x03
	fhdChecksumFlag  = 1 << 2
	fhdReservedFlag  = 1 << 3
	fhdSingleSegment = 1 << 5
	fhdContentShift  = 6
)

// frameHeader carries the per-frame metadata (window size, optional
// dictionary id, optional content size) independent of how it is
// packed on the wire.
type frameHeader struct {
	windowSize     int64
	dictID         uint32
	hasDictID      bool
	contentSize    uint64
	hasContentSize bool
	checksum       bool
}

// dictIDFieldCode picks the smallest of the four field widths
// {0,1,2,4} that holds id.
func dictIDFieldCode(id uint32) (code byte, size int) {
	switch {
	case id == 0:
		return 0, 0
	case id <= 0xFF:
		return 1, 1
	case id <= 0xFFFF:
		return 2, 2
	default:
		return 3, 4
	}
}

// contentSizeFieldSize maps a frame-content-size field size code plus
// the single-segment flag to its width in bytes: code 0 means "1 byte"
// only in single-segment mode (where the window size isn't written
// separately and so always equals the content size), and "absent"
// otherwise.
func contentSizeFieldSize(code byte, singleSegment bool) int {
	switch code {
	case 0:
		if singleSegment {
			return 1
		}
		return 0
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 8
	}
}

func pickContentSizeCode(cs uint64, singleSegment bool) byte {
	switch {
	case singleSegment && cs < 256:
		return 0
	case cs < uint64(1<<16)+256:
		return 1
	case cs <= 0xFFFFFFFF:
		return 2
	default:
		return 3
	}
}

// encodeFrameHeader packs the magic number, the 1-byte descriptor, an
// optional window descriptor, an optional dictionary id, and an
// optional content size. Single-segment mode (no separate window
// descriptor byte, the window is exactly the content size) is chosen
// whenever the content size is known and fits inside the frame's
// window, the same heuristic the reference's simple API applies by
// default.
func encodeFrameHeader(h frameHeader) []byte {
	singleSegment := h.hasContentSize && uint64(h.windowSize) >= h.contentSize

	dictCode, _ := dictIDFieldCode(h.dictID)
	var csCode byte
	if h.hasContentSize {
		csCode = pickContentSizeCode(h.contentSize, singleSegment)
	}

	var fhd byte
	fhd |= dictCode & fhdDictIDMask
	if h.checksum {
		fhd |= fhdChecksumFlag
	}
	if singleSegment {
		fhd |= fhdSingleSegment
	}
	fhd |= csCode << fhdContentShift

	out := make([]byte, 4, 18)
	binary.LittleEndian.PutUint32(out, frameMagic)
	out = append(out, fhd)

	if !singleSegment {
		exponent := bitLen64(uint64(h.windowSize)) - 1
		if exponent < 0 {
			exponent = 0
		}
		out = append(out, byte(exponent<<3)) // mantissa always 0: window sizes here are exact powers of two
	}

	switch dictCode {
	case 1:
		out = append(out, byte(h.dictID))
	case 2:
		out = append(out, byte(h.dictID), byte(h.dictID>>8))
	case 3:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, h.dictID)
		out = append(out, b...)
	}

	if h.hasContentSize {
		switch csCode {
		case 0:
			out = append(out, byte(h.contentSize))
		case 1:
			v := uint16(h.contentSize - 256)
			out = append(out, byte(v), byte(v>>8))
		case 2:
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, uint32(h.contentSize))
			out = append(out, b...)
		default:
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, h.contentSize)
			out = append(out, b...)
		}
	}
	return out
}

// CompressOptions-driven single-shot encode is implemented in
// encoder.go; this file supplies the frame-level wire assembly it and
// parallel.go call into.

// frameChecksum computes the 32-bit truncated xxhash64 content
// checksum stored in the frame trailer when CompressOptions.Checksum
// is set: the lower 4 bytes of the 64-bit digest.
func frameChecksum(content []byte) uint32 {
	return uint32(xxhash.Sum64(content))
}

// encodeSkippableFrame wraps arbitrary bytes in a skippable frame a
// decoder must skip over without interpreting. kind selects one of
// the 16 skippable magic values (0x184D2A50..0x184D2A5F).
func encodeSkippableFrame(kind byte, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload))
	binary.LittleEndian.PutUint32(out, skippableFrameMagicBase+uint32(kind&0x0F))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	return append(out, payload...)
}
