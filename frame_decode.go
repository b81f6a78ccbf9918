// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// decodeFrameHeader parses one frame header, reporting the header and
// the number of bytes consumed.
func decodeFrameHeader(b []byte) (frameHeader, int, error) {
	if len(b) < 5 {
		return frameHeader{}, 0, newErr(ErrKindSrcSizeWrong, "frame header truncated")
	}
	magic := binary.LittleEndian.Uint32(b)
	if magic != frameMagic {
		return frameHeader{}, 0, newErr(ErrKindPrefixUnknown, "not a zstd frame")
	}
	fhd := b[4]
	if fhd&fhdReservedFlag != 0 {
		return frameHeader{}, 0, newErr(ErrKindPrefixUnknown, "reserved frame header bit set")
	}
	off := 5

	singleSegment := fhd&fhdSingleSegment != 0
	dictCode := fhd & fhdDictIDMask
	csCode := fhd >> fhdContentShift

	var windowSize int64
	if !singleSegment {
		if len(b) < off+1 {
			return frameHeader{}, 0, newErr(ErrKindSrcSizeWrong, "window descriptor truncated")
		}
		wd := b[off]
		off++
		exponent := uint(wd >> 3)
		mantissa := uint64(wd & 0x07)
		base := uint64(1) << exponent
		var add uint64
		if exponent >= 3 {
			add = mantissa << (exponent - 3)
		}
		windowSize = int64(base + add)
	}

	h := frameHeader{checksum: fhd&fhdChecksumFlag != 0}

	dictSize := 0
	switch dictCode {
	case 1:
		dictSize = 1
	case 2:
		dictSize = 2
	case 3:
		dictSize = 4
	}
	if dictSize > 0 {
		if len(b) < off+dictSize {
			return frameHeader{}, 0, newErr(ErrKindSrcSizeWrong, "dictionary id truncated")
		}
		switch dictSize {
		case 1:
			h.dictID = uint32(b[off])
		case 2:
			h.dictID = uint32(binary.LittleEndian.Uint16(b[off:]))
		case 4:
			h.dictID = binary.LittleEndian.Uint32(b[off:])
		}
		h.hasDictID = true
		off += dictSize
	}

	csSize := contentSizeFieldSize(csCode, singleSegment)
	if csSize > 0 {
		if len(b) < off+csSize {
			return frameHeader{}, 0, newErr(ErrKindSrcSizeWrong, "content size truncated")
		}
		switch csSize {
		case 1:
			h.contentSize = uint64(b[off])
		case 2:
			h.contentSize = uint64(binary.LittleEndian.Uint16(b[off:])) + 256
		case 4:
			h.contentSize = uint64(binary.LittleEndian.Uint32(b[off:]))
		case 8:
			h.contentSize = binary.LittleEndian.Uint64(b[off:])
		}
		h.hasContentSize = true
		off += csSize
	}

	if singleSegment {
		windowSize = int64(h.contentSize)
	}
	h.windowSize = windowSize
	return h, off, nil
}

// isSkippableFrame reports whether b begins with one of the 16
// skippable-frame magic values, and if so returns the payload length
// and total frame size (header + payload).
func isSkippableFrame(b []byte) (payloadLen int, total int, ok bool) {
	if len(b) < 8 {
		return 0, 0, false
	}
	magic := binary.LittleEndian.Uint32(b)
	if magic < skippableFrameMagicBase || magic > skippableFrameMagicBase+0x0F {
		return 0, 0, false
	}
	n := int(binary.LittleEndian.Uint32(b[4:]))
	return n, 8 + n, true
}

// decodeFrame decodes one complete frame (header, block loop, optional
// checksum) from b, appending regenerated content to out, and returns
// the number of input bytes consumed.
func decodeFrame(b []byte, opts *DecompressOptions) (out []byte, consumed int, err error) {
	h, hn, err := decodeFrameHeader(b)
	if err != nil {
		return nil, 0, err
	}
	maxWindow := uint64(1) << maxWindowLogDefault
	if opts != nil && opts.MaxWindowSize > 0 {
		maxWindow = opts.MaxWindowSize
	}
	if uint64(h.windowSize) > maxWindow {
		return nil, 0, newErr(ErrKindFrameParameterUnsupported, "window size exceeds MaxWindowSize")
	}

	windowLog := clampWindowLog(bitLen64(uint64(h.windowSize)))
	w := newWindow(windowLog)
	if opts != nil && opts.Dictionary != nil {
		if h.hasDictID && opts.Dictionary.ID != h.dictID {
			return nil, 0, newErr(ErrKindDictionaryWrong, "dictionary id mismatch")
		}
		w.loadDict(opts.Dictionary.Content)
		w.repOffsets = opts.Dictionary.repOffsets
	}

	pos := hn
	for {
		n, last, err := decodeBlock(w, b[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += n
		if last {
			break
		}
	}

	content := w.data[w.dictLimit:]
	if h.hasContentSize && uint64(len(content)) != h.contentSize {
		return nil, 0, newErr(ErrKindCorruptionDetected, "content size mismatch")
	}

	if h.checksum {
		if len(b) < pos+4 {
			return nil, 0, newErr(ErrKindSrcSizeWrong, "checksum truncated")
		}
		want := binary.LittleEndian.Uint32(b[pos:])
		got := uint32(xxhash.Sum64(content))
		if want != got {
			return nil, 0, newErr(ErrKindCorruptionDetected, "checksum mismatch")
		}
		pos += 4
	}
	return content, pos, nil
}

func bitLen64(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	if n == 0 {
		n = 1
	}
	return n
}

// Sentinels GetFrameContentSize returns instead of an actual size.
const (
	// FrameContentSizeUnknown means the frame header didn't declare a
	// content size (an unbounded streaming encode, typically).
	FrameContentSizeUnknown = ^uint64(0)
	// FrameContentSizeError means b doesn't begin with a parseable frame
	// header.
	FrameContentSizeError = ^uint64(0) - 1
)

// GetFrameContentSize reads just the frame header of b (a skippable
// frame is skipped over first) and reports the declared content size
// without decompressing anything, mirroring the reference's
// ZSTD_getFrameContentSize oracle.
func GetFrameContentSize(b []byte) uint64 {
	for {
		if _, total, ok := isSkippableFrame(b); ok {
			if total > len(b) {
				return FrameContentSizeError
			}
			b = b[total:]
			continue
		}
		break
	}
	h, _, err := decodeFrameHeader(b)
	if err != nil {
		return FrameContentSizeError
	}
	if !h.hasContentSize {
		return FrameContentSizeUnknown
	}
	return h.contentSize
}
