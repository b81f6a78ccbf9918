// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import "encoding/binary"

// Encoder holds the resolved compression parameters and an optional
// dictionary for repeated Compress calls. It keeps no window, sequence
// store or parser between calls: each Compress call builds its own.
type Encoder struct {
	opts   CompressOptions
	params compressionParams
	dict   *Dictionary
}

// NewEncoder builds an Encoder from opts (DefaultCompressOptions() if
// nil).
func NewEncoder(opts *CompressOptions) (*Encoder, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	params := resolveCompressionParams(opts)
	return &Encoder{opts: *opts, params: params}, nil
}

// SetDictionary attaches a digested dictionary to future Compress
// calls on this Encoder.
func (e *Encoder) SetDictionary(d *Dictionary) { e.dict = d }

// compressBlocks runs src's block-compression loop (window, sequence
// store, parser) and returns each block's encoded bytes with the
// last-block header bit always clear; the caller sets it on whichever
// block actually ends the frame via setLastBlock. Splitting this out
// of Compress lets CompressParallel reuse the same per-chunk block
// loop to build a single frame out of several independently-parsed
// chunks.
func compressBlocks(params compressionParams, dict *Dictionary, src []byte) [][]byte {
	w := newWindow(params.windowLog)
	if dict != nil {
		w.loadDict(dict.Content)
		w.repOffsets = dict.repOffsets
	}

	store := newSeqStore()
	capacity := len(src) + len(w.data) + 1
	p := newParser(params, capacity)

	var blocks [][]byte
	remaining := src
	for {
		n := blockSizeMax
		if n > len(remaining) {
			n = len(remaining)
		}
		chunk := remaining[:n]
		remaining = remaining[n:]

		base := w.currentPos()
		w.append(chunk)
		store.reset()
		p.parse(w, store, chunk, base)

		blocks = append(blocks, encodeBlock(store, false))
		if len(remaining) == 0 {
			break
		}
	}
	return blocks
}

// setLastBlock flips the last-block bit in a block's already-encoded
// 3-byte header in place.
func setLastBlock(blk []byte) {
	blk[0] |= 1
}

// Compress appends the compressed frame for src to dst and returns
// the extended slice.
func (e *Encoder) Compress(dst, src []byte) ([]byte, error) {
	blocks := compressBlocks(e.params, e.dict, src)
	setLastBlock(blocks[len(blocks)-1])

	h := frameHeader{
		windowSize:     int64(1) << uint(e.params.windowLog),
		checksum:       e.opts.Checksum,
		contentSize:    uint64(len(src)),
		hasContentSize: true,
	}
	if e.dict != nil {
		h.dictID = e.dict.ID
		h.hasDictID = true
	} else if e.opts.DictionaryID != 0 {
		h.dictID = e.opts.DictionaryID
		h.hasDictID = true
	}

	out := append(dst, encodeFrameHeader(h)...)
	for _, blk := range blocks {
		out = append(out, blk...)
	}
	if e.opts.Checksum {
		sumBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(sumBytes, frameChecksum(src))
		out = append(out, sumBytes...)
	}
	return out, nil
}

// Compress is the package-level single-shot convenience form of
// Encoder.Compress.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	e, err := NewEncoder(opts)
	if err != nil {
		return nil, err
	}
	return e.Compress(nil, src)
}
