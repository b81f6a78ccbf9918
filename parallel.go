// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"encoding/binary"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// jobSizeFor picks how much source each parallel job handles: four
// window sizes, so a job has enough history to find matches nearly as
// well as a single-threaded parse would, and never less than one
// maximum-size block. The workers*windowSize*4 cap only binds when
// workers < 1, so for any positive worker count every job is four
// windows long and an input shorter than that becomes a single job.
func jobSizeFor(windowSize int64, workers int) int64 {
	jobSize := windowSize * 4
	if cap := int64(workers) * windowSize * 4; jobSize > cap {
		jobSize = cap
	}
	if jobSize < int64(blockSizeMax) {
		jobSize = int64(blockSizeMax)
	}
	return jobSize
}

// CompressParallel compresses src as a single logical frame split into
// independently-parsed chunks, each sized per jobSizeFor, of which up
// to workers (GOMAXPROCS if workers<=0) run at a time. Unlike splitting into separate
// frames, the result carries one frame header with src's true content
// size and only the final chunk's final block is marked last, so a
// decoder reads it exactly like a single-threaded Compress's output.
// The trade made for parallelism is the same the reference's
// multithreaded mode makes: sequences can't backreference across a
// chunk boundary, since each chunk parses against its own fresh
// window with no visibility into its neighbors' content.
func CompressParallel(src []byte, opts *CompressOptions, workers int) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	params := resolveCompressionParams(opts)
	windowSize := int64(1) << uint(params.windowLog)
	jobSize := jobSizeFor(windowSize, workers)

	var chunks [][]byte
	for off := 0; off < len(src); off += int(jobSize) {
		end := off + int(jobSize)
		if end > len(src) {
			end = len(src)
		}
		chunks = append(chunks, src[off:end])
	}
	if len(chunks) == 0 {
		chunks = [][]byte{nil}
	}

	results := make([][][]byte, len(chunks))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			var seed *Dictionary
			if i > 0 {
				// The decoder enters this chunk with the repeat offsets
				// the previous chunk left behind; zero slots are never
				// used as repeat matches, so this chunk only repeats
				// offsets it has emitted itself.
				seed = &Dictionary{}
			}
			results[i] = compressBlocks(params, seed, chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	last := results[len(results)-1]
	setLastBlock(last[len(last)-1])

	h := frameHeader{
		windowSize:     windowSize,
		checksum:       opts.Checksum,
		contentSize:    uint64(len(src)),
		hasContentSize: true,
	}
	if opts.DictionaryID != 0 {
		h.dictID = opts.DictionaryID
		h.hasDictID = true
	}
	header := encodeFrameHeader(h)

	total := len(header)
	for _, blocks := range results {
		for _, b := range blocks {
			total += len(b)
		}
	}
	if opts.Checksum {
		total += 4
	}

	out := make([]byte, 0, total)
	out = append(out, header...)
	for _, blocks := range results {
		for _, b := range blocks {
			out = append(out, b...)
		}
	}
	if opts.Checksum {
		sumBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(sumBytes, frameChecksum(src))
		out = append(out, sumBytes...)
	}
	return out, nil
}
