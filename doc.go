// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

/*
Package zstd implements the Zstandard (zstd) frame and block codec: an
encoder that turns a byte stream into a sequence of compressed frames, and
a decoder that reconstructs the original bytes.

# Compress

	out, err := zstd.Compress(data, zstd.DefaultCompressOptions())
	out, err := zstd.Compress(data, &zstd.CompressOptions{Level: 19})

# Decompress

	out, err := zstd.Decompress(compressed, zstd.DefaultDecompressOptions())

Both one-shot helpers allocate a throwaway Encoder/Decoder; for repeated
use across many frames, construct a long-lived Encoder/Decoder with
NewEncoder/NewDecoder to keep options and a dictionary across frames;
each call still allocates its own window and match finder.

# Parallel compression

	out, err := zstd.CompressParallel(data, &zstd.CompressOptions{Level: 9}, nbWorkers)

splits the input into chunks and compresses them concurrently; the
chunks' blocks are written in input order into a single frame whose
header carries the whole input's content size.
*/
package zstd
