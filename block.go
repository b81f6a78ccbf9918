// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// Block size and type constants. The 3-byte block header this package
// writes is bit-packed, not byte-aligned: bit 0 is the last-block
// flag, bits 1-2 are the block type, and bits 3-23 are the 21-bit size
// field (the compressed payload size for a compressed block, or the
// regenerated byte count for a raw/RLE block).
const (
	blockSizeMax = 128 * 1024

	blockTypeRaw      = 0
	blockTypeRLE      = 1
	blockTypeCompr    = 2
	blockTypeReserved = 3

	blockHeaderSize = 3
)

// literalsMode values for the literals sub-section header's 2-bit
// type field. The single-stream and 4-stream Huffman forms both use
// mode litHuf on the wire; which one was used is recovered from the
// regenerated size, with the same 4 KiB threshold encodeLiterals uses
// when it picks between huff0.Encode1 and huff0.Encode4.
const (
	litRaw = 0
	litRLE = 1
	litHuf = 2
)

// seqTableMode values for each of the LL/OF/ML 2-bit table-selection
// fields in the sequences sub-section's symbol-mode byte, matching the
// real protocol's 4-way choice (this package only ever emits
// seqTableFresh; the decoder accepts seqTableFresh and
// seqTablePredefined and rejects the other two).
const (
	seqTablePredefined = 0
	seqTableRLE        = 1
	seqTableFresh      = 2
	seqTableRepeat     = 3
)
