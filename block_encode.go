// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"github.com/zstdgo/zstd/internal/bitio"
	"github.com/zstdgo/zstd/internal/fse"
	"github.com/zstdgo/zstd/internal/huff0"
)

// encodeBlockHeader packs the 3-byte bit header: bit 0 the last-block
// flag, bits 1-2 the block type, bits 3-23 the 21-bit size field (the
// regenerated byte count for raw/RLE, the compressed payload size for
// a compressed block).
func encodeBlockHeader(lastBlock bool, blockType byte, size int) []byte {
	v := uint32(size&0x1FFFFF) << 3
	v |= uint32(blockType&0x3) << 1
	if lastBlock {
		v |= 1
	}
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// encodeBlock serializes one block's seqStore into the wire format: a
// bit-packed block header followed by a literals sub-section and (for
// compressed blocks) a sequences sub-section. A block with no
// sequences whose encoding would not be smaller than its literals is
// written as a raw block instead; a block that has sequences is always
// written as a compressed block, whatever its encoded size.
func encodeBlock(store *seqStore, lastBlock bool) []byte {
	litSection := encodeLiterals(store.literals)
	seqSection := encodeSequences(store)

	payload := make([]byte, 0, len(litSection)+len(seqSection))
	payload = append(payload, litSection...)
	payload = append(payload, seqSection...)

	regen := len(store.literals)
	for _, s := range store.seqs {
		regen += s.matchLen
	}

	if len(store.seqs) == 0 && regen > 0 && len(payload) >= regen {
		hdr := encodeBlockHeader(lastBlock, blockTypeRaw, regen)
		out := make([]byte, 0, blockHeaderSize+regen)
		out = append(out, hdr...)
		out = append(out, store.literals...)
		return out
	}

	hdr := encodeBlockHeader(lastBlock, blockTypeCompr, len(payload))
	out := make([]byte, 0, blockHeaderSize+len(payload))
	out = append(out, hdr...)
	out = append(out, payload...)
	return out
}

// encodeLiteralsHeader packs the literals sub-section's 1-5 byte
// header: a 2-bit type, a 2-bit size-format selecting how many bytes
// the header spends on its size field(s), then the size field(s)
// themselves starting at bit 4 of byte 0. Raw and RLE carry one size
// (the regenerated byte count); Huffman-compressed literals carry two
// equal-width sizes (regenerated and compressed).
func encodeLiteralsHeader(mode byte, regen, comp int) []byte {
	if mode == litRaw || mode == litRLE {
		switch {
		case regen < 1<<4:
			return []byte{mode | byte(regen)<<4}
		case regen < 1<<12:
			return []byte{mode | 1<<2 | byte(regen&0xF)<<4, byte(regen >> 4)}
		default:
			return []byte{
				mode | 2<<2 | byte(regen&0xF)<<4,
				byte(regen >> 4),
				byte(regen >> 12),
			}
		}
	}

	switch {
	case regen < 1<<10 && comp < 1<<10:
		v := uint32(mode) | 0<<2 | uint32(regen)<<4 | uint32(comp)<<14
		return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
	case regen < 1<<14 && comp < 1<<14:
		v := uint64(mode) | 1<<2 | uint64(regen)<<4 | uint64(comp)<<18
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	default:
		v := uint64(mode) | 2<<2 | uint64(regen)<<4 | uint64(comp)<<22
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24), byte(v >> 32)}
	}
}

// encodeLiterals builds the literals sub-section: raw, RLE or
// Huffman-compressed. Below the 4KB threshold it uses huff0's
// single-stream mode, since 4-stream's minimum-size floor doesn't pay
// off until regenerated size grows past that.
func encodeLiterals(src []byte) []byte {
	regen := len(src)
	if regen == 0 {
		return encodeLiteralsHeader(litRaw, 0, 0)
	}
	if allSameByte(src) {
		hdr := encodeLiteralsHeader(litRLE, regen, 0)
		return append(hdr, src[0])
	}

	freqs := countBytes(src)
	if regen >= 256 {
		if ct, err := huff0.BuildFromFrequencies(freqs, huff0.MaxTableLog); err == nil {
			var compressed []byte
			if regen >= 4*1024 {
				compressed = huff0.Encode4(ct, src)
			} else {
				compressed = huff0.Encode1(ct, src)
			}
			weights := huff0.WriteWeights(ct.Lengths)
			body := len(weights) + len(compressed)
			if body+5 < regen {
				hdr := encodeLiteralsHeader(litHuf, regen, body)
				out := make([]byte, len(hdr), len(hdr)+body)
				copy(out, hdr)
				out = append(out, weights...)
				out = append(out, compressed...)
				return out
			}
		}
	}

	hdr := encodeLiteralsHeader(litRaw, regen, 0)
	out := make([]byte, len(hdr), len(hdr)+regen)
	copy(out, hdr)
	return append(out, src...)
}

func allSameByte(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if b[i] != b[0] {
			return false
		}
	}
	return true
}

func countBytes(b []byte) []uint32 {
	freqs := make([]uint32, 256)
	for _, c := range b {
		freqs[c]++
	}
	return freqs
}

// encodeSeqCount packs the sequence count into zstd's variable 1-3
// byte escaped form: values below 128 fit in one byte; larger values
// escape into a 2- or 3-byte form with the high byte biased so the two
// ranges don't overlap.
func encodeSeqCount(n int) []byte {
	switch {
	case n < 128:
		return []byte{byte(n)}
	case n < 0x7F00:
		v := n - 128
		return []byte{byte(v>>8) + 128, byte(v)}
	default:
		v := n - 0x7F00
		return []byte{0xFF, byte(v), byte(v >> 8)}
	}
}

// seqModeByte packs the three 2-bit table-selection fields (LL at bits
// 6-7, OF at bits 4-5, ML at bits 2-3; bits 0-1 stay reserved/zero)
// into the sequences sub-section's symbol-mode byte.
func seqModeByte(ll, of, ml byte) byte {
	return (ll << 6) | (of << 4) | (ml << 2)
}

// encodeSequences builds the sequences sub-section: the escaped
// sequence count, a symbol-mode byte (always FreshTable for all three
// symbol kinds in this implementation — cross-block predefined/repeat
// table reuse is a documented simplification, see DESIGN.md), the
// three fresh FSE tables, their FSE-coded streams, and a trailing raw
// extra-bits stream.
func encodeSequences(store *seqStore) []byte {
	n := len(store.seqs)
	out := encodeSeqCount(n)
	if n == 0 {
		return out
	}
	out = append(out, seqModeByte(seqTableFresh, seqTableFresh, seqTableFresh))

	llCodes := make([]byte, n)
	ofCodes := make([]byte, n)
	mlCodes := make([]byte, n)
	llExtras := make([]uint32, n)
	ofExtras := make([]uint32, n)
	mlExtras := make([]uint32, n)
	for i, s := range store.seqs {
		llc, _, llExtra := lengthCodeExtra(s.literalsLen)
		ofc, _, ofExtra := offsetCodeExtra(s.offset, s.repIdx)
		mlc, _, mlExtra := lengthCodeExtra3(s.matchLen)

		llCodes[i] = byte(llc)
		ofCodes[i] = byte(ofc)
		mlCodes[i] = byte(mlc)
		llExtras[i] = llExtra
		ofExtras[i] = ofExtra
		mlExtras[i] = mlExtra
	}

	// bitio.Reader consumes bits in the reverse of the order
	// bitio.Writer wrote them (see internal/bitio's doc comment), and
	// decodeSequences reads each sequence's ll/of/ml extra bits forward
	// (i = 0..n-1). So the writes here run back to front, last sequence
	// first, mirroring how internal/fse and internal/huff0 encode
	// symbol sequences.
	extras := bitio.NewWriter()
	for i := n - 1; i >= 0; i-- {
		if eb := lengthExtraBits(int(mlCodes[i])); eb > 0 {
			extras.AddBits32(mlExtras[i], eb)
		}
		if eb := offsetExtraBits(int(ofCodes[i])); eb > 0 {
			extras.AddBits32(ofExtras[i], eb)
		}
		if eb := lengthExtraBits(int(llCodes[i])); eb > 0 {
			extras.AddBits32(llExtras[i], eb)
		}
	}
	extraBytes := extras.Close()

	llStream := encodeFSEStream(llCodes, store.llFreq[:])
	ofStream := encodeFSEStream(ofCodes, store.ofFreq[:])
	mlStream := encodeFSEStream(mlCodes, store.mlFreq[:])

	out = appendLenPrefixed(out, llStream)
	out = appendLenPrefixed(out, ofStream)
	out = appendLenPrefixed(out, mlStream)
	out = appendLenPrefixed(out, extraBytes)
	return out
}

// appendLenPrefixed appends a 3-byte little-endian length (plenty for
// a single block's worth of FSE-coded sequence codes) followed by src.
// This internal length-prefixing, not a single interleaved bitstream
// like the reference's sequences section, is a documented
// simplification (see DESIGN.md): it keeps each of the three code
// streams and the extra-bits stream independently decodable without
// threading four FSE states through one shared bit cursor.
func appendLenPrefixed(dst, src []byte) []byte {
	n := len(src)
	dst = append(dst, byte(n), byte(n>>8), byte(n>>16))
	return append(dst, src...)
}

// lengthCodeExtra3 is lengthCodeExtra applied to a raw match length
// (which carries the 3-byte minimum-match bias the code space doesn't).
func lengthCodeExtra3(matchLen int) (code int, extraBits uint, extraVal uint32) {
	return lengthCodeExtra(matchLen - 3)
}

// encodeFSEStream builds a table log from the observed alphabet size,
// normalizes counts, and FSE-encodes codes in the reverse order the
// internal/fse package's CState/DState convention requires (mirroring
// internal/huff0's Encode1/Decode1 direction).
func encodeFSEStream(codes []byte, freq []uint32) []byte {
	maxSym := 0
	for s, f := range freq {
		if f > 0 {
			maxSym = s
		}
	}
	tableLog := pickTableLog(maxSym + 1)
	norm := fse.NormalizeCounts(freq[:maxSym+1], tableLog)
	ct, err := fse.BuildCTable(norm, tableLog)
	if err != nil {
		return nil
	}

	w := bitio.NewWriter()
	n := len(codes)
	st := ct.InitLast(codes[n-1])
	for i := n - 2; i >= 0; i-- {
		st.Encode(w, codes[i])
	}
	st.Flush(w)
	body := w.Close()

	hdr := make([]byte, 1)
	hdr[0] = byte(tableLog)
	hdr = append(hdr, fse.WriteNCount(norm)...)
	hdr = append(hdr, body...)
	return hdr
}

func pickTableLog(alphabetSize int) uint {
	log := uint(fse.MinTableLog)
	for (1<<log) < alphabetSize*2 && log < fse.MaxTableLog {
		log++
	}
	return log
}
