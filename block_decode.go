// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"github.com/zstdgo/zstd/internal/bitio"
	"github.com/zstdgo/zstd/internal/fse"
	"github.com/zstdgo/zstd/internal/huff0"
)

// decodeBlockHeader parses the 3-byte bit-packed block header: bit 0
// the last-block flag, bits 1-2 the block type, bits 3-23 the 21-bit
// size field.
func decodeBlockHeader(src []byte) (lastBlock bool, blockType byte, size int, err error) {
	if len(src) < blockHeaderSize {
		return false, 0, 0, newErr(ErrKindCorruptionDetected, "block header truncated")
	}
	v := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16
	lastBlock = v&1 != 0
	blockType = byte((v >> 1) & 0x3)
	size = int(v >> 3)
	return lastBlock, blockType, size, nil
}

// decodeBlock parses one wire block (as produced by encodeBlock),
// appends its regenerated bytes to w, and reports how many input
// bytes it consumed.
func decodeBlock(w *window, src []byte) (consumed int, last bool, err error) {
	last, blockType, size, err := decodeBlockHeader(src)
	if err != nil {
		return 0, false, err
	}
	body := src[blockHeaderSize:]

	switch blockType {
	case blockTypeRaw:
		if len(body) < size {
			return 0, last, newErr(ErrKindCorruptionDetected, "raw block short")
		}
		w.append(body[:size])
		return blockHeaderSize + size, last, nil
	case blockTypeRLE:
		if len(body) < 1 {
			return 0, last, newErr(ErrKindCorruptionDetected, "rle block missing byte")
		}
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = body[0]
		}
		w.append(buf)
		return blockHeaderSize + 1, last, nil
	case blockTypeCompr:
		if len(body) < size {
			return 0, last, newErr(ErrKindCorruptionDetected, "block payload truncated")
		}
		if err := decodeCompressedBlock(w, body[:size]); err != nil {
			return 0, last, err
		}
		return blockHeaderSize + size, last, nil
	default:
		return 0, last, newErr(ErrKindCorruptionDetected, "invalid block type")
	}
}

func decodeCompressedBlock(w *window, body []byte) error {
	literals, n, err := decodeLiterals(body)
	if err != nil {
		if _, ok := err.(*CodecError); !ok {
			err = newErr(ErrKindCorruptionDetected, err.Error())
		}
		return err
	}
	seqBody := body[n:]
	seqs, err := decodeSequences(seqBody)
	if err != nil {
		if _, ok := err.(*CodecError); !ok {
			err = newErr(ErrKindCorruptionDetected, err.Error())
		}
		return err
	}

	litPos := 0
	for _, s := range seqs {
		if litPos+s.literalsLen > len(literals) {
			return newErr(ErrKindCorruptionDetected, "literals underflow")
		}
		w.append(literals[litPos : litPos+s.literalsLen])
		litPos += s.literalsLen

		var off uint32
		if s.repIdx >= 0 {
			off = resolveRepOffset(w, s.repIdx, s.literalsLen)
		} else {
			off = s.offset
		}
		pos := w.currentPos()
		src := pos - int32(off)
		if off == 0 || !w.inBounds(src) || src < 0 {
			return newErr(ErrKindCorruptionDetected, "offset out of window")
		}
		// Copy byte-by-byte: overlapping source/destination ranges (the
		// common case for run-length-style matches) must see bytes the
		// copy itself already produced, so each byte has to be appended
		// individually rather than bulk-copied from a stale snapshot of
		// the source range.
		for i := 0; i < s.matchLen; i++ {
			w.append([]byte{w.byteAt(src + int32(i))})
		}
		w.updateReps(off, s.literalsLen, s.repIdx >= 0)
	}
	if litPos < len(literals) {
		w.append(literals[litPos:])
	}
	return nil
}

// decodeLiteralsHeader parses the 1-5 byte literals sub-section
// header, inverting encodeLiteralsHeader.
func decodeLiteralsHeader(b []byte) (mode byte, regen, comp, hdrLen int, err error) {
	if len(b) < 1 {
		return 0, 0, 0, 0, newErr(ErrKindCorruptionDetected, "literals header missing")
	}
	mode = b[0] & 0x3
	sizeFormat := (b[0] >> 2) & 0x3

	if mode == litRaw || mode == litRLE {
		switch sizeFormat {
		case 0:
			return mode, int(b[0] >> 4), 0, 1, nil
		case 1:
			if len(b) < 2 {
				return 0, 0, 0, 0, newErr(ErrKindCorruptionDetected, "literals header truncated")
			}
			return mode, int(b[0]>>4) | int(b[1])<<4, 0, 2, nil
		default:
			if len(b) < 3 {
				return 0, 0, 0, 0, newErr(ErrKindCorruptionDetected, "literals header truncated")
			}
			return mode, int(b[0]>>4) | int(b[1])<<4 | int(b[2])<<12, 0, 3, nil
		}
	}

	switch sizeFormat {
	case 0:
		if len(b) < 3 {
			return 0, 0, 0, 0, newErr(ErrKindCorruptionDetected, "literals header truncated")
		}
		v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		return mode, int((v >> 4) & 0x3FF), int((v >> 14) & 0x3FF), 3, nil
	case 1:
		if len(b) < 4 {
			return 0, 0, 0, 0, newErr(ErrKindCorruptionDetected, "literals header truncated")
		}
		v := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24
		return mode, int((v >> 4) & 0x3FFF), int((v >> 18) & 0x3FFF), 4, nil
	default:
		if len(b) < 5 {
			return 0, 0, 0, 0, newErr(ErrKindCorruptionDetected, "literals header truncated")
		}
		v := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
		return mode, int((v >> 4) & 0x3FFFF), int((v >> 22) & 0x3FFFF), 5, nil
	}
}

func decodeLiterals(body []byte) ([]byte, int, error) {
	mode, regen, comp, hdrLen, err := decodeLiteralsHeader(body)
	if err != nil {
		return nil, 0, err
	}
	rest := body[hdrLen:]

	switch mode {
	case litRaw:
		if len(rest) < regen {
			return nil, 0, newErr(ErrKindCorruptionDetected, "raw literals body truncated")
		}
		return rest[:regen], hdrLen + regen, nil
	case litRLE:
		if len(rest) < 1 {
			return nil, 0, newErr(ErrKindCorruptionDetected, "rle literals body truncated")
		}
		buf := make([]byte, regen)
		for i := range buf {
			buf[i] = rest[0]
		}
		return buf, hdrLen + 1, nil
	case litHuf:
		if len(rest) < comp {
			return nil, 0, newErr(ErrKindCorruptionDetected, "huffman literals body truncated")
		}
		lengths, wn, err := huff0.ReadWeights(rest)
		if err != nil {
			return nil, 0, err
		}
		ct := huff0.BuildCTable(lengths)
		dt, err := huff0.BuildDTable(ct)
		if err != nil {
			return nil, 0, err
		}
		payload := rest[wn:comp]
		var out []byte
		if regen < 4*1024 {
			hr, herr := bitio.NewReader(payload)
			if herr != nil {
				return nil, 0, herr
			}
			out, err = huff0.Decode1(dt, hr, regen)
		} else {
			out, err = huff0.Decode4(dt, payload, regen)
		}
		if err != nil {
			return nil, 0, err
		}
		return out, hdrLen + comp, nil
	default:
		return nil, 0, newErr(ErrKindCorruptionDetected, "invalid literals mode")
	}
}

// decodeSeqCount inverts encodeSeqCount's variable 1-3 byte escaped
// form.
func decodeSeqCount(body []byte) (n, consumed int, err error) {
	if len(body) < 1 {
		return 0, 0, newErr(ErrKindCorruptionDetected, "sequence count truncated")
	}
	b0 := body[0]
	switch {
	case b0 < 128:
		return int(b0), 1, nil
	case b0 < 0xFF:
		if len(body) < 2 {
			return 0, 0, newErr(ErrKindCorruptionDetected, "sequence count truncated")
		}
		return (int(b0)-128)<<8 + int(body[1]) + 128, 2, nil
	default:
		if len(body) < 3 {
			return 0, 0, newErr(ErrKindCorruptionDetected, "sequence count truncated")
		}
		return int(body[1]) + int(body[2])<<8 + 0x7F00, 3, nil
	}
}

// decodeSeqModeByte inverts seqModeByte.
func decodeSeqModeByte(b byte) (ll, of, ml byte) {
	return (b >> 6) & 0x3, (b >> 4) & 0x3, (b >> 2) & 0x3
}

// decodeSequences parses the sequences sub-section and reconstructs
// each sequence's literalsLen/offset(or repIdx)/matchLen triple.
func decodeSequences(body []byte) ([]sequence, error) {
	n, off, err := decodeSeqCount(body)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if len(body) < off+1 {
		return nil, newErr(ErrKindCorruptionDetected, "sequence mode byte truncated")
	}
	llMode, ofMode, mlMode := decodeSeqModeByte(body[off])
	off++

	readLP := func() ([]byte, error) {
		if len(body) < off+3 {
			return nil, newErr(ErrKindCorruptionDetected, "stream length truncated")
		}
		l := int(body[off]) | int(body[off+1])<<8 | int(body[off+2])<<16
		off += 3
		if len(body) < off+l {
			return nil, newErr(ErrKindCorruptionDetected, "stream body truncated")
		}
		s := body[off : off+l]
		off += l
		return s, nil
	}
	llStream, err := readLP()
	if err != nil {
		return nil, err
	}
	ofStream, err := readLP()
	if err != nil {
		return nil, err
	}
	mlStream, err := readLP()
	if err != nil {
		return nil, err
	}
	extraStream, err := readLP()
	if err != nil {
		return nil, err
	}

	llCodes, err := decodeSymbolStream(llMode, llStream, n, fse.DefaultLLDTable)
	if err != nil {
		return nil, err
	}
	ofCodes, err := decodeSymbolStream(ofMode, ofStream, n, fse.DefaultOFDTable)
	if err != nil {
		return nil, err
	}
	mlCodes, err := decodeSymbolStream(mlMode, mlStream, n, fse.DefaultMLDTable)
	if err != nil {
		return nil, err
	}

	er, err := bitio.NewReader(extraStream)
	if err != nil && len(extraStream) > 0 {
		return nil, err
	}

	seqs := make([]sequence, n)
	for i := 0; i < n; i++ {
		llc, ofc, mlc := int(llCodes[i]), int(ofCodes[i]), int(mlCodes[i])

		var llExtra uint32
		if eb := lengthExtraBits(llc); eb > 0 {
			llExtra = er.ReadBits(eb)
		}
		litLen := lengthValue(llc, llExtra)

		var ofExtra uint32
		if eb := offsetExtraBits(ofc); eb > 0 {
			ofExtra = er.ReadBits(eb)
		}

		var mlExtra uint32
		if eb := lengthExtraBits(mlc); eb > 0 {
			mlExtra = er.ReadBits(eb)
		}
		matchLen := lengthValue(mlc, mlExtra) + 3

		repIdx := -1
		var offset uint32
		if ofc < 2 {
			repIdx = ofc
		} else {
			offset = offsetValue(ofc, ofExtra)
		}

		seqs[i] = sequence{literalsLen: litLen, offset: offset, matchLen: matchLen, repIdx: repIdx}
	}
	return seqs, nil
}

// decodeSymbolStream decodes n FSE-coded symbols from stream: a fresh
// table reads its own tableLog+normalized-counts prefix, while a
// predefined table skips straight to the bitstream using
// defaultTable's already-built decode table.
func decodeSymbolStream(mode byte, stream []byte, n int, defaultTable func() *fse.DTable) ([]byte, error) {
	switch mode {
	case seqTableFresh:
		return decodeFSEStream(stream, n)
	case seqTablePredefined:
		r, err := bitio.NewReader(stream)
		if err != nil {
			return nil, err
		}
		dt := defaultTable()
		st := dt.InitDState(r)
		out := make([]byte, n)
		for i := 0; i < n; i++ {
			out[i] = st.DecodeSymbol(r)
		}
		return out, nil
	default:
		return nil, newErr(ErrKindCorruptionDetected, "unsupported sequence table mode")
	}
}

func decodeFSEStream(stream []byte, n int) ([]byte, error) {
	if len(stream) < 1 {
		return nil, newErr(ErrKindCorruptionDetected, "fse stream header truncated")
	}
	tableLog := uint(stream[0])
	norm, consumed, err := fse.ReadNCount(stream[1:])
	if err != nil {
		return nil, err
	}
	dt, err := fse.BuildDTable(norm, tableLog)
	if err != nil {
		return nil, err
	}
	body := stream[1+consumed:]
	r, err := bitio.NewReader(body)
	if err != nil {
		return nil, err
	}
	st := dt.InitDState(r)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = st.DecodeSymbol(r)
	}
	return out, nil
}
