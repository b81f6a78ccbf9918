// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"encoding/binary"

	"github.com/zstdgo/zstd/internal/fse"
	"github.com/zstdgo/zstd/internal/huff0"
)

// dictMagic identifies a digested-dictionary blob: magic, dictionary
// id, a Huffman table, three FSE tables (offsets, match lengths,
// literal lengths, in that order), two little-endian uint32 initial
// repeat offsets, then raw content.
const dictMagic = uint32(0x37A430EC)

// Dictionary is a digested compression/decompression dictionary: raw
// content to seed the window with, initial repeat offsets that replace
// the default {1,4} rep state, and entropy tables carried in the wire
// format (the Encoder and Decoder use only the content and the repeat
// offsets).
type Dictionary struct {
	ID      uint32
	Content []byte

	litLengths []uint8
	ofNorm     []int16
	mlNorm     []int16
	llNorm     []int16
	ofTableLog uint
	mlTableLog uint
	llTableLog uint

	repOffsets [2]uint32
}

// NewDictionaryFromSamples builds a minimal digested dictionary out of
// raw sample content: the content itself becomes window history, and
// the entropy tables are seeded from the predefined distributions
// rather than trained from sample statistics; nothing is derived from
// the content beyond copying it.
func NewDictionaryFromSamples(id uint32, content []byte) *Dictionary {
	return &Dictionary{
		ID:         id,
		Content:    append([]byte(nil), content...),
		llNorm:     fse.DefaultLLNorm(),
		ofNorm:     fse.DefaultOFNorm(),
		mlNorm:     fse.DefaultMLNorm(),
		llTableLog: fse.LLDefaultAccuracyLog,
		ofTableLog: fse.OFDefaultAccuracyLog,
		mlTableLog: fse.MLDefaultAccuracyLog,
		repOffsets: [2]uint32{1, 4},
	}
}

// Encode serializes the dictionary to the digested-dictionary wire
// format.
func (d *Dictionary) Encode() []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, dictMagic)
	idb := make([]byte, 4)
	binary.LittleEndian.PutUint32(idb, d.ID)
	out = append(out, idb...)

	weights := huff0.WriteWeights(d.litLengths)
	out = appendU32(out, uint32(len(weights)))
	out = append(out, weights...)

	for _, tbl := range []struct {
		norm []int16
		log  uint
	}{{d.ofNorm, d.ofTableLog}, {d.mlNorm, d.mlTableLog}, {d.llNorm, d.llTableLog}} {
		nc := fse.WriteNCount(tbl.norm)
		out = append(out, byte(tbl.log))
		out = appendU32(out, uint32(len(nc)))
		out = append(out, nc...)
	}

	for _, o := range d.repOffsets {
		out = appendU32(out, o)
	}
	out = append(out, d.Content...)
	return out
}

// DecodeDictionary parses a digested-dictionary blob produced by
// Dictionary.Encode.
func DecodeDictionary(b []byte) (*Dictionary, error) {
	if len(b) < 8 || binary.LittleEndian.Uint32(b) != dictMagic {
		return nil, newErr(ErrKindDictionaryWrong, "bad dictionary magic")
	}
	id := binary.LittleEndian.Uint32(b[4:8])
	off := 8

	wlen, err := readU32(b, &off)
	if err != nil {
		return nil, err
	}
	if len(b) < off+int(wlen) {
		return nil, newErr(ErrKindDictionaryCorrupted, "weights truncated")
	}
	litLengths, _, err := huff0.ReadWeights(b[off : off+int(wlen)])
	if err != nil {
		return nil, newErr(ErrKindDictionaryCorrupted, err.Error())
	}
	off += int(wlen)

	var norms [3][]int16
	var logs [3]uint
	for i := 0; i < 3; i++ {
		if len(b) < off+1 {
			return nil, newErr(ErrKindDictionaryCorrupted, "table log truncated")
		}
		logs[i] = uint(b[off])
		off++
		nlen, err := readU32(b, &off)
		if err != nil {
			return nil, err
		}
		if len(b) < off+int(nlen) {
			return nil, newErr(ErrKindDictionaryCorrupted, "ncount truncated")
		}
		norm, _, err := fse.ReadNCount(b[off : off+int(nlen)])
		if err != nil {
			return nil, newErr(ErrKindDictionaryCorrupted, err.Error())
		}
		norms[i] = norm
		off += int(nlen)
	}

	var reps [2]uint32
	for i := 0; i < 2; i++ {
		v, err := readU32(b, &off)
		if err != nil {
			return nil, err
		}
		reps[i] = v
	}

	return &Dictionary{
		ID:         id,
		Content:    append([]byte(nil), b[off:]...),
		litLengths: litLengths,
		ofNorm:     norms[0],
		mlNorm:     norms[1],
		llNorm:     norms[2],
		ofTableLog: logs[0],
		mlTableLog: logs[1],
		llTableLog: logs[2],
		repOffsets: reps,
	}, nil
}

func appendU32(dst []byte, v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return append(dst, b...)
}

func readU32(b []byte, off *int) (uint32, error) {
	if len(b) < *off+4 {
		return 0, newErr(ErrKindDictionaryCorrupted, "uint32 truncated")
	}
	v := binary.LittleEndian.Uint32(b[*off:])
	*off += 4
	return v, nil
}
