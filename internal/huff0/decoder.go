// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package huff0

import "github.com/zstdgo/zstd/internal/bitio"

// dEntry is one direct-indexed decode-table slot.
type dEntry struct {
	symbol byte
	nbBits uint8
}

// DTable is a direct-indexed 2^tableLog decode table
// "Huffman decoding table".
type DTable struct {
	tableLog int
	entries  []dEntry
}

// BuildDTable builds a direct-indexed decode table from code lengths.
// The backward reader's next tableLog bits hold the next code in their
// top bits, MSB-first (see CTable.Code), so the decode table is indexed
// directly by those bits: every slot whose top `length` bits equal a
// symbol's canonical code maps to that symbol.
func BuildDTable(ct *CTable) (*DTable, error) {
	tableLog := ct.TableLog
	if tableLog == 0 {
		return &DTable{tableLog: 0}, nil
	}
	if tableLog > MaxTableLog {
		return nil, ErrTable
	}
	size := 1 << uint(tableLog)
	entries := make([]dEntry, size)
	for sym, l := range ct.Lengths {
		if l == 0 {
			continue
		}
		code, _ := ct.Code(byte(sym))
		shift := uint(tableLog) - uint(l)
		start := int(code) << shift
		for v := start; v < start+1<<shift; v++ {
			entries[v] = dEntry{symbol: byte(sym), nbBits: l}
		}
	}
	return &DTable{tableLog: tableLog, entries: entries}, nil
}

// Decode1 decodes a single-stream Huffman payload of regenSize bytes
// from r.
func Decode1(t *DTable, r *bitio.Reader, regenSize int) ([]byte, error) {
	out := make([]byte, regenSize)
	for i := 0; i < regenSize; i++ {
		if t.tableLog == 0 {
			return nil, ErrTable
		}
		v := r.Peek(uint(t.tableLog))
		e := t.entries[v]
		if e.nbBits == 0 {
			return nil, ErrTable
		}
		r.Consume(uint(e.nbBits))
		out[i] = e.symbol
	}
	return out, nil
}

// Decode4 decodes the 4-parallel-stream variant: a 6-byte jump table
// (three 16-bit stream sizes; the fourth is implicit) precedes four
// independently bit-reader-decoded segments that are concatenated,
//.2 "4-stream mode".
func Decode4(t *DTable, payload []byte, regenSize int) ([]byte, error) {
	if len(payload) < 6 {
		return nil, ErrTable
	}
	size1 := int(payload[0]) | int(payload[1])<<8
	size2 := int(payload[2]) | int(payload[3])<<8
	size3 := int(payload[4]) | int(payload[5])<<8
	body := payload[6:]
	if size1+size2+size3 > len(body) {
		return nil, ErrTable
	}
	size4 := len(body) - size1 - size2 - size3

	segBytes := [4][]byte{
		body[:size1],
		body[size1 : size1+size2],
		body[size1+size2 : size1+size2+size3],
		body[size1+size2+size3 : size1+size2+size3+size4],
	}

	base := regenSize / 4
	rem := regenSize - base*3
	segOut := [4]int{base, base, base, rem}

	out := make([]byte, 0, regenSize)
	for i := 0; i < 4; i++ {
		if segOut[i] == 0 {
			continue
		}
		r, err := bitio.NewReader(segBytes[i])
		if err != nil {
			return nil, err
		}
		seg, err := Decode1(t, r, segOut[i])
		if err != nil {
			return nil, err
		}
		out = append(out, seg...)
	}
	return out, nil
}
