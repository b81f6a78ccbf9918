// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package fse

import (
	"math/bits"

	"github.com/zstdgo/zstd/internal/bitio"
)

// dEntry is one decode-table slot: which symbol it represents, how many
// bits to pull off the stream, and the base the pulled bits add onto to
// form the next state.
type dEntry struct {
	symbol   byte
	nbBits   uint8
	newState uint16
}

// DTable is a built FSE decode table
// 1+2^accuracyLog entries of {nextState, nbAdditionalBits, nbBits,
// baseValue} collapse here into the single dEntry the decode loop
// needs.
type DTable struct {
	tableLog uint
	entries  []dEntry
}

// BuildDTable builds a decode table from a normalized distribution.
func BuildDTable(norm []int16, tableLog uint) (*DTable, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, ErrTable
	}
	tableSize := uint32(1) << tableLog
	if sumNorm(norm) != int32(tableSize) {
		return nil, ErrTable
	}
	symTable, err := spreadSymbols(norm, tableLog)
	if err != nil {
		return nil, err
	}

	symbolNext := make([]uint16, len(norm))
	for s, c := range norm {
		if c == -1 {
			symbolNext[s] = 1
		} else {
			symbolNext[s] = uint16(c)
		}
	}

	entries := make([]dEntry, tableSize)
	for u, sym := range symTable {
		next := symbolNext[sym]
		symbolNext[sym]++
		// bits.Len16(next)-1 is the reference's highbit32(next).
		nbBits := uint8(int(tableLog) - (bits.Len16(next) - 1))
		entries[u] = dEntry{
			symbol:   sym,
			nbBits:   nbBits,
			newState: (next << nbBits) - uint16(tableSize),
		}
	}

	return &DTable{tableLog: tableLog, entries: entries}, nil
}

// DState is the mutable decode cursor threaded through successive
// DecodeSymbol calls.
type DState struct {
	state uint32
	t     *DTable
}

// InitDState reads tableLog bits from r to seed the initial state.
func (t *DTable) InitDState(r *bitio.Reader) *DState {
	st := &DState{t: t}
	st.state = r.ReadBits(t.tableLog)
	return st
}

// DecodeSymbol returns the symbol at the current state and advances the
// state by consuming the entry's nbBits from r.
func (s *DState) DecodeSymbol(r *bitio.Reader) byte {
	e := s.t.entries[s.state]
	lowBits := r.ReadBits(uint(e.nbBits))
	s.state = uint32(e.newState) + lowBits
	return e.symbol
}

// Peek returns the symbol at the current state without advancing,
// useful for callers that need to inspect the symbol before deciding
// how many extra raw bits to read (e.g. offset codes).
func (s *DState) Peek() byte {
	return s.t.entries[s.state].symbol
}
