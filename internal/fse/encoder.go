// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package fse

import (
	"math/bits"

	"github.com/zstdgo/zstd/internal/bitio"
)

// symbolTransform holds the per-symbol encode transform: the number of
// bits to output is derived from (state+deltaNbBits)>>16, and the next
// state is nextState[(state>>nbBits)+deltaFindState].
type symbolTransform struct {
	deltaFindState int32
	deltaNbBits    uint32
}

// CTable is a built FSE encode table: spread-symbol-to-state mapping
// plus the per-symbol transform.
type CTable struct {
	tableLog  uint
	tableSize uint32
	nextState []uint16
	symbolTT  []symbolTransform
}

// BuildCTable builds an encode table from a normalized distribution
// (sum == 1<<tableLog).
func BuildCTable(norm []int16, tableLog uint) (*CTable, error) {
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

	cumul := make([]uint32, len(norm)+1)
	low := uint32(0)
	for s, c := range norm {
		cumul[s] = low
		if c == -1 {
			low++
		} else {
			low += uint32(c)
		}
	}
	cumul[len(norm)] = tableSize

	nextState := make([]uint16, tableSize)
	for i, sym := range symTable {
		nextState[cumul[sym]] = uint16(tableSize) + uint16(i)
		cumul[sym]++
	}

	symbolTT := make([]symbolTransform, len(norm))
	total := int32(0)
	for s, c := range norm {
		switch c {
		case 0:
			// unused symbol; never encoded.
		case -1, 1:
			symbolTT[s].deltaNbBits = (uint32(tableLog) << 16) - tableSize
			symbolTT[s].deltaFindState = total - 1
			total++
		default:
			maxBitsOut := tableLog - uint(bits.Len32(uint32(c-1))-1)
			minStatePlus := uint32(c) << maxBitsOut
			symbolTT[s].deltaNbBits = (uint32(maxBitsOut) << 16) - minStatePlus
			symbolTT[s].deltaFindState = total - int32(c)
			total += int32(c)
		}
	}

	return &CTable{
		tableLog:  tableLog,
		tableSize: tableSize,
		nextState: nextState,
		symbolTT:  symbolTT,
	}, nil
}

// CState is the mutable encode cursor threaded through successive
// EncodeSymbol calls; sequences are encoded back-to-front so the
// decoder (reading forward) replays them in original order.
type CState struct {
	value uint32
	t     *CTable
}

// InitLast initializes the encode state for the last symbol of the
// sequence being encoded (encoding proceeds backward), writing no bits.
func (t *CTable) InitLast(symbol byte) *CState {
	tt := t.symbolTT[symbol]
	nbBitsOut := (tt.deltaNbBits + (1 << 15)) >> 16
	value := (nbBitsOut << 16) - tt.deltaNbBits
	st := &CState{t: t}
	st.value = uint32(t.nextState[(value>>nbBitsOut)+uint32(int32(tt.deltaFindState))])
	return st
}

// Encode writes the bits for symbol and advances the state, in the
// standard FSE "encode backward" order.
func (s *CState) Encode(w *bitio.Writer, symbol byte) {
	tt := s.t.symbolTT[symbol]
	nbBitsOut := uint((uint64(s.value) + uint64(tt.deltaNbBits)) >> 16)
	w.AddBits32(s.value, nbBitsOut)
	s.value = uint32(s.t.nextState[(s.value>>nbBitsOut)+uint32(tt.deltaFindState)])
}

// Flush writes the final state (tableLog bits), closing the stream
// with the encoder's final state.
func (s *CState) Flush(w *bitio.Writer) {
	w.AddBits32(s.value, s.t.tableLog)
}
