// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import "math/bits"

// fastFinder is a single hash-table match finder: one table slot per
// hash bucket, holding only the most recent position. It backs
// StrategyFast, with a hash width parametrized by minMatch rather than
// a single fixed key size, so one finder shape serves every fast-level
// minMatch setting.
type fastFinder struct {
	hashLog  uint
	minMatch int
	table    []int32 // position+1, 0 means empty
}

func newFastFinder(hashLog uint, minMatch int) *fastFinder {
	return &fastFinder{
		hashLog:  hashLog,
		minMatch: minMatch,
		table:    make([]int32, 1<<hashLog),
	}
}

// hashAt computes the table index for the minMatch bytes starting at
// position pos in w.
func (f *fastFinder) hashAt(w *window, pos int32) uint32 {
	var v uint64
	n := f.minMatch
	if n > 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		v |= uint64(w.byteAt(pos+int32(i))) << (8 * uint(i))
	}
	return hashMul(v, f.hashLog)
}

// hashMul is a multiplicative hash using the 64-bit golden-ratio
// constant, so arbitrary key widths up to 8 bytes scramble evenly.
func hashMul(v uint64, log uint) uint32 {
	const prime64 = 0x9E3779B185EBCA87
	return uint32((v * prime64) >> (64 - log))
}

// insert records pos in the hash table, returning the previous
// occupant (0 if none).
func (f *fastFinder) insert(w *window, pos int32) int32 {
	if int(pos)+f.minMatch > len(w.data) {
		return 0
	}
	h := f.hashAt(w, pos)
	prev := f.table[h]
	f.table[h] = pos + 1
	return prev
}

// findMatch inserts pos and reports the best match found via the
// single-candidate table lookup: one candidate per position, no chain
// to walk.
func (f *fastFinder) findMatch(w *window, pos int32, maxMatch int) (offset uint32, length int) {
	candP := f.insert(w, pos)
	if candP == 0 {
		return 0, 0
	}
	cand := candP - 1
	if !w.inBounds(cand) || cand >= pos {
		return 0, 0
	}
	l := w.matchLength(cand, pos, maxMatch)
	if l < f.minMatch {
		return 0, 0
	}
	return uint32(pos - cand), l
}

// doubleFastFinder layers a short-key table over a long-key table: the
// long table catches far, highly compressible repeats cheaply while the
// short table still finds close matches the long key would miss. Backs
// StrategyDFast.
type doubleFastFinder struct {
	short *fastFinder
	long  *fastFinder
}

func newDoubleFastFinder(hashLog uint, minMatch int) *doubleFastFinder {
	longLog := hashLog
	if longLog > 3 {
		longLog -= 1
	}
	return &doubleFastFinder{
		short: newFastFinder(hashLog, minMatch),
		long:  newFastFinder(longLog, 8),
	}
}

func (f *doubleFastFinder) findMatch(w *window, pos int32, maxMatch int) (offset uint32, length int) {
	var longOff uint32
	var longLen int
	if int(pos)+8 <= len(w.data) {
		longOff, longLen = f.long.findMatch(w, pos, maxMatch)
	}
	shortOff, shortLen := f.short.findMatch(w, pos, maxMatch)
	if longLen >= shortLen && longLen > 0 {
		return longOff, longLen
	}
	return shortOff, shortLen
}

// minMatchHashBits returns the bit width of minMatch (bits.Len).
func minMatchHashBits(minMatch int) uint {
	return uint(bits.Len(uint(minMatch)))
}
