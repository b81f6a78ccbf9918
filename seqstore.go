// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// sequence is one literal-run-plus-match triple.
type sequence struct {
	literalsLen int
	offset      uint32 // absolute offset, 0 means "repeat code" (resolved at emit time)
	matchLen    int    // full match length; the 3-byte bias is removed only when it is coded
	repIdx      int    // -1 = not a repeat; 0/1 = which rep slot was used
}

// seqStore accumulates a block's literal bytes and its emitted
// sequences, plus the per-symbol frequency counters the block codec's
// entropy stage uses to build its fresh tables and the
// optimal parser's price model needs to cost candidates.
type seqStore struct {
	literals []byte
	seqs     []sequence

	llFreq [36]uint32 // literal-length codes 0..35
	mlFreq [53]uint32 // match-length codes 0..52
	ofFreq [36]uint32 // offset codes: 0..1 repeat slots, 2+ bit-length buckets

	litByteFreq [256]uint32
	litByteSum  uint32
}

func newSeqStore() *seqStore {
	return &seqStore{}
}

func (s *seqStore) reset() {
	s.literals = s.literals[:0]
	s.seqs = s.seqs[:0]
	for i := range s.llFreq {
		s.llFreq[i] = 0
	}
	for i := range s.mlFreq {
		s.mlFreq[i] = 0
	}
	for i := range s.ofFreq {
		s.ofFreq[i] = 0
	}
	for i := range s.litByteFreq {
		s.litByteFreq[i] = 0
	}
	s.litByteSum = 0
}

// addSequence appends literal bytes and a match, updating the
// frequency counters the entropy stage will consult.
func (s *seqStore) addSequence(lits []byte, offset uint32, matchLen int, repIdx int) {
	s.literals = append(s.literals, lits...)
	s.seqs = append(s.seqs, sequence{
		literalsLen: len(lits),
		offset:      offset,
		matchLen:    matchLen,
		repIdx:      repIdx,
	})
	s.llFreq[literalsLenCode(len(lits))]++
	s.mlFreq[matchLenCode(matchLen)]++
	s.ofFreq[offsetCode(offset, repIdx)]++
	for _, b := range lits {
		s.litByteFreq[b]++
		s.litByteSum++
	}
}

// addLastLiterals appends a trailing literal run with no following
// match, the way every block's final sequence does.
func (s *seqStore) addLastLiterals(lits []byte) {
	s.literals = append(s.literals, lits...)
	for _, b := range lits {
		s.litByteFreq[b]++
		s.litByteSum++
	}
}

// literalsLenCode, matchLenCode and offsetCode (shared with the
// optimal parser's cost model and the block codec) live in
// seqcodes.go.
