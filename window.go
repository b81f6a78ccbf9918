// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// window tracks the portion of source (and, when a dictionary is
// loaded, dictionary) history that match-finders and the sequence
// parser may reference. Rather than wrapping indices into a
// fixed-size ring buffer, the window keeps the full accumulated byte
// slice and tracks a lower bound below which content is considered
// out of range, so offsets remain stable absolute positions instead
// of ring-relative ones.
type window struct {
	data []byte // accumulated content: dictionary bytes (if any) followed by source bytes

	dictLimit  int32 // data[:dictLimit] is dictionary content
	lowLimit   int32 // content below this position is out of window range
	windowLog  int
	windowSize int64

	repOffsets [2]uint32 // rep1, rep2 state carried across sequences
}

func newWindow(windowLog int) *window {
	return &window{
		windowLog:  windowLog,
		windowSize: int64(1) << uint(windowLog),
		repOffsets: [2]uint32{1, 4},
	}
}

// loadDict seeds the window with digested dictionary content so
// matches can reference it before any source bytes are appended.
func (w *window) loadDict(content []byte) {
	w.data = append(w.data[:0], content...)
	w.dictLimit = int32(len(content))
	w.lowLimit = 0
}

// append grows the window with newly consumed source bytes and slides
// lowLimit forward once the live range exceeds windowSize.
func (w *window) append(src []byte) {
	w.data = append(w.data, src...)
	total := int64(len(w.data))
	if total-int64(w.lowLimit) > w.windowSize {
		w.lowLimit = int32(total - w.windowSize)
	}
}

// currentPos returns the absolute position one past the last byte
// appended so far.
func (w *window) currentPos() int32 { return int32(len(w.data)) }

// inBounds reports whether absolute position pos is still addressable
// (not aged out by lowLimit).
func (w *window) inBounds(pos int32) bool { return pos >= w.lowLimit }

// byteAt returns the byte stored at absolute position pos.
func (w *window) byteAt(pos int32) byte { return w.data[pos] }

// slice returns the window content between absolute positions [lo, hi).
func (w *window) slice(lo, hi int32) []byte { return w.data[lo:hi] }

// matchLength returns the number of equal bytes starting at the two
// given absolute positions, capped by the window's current end and by
// max (max<0 means unbounded).
func (w *window) matchLength(a, b int32, max int) int {
	limit := int32(len(w.data))
	n := 0
	for a+int32(n) < limit && b+int32(n) < limit {
		if max >= 0 && n >= max {
			break
		}
		if w.data[a+int32(n)] != w.data[b+int32(n)] {
			break
		}
		n++
	}
	return n
}

// updateReps rewrites the two repeat-offset slots after a sequence is
// emitted. The swap is gated purely on literalsLen==0: a repeat match
// preceded by at least one literal byte leaves both slots untouched
// (repIdx==1's "rep2" is simply promoted to rep1 by the caller
// resolving the offset, not by reordering state here), while a repeat
// match with no literals in front of it swaps rep1 and rep2. A fresh
// (non-repeat) offset is always pushed to the front, demoting the old
// rep1 to rep2.
func (w *window) updateReps(offset uint32, literalsLen int, wasRepeat bool) {
	w.repOffsets = dpUpdateReps(w.repOffsets, offset, literalsLen, wasRepeat)
}
