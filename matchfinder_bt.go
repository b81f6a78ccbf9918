// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// btFinder is a binary-tree match finder with per-bucket roots and
// per-position left/right child arrays indexed by window position.
// Every insertion makes pos the new root of its bucket with both child
// links cleared, so a lookup compares pos against one node only, the
// previous position that hashed to the same bucket, and maxDepth is
// never reached. Backs StrategyBtLazy2, StrategyBtOpt and
// StrategyBtUltra.
type btFinder struct {
	hashLog  uint
	minMatch int
	maxDepth int
	head     []int32 // position+1 of each bucket's tree root
	left     []int32 // position+1 of the left child (shorter suffix wins)
	right    []int32 // position+1 of the right child (longer suffix wins)
}

func newBtFinder(hashLog uint, minMatch, maxDepth, capacity int) *btFinder {
	return &btFinder{
		hashLog:  hashLog,
		minMatch: minMatch,
		maxDepth: maxDepth,
		head:     make([]int32, 1<<hashLog),
		left:     make([]int32, capacity),
		right:    make([]int32, capacity),
	}
}

func (b *btFinder) hashAt(w *window, pos int32) uint32 {
	var v uint64
	n := b.minMatch
	if n > 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		v |= uint64(w.byteAt(pos+int32(i))) << (8 * uint(i))
	}
	return hashMul(v, b.hashLog)
}

func (b *btFinder) grow(pos int32) {
	if int(pos) < len(b.left) {
		return
	}
	n := len(b.left) * 2
	if n <= int(pos) {
		n = int(pos) + 1
	}
	grownL := make([]int32, n)
	grownR := make([]int32, n)
	copy(grownL, b.left)
	copy(grownR, b.right)
	b.left, b.right = grownL, grownR
}

// insertAndFindBest makes pos the root of its bucket and descends the
// bucket's previous tree from its old root, at each node comparing the
// node's suffix against pos's suffix: the common prefix records a
// candidate match and the next differing byte picks the branch. pos is
// linked as a child of the last node passed on each side, and its own
// child links are cleared. Because the old root's child links were
// cleared when it was inserted, the descent stops after that one node.
func (b *btFinder) insertAndFindBest(w *window, pos int32, maxMatch int) (offset uint32, length int) {
	if int(pos)+b.minMatch > len(w.data) {
		return 0, 0
	}
	b.grow(pos)
	h := b.hashAt(w, pos)
	root := b.head[h]
	b.head[h] = pos + 1

	bestLen, bestOff := 0, uint32(0)
	// lt/gt track where pos must be spliced in once the walk bottoms out.
	ltParent, gtParent := int32(-1), int32(-1)
	ltIsLeft, gtIsLeft := false, false

	cur := root
	depth := 0
	for cur != 0 && depth < b.maxDepth {
		p := cur - 1
		depth++
		if !w.inBounds(p) || p >= pos {
			break
		}
		l := w.matchLength(p, pos, maxMatch)
		if l > bestLen {
			bestLen = l
			bestOff = uint32(pos - p)
		}
		if maxMatch > 0 && l >= maxMatch {
			break
		}
		var curByte, posByte byte
		if int(p)+l < len(w.data) {
			curByte = w.byteAt(p + int32(l))
		}
		if int(pos)+l < len(w.data) {
			posByte = w.byteAt(pos + int32(l))
		}
		if posByte > curByte {
			// pos's suffix sorts after cur's: descend right, remembering
			// cur as the parent pos will later become cur's right child of.
			gtParent, gtIsLeft = p, false
			cur = b.right[p]
		} else {
			ltParent, ltIsLeft = p, true
			cur = b.left[p]
		}
	}
	if ltParent >= 0 {
		if ltIsLeft {
			b.left[ltParent] = pos + 1
		} else {
			b.right[ltParent] = pos + 1
		}
	}
	if gtParent >= 0 {
		if gtIsLeft {
			b.left[gtParent] = pos + 1
		} else {
			b.right[gtParent] = pos + 1
		}
	}
	b.left[pos] = 0
	b.right[pos] = 0

	if bestLen < b.minMatch {
		return 0, 0
	}
	return bestOff, bestLen
}

// matchCandidate is one (offset, length) pair returned by
// getAllMatches, plus how far it can be extended backward from pos
// into bytes that would otherwise be priced as leading literals.
type matchCandidate struct {
	offset uint32
	length int
	back   int32
}

// getAllMatches runs the same tree descent and splice-in as
// insertAndFindBest, but instead of keeping only the single longest
// match it records every node along the descent whose length improves
// on the longest one seen so far (the dominated, shorter-at-larger-
// offset candidates a price-based search never prefers are pruned the
// same way the tree walk already orders them). As in insertAndFindBest,
// the descent visits only the bucket's previous root, so at most one
// candidate is returned. maxBack caps how far a
// candidate may extend backward, so the optimal parser's DP never
// walks a match start before the current block.
func (b *btFinder) getAllMatches(w *window, pos int32, maxMatch int, maxBack int32) []matchCandidate {
	var out []matchCandidate
	if int(pos)+b.minMatch > len(w.data) {
		return out
	}
	b.grow(pos)
	h := b.hashAt(w, pos)
	root := b.head[h]
	b.head[h] = pos + 1

	bestLen := 0
	ltParent, gtParent := int32(-1), int32(-1)
	ltIsLeft, gtIsLeft := false, false

	cur := root
	depth := 0
	for cur != 0 && depth < b.maxDepth {
		p := cur - 1
		depth++
		if !w.inBounds(p) || p >= pos {
			break
		}
		l := w.matchLength(p, pos, maxMatch)
		if l >= b.minMatch && l > bestLen {
			bestLen = l
			back := backExtend(w, p, pos, maxBack)
			out = append(out, matchCandidate{offset: uint32(pos - p), length: l, back: back})
		}
		if maxMatch > 0 && l >= maxMatch {
			break
		}
		var curByte, posByte byte
		if int(p)+l < len(w.data) {
			curByte = w.byteAt(p + int32(l))
		}
		if int(pos)+l < len(w.data) {
			posByte = w.byteAt(pos + int32(l))
		}
		if posByte > curByte {
			gtParent, gtIsLeft = p, false
			cur = b.right[p]
		} else {
			ltParent, ltIsLeft = p, true
			cur = b.left[p]
		}
	}
	if ltParent >= 0 {
		if ltIsLeft {
			b.left[ltParent] = pos + 1
		} else {
			b.right[ltParent] = pos + 1
		}
	}
	if gtParent >= 0 {
		if gtIsLeft {
			b.left[gtParent] = pos + 1
		} else {
			b.right[gtParent] = pos + 1
		}
	}
	b.left[pos] = 0
	b.right[pos] = 0
	return out
}

// backExtend reports how many bytes immediately preceding p and pos
// match each other, capped at maxBack and at p itself (a match can
// never extend past the start of the window).
func backExtend(w *window, p, pos, maxBack int32) int32 {
	limit := maxBack
	if p < limit {
		limit = p
	}
	var n int32
	for n < limit && w.inBounds(p-n-1) && w.byteAt(p-n-1) == w.byteAt(pos-n-1) {
		n++
	}
	return n
}
