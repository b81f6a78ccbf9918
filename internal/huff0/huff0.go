// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

// Package huff0 implements a canonical-Huffman literal-byte coder: a
// weight-limited bounded-length code construction, with 1-stream and
// 4-parallel-stream variants.
package huff0

import (
	"container/heap"
	"errors"
)

// ErrTable is returned when weights or a built table are structurally
// invalid.
var ErrTable = errors.New("huff0: invalid table")

// MaxTableLog is the maximum canonical code length this package
// builds (DefaultTableLog unless a caller requests a tighter bound).
const (
	DefaultTableLog = 11
	MaxTableLog     = 12
	// MaxSymbols is the literal alphabet size (one byte per symbol).
	MaxSymbols = 256
)

// huffNode is one node of the unconstrained Huffman tree being built;
// leaves carry a symbol and no children, internal nodes carry children
// and no symbol.
type huffNode struct {
	freq        uint64
	isLeaf      bool
	symbol      int
	left, right *huffNode
}

// nodeHeap is a min-heap of *huffNode ordered by frequency, used to
// repeatedly merge the two lightest subtrees (standard Huffman
// construction).
type nodeHeap []*huffNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].freq < h[j].freq }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*huffNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// BuildCodeLengths computes a canonical, length-limited Huffman code
// length per symbol from raw frequencies, bounded by maxBits. This is
// the classic two-pass construction (build an unconstrained tree, then
// fix any over-length Kraft violation by borrowing from the shortest
// available codes) also used by DEFLATE-family coders, producing a
// valid, decodable, length-limited canonical code.
func BuildCodeLengths(freqs []uint32, maxBits int) ([]uint8, error) {
	if maxBits < 1 || maxBits > MaxTableLog {
		return nil, ErrTable
	}
	lengths := make([]uint8, len(freqs))

	var active []*huffNode
	for s, f := range freqs {
		if f == 0 {
			continue
		}
		active = append(active, &huffNode{freq: uint64(f), isLeaf: true, symbol: s})
	}
	switch len(active) {
	case 0:
		return lengths, nil
	case 1:
		lengths[active[0].symbol] = 1
		return lengths, nil
	}

	pq := make(nodeHeap, len(active))
	copy(pq, active)
	heap.Init(&pq)
	for pq.Len() > 1 {
		a := heap.Pop(&pq).(*huffNode)
		b := heap.Pop(&pq).(*huffNode)
		heap.Push(&pq, &huffNode{freq: a.freq + b.freq, left: a, right: b})
	}
	root := pq[0]

	maxDepth := 0
	var walk func(n *huffNode, depth int)
	walk = func(n *huffNode, depth int) {
		if n.isLeaf {
			lengths[n.symbol] = uint8(depth)
			if depth > maxDepth {
				maxDepth = depth
			}
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	if root.isLeaf {
		lengths[root.symbol] = 1
	} else {
		walk(root, 0)
	}

	if maxDepth > maxBits {
		limitLengths(lengths, freqs, maxBits)
	}
	return lengths, nil
}

// limitLengths clamps any code length above maxBits down to maxBits,
// then repairs the resulting Kraft-inequality overshoot (clamping only
// ever shortens codes, which can push the sum of 2^-len above 1) by
// lengthening the least-frequent symbols that still have headroom,
// scanning from the lowest frequency upward, until the sum, over a
// common denominator of 1<<maxBits, no longer exceeds 1<<maxBits. The
// last lengthening can leave the sum below 1<<maxBits, giving a valid
// but incomplete code.
func limitLengths(lengths []uint8, freqs []uint32, maxBits int) {
	for i, l := range lengths {
		if l > uint8(maxBits) {
			lengths[i] = uint8(maxBits)
		}
	}

	order := make([]int, 0, len(lengths))
	for i, l := range lengths {
		if l > 0 {
			order = append(order, i)
		}
	}
	// Ascending by frequency: the least frequent symbols absorb length
	// increases first, since they cost the least in expected bits.
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && freqs[order[j-1]] > freqs[order[j]] {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}

	kraftUnit := uint64(1) << uint(maxBits)
	total := uint64(0)
	for _, i := range order {
		total += kraftUnit >> uint(lengths[i])
	}

	idx := 0
	for total > kraftUnit && idx < len(order) {
		i := order[idx]
		if lengths[i] < uint8(maxBits) {
			total -= kraftUnit >> uint(lengths[i])
			lengths[i]++
			total += kraftUnit >> uint(lengths[i])
		} else {
			idx++
		}
	}
}
