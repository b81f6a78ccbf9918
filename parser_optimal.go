// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// optimalParser implements StrategyBtOpt and StrategyBtUltra: a
// forward price-based dynamic-programming parse over the block,
// choosing at every reachable position whichever of "emit one
// literal", "take a repeat-offset match" or "take one of the tree's
// fresh-offset candidates" minimizes estimated total bit cost to the
// end of the block. Candidate costs come from prices, a running
// frequency model reseeded each block by decaying the previous
// block's histograms (zstd_opt.c's ZSTD_rescaleFreqs), not from a
// live entropy-table co-descent: that would need building the actual
// FSE/Huffman tables incrementally alongside the parse, which is out
// of scope for a from-scratch rewrite. A decayed-frequency estimate
// still converges toward the real entropy cost within a few blocks
// and produces a correct, though not bit-identical, parse.
type optimalParser struct {
	b         *btFinder
	minMatch  int
	targetLen int
	ultra     bool
	prices    *priceModel
}

// dpResolveRepOffset is resolveRepOffset generalized over a
// hypothetical rep-offset pair instead of the window's live state: the
// DP explores many candidate paths at once, each carrying its own
// idea of what the two repeat slots hold, so it can't read or mutate
// w.repOffsets directly the way tryRepMatch does for the single-path
// parsers.
func dpResolveRepOffset(reps [2]uint32, repKind int, litLen int) uint32 {
	if repKind == 0 {
		return reps[0]
	}
	if litLen == 0 {
		if reps[0] > 1 {
			return reps[0] - 1
		}
		return reps[0]
	}
	return reps[1]
}

// dpUpdateReps is window.updateReps's swap rule as a pure function
// over a hypothetical rep-offset pair, for the same reason.
func dpUpdateReps(reps [2]uint32, offset uint32, literalsLen int, wasRepeat bool) [2]uint32 {
	if wasRepeat {
		if literalsLen == 0 {
			return [2]uint32{reps[1], reps[0]}
		}
		return reps
	}
	return [2]uint32{offset, reps[0]}
}

// dpTryRepMatch is tryRepMatch against a hypothetical rep-offset pair.
func dpTryRepMatch(w *window, reps [2]uint32, pos int32, maxMatch, litLen int) (repKind, length int) {
	repKind = -1
	for k := 0; k < 2; k++ {
		off := dpResolveRepOffset(reps, k, litLen)
		if off == 0 || int64(off) > int64(pos) {
			continue
		}
		cand := pos - int32(off)
		if !w.inBounds(cand) {
			continue
		}
		l := w.matchLength(cand, pos, maxMatch)
		if l >= 3 && l > length {
			length = l
			repKind = k
		}
	}
	if length < 3 {
		return -1, 0
	}
	return repKind, length
}

func (p *optimalParser) parse(w *window, store *seqStore, src []byte, base int32) {
	n := len(src)
	end := base + int32(n)

	if p.prices == nil {
		p.prices = newPriceModel()
	} else {
		p.prices.decay()
	}

	type decision struct {
		isMatch  bool
		offset   uint32
		length   int
		repIdx   int
		fromStep int
	}

	const inf = 1 << 30
	cost := make([]int, n+1)
	back := make([]decision, n+1)
	litRun := make([]int, n+1)
	reps := make([][2]uint32, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = inf
	}
	reps[0] = w.repOffsets

	relax := func(j, total, start int, d decision, newLitRun int, newReps [2]uint32) {
		if j > n {
			j = n
		}
		if total < cost[j] || (cost[j] < inf && total == cost[j] && start > back[j].fromStep) {
			cost[j] = total
			d.fromStep = start
			back[j] = d
			litRun[j] = newLitRun
			reps[j] = newReps
		}
	}

	for i := 0; i < n; i++ {
		if cost[i] >= inf {
			continue
		}
		pos := base + int32(i)
		maxMatch := n - i
		curReps := reps[i]
		curLitRun := litRun[i]

		// Literal step: price one byte against the running histogram.
		relax(i+1, cost[i]+p.prices.litCost(src[i]), i,
			decision{isMatch: false}, curLitRun+1, curReps)

		// Repeat-offset match.
		if repIdx, rlen := dpTryRepMatch(w, curReps, pos, maxMatch, curLitRun); repIdx >= 0 {
			mc := p.prices.litLenCost(curLitRun) + p.prices.matchLenCost(rlen) + p.prices.offsetCost(0, repIdx)
			newReps := dpUpdateReps(curReps, 0, curLitRun, true)
			relax(i+rlen, cost[i]+mc, i,
				decision{isMatch: true, offset: 0, length: rlen, repIdx: repIdx}, 0, newReps)
		}

		// Fresh-offset matches from the tree, including ones extended
		// backward into bytes the current literal run would otherwise
		// have priced individually.
		for _, cand := range p.b.getAllMatches(w, pos, maxMatch, int32(i)) {
			start := i - int(cand.back)
			if start < 0 || cost[start] >= inf {
				continue
			}
			effLen := cand.length + int(cand.back)
			startLitRun := litRun[start]
			mc := p.prices.litLenCost(startLitRun) + p.prices.matchLenCost(effLen) + p.prices.offsetCost(cand.offset, -1)
			newReps := dpUpdateReps(reps[start], cand.offset, startLitRun, false)
			relax(i+cand.length, cost[start]+mc, start,
				decision{isMatch: true, offset: cand.offset, length: effLen, repIdx: -1}, 0, newReps)

			if !p.ultra && p.targetLen > 0 && effLen >= p.targetLen {
				break
			}
		}
	}

	// Backtrack to recover the chosen step sequence, then replay
	// forward so rep-offset state updates in emission order. The chain
	// of fromStep indices is always contiguous (each edge's target is
	// the next edge's source), so litStart/pos advance in lock-step
	// with it regardless of how far back a match's cand.back reached.
	var steps []decision
	for i := n; i > 0; {
		d := back[i]
		steps = append(steps, d)
		i = d.fromStep
	}
	litStart := base
	pos := base
	for k := len(steps) - 1; k >= 0; k-- {
		d := steps[k]
		if !d.isMatch {
			pos++
			continue
		}
		emit(w, store, w.slice(litStart, pos), d.offset, d.length, d.repIdx)
		pos += int32(d.length)
		litStart = pos
	}
	if litStart < end {
		store.addLastLiterals(w.slice(litStart, end))
	}

	p.prices.update(store)
}
