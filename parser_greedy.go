// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// greedyLazyParser implements StrategyGreedy, StrategyLazy and
// StrategyLazy2 over a single hash-chain finder: lazySteps controls how
// many positions ahead get probed ("is pos+1 even better? keep going")
// before committing to a match. lazySteps==0 is greedy, 1 is lazy, 2 is
// lazy2.
type greedyLazyParser struct {
	c         *chainFinder
	lazySteps int
}

func (p *greedyLazyParser) parse(w *window, store *seqStore, src []byte, base int32) {
	end := base + int32(len(src))
	pos := base
	litStart := base

	for pos < end {
		maxMatch := int(end - pos)
		if repIdx, rlen := tryRepMatch(w, pos, maxMatch, int(pos-litStart)); repIdx >= 0 && rlen >= 3 {
			p.c.insert(w, pos)
			emit(w, store, w.slice(litStart, pos), 0, rlen, repIdx)
			pos += int32(rlen)
			litStart = pos
			continue
		}

		offset, length := p.c.findBestMatch(w, pos, maxMatch)
		if length == 0 {
			pos++
			continue
		}

		// Lazy lookahead: if a later position within lazySteps finds a
		// strictly longer match, emit pos as a literal and defer.
		deferred := false
		for step := 1; step <= p.lazySteps && pos+int32(step) < end; step++ {
			nPos := pos + int32(step)
			nMax := int(end - nPos)
			nOff, nLen := p.c.findBestMatch(w, nPos, nMax)
			if nLen > length+step {
				pos = nPos
				offset, length = nOff, nLen
				deferred = true
			} else if deferred {
				break
			}
		}

		emit(w, store, w.slice(litStart, pos), offset, length, -1)
		pos += int32(length)
		litStart = pos
	}
	if litStart < end {
		store.addLastLiterals(w.slice(litStart, end))
	}
}
