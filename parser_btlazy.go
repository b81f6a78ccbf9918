// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// btLazyParser implements StrategyBtLazy2: the same lazy2 lookahead as
// greedyLazyParser, but backed by the binary-tree finder instead of a
// hash chain; that finder compares each position only against the
// previous position in its hash bucket (see btFinder).
type btLazyParser struct {
	b         *btFinder
	lazySteps int
}

func (p *btLazyParser) parse(w *window, store *seqStore, src []byte, base int32) {
	end := base + int32(len(src))
	pos := base
	litStart := base

	for pos < end {
		maxMatch := int(end - pos)
		if repIdx, rlen := tryRepMatch(w, pos, maxMatch, int(pos-litStart)); repIdx >= 0 && rlen >= 3 {
			p.b.insertAndFindBest(w, pos, maxMatch)
			emit(w, store, w.slice(litStart, pos), 0, rlen, repIdx)
			pos += int32(rlen)
			litStart = pos
			continue
		}

		offset, length := p.b.insertAndFindBest(w, pos, maxMatch)
		if length == 0 {
			pos++
			continue
		}

		deferred := false
		for step := 1; step <= p.lazySteps && pos+int32(step) < end; step++ {
			nPos := pos + int32(step)
			nMax := int(end - nPos)
			nOff, nLen := p.b.insertAndFindBest(w, nPos, nMax)
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
