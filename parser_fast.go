// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// fastParser implements StrategyFast and StrategyDFast: accept the
// first match the table offers with no lookahead, no lazy re-check.
type fastParser struct {
	f  *fastFinder
	df *doubleFastFinder
}

func (p *fastParser) findMatch(w *window, pos int32, maxMatch int) (uint32, int) {
	if p.df != nil {
		return p.df.findMatch(w, pos, maxMatch)
	}
	return p.f.findMatch(w, pos, maxMatch)
}

func (p *fastParser) parse(w *window, store *seqStore, src []byte, base int32) {
	end := base + int32(len(src))
	pos := base
	litStart := base
	for pos < end {
		maxMatch := int(end - pos)
		if repIdx, rlen := tryRepMatch(w, pos, maxMatch, int(pos-litStart)); repIdx >= 0 && rlen >= 3 {
			emit(w, store, w.slice(litStart, pos), 0, rlen, repIdx)
			pos += int32(rlen)
			litStart = pos
			continue
		}
		offset, length := p.findMatch(w, pos, maxMatch)
		if length == 0 {
			pos++
			continue
		}
		emit(w, store, w.slice(litStart, pos), offset, length, -1)
		pos += int32(length)
		litStart = pos
	}
	if litStart < end {
		store.addLastLiterals(w.slice(litStart, end))
	}
}
