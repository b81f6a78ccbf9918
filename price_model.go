// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import "math"

// bitCostScale fixes every price in this file to integer units of
// 1/256 of a bit, so the optimal parser's DP can compare and tie-break
// candidate costs exactly instead of against float64 rounding noise.
const bitCostScale = 256

// priceModel estimates the bit cost of a literal byte or a
// literal-length/match-length/offset code from how often that symbol
// has actually been seen, the same role optState_t's price tables play
// in zstd_opt.c: a symbol's cost is -log2(freq/sum), so common symbols
// get cheap codes and rare ones expensive ones, tracking what the
// block's real entropy stage will end up doing without requiring a
// two-pass table/price co-descent.
type priceModel struct {
	litFreq [256]uint32
	litSum  uint32

	llFreq [36]uint32
	llSum  uint32
	mlFreq [53]uint32
	mlSum  uint32
	ofFreq [36]uint32
	ofSum  uint32
}

func newPriceModel() *priceModel {
	p := &priceModel{}
	p.reset()
	return p
}

// reset seeds every histogram with a flat prior of one count per
// symbol: there's no previous block's statistics to decay from yet,
// so every symbol starts out equally likely.
func (p *priceModel) reset() {
	for i := range p.litFreq {
		p.litFreq[i] = 1
	}
	p.litSum = uint32(len(p.litFreq))
	for i := range p.llFreq {
		p.llFreq[i] = 1
	}
	p.llSum = uint32(len(p.llFreq))
	for i := range p.mlFreq {
		p.mlFreq[i] = 1
	}
	p.mlSum = uint32(len(p.mlFreq))
	for i := range p.ofFreq {
		p.ofFreq[i] = 1
	}
	p.ofSum = uint32(len(p.ofFreq))
}

// decay halves every histogram (floor 1, for symbols ever seen) before
// the next block's statistics are folded in, the same exponential
// forgetting shape as ZSTD_rescaleFreqs: recent blocks dominate the
// price estimate without discarding older ones outright.
func (p *priceModel) decay() {
	p.litSum = decayHisto(p.litFreq[:])
	p.llSum = decayHisto(p.llFreq[:])
	p.mlSum = decayHisto(p.mlFreq[:])
	p.ofSum = decayHisto(p.ofFreq[:])
}

func decayHisto(freq []uint32) uint32 {
	var sum uint32
	for i, f := range freq {
		if f > 1 {
			f >>= 1
		}
		freq[i] = f
		sum += f
	}
	return sum
}

// update folds one block's observed literal-byte and code histograms
// into the running model, called once that block's seqStore is
// final so the next block's prices reflect it.
func (p *priceModel) update(store *seqStore) {
	for i, f := range store.litByteFreq {
		p.litFreq[i] += f
		p.litSum += f
	}
	for i, f := range store.llFreq {
		p.llFreq[i] += f
		p.llSum += f
	}
	for i, f := range store.mlFreq {
		p.mlFreq[i] += f
		p.mlSum += f
	}
	for i, f := range store.ofFreq {
		p.ofFreq[i] += f
		p.ofSum += f
	}
}

func bitCost(freq, sum uint32) int {
	if freq == 0 {
		freq = 1
	}
	if sum < freq {
		sum = freq
	}
	return int(math.Round((math.Log2(float64(sum)) - math.Log2(float64(freq))) * bitCostScale))
}

// litCost prices one literal byte against the running byte histogram.
func (p *priceModel) litCost(b byte) int {
	return bitCost(p.litFreq[b], p.litSum)
}

// litLenCost prices a sequence's literal-length field: the code's
// entropy cost plus its exact extra bits (extra bits are incompressible,
// one bit each).
func (p *priceModel) litLenCost(n int) int {
	code := literalsLenCode(n)
	return bitCost(p.llFreq[code], p.llSum) + int(lengthExtraBits(code))*bitCostScale
}

// matchLenCost prices a sequence's match-length field the same way.
func (p *priceModel) matchLenCost(n int) int {
	code := matchLenCode(n)
	return bitCost(p.mlFreq[code], p.mlSum) + int(lengthExtraBits(code))*bitCostScale
}

// offsetCost prices a sequence's offset field: repKind >= 0 selects
// one of the two cheap repeat codes, otherwise the code is the fresh
// offset's bit length.
func (p *priceModel) offsetCost(offset uint32, repKind int) int {
	code := offsetCode(offset, repKind)
	return bitCost(p.ofFreq[code], p.ofSum) + int(offsetExtraBits(code))*bitCostScale
}
