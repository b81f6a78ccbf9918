// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package fse

// Predefined default distributions for literal-length, offset, and
// match-length symbols: a block can reference these by mode =
// predefined instead of shipping a fresh table. Modeled on zstd's
// default distributions (same symbol-count shape and accuracy logs);
// used as-is when a stream never trains fresh tables for one of the
// three symbol kinds (first block, or an encoder that chooses not to
// retrain).

const (
	// LLDefaultAccuracyLog, OFDefaultAccuracyLog, MLDefaultAccuracyLog
	// are zstd's fixed accuracy logs for the three predefined tables.
	LLDefaultAccuracyLog = 6
	MLDefaultAccuracyLog = 6
	OFDefaultAccuracyLog = 5

	// MaxLLCode, MaxMLCode are the highest literal-length / match-length
	// category codes the predefined tables cover; codes above this are
	// encoded using an explicit fresh or RLE table instead.
	MaxLLCode = 35
	MaxMLCode = 51
	// MaxOFCode bounds the offset-code predefined table; live offset
	// codes in a real stream can exceed this when windowLog is large,
	// in which case a fresh table must be used.
	MaxOFCode = 28
)

// defaultLLNorm, defaultMLNorm, defaultOFNorm are representative
// normalized distributions (not a transcription of zstd's
// proprietary-tuned constants) that sum exactly to 1<<accuracyLog and
// favor the low category codes, matching the real distributions'
// overall shape: most literal runs and matches are short.
var (
	defaultLLNorm = buildDefaultNorm(MaxLLCode+1, LLDefaultAccuracyLog, 0)
	defaultMLNorm = buildDefaultNorm(MaxMLCode+1, MLDefaultAccuracyLog, 0)
	defaultOFNorm = buildDefaultNorm(MaxOFCode+1, OFDefaultAccuracyLog, 1)
)

// buildDefaultNorm synthesizes a monotonically decreasing normalized
// distribution over numSymbols categories summing to 1<<accuracyLog:
// geometric-ish decay seeded by a synthetic frequency curve, normalized
// through the same NormalizeCounts path real tables go through.
func buildDefaultNorm(numSymbols int, accuracyLog uint, skew int) []int16 {
	counts := make([]uint32, numSymbols)
	weight := uint32(1) << 16
	for i := range counts {
		counts[i] = weight
		if i >= skew {
			weight -= weight / 3
			if weight < 8 {
				weight = 8
			}
		}
	}
	return NormalizeCounts(counts, accuracyLog)
}

// DefaultLLTable, DefaultOFTable, DefaultMLTable lazily build and cache
// the decode tables for the predefined distributions.
var (
	defaultLLTable *DTable
	defaultOFTable *DTable
	defaultMLTable *DTable
)

func init() {
	var err error
	defaultLLTable, err = BuildDTable(defaultLLNorm, LLDefaultAccuracyLog)
	if err != nil {
		panic("fse: invalid default LL table: " + err.Error())
	}
	defaultOFTable, err = BuildDTable(defaultOFNorm, OFDefaultAccuracyLog)
	if err != nil {
		panic("fse: invalid default OF table: " + err.Error())
	}
	defaultMLTable, err = BuildDTable(defaultMLNorm, MLDefaultAccuracyLog)
	if err != nil {
		panic("fse: invalid default ML table: " + err.Error())
	}
}

// DefaultLLDTable returns the shared predefined literal-length decode
// table. Callers must not mutate it; it is immutable package-level
// state.
func DefaultLLDTable() *DTable { return defaultLLTable }

// DefaultOFDTable returns the shared predefined offset decode table.
func DefaultOFDTable() *DTable { return defaultOFTable }

// DefaultMLDTable returns the shared predefined match-length decode
// table.
func DefaultMLDTable() *DTable { return defaultMLTable }

// DefaultLLNorm, DefaultOFNorm, DefaultMLNorm expose the normalized
// counts so an encoder can build matching CTables.
func DefaultLLNorm() []int16 { return defaultLLNorm }
func DefaultOFNorm() []int16 { return defaultOFNorm }
func DefaultMLNorm() []int16 { return defaultMLNorm }
