// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// Strategy selects the parser used to turn literals into sequences.
// Values are ordered from cheapest to most thorough.
type Strategy int

const (
	StrategyFast Strategy = iota
	StrategyDFast
	StrategyGreedy
	StrategyLazy
	StrategyLazy2
	StrategyBtLazy2
	StrategyBtOpt
	StrategyBtUltra
)

func (s Strategy) String() string {
	switch s {
	case StrategyFast:
		return "fast"
	case StrategyDFast:
		return "dfast"
	case StrategyGreedy:
		return "greedy"
	case StrategyLazy:
		return "lazy"
	case StrategyLazy2:
		return "lazy2"
	case StrategyBtLazy2:
		return "btlazy2"
	case StrategyBtOpt:
		return "btopt"
	case StrategyBtUltra:
		return "btultra"
	default:
		return "unknown"
	}
}

// isOptimal reports whether s uses the price-based DP parser.
func (s Strategy) isOptimal() bool {
	return s == StrategyBtOpt || s == StrategyBtUltra
}

// compressionParams holds the seven knobs a strategy selection needs:
// {strategy, windowLog, chainLog, hashLog, searchLog, minMatch,
// targetLength}.
type compressionParams struct {
	strategy     Strategy
	windowLog    int
	chainLog     int
	hashLog      int
	searchLog    int
	minMatch     int
	targetLength int // "sufficient length" / nice length, depending on strategy
}

// MinLevel and MaxLevel bound the public Level field to [1,22].
const (
	MinLevel = 1
	MaxLevel = 22
)

// levelPresets holds one compressionParams per level, indexed directly
// by Level (index 0 is unused since resolveCompressionParams clamps
// Level to [MinLevel, MaxLevel] before indexing). Values are
// representative and internally monotonic (ratio-favoring parameters
// increase with level) rather than a transcription of zstd's
// proprietary-tuned table.
var levelPresets = [MaxLevel + 1]compressionParams{
	{StrategyFast, 19, 0, 12, 0, 5, 0},
	{StrategyFast, 19, 0, 12, 0, 6, 0},
	{StrategyFast, 20, 0, 14, 0, 5, 0},
	{StrategyDFast, 20, 0, 17, 0, 5, 0},
	{StrategyDFast, 20, 0, 17, 0, 4, 0},
	{StrategyGreedy, 21, 16, 17, 1, 4, 8},
	{StrategyLazy, 21, 18, 18, 1, 4, 8},
	{StrategyLazy, 21, 18, 18, 4, 4, 8},
	{StrategyLazy2, 21, 20, 18, 4, 4, 16},
	{StrategyLazy2, 21, 20, 19, 4, 4, 16},
	{StrategyLazy2, 22, 21, 20, 4, 4, 16},
	{StrategyLazy2, 22, 22, 20, 4, 4, 32},
	{StrategyLazy2, 22, 22, 21, 5, 4, 32},
	{StrategyLazy2, 22, 22, 21, 6, 4, 48},
	{StrategyBtLazy2, 22, 23, 21, 4, 4, 48},
	{StrategyBtLazy2, 23, 23, 22, 5, 4, 64},
	{StrategyBtOpt, 23, 23, 22, 6, 4, 64},
	{StrategyBtOpt, 23, 24, 23, 7, 4, 128},
	{StrategyBtOpt, 23, 24, 23, 8, 4, 128},
	{StrategyBtOpt, 24, 25, 23, 9, 4, 256},
	{StrategyBtUltra, 25, 25, 24, 10, 3, 256},
	{StrategyBtUltra, 26, 26, 24, 12, 3, 512},
	{StrategyBtUltra, 27, 27, 25, 14, 3, 999},
}

// resolveCompressionParams builds the effective compressionParams for a
// CompressOptions: start from the level preset, then apply non-zero
// Advanced overrides, then clamp windowLog into [minWindowLog,
// maxWindowLogLimit], raise chainLog and hashLog to at least 6, and
// clamp minMatch into [3, 6]. strategy, searchLog, targetLength and the
// upper ends of chainLog and hashLog are passed through unclamped.
func resolveCompressionParams(opts *CompressOptions) compressionParams {
	level := opts.Level
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	p := levelPresets[level]

	if a := opts.Advanced; a != nil {
		if a.WindowLog != 0 {
			p.windowLog = a.WindowLog
		}
		if a.ChainLog != 0 {
			p.chainLog = a.ChainLog
		}
		if a.HashLog != 0 {
			p.hashLog = a.HashLog
		}
		if a.SearchLog != 0 {
			p.searchLog = a.SearchLog
		}
		if a.MinMatch != 0 {
			p.minMatch = a.MinMatch
		}
		if a.TargetLength != 0 {
			p.targetLength = a.TargetLength
		}
		if a.Strategy != 0 || p.strategy == StrategyFast {
			p.strategy = a.Strategy
		}
	}

	p.windowLog = clampWindowLog(p.windowLog)
	if p.chainLog < 6 {
		p.chainLog = 6
	}
	if p.hashLog < 6 {
		p.hashLog = 6
	}
	if p.minMatch < 3 {
		p.minMatch = 3
	}
	if p.minMatch > 6 {
		p.minMatch = 6
	}
	return p
}
