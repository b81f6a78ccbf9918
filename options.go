// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// CompressOptions configures one Compress call or one Encoder.
// Level selects a preset from the level table (levelPresets); Advanced,
// when non-nil, overrides individual compression-parameter fields the
// way the reference's advanced API lets callers override cParams.
type CompressOptions struct {
	// Level selects a preset in [MinLevel, MaxLevel]; values outside
	// that range are clamped to the nearest bound. Higher levels trade
	// speed for ratio.
	Level int

	// Checksum adds a 32-bit content checksum (XXH64 truncated) to the
	// frame trailer.
	Checksum bool

	// DictionaryID, if non-zero, is written in the frame header and
	// checked against any dictionary supplied at decode time.
	DictionaryID uint32

	// Advanced overrides individual compression parameters on top of
	// the level preset. Fields left at zero value keep the preset's
	// value.
	Advanced *AdvancedOptions
}

// AdvancedOptions mirrors the reference's advanced per-field overrides
// over the level-derived compressionParams. Zero fields mean "keep the
// level preset's value"; non-zero fields are clamped only as far as
// resolveCompressionParams describes.
type AdvancedOptions struct {
	WindowLog    int
	ChainLog     int
	HashLog      int
	SearchLog    int
	MinMatch     int
	TargetLength int
	Strategy     Strategy
}

// DefaultCompressOptions returns options for level 3, the reference's
// default level, with no checksum and no dictionary id.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{Level: 3}
}

// DecompressOptions configures one Decompress call or one Decoder.
type DecompressOptions struct {
	// MaxWindowSize caps the window a frame may declare; frames
	// requesting a larger window fail with ErrFrameParameterUnsupported.
	// Zero means maxWindowLogDefault (27, i.e. 128 MiB).
	MaxWindowSize uint64

	// Dictionary, if non-nil, is consulted when the frame declares a
	// dictionary id.
	Dictionary *Dictionary
}

// DefaultDecompressOptions returns options with the default window cap
// and no dictionary.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}

const (
	maxWindowLogDefault = 27
	minWindowLog        = 10
	maxWindowLogLimit    = 31
)

func clampWindowLog(v int) int {
	switch {
	case v < minWindowLog:
		return minWindowLog
	case v > maxWindowLogLimit:
		return maxWindowLogLimit
	default:
		return v
	}
}
