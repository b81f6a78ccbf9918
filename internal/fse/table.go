// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

// Package fse implements a tANS/FSE entropy coder: build a table from
// a normalized distribution (sum = 2^accuracyLog), then encode/decode
// symbols against it.
package fse

import (
	"errors"
	"sort"
)

// ErrTable is returned when a normalized distribution or a built table
// is structurally invalid (wrong sum, table log out of range, symbol
// index out of range).
var ErrTable = errors.New("fse: invalid table")

const (
	// MinTableLog and MaxTableLog bound accuracyLog for the three
	// sequence-symbol streams.
	MinTableLog = 5
	MaxTableLog = 20
)

// NormalizeCounts scales raw symbol frequencies onto a distribution
// summing to exactly 1<<tableLog, using a largest-remainder rounding
// so every symbol with a nonzero count keeps a nonzero normalized
// count. This does not reproduce zstd's bit-exact "low probability"
// (-1 rank) encoding, but it produces a valid, decodable distribution.
func NormalizeCounts(counts []uint32, tableLog uint) []int16 {
	tableSize := int32(1) << tableLog
	norm := make([]int16, len(counts))

	var total int64
	for _, c := range counts {
		total += int64(c)
	}
	if total == 0 {
		return norm
	}

	type fraction struct {
		idx  int
		frac float64
	}
	var fracs []fraction
	remaining := tableSize
	for i, c := range counts {
		if c == 0 {
			continue
		}
		scaled := float64(c) * float64(tableSize) / float64(total)
		n := int32(scaled)
		if n < 1 {
			n = 1
		}
		norm[i] = int16(n)
		remaining -= n
		fracs = append(fracs, fraction{i, scaled - float64(n)})
	}

	sort.Slice(fracs, func(a, b int) bool { return fracs[a].frac > fracs[b].frac })
	for i := 0; remaining > 0 && len(fracs) > 0; i++ {
		norm[fracs[i%len(fracs)].idx]++
		remaining--
	}
	for remaining < 0 {
		maxIdx := -1
		for idx, v := range norm {
			if v > 1 && (maxIdx == -1 || v > norm[maxIdx]) {
				maxIdx = idx
			}
		}
		if maxIdx == -1 {
			break
		}
		norm[maxIdx]--
		remaining++
	}
	return norm
}

// tableStep is the standard FSE spreading stride: roughly 5/8 of the
// table size plus a small odd bias, chosen so repeated addition covers
// every table slot exactly once modulo tableSize.
func tableStep(tableSize uint32) uint32 {
	return (tableSize >> 1) + (tableSize >> 3) + 3
}

// spreadSymbols lays each symbol across tableSize slots proportional to
// its normalized count, using the reference's "table step" placement so
// no two symbols collide before every slot is used exactly once.
func spreadSymbols(norm []int16, tableLog uint) ([]byte, error) {
	tableSize := uint32(1) << tableLog
	tableMask := tableSize - 1
	step := tableStep(tableSize)
	symTable := make([]byte, tableSize)

	highThreshold := tableSize - 1
	for s, c := range norm {
		if c == -1 {
			if s > 255 {
				return nil, ErrTable
			}
			symTable[highThreshold] = byte(s)
			highThreshold--
		}
	}

	position := uint32(0)
	for s, c := range norm {
		if c <= 0 {
			continue
		}
		if s > 255 {
			return nil, ErrTable
		}
		for i := int16(0); i < c; i++ {
			symTable[position] = byte(s)
			position = (position + step) & tableMask
			for position > highThreshold {
				position = (position + step) & tableMask
			}
		}
	}
	return symTable, nil
}

func sumNorm(norm []int16) int32 {
	var sum int32
	for _, c := range norm {
		if c == -1 {
			sum++
		} else {
			sum += int32(c)
		}
	}
	return sum
}
