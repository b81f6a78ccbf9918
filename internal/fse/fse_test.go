// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package fse

import (
	"math/rand"
	"testing"

	"github.com/zstdgo/zstd/internal/bitio"
)

func TestNormalizeCountsSumsToTableSize(t *testing.T) {
	cases := []struct {
		name     string
		counts   []uint32
		tableLog uint
	}{
		{"uniform", []uint32{10, 10, 10, 10}, 6},
		{"skewed", []uint32{1000, 1, 1, 5}, 6},
		{"single-symbol", []uint32{42}, 5},
		{"many-symbols", func() []uint32 {
			c := make([]uint32, 64)
			for i := range c {
				c[i] = uint32(i + 1)
			}
			return c
		}(), 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			norm := NormalizeCounts(tc.counts, tc.tableLog)
			if got, want := sumNorm(norm), int32(1)<<tc.tableLog; got != want {
				t.Fatalf("sumNorm = %d, want %d", got, want)
			}
			for i, c := range tc.counts {
				if c > 0 && norm[i] == 0 {
					t.Fatalf("symbol %d had nonzero count but normalized to 0", i)
				}
			}
		})
	}
}

// encodeSymbols and decodeSymbols mirror encodeFSEStream/decodeFSEStream
// in the root package: encode back-to-front via InitLast/Encode/Flush,
// decode front-to-back via InitDState/DecodeSymbol, so the decoded
// sequence reproduces the original forward order.
func encodeSymbols(ct *CTable, syms []byte) []byte {
	w := bitio.NewWriter()
	st := ct.InitLast(syms[len(syms)-1])
	for i := len(syms) - 2; i >= 0; i-- {
		st.Encode(w, syms[i])
	}
	st.Flush(w)
	return w.Close()
}

func decodeSymbols(dt *DTable, body []byte, n int) ([]byte, error) {
	r, err := bitio.NewReader(body)
	if err != nil {
		return nil, err
	}
	st := dt.InitDState(r)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = st.DecodeSymbol(r)
	}
	return out, nil
}

func TestCTableDTableRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabets := []int{2, 5, 16, 36}
	for _, alphabet := range alphabets {
		counts := make([]uint32, alphabet)
		for i := range counts {
			counts[i] = uint32(rng.Intn(200) + 1)
		}
		tableLog := uint(8)
		norm := NormalizeCounts(counts, tableLog)

		ct, err := BuildCTable(norm, tableLog)
		if err != nil {
			t.Fatalf("BuildCTable: %v", err)
		}
		dt, err := BuildDTable(norm, tableLog)
		if err != nil {
			t.Fatalf("BuildDTable: %v", err)
		}

		syms := make([]byte, 500)
		for i := range syms {
			syms[i] = byte(rng.Intn(alphabet))
		}

		body := encodeSymbols(ct, syms)
		out, err := decodeSymbols(dt, body, len(syms))
		if err != nil {
			t.Fatalf("decodeSymbols: %v", err)
		}
		for i := range syms {
			if out[i] != syms[i] {
				t.Fatalf("alphabet=%d: symbol %d mismatch: got %d want %d", alphabet, i, out[i], syms[i])
			}
		}
	}
}

func TestBuildTableRejectsBadDistribution(t *testing.T) {
	norm := []int16{1, 1, 1}
	if _, err := BuildCTable(norm, 8); err == nil {
		t.Fatal("BuildCTable accepted a distribution not summing to tableSize")
	}
	if _, err := BuildDTable(norm, 8); err == nil {
		t.Fatal("BuildDTable accepted a distribution not summing to tableSize")
	}
}

func TestPredefinedTablesDecode(t *testing.T) {
	tables := []struct {
		name string
		dt   *DTable
	}{
		{"ll", DefaultLLDTable()},
		{"of", DefaultOFDTable()},
		{"ml", DefaultMLDTable()},
	}
	for _, tc := range tables {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dt == nil {
				t.Fatal("default table not built")
			}
		})
	}
}

func TestWriteReadNCountRoundTrip(t *testing.T) {
	norm := NormalizeCounts([]uint32{5, 1, 20, 3, 0, 9}, 6)
	wire := WriteNCount(norm)
	got, consumed, err := ReadNCount(wire)
	if err != nil {
		t.Fatalf("ReadNCount: %v", err)
	}
	if consumed != len(wire) {
		t.Fatalf("consumed = %d, want %d", consumed, len(wire))
	}
	if len(got) != len(norm) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(norm))
	}
	for i := range norm {
		if got[i] != norm[i] {
			t.Fatalf("symbol %d: got %d want %d", i, got[i], norm[i])
		}
	}
}
