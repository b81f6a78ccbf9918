// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package huff0

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/zstdgo/zstd/internal/bitio"
)

func TestBuildCodeLengthsRespectsMaxBits(t *testing.T) {
	freqs := make([]uint32, 256)
	freqs['a'] = 1000
	freqs['b'] = 1
	freqs['c'] = 1
	freqs['d'] = 1
	freqs['e'] = 1

	lengths, err := BuildCodeLengths(freqs, 4)
	if err != nil {
		t.Fatalf("BuildCodeLengths: %v", err)
	}
	for s, l := range lengths {
		if l > 4 {
			t.Fatalf("symbol %d has length %d, exceeds maxBits", s, l)
		}
		if freqs[s] > 0 && l == 0 {
			t.Fatalf("symbol %d has nonzero freq but zero length", s)
		}
	}

	// Kraft inequality must hold exactly for a valid canonical code.
	var sum float64
	for _, l := range lengths {
		if l > 0 {
			sum += 1.0 / float64(int(1)<<l)
		}
	}
	if sum > 1.0+1e-9 {
		t.Fatalf("Kraft sum = %f, exceeds 1", sum)
	}
}

func TestBuildCodeLengthsSingleSymbol(t *testing.T) {
	freqs := make([]uint32, 256)
	freqs['x'] = 50
	lengths, err := BuildCodeLengths(freqs, 11)
	if err != nil {
		t.Fatalf("BuildCodeLengths: %v", err)
	}
	if lengths['x'] != 1 {
		t.Fatalf("single-symbol alphabet should get length 1, got %d", lengths['x'])
	}
}

func TestEncode1Decode1RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	src := make([]byte, 2000)
	freqs := make([]uint32, 256)
	alphabet := []byte("abcdefgh")
	for i := range src {
		b := alphabet[rng.Intn(len(alphabet))]
		src[i] = b
		freqs[b]++
	}

	lengths, err := BuildCodeLengths(freqs, DefaultTableLog)
	if err != nil {
		t.Fatalf("BuildCodeLengths: %v", err)
	}
	ct := BuildCTable(lengths)
	dt, err := BuildDTable(ct)
	if err != nil {
		t.Fatalf("BuildDTable: %v", err)
	}

	body := Encode1(ct, src)
	r, err := bitio.NewReader(body)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	out, err := Decode1(dt, r, len(src))
	if err != nil {
		t.Fatalf("Decode1: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("round-trip mismatch: got %d bytes, want %d", len(out), len(src))
	}
}

func TestEncode4Decode4RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := make([]byte, 4001) // not a multiple of 4, exercises the remainder segment
	freqs := make([]uint32, 256)
	alphabet := []byte("ZYXWVUTSRQ")
	for i := range src {
		b := alphabet[rng.Intn(len(alphabet))]
		src[i] = b
		freqs[b]++
	}

	ct, err := BuildFromFrequencies(freqs, DefaultTableLog)
	if err != nil {
		t.Fatalf("BuildFromFrequencies: %v", err)
	}
	dt, err := BuildDTable(ct)
	if err != nil {
		t.Fatalf("BuildDTable: %v", err)
	}

	payload := Encode4(ct, src)
	out, err := Decode4(dt, payload, len(src))
	if err != nil {
		t.Fatalf("Decode4: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("round-trip mismatch: got %d bytes, want %d", len(out), len(src))
	}
}

func TestWriteReadWeightsRoundTrip(t *testing.T) {
	lengths := make([]uint8, MaxSymbols)
	lengths['a'] = 2
	lengths['b'] = 3
	lengths['c'] = 3
	lengths['z'] = 1

	wire := WriteWeights(lengths)
	got, consumed, err := ReadWeights(wire)
	if err != nil {
		t.Fatalf("ReadWeights: %v", err)
	}
	if consumed != len(wire) {
		t.Fatalf("consumed = %d, want %d", consumed, len(wire))
	}
	for s, l := range lengths {
		if got[s] != l {
			t.Fatalf("symbol %d: got length %d, want %d", s, got[s], l)
		}
	}
}
