// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

import (
	"bytes"
	"fmt"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, zstd test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "larger-than-block", data: bigText()},
	}
}

// bigText synthesizes input spanning several blockSizeMax chunks, with
// enough repetition across chunk boundaries to exercise cross-block
// window history.
func bigText() []byte {
	var b bytes.Buffer
	phrase := []byte("the quick brown fox jumps over the lazy dog, again and again. ")
	for b.Len() < 3*blockSizeMax {
		b.Write(phrase)
	}
	return b.Bytes()
}

func TestCompressDecompressRoundTripAcrossStrategies(t *testing.T) {
	levels := []int{1, 3, 6, 9, 12, 15, 19, 22}

	for _, in := range testInputSet() {
		for _, level := range levels {
			name := fmt.Sprintf("%s/level-%d", in.name, level)
			t.Run(name, func(t *testing.T) {
				cmp, err := Compress(in.data, &CompressOptions{Level: level, Checksum: true})
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				out, err := Decompress(cmp, DefaultDecompressOptions())
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !bytes.Equal(out, in.data) {
					t.Fatalf("round-trip mismatch: got len=%d want len=%d", len(out), len(in.data))
				}
			})
		}
	}
}

func TestEncoderDecoderReuseAcrossCalls(t *testing.T) {
	enc, err := NewEncoder(&CompressOptions{Level: 9})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec, err := NewDecoder(nil)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	for _, in := range testInputSet() {
		cmp, err := enc.Compress(nil, in.data)
		if err != nil {
			t.Fatalf("%s: Compress: %v", in.name, err)
		}
		out, err := dec.Decompress(nil, cmp)
		if err != nil {
			t.Fatalf("%s: Decompress: %v", in.name, err)
		}
		if !bytes.Equal(out, in.data) {
			t.Fatalf("%s: round-trip mismatch", in.name)
		}
	}
}

func TestDecompressRejectsBadMagic(t *testing.T) {
	_, err := Decompress([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil)
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	ce, ok := err.(*CodecError)
	if !ok || ce.Kind != ErrKindPrefixUnknown {
		t.Fatalf("got %v, want ErrKindPrefixUnknown", err)
	}
}

func TestDecompressRejectsWindowTooLarge(t *testing.T) {
	// A single-segment frame's window is its content size, so the input
	// has to be larger than the 256-byte cap below.
	cmp, err := Compress(bytes.Repeat([]byte("hello"), 100), &CompressOptions{Level: 19})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	_, err = Decompress(cmp, &DecompressOptions{MaxWindowSize: 1 << 8})
	if err == nil {
		t.Fatal("expected error for oversized window")
	}
	ce, ok := err.(*CodecError)
	if !ok || ce.Kind != ErrKindFrameParameterUnsupported {
		t.Fatalf("got %v, want ErrKindFrameParameterUnsupported", err)
	}
}

func TestDecompressDetectsChecksumMismatch(t *testing.T) {
	cmp, err := Compress([]byte("some content to protect"), &CompressOptions{Level: 3, Checksum: true})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	corrupt := append([]byte(nil), cmp...)
	corrupt[len(corrupt)-1] ^= 0xFF
	_, err = Decompress(corrupt, nil)
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestConcatenatedFramesWithSkippable(t *testing.T) {
	a, err := Compress([]byte("frame one content"), &CompressOptions{Level: 3})
	if err != nil {
		t.Fatalf("Compress a: %v", err)
	}
	b, err := Compress([]byte("frame two content, different"), &CompressOptions{Level: 6})
	if err != nil {
		t.Fatalf("Compress b: %v", err)
	}
	skippable := encodeSkippableFrame(0, []byte("metadata nobody should interpret"))

	var blob bytes.Buffer
	blob.Write(skippable)
	blob.Write(a)
	blob.Write(skippable)
	blob.Write(b)

	out, err := Decompress(blob.Bytes(), nil)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	want := append([]byte("frame one content"), []byte("frame two content, different")...)
	if !bytes.Equal(out, want) {
		t.Fatalf("concatenation mismatch: got %q want %q", out, want)
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	dict := NewDictionaryFromSamples(42, []byte("common preamble shared across many small messages "))
	wire := dict.Encode()
	decoded, err := DecodeDictionary(wire)
	if err != nil {
		t.Fatalf("DecodeDictionary: %v", err)
	}
	if decoded.ID != dict.ID {
		t.Fatalf("ID = %d, want %d", decoded.ID, dict.ID)
	}
	if !bytes.Equal(decoded.Content, dict.Content) {
		t.Fatal("content mismatch after dictionary round-trip")
	}

	enc, err := NewEncoder(&CompressOptions{Level: 6})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	enc.SetDictionary(decoded)
	msg := []byte("common preamble shared across many small messages plus a bit more")
	cmp, err := enc.Compress(nil, msg)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	dec, err := NewDecoder(&DecompressOptions{Dictionary: decoded})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	out, err := dec.Decompress(nil, cmp)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, msg) {
		t.Fatalf("dictionary round-trip mismatch: got %q want %q", out, msg)
	}
}

func TestDictionaryMismatchRejected(t *testing.T) {
	dictA := NewDictionaryFromSamples(1, []byte("sample a"))
	dictB := NewDictionaryFromSamples(2, []byte("sample b"))

	enc, err := NewEncoder(&CompressOptions{Level: 3})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	enc.SetDictionary(dictA)
	cmp, err := enc.Compress(nil, []byte("payload"))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	dec, err := NewDecoder(&DecompressOptions{Dictionary: dictB})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	_, err = dec.Decompress(nil, cmp)
	if err == nil {
		t.Fatal("expected dictionary mismatch error")
	}
	ce, ok := err.(*CodecError)
	if !ok || ce.Kind != ErrKindDictionaryWrong {
		t.Fatalf("got %v, want ErrKindDictionaryWrong", err)
	}
}

func TestCompressParallelMatchesSerialDecompression(t *testing.T) {
	data := bytes.Repeat([]byte("parallel compression test payload, "), 50000)
	cmp, err := CompressParallel(data, &CompressOptions{Level: 6}, 4)
	if err != nil {
		t.Fatalf("CompressParallel: %v", err)
	}
	out, err := Decompress(cmp, nil)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("parallel round-trip mismatch")
	}
}

func TestGetFrameContentSize(t *testing.T) {
	data := []byte("content size oracle test payload")
	cmp, err := Compress(data, &CompressOptions{Level: 3})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if got := GetFrameContentSize(cmp); got != uint64(len(data)) {
		t.Fatalf("GetFrameContentSize = %d, want %d", got, len(data))
	}
	if got := GetFrameContentSize([]byte{0, 1, 2, 3}); got != FrameContentSizeError {
		t.Fatalf("GetFrameContentSize on garbage = %d, want FrameContentSizeError", got)
	}
}

func TestCompressParallelEmptyInput(t *testing.T) {
	cmp, err := CompressParallel(nil, nil, 0)
	if err != nil {
		t.Fatalf("CompressParallel: %v", err)
	}
	out, err := Decompress(cmp, nil)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(out))
	}
}
