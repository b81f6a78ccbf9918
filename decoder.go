// SPDX-License-Identifier: MIT
// Copyright (c) 2026 zstdgo authors

package zstd

// Decoder holds decompression options (window-size ceiling,
// dictionary) reused across Decompress calls.
type Decoder struct {
	opts DecompressOptions
}

// NewDecoder builds a Decoder from opts (DefaultDecompressOptions() if
// nil).
func NewDecoder(opts *DecompressOptions) (*Decoder, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}
	return &Decoder{opts: *opts}, nil
}

// SetDictionary attaches a digested dictionary to future Decompress
// calls on this Decoder.
func (d *Decoder) SetDictionary(dict *Dictionary) { d.opts.Dictionary = dict }

// Decompress appends the decompressed content of src to dst. src may
// contain multiple concatenated frames (ordinary and skippable, in any
// order); each is decoded in turn and its content appended.
func (d *Decoder) Decompress(dst, src []byte) ([]byte, error) {
	out := dst
	pos := 0
	for pos < len(src) {
		if n, total, ok := isSkippableFrame(src[pos:]); ok {
			_ = n
			pos += total
			continue
		}
		content, consumed, err := decodeFrame(src[pos:], &d.opts)
		if err != nil {
			return nil, err
		}
		out = append(out, content...)
		pos += consumed
	}
	return out, nil
}

// Decompress is the package-level single-shot convenience form of
// Decoder.Decompress.
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	d, err := NewDecoder(opts)
	if err != nil {
		return nil, err
	}
	return d.Decompress(nil, src)
}
