// Package osubin implements the primitive binary layer shared by the
// osu! database formats: little-endian fixed-width numbers, booleans,
// ULEB128 variable-width integers, presence-tagged UTF-8 strings, and
// tick timestamps with their inverted-polarity optional form.
//
// Reader and Writer wrap the parse package's sticky-error readers: a
// method returns true when it failed, and every later call on the
// same value is a no-op returning true, so a run of reads or writes
// can be checked once at the end with Err.
package osubin

import (
	"io"

	"github.com/anaminus/parse"
	"github.com/osukit/osufile"
)

// stringPresent is the tag byte written in front of a present string.
// When decoding, any nonzero tag counts as present.
const stringPresent = 0x0b

// Reader decodes osu! primitives from a byte stream.
type Reader struct {
	r *parse.BinaryReader
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: parse.NewBinaryReader(r)}
}

// N returns the number of bytes consumed so far.
func (b *Reader) N() int64 {
	return b.r.N()
}

// Err returns the first error that occurred while reading, if any.
func (b *Reader) Err() error {
	return b.r.Err()
}

// Add adjusts the byte count by n, and sets the error state if err is
// non-nil. Returns whether the reader has failed.
func (b *Reader) Add(n int64, err error) bool {
	return b.r.Add(n, err)
}

// End returns the number of bytes consumed and the error state.
func (b *Reader) End() (int64, error) {
	return b.r.End()
}

// Byte reads one byte.
func (b *Reader) Byte(v *uint8) bool {
	return b.r.Number(v)
}

// Short reads a 16-bit unsigned integer.
func (b *Reader) Short(v *uint16) bool {
	return b.r.Number(v)
}

// Int reads a 32-bit unsigned integer.
func (b *Reader) Int(v *uint32) bool {
	return b.r.Number(v)
}

// Long reads a 64-bit unsigned integer.
func (b *Reader) Long(v *uint64) bool {
	return b.r.Number(v)
}

// Single reads a 32-bit IEEE float.
func (b *Reader) Single(v *float32) bool {
	return b.r.Number(v)
}

// Double reads a 64-bit IEEE float.
func (b *Reader) Double(v *float64) bool {
	return b.r.Number(v)
}

// Bytes fills p from the stream.
func (b *Reader) Bytes(p []byte) bool {
	return b.r.Bytes(p)
}

// Bool reads a one-byte boolean. Zero is false, any nonzero value is
// true.
func (b *Reader) Bool(v *bool) bool {
	var c uint8
	if b.r.Number(&c) {
		return true
	}
	*v = c != 0
	return false
}

// ULEB128 reads a variable-width unsigned integer.
func (b *Reader) ULEB128(v *uint64) bool {
	var value uint64
	var shift uint
	for {
		var c uint8
		if b.r.Number(&c) {
			return true
		}
		if shift >= 64 || (shift == 63 && c > 1) {
			return b.r.Add(0, errULEB128Overflow)
		}
		value |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			break
		}
		shift += 7
	}
	*v = value
	return false
}

// String reads a presence-tagged string. An absent string decodes to
// nil; a present one to a pointer to its UTF-8 contents.
func (b *Reader) String(v **string) bool {
	var tag uint8
	if b.r.Number(&tag) {
		return true
	}
	if tag == 0 {
		*v = nil
		return false
	}
	var length uint64
	if b.ULEB128(&length) {
		return true
	}
	s := make([]byte, length)
	if b.r.Bytes(s) {
		return true
	}
	str := string(s)
	*v = &str
	return false
}

// Ticks reads a 64-bit tick timestamp.
func (b *Reader) Ticks(v *osufile.Ticks) bool {
	return b.r.Number((*uint64)(v))
}

// TicksOption reads a boolean presence flag followed by a tick
// timestamp. The flag has inverted polarity: true means the value is
// absent and the timestamp bytes are a discarded placeholder.
func (b *Reader) TicksOption(v **osufile.Ticks) bool {
	var absent bool
	if b.Bool(&absent) {
		return true
	}
	var t osufile.Ticks
	if b.Ticks(&t) {
		return true
	}
	if absent {
		*v = nil
	} else {
		*v = &t
	}
	return false
}

// Writer encodes osu! primitives to a byte stream.
type Writer struct {
	w *parse.BinaryWriter
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: parse.NewBinaryWriter(w)}
}

// N returns the number of bytes written so far.
func (b *Writer) N() int64 {
	return b.w.N()
}

// Err returns the first error that occurred while writing, if any.
func (b *Writer) Err() error {
	return b.w.Err()
}

// Add adjusts the byte count by n, and sets the error state if err is
// non-nil. Returns whether the writer has failed.
func (b *Writer) Add(n int64, err error) bool {
	return b.w.Add(n, err)
}

// End returns the number of bytes written and the error state.
func (b *Writer) End() (int64, error) {
	return b.w.End()
}

// Byte writes one byte.
func (b *Writer) Byte(v uint8) bool {
	return b.w.Number(v)
}

// Short writes a 16-bit unsigned integer.
func (b *Writer) Short(v uint16) bool {
	return b.w.Number(v)
}

// Int writes a 32-bit unsigned integer.
func (b *Writer) Int(v uint32) bool {
	return b.w.Number(v)
}

// Long writes a 64-bit unsigned integer.
func (b *Writer) Long(v uint64) bool {
	return b.w.Number(v)
}

// Single writes a 32-bit IEEE float.
func (b *Writer) Single(v float32) bool {
	return b.w.Number(v)
}

// Double writes a 64-bit IEEE float.
func (b *Writer) Double(v float64) bool {
	return b.w.Number(v)
}

// Bytes writes p to the stream.
func (b *Writer) Bytes(p []byte) bool {
	return b.w.Bytes(p)
}

// Bool writes a one-byte boolean as 0 or 1.
func (b *Writer) Bool(v bool) bool {
	var c uint8
	if v {
		c = 1
	}
	return b.w.Number(c)
}

// ULEB128 writes a variable-width unsigned integer.
func (b *Writer) ULEB128(v uint64) bool {
	for {
		c := uint8(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		if b.w.Number(c) {
			return true
		}
		if v == 0 {
			return false
		}
	}
}

// String writes a presence-tagged string. nil encodes as the single
// absent tag; a present string as the present tag, a ULEB128 length,
// and the UTF-8 bytes.
func (b *Writer) String(v *string) bool {
	if v == nil {
		return b.w.Number(uint8(0))
	}
	if b.w.Number(uint8(stringPresent)) {
		return true
	}
	if b.ULEB128(uint64(len(*v))) {
		return true
	}
	return b.w.Bytes([]byte(*v))
}

// Ticks writes a 64-bit tick timestamp.
func (b *Writer) Ticks(v osufile.Ticks) bool {
	return b.w.Number(uint64(v))
}

// TicksOption writes a boolean presence flag followed by a tick
// timestamp. The flag has inverted polarity: nil is written as a true
// flag and a zero placeholder.
func (b *Writer) TicksOption(v *osufile.Ticks) bool {
	if b.Bool(v == nil) {
		return true
	}
	if v == nil {
		return b.Ticks(0)
	}
	return b.Ticks(*v)
}
