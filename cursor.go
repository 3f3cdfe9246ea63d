package pcodedmp

import (
	"encoding/binary"
	"errors"
)

// ErrOutsideBoundary is returned when a read would run past the end of the
// buffer it addresses, mirroring the teacher's ErrOutsideBoundary in
// helper.go: every bounds failure in this package funnels through one
// sentinel so callers can tell "malformed data" apart from other errors.
var ErrOutsideBoundary = errors.New("pcodedmp: reading data outside boundary")

// endian picks the byte order a cursor reads words and dwords with. The
// dir stream is always little-endian (spec.md §3 invariants); everything
// else is decided per-project from a heuristic byte (spec.md §4.3 step 3).
type endian int

const (
	littleEndian endian = iota
	bigEndian
)

func (e endian) order() binary.ByteOrder {
	if e == bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// cursor is the byte-cursor primitive of spec.md §4.1: a (buffer, offset)
// pair with advancing reads and length-prefixed-array skips.
type cursor struct {
	buf []byte
	off uint32
	end endian
}

func newCursor(buf []byte, end endian) *cursor {
	return &cursor{buf: buf, end: end}
}

func (c *cursor) offset() uint32 { return c.off }

func (c *cursor) seek(off uint32) { c.off = off }

func (c *cursor) advance(n uint32) { c.off += n }

func (c *cursor) remaining() int {
	r := int64(len(c.buf)) - int64(c.off)
	if r < 0 {
		return 0
	}
	return int(r)
}

// readU16 reads a 16-bit value at the current offset and advances by 2.
func (c *cursor) readU16() (uint16, error) {
	if c.off+2 > uint32(len(c.buf)) {
		return 0, ErrOutsideBoundary
	}
	v := c.end.order().Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

// readU32 reads a 32-bit value at the current offset and advances by 4.
func (c *cursor) readU32() (uint32, error) {
	if c.off+4 > uint32(len(c.buf)) {
		return 0, ErrOutsideBoundary
	}
	v := c.end.order().Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

// readVar reads either a u16 or u32 (per isDWord), matching the original
// tool's getVar helper which the operand decoders repeatedly specialize on.
func (c *cursor) readVar(isDWord bool) (uint32, error) {
	if isDWord {
		return c.readU32()
	}
	v, err := c.readU16()
	return uint32(v), err
}

// readBytes reads n raw bytes and advances past them.
func (c *cursor) readBytes(n uint32) ([]byte, error) {
	if c.off+n > uint32(len(c.buf)) || c.off+n < c.off {
		return nil, ErrOutsideBoundary
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// skipArray reads a length (u16 or u32 per lengthIsU32) and advances past
// length*elementSize further bytes. When treatAllOnesAsAbsent is set and
// the length reads as all-ones (0xFFFF or 0xFFFFFFFF), only the length
// field itself is skipped — spec.md §4.1 skip_array.
func (c *cursor) skipArray(lengthIsU32 bool, elementSize uint32, treatAllOnesAsAbsent bool) error {
	length, err := c.readVar(lengthIsU32)
	if err != nil {
		return err
	}
	allOnes := uint32(0xFFFF)
	if lengthIsU32 {
		allOnes = 0xFFFFFFFF
	}
	if treatAllOnesAsAbsent && length == allOnes {
		return nil
	}
	c.off += length * elementSize
	return nil
}

// peekU16LE reads a little-endian u16 at an absolute offset without
// advancing the cursor. Used for format discrimination (spec.md §4.1).
func peekU16LE(buf []byte, at uint32) (uint16, error) {
	if at+2 > uint32(len(buf)) {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint16(buf[at:]), nil
}

// readU16At / readU32At read at an absolute offset, in the given byte
// order, without touching any cursor — used by the auxiliary-table
// decoders which are handed raw offsets into tables that don't own a
// cursor of their own.
func readU16At(buf []byte, at uint32, end endian) (uint16, error) {
	if at+2 > uint32(len(buf)) {
		return 0, ErrOutsideBoundary
	}
	return end.order().Uint16(buf[at:]), nil
}

func readU32At(buf []byte, at uint32, end endian) (uint32, error) {
	if at+4 > uint32(len(buf)) {
		return 0, ErrOutsideBoundary
	}
	return end.order().Uint32(buf[at:]), nil
}

func readU8At(buf []byte, at uint32) (uint8, error) {
	if at+1 > uint32(len(buf)) {
		return 0, ErrOutsideBoundary
	}
	return buf[at], nil
}

// typeAndLength reads the packed (type, length) byte pair used throughout
// the identifier table, swapping byte order based on endianness exactly as
// spec.md §4.3 step 11 describes.
func (c *cursor) typeAndLength() (typ byte, length byte, err error) {
	if c.off+2 > uint32(len(c.buf)) {
		return 0, 0, ErrOutsideBoundary
	}
	if c.end == bigEndian {
		typ, length = c.buf[c.off], c.buf[c.off+1]
	} else {
		typ, length = c.buf[c.off+1], c.buf[c.off]
	}
	return typ, length, nil
}
