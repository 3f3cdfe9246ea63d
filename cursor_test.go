package pcodedmp

import "testing"

func TestCursorReadU16LittleEndian(t *testing.T) {
	c := newCursor([]byte{0x34, 0x12}, littleEndian)
	got, err := c.readU16()
	if err != nil {
		t.Fatalf("readU16: %v", err)
	}
	if got != 0x1234 {
		t.Errorf("readU16 = 0x%04X, want 0x1234", got)
	}
	if c.offset() != 2 {
		t.Errorf("offset = %d, want 2", c.offset())
	}
}

func TestCursorReadU32BigEndian(t *testing.T) {
	c := newCursor([]byte{0x00, 0x00, 0x00, 0x01}, bigEndian)
	got, err := c.readU32()
	if err != nil {
		t.Fatalf("readU32: %v", err)
	}
	if got != 1 {
		t.Errorf("readU32 = %d, want 1", got)
	}
}

func TestCursorReadPastEndFails(t *testing.T) {
	c := newCursor([]byte{0x01}, littleEndian)
	if _, err := c.readU16(); err != ErrOutsideBoundary {
		t.Fatalf("err = %v, want ErrOutsideBoundary", err)
	}
}

func TestCursorSkipArrayAllOnesAbsent(t *testing.T) {
	c := newCursor([]byte{0xFF, 0xFF, 0xAA, 0xAA}, littleEndian)
	if err := c.skipArray(false, 4, true); err != nil {
		t.Fatalf("skipArray: %v", err)
	}
	if c.offset() != 2 {
		t.Errorf("offset after all-ones skip = %d, want 2 (length field only)", c.offset())
	}
}

func TestCursorSkipArrayNormal(t *testing.T) {
	c := newCursor([]byte{0x02, 0x00, 0, 0, 0, 0, 0, 0}, littleEndian)
	if err := c.skipArray(false, 3, true); err != nil {
		t.Fatalf("skipArray: %v", err)
	}
	if c.offset() != 8 {
		t.Errorf("offset = %d, want 8 (2 length bytes + 2*3 element bytes)", c.offset())
	}
}

func TestTypeAndLengthByteOrder(t *testing.T) {
	le := newCursor([]byte{0x05, 0x80}, littleEndian)
	typ, length, err := le.typeAndLength()
	if err != nil {
		t.Fatalf("typeAndLength: %v", err)
	}
	if typ != 0x80 || length != 0x05 {
		t.Errorf("little-endian typeAndLength = (%#x, %#x), want (0x80, 0x05)", typ, length)
	}

	be := newCursor([]byte{0x80, 0x05}, bigEndian)
	typ, length, err = be.typeAndLength()
	if err != nil {
		t.Fatalf("typeAndLength: %v", err)
	}
	if typ != 0x80 || length != 0x05 {
		t.Errorf("big-endian typeAndLength = (%#x, %#x), want (0x80, 0x05)", typ, length)
	}
}
