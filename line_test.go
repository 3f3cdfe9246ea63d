package pcodedmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestDisassembleLineEmptyLine(t *testing.T) {
	var out bytes.Buffer
	err := disassembleLine(&out, []byte{}, 0, 0, littleEndian, vbaVersion7, true, nil, auxTables{}, nil, false, 0)
	if err != nil {
		t.Fatalf("disassembleLine: %v", err)
	}
	if out.String() != "Line #0:\n" {
		t.Errorf("output = %q, want %q", out.String(), "Line #0:\n")
	}
}

func TestDisassembleLineUnrecognizedOpcode(t *testing.T) {
	// Opcode 0x03FF never translates to a valid table index in any
	// version, so the line bails out with an unrecognizedOpcodeError.
	moduleData := make([]byte, 2)
	binary.LittleEndian.PutUint16(moduleData, 0x03FF)

	var out bytes.Buffer
	err := disassembleLine(&out, moduleData, 0, 2, littleEndian, vbaVersion7, true, nil, auxTables{}, nil, false, 0)
	var uoe *unrecognizedOpcodeError
	if !errors.As(err, &uoe) {
		t.Fatalf("err = %v, want *unrecognizedOpcodeError", err)
	}
}

func TestDisassembleLineSimpleOpcodeNoOperands(t *testing.T) {
	// Opcode 0 ("Imp") has no operands and no variable-length tail.
	moduleData := make([]byte, 2)
	binary.LittleEndian.PutUint16(moduleData, 0)

	var out bytes.Buffer
	err := disassembleLine(&out, moduleData, 0, 2, littleEndian, vbaVersion7, true, nil, auxTables{}, nil, false, 3)
	if err != nil {
		t.Fatalf("disassembleLine: %v", err)
	}
	want := "Line #3:\n\tImp \n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
