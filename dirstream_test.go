package pcodedmp

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// record encodes one dir-stream tag-length-value record: tag, declared
// length, a reserved/high-word field (always zero in these tests), then
// the raw value bytes.
func record(tag, length uint16, value []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, tag)
	binary.Write(&buf, binary.LittleEndian, length)
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	buf.Write(value)
	return buf.Bytes()
}

func TestParseDirStreamCodepage(t *testing.T) {
	var data []byte
	data = append(data, record(3, 2, []byte{0xE4, 0x04})...) // 1252, little-endian
	info := parseDirStream(data)
	if info.codepage != 1252 {
		t.Errorf("codepage = %d, want 1252", info.codepage)
	}
}

func TestParseDirStreamVersionLengthOverride(t *testing.T) {
	// Tag 9 (PROJ_VERSION) always occupies 6 bytes on disk regardless of
	// its declared length field.
	var data []byte
	data = append(data, record(9, 4, []byte{1, 2, 3, 4, 5, 6})...)
	info := parseDirStream(data)
	if len(info.records) != 1 {
		t.Fatalf("records = %d, want 1", len(info.records))
	}
	if len(info.records[0].value) != 6 {
		t.Errorf("PROJ_VERSION value length = %d, want 6", len(info.records[0].value))
	}
}

func TestParseDirStreamModuleNames(t *testing.T) {
	name := []byte{'M', 0, 'o', 0, 'd', 0, '1', 0}
	var data []byte
	data = append(data, record(50, uint16(len(name)), name)...)
	info := parseDirStream(data)
	if len(info.moduleNames) != 1 || info.moduleNames[0] != "Mod1" {
		t.Errorf("moduleNames = %v, want [Mod1]", info.moduleNames)
	}
}

func TestParseDirStreamSysKind64bit(t *testing.T) {
	var data []byte
	data = append(data, record(1, 4, []byte{3, 0, 0, 0})...)
	info := parseDirStream(data)
	if !info.is64bit {
		t.Error("expected PROJ_SYSKIND value 3 to mark the project 64-bit")
	}
}

func TestParseDirStreamUnknownTag(t *testing.T) {
	var data []byte
	data = append(data, record(9999, 2, []byte{1, 2})...)
	info := parseDirStream(data)
	if len(info.records) != 1 || info.records[0].name != "UNKNOWN" {
		t.Errorf("expected unknown tag to render as UNKNOWN, got %+v", info.records)
	}
}

func TestParseDirStreamDefaultCodepage(t *testing.T) {
	info := parseDirStream(nil)
	if info.codepage != 1252 {
		t.Errorf("default codepage = %d, want 1252", info.codepage)
	}
}
