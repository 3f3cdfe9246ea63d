package pcodedmp

import "testing"

func TestTranslateOpcodeVBA7_64bitIsIdentity(t *testing.T) {
	for _, raw := range []uint16{0, 1, 173, 174, 260} {
		if got := translateOpcode(raw, vbaVersion7, true); got != raw {
			t.Errorf("translateOpcode(%d, vba7, 64bit) = %d, want %d (no translation)", raw, got, raw)
		}
	}
}

func TestTranslateOpcodeVBA67_32bitBreakpoints(t *testing.T) {
	tests := []struct {
		raw  uint16
		want uint16
	}{
		{173, 173},
		{174, 175},
		{176, 178},
		{179, 182},
		{260, 263},
	}
	for _, tt := range tests {
		if got := translateOpcode(tt.raw, vbaVersion7, false); got != tt.want {
			t.Errorf("translateOpcode(%d, vba7, 32bit) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestTranslateOpcodeVBA5Breakpoints(t *testing.T) {
	tests := []struct {
		raw  uint16
		want uint16
	}{
		{68, 68},
		{69, 70},
		{112, 115},
		{171, 182},
		{252, 263},
	}
	for _, tt := range tests {
		if got := translateOpcode(tt.raw, vbaVersion5, false); got != tt.want {
			t.Errorf("translateOpcode(%d, vba5) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestLookupOpcodeOutOfRange(t *testing.T) {
	if _, _, ok := lookupOpcode(0x03FF, vbaVersion7, true); ok {
		t.Fatal("lookupOpcode: expected an out-of-range raw opcode to fail")
	}
}

func TestLookupOpcodeKnownEntry(t *testing.T) {
	def, canonical, ok := lookupOpcode(0, vbaVersion7, true)
	if !ok {
		t.Fatal("lookupOpcode(0, vba7, 64bit): expected ok")
	}
	if canonical != 0 {
		t.Errorf("canonical index = %d, want 0", canonical)
	}
	if def.mnemonic == "" {
		t.Error("expected opcode 0 to have a non-empty mnemonic")
	}
}
