package pcodedmp

import "testing"

func TestResolveIDReservedKeyword(t *testing.T) {
	// idCode 4 -> code 2 ("Abs"), well below the VBA7 0xC3 shift point.
	got := resolveID(4, nil, vbaVersion6, false)
	if got != "Abs" {
		t.Errorf("resolveID(4) = %q, want %q", got, "Abs")
	}
}

func TestResolveIDIdentifierTableEntry(t *testing.T) {
	identifiers := []string{"Foo", "Bar", "Baz"}
	// code = 0x100 + 1 -> identifiers[1] = "Bar" (below VBA7, no shift).
	got := resolveID(uint16(0x101)<<1, identifiers, vbaVersion6, false)
	if got != "Bar" {
		t.Errorf("resolveID = %q, want %q", got, "Bar")
	}
}

func TestResolveIDOutOfRangeFallsBackToPlaceholder(t *testing.T) {
	got := resolveID(0xFFFE, nil, vbaVersion6, false)
	want := "id_FFFE"
	if got != want {
		t.Errorf("resolveID(0xFFFE) = %q, want %q", got, want)
	}
}

func TestSuffixForType(t *testing.T) {
	if got := suffixForType(2); got != "%" {
		t.Errorf("suffixForType(2) = %q, want %%", got)
	}
	if got := suffixForType(99); got != "" {
		t.Errorf("suffixForType(99) = %q, want empty", got)
	}
}
