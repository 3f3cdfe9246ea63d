package pcodedmp

import "testing"

func TestExtractIdentifiersBadMagicYieldsEmpty(t *testing.T) {
	data := []byte{0x00, 0x00, 0x06, 0x00}
	got := extractIdentifiers(data, MaxDefaultIdentifierCount)
	if len(got) != 0 {
		t.Errorf("got %d identifiers, want 0 for a stream with no _VBA_PROJECT magic", len(got))
	}
}

func TestExtractIdentifiersTruncatedStreamDoesNotPanic(t *testing.T) {
	// A valid magic and version but nothing else: the endianness marker at
	// offset 5 can't be read, so extraction stops with nothing collected,
	// never panicking out of extractIdentifiers.
	data := []byte{0xCC, 0x61, 0x6B, 0x00, 0x00}
	got := extractIdentifiers(data, MaxDefaultIdentifierCount)
	if got != nil {
		t.Errorf("got %v, want nil for a stream that ends before the reference table", got)
	}
}

func TestExtractIdentifiersEmptyBufferYieldsEmpty(t *testing.T) {
	got := extractIdentifiers(nil, MaxDefaultIdentifierCount)
	if len(got) != 0 {
		t.Errorf("got %d identifiers, want 0 for an empty stream", len(got))
	}
}
