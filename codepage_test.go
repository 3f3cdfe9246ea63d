package pcodedmp

import "testing"

func TestNewDecoderKnownCodepage(t *testing.T) {
	dec := newDecoder(1252)
	got := dec.decode([]byte("hello"))
	if got != "hello" {
		t.Errorf("decode = %q, want %q", got, "hello")
	}
}

func TestNewDecoderUnknownCodepageFallsBackToLatin1(t *testing.T) {
	dec := newDecoder(9999)
	got := dec.decode([]byte{0xE9}) // Latin-1 'é'
	if got != "é" {
		t.Errorf("decode = %q, want %q", got, "é")
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	b := []byte{'M', 0, 'o', 0, 'd', 0}
	got := decodeUTF16LE(b)
	if got != "Mod" {
		t.Errorf("decodeUTF16LE = %q, want %q", got, "Mod")
	}
}

func TestDecodeLatin1(t *testing.T) {
	got := decodeLatin1([]byte{0xE9})
	if got != "é" {
		t.Errorf("decodeLatin1 = %q, want %q", got, "é")
	}
}
