package pcodedmp

import "testing"

func TestParseSignatureRejectsGarbage(t *testing.T) {
	_, err := parseSignature([]byte("not a pkcs7 blob"))
	if err == nil {
		t.Fatal("expected parseSignature to reject non-PKCS7 bytes")
	}
}

func TestParseSignatureRejectsEmpty(t *testing.T) {
	_, err := parseSignature(nil)
	if err == nil {
		t.Fatal("expected parseSignature to reject an empty stream")
	}
}
