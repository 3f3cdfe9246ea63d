package pcodedmp

import "io"

// Fuzz exercises the full parse pipeline against arbitrary bytes,
// matching the teacher's one-line fuzz harness convention.
func Fuzz(data []byte) int {
	doc, err := NewBytes(data, &Options{DisasmOnly: true})
	if err != nil {
		return 0
	}
	defer doc.Close()
	if err := doc.Disassemble(io.Discard); err != nil {
		return 0
	}
	return 1
}
