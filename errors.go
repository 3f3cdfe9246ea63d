package pcodedmp

import (
	"errors"
	"fmt"
)

// Sentinel errors, mirroring the teacher's package-level error-variable
// block in helper.go. Three kinds, per spec.md §7:
//
//   - container errors: fatal to the current project, reported and skipped.
//   - parse errors inside dir/_VBA_PROJECT: partial results are kept.
//   - opcode-level errors: fatal only to the current line.
var (
	// ErrNotCompoundFile is returned when the input isn't a recognizable
	// OLE2/CFB compound document.
	ErrNotCompoundFile = errors.New("pcodedmp: not a compound document")

	// ErrNoVBAProject is returned when a document has no VBA project at all.
	ErrNoVBAProject = errors.New("pcodedmp: no VBA project found")

	// ErrBadProjectMagic describes a _VBA_PROJECT stream that doesn't start
	// with the expected 0x61CC magic word (spec.md §4.3 step 1). No function
	// in this package returns it: the identifier parser yields an empty list
	// for such a stream and Document.Disassemble records AnoBadProjectMagic.
	ErrBadProjectMagic = errors.New("pcodedmp: _VBA_PROJECT magic not found")

	// ErrUnsupportedVBA3Module names the VBA3 module layout as unsupported.
	// No code path returns it: locateModuleLayout does not tell VBA3 from
	// VBA5 and parses every _VBA_PROJECT version below 0x6B as VBA5.
	ErrUnsupportedVBA3Module = errors.New("pcodedmp: unsupported VBA3 module")

	// ErrNoPcodeMagic is returned when a module's p-code region doesn't
	// start with the expected 0xCAFE magic word.
	ErrNoPcodeMagic = errors.New("pcodedmp: p-code magic 0xCAFE not found")

	// ErrInvalidSignature is returned when a _VBA_PROJECT_SIGNATURE stream
	// parses as PKCS#7 but doesn't contain a certificate matching its own
	// signer's serial number.
	ErrInvalidSignature = errors.New("pcodedmp: signature certificate not found")
)

// unrecognizedOpcodeError renders the spec.md §4.2 diagnostic for an
// opcode that doesn't translate to any canonical table entry.
type unrecognizedOpcodeError struct {
	opcode uint16
	offset uint32
}

func (e *unrecognizedOpcodeError) Error() string {
	return formatUnrecognizedOpcode(e.opcode, e.offset)
}

func formatUnrecognizedOpcode(opcode uint16, offset uint32) string {
	return fmt.Sprintf("Unrecognized opcode 0x%04X at offset 0x%08X.", opcode, offset)
}
