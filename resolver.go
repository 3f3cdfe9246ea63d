package pcodedmp

import "fmt"

// resolveID maps an identifier code (as it appears inline in p-code, always
// even since the low bit is a tag bit the original format reserves) to a
// display name: either a reservedNames entry or a project identifier table
// entry, per spec.md §4.7. On any out-of-range index it falls back to a
// synthesized id_XXXX placeholder rather than failing the whole line.
func resolveID(idCode uint16, identifiers []string, ver vbaVersion, is64bit bool) string {
	orig := idCode
	code := int(idCode >> 1)

	if code >= 0x100 {
		code -= 0x100
		if ver >= vbaVersion7 {
			code -= 4
			if is64bit {
				code -= 3
			}
			if code > 0xBE {
				code--
			}
		}
		if code < 0 || code >= len(identifiers) {
			return fmt.Sprintf("id_%04X", orig)
		}
		return identifiers[code]
	}

	if ver >= vbaVersion7 && code >= 0xC3 {
		code--
	}
	if code < 0 || code >= len(reservedNames) {
		return fmt.Sprintf("id_%04X", orig)
	}
	return reservedNames[code]
}

// varTypeSuffixes are the Hungarian-style type-declaration suffixes that
// disasmName-style rendering appends after a resolved variable name,
// indexed by the opType nibble carried alongside a name operand.
var varTypeSuffixes = [...]string{
	"", "?", "%", "&", "!", "#", "@", "?", "$", "?", "?", "?", "?", "?",
}

// suffixForType returns the declared-type suffix for opType, or "" if
// opType falls outside the known table (spec.md §4.6 name operand).
func suffixForType(opType int) string {
	if opType < 0 || opType >= len(varTypeSuffixes) {
		return ""
	}
	return varTypeSuffixes[opType]
}
