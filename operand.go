package pcodedmp

import "fmt"

// auxTables bundles the three module-scoped auxiliary byte tables that
// operand decoders resolve dword-valued operands against (spec.md §4.5):
// the indirect table (records/variables/functions/types), the object
// table (typed-object descriptors) and the declaration table (Declare
// library names). They share one endianness, fixed for the whole module.
type auxTables struct {
	declaration []byte
	indirect    []byte
	object      []byte
	end         endian
}

// dimTypeNames is the VBA intrinsic-type table indexed by a type ID byte
// with its top three bits (flags) masked off.
var dimTypeNames = [...]string{
	"", "Null", "Integer", "Long", "Single", "Double", "Currency", "Date",
	"String", "Object", "Error", "Boolean", "Variant", "", "Decimal", "", "", "Byte",
}

// typeName resolves a packed type-ID byte to its VBA type keyword, adding
// a "Ptr" suffix when the 0x80 flag bit is set (spec.md §4.6 type_ operand).
func typeName(typeID byte) string {
	flags := typeID & 0xE0
	id := typeID &^ 0xE0
	name := ""
	if int(id) < len(dimTypeNames) {
		name = dimTypeNames[id]
	}
	if flags&0x80 != 0 {
		name += "Ptr"
	}
	return name
}

// disasmName renders a "name" operand: a resolved identifier, its
// Hungarian-notation type suffix, and mnemonic-specific special-casing for
// OnError/Resume targets (spec.md §4.6 name operand).
func disasmName(word uint16, identifiers []string, mnemonic string, opType int, ver vbaVersion, is64bit bool) string {
	name := resolveID(word, identifiers, ver, is64bit)
	suffix := suffixForType(opType)
	if opType >= len(varTypeSuffixes) {
		suffix = ""
		if opType == 32 {
			name = "[" + name + "]"
		}
	}
	switch mnemonic {
	case "OnError":
		suffix = ""
		switch opType {
		case 1:
			name = "(Resume Next)"
		case 2:
			name = "(GoTo 0)"
		}
	case "Resume":
		suffix = ""
		switch {
		case opType == 1:
			name = "(Next)"
		case opType != 0:
			name = ""
		}
	}
	return name + suffix + " "
}

var (
	impAccessModes = [...]string{"Read", "Write", "Read Write"}
	impLockModes   = [...]string{"Read Write", "Write", "Read"}
)

// getName reads a word-sized identifier code out of buf at off and
// resolves it (spec.md §4.6, the getName helper shared by several decoders).
func getName(buf []byte, identifiers []string, off uint32, end endian, ver vbaVersion, is64bit bool) (string, error) {
	word, err := readU16At(buf, off, end)
	if err != nil {
		return "", err
	}
	return resolveID(word, identifiers, ver, is64bit), nil
}

// disasmImp renders an "imp_"/bare-immediate operand. Open is special:
// its word is a bitfield of file mode/access/lock flags rather than an
// object-table reference (spec.md §4.6 imp_ operand).
func disasmImp(objectTable []byte, identifiers []string, kind operandKind, word uint16, mnemonic string, end endian, ver vbaVersion, is64bit bool) string {
	if mnemonic != "Open" {
		if kind == operandImp && uint32(len(objectTable)) >= uint32(word)+8 {
			name, err := getName(objectTable, identifiers, uint32(word)+6, end, ver, is64bit)
			if err == nil {
				return name
			}
		}
		return fmt.Sprintf("%s%04X ", string(kind), word)
	}

	mode := word & 0x00FF
	access := (word & 0x0F00) >> 8
	lock := (word & 0xF000) >> 12
	s := "(For "
	switch {
	case mode&0x01 != 0:
		s += "Input"
	case mode&0x02 != 0:
		s += "Output"
	case mode&0x04 != 0:
		s += "Random"
	case mode&0x08 != 0:
		s += "Append"
	case mode == 0x20:
		s += "Binary"
	}
	if access != 0 && int(access) <= len(impAccessModes) {
		s += " Access " + impAccessModes[access-1]
	}
	if lock != 0 {
		if lock&0x04 != 0 {
			s += " Shared"
		} else if int(lock) <= len(impLockModes) {
			s += " Lock " + impLockModes[lock-1]
		}
	}
	s += ")"
	return s
}

// disasmRec renders a "rec_" operand: a Type declaration's name, prefixed
// with "(Private) " when the privacy flag at dword+18 bit 0 is clear
// (spec.md §4.6 rec_ operand).
func disasmRec(indirectTable []byte, identifiers []string, dword uint32, end endian, ver vbaVersion, is64bit bool) (string, error) {
	name, err := getName(indirectTable, identifiers, dword+2, end, ver, is64bit)
	if err != nil {
		return "", err
	}
	options, err := readU16At(indirectTable, dword+18, end)
	if err != nil {
		return "", err
	}
	if options&1 == 0 {
		name = "(Private) " + name
	}
	return name, nil
}

// disasmType renders a "type_" operand: the intrinsic type keyword for the
// byte at indirectTable[dword+6], or a synthesized type_XXXXXXXX tag when
// the ID falls outside the known table (spec.md §4.6 type_ operand).
func disasmType(indirectTable []byte, dword uint32) (string, error) {
	id, err := readU8At(indirectTable, dword+6)
	if err != nil {
		return "", err
	}
	if int(id) < len(dimTypeNames) {
		return dimTypeNames[id], nil
	}
	return fmt.Sprintf("type_%08X", dword), nil
}

// disasmObject resolves the "As <Type>" target of a typed Dim/variable
// declaration through the object table. 64-bit Office documents lay the
// type descriptor out differently than this walk assumes, so it's left
// unimplemented there, matching the original tool's explicit TODO.
func disasmObject(indirectTable, objectTable []byte, identifiers []string, offset uint32, end endian, ver vbaVersion, is64bit bool) (string, error) {
	if is64bit {
		return "", nil
	}
	typeDesc, err := readU32At(indirectTable, offset, end)
	if err != nil {
		return "", err
	}
	flags, err := readU16At(indirectTable, typeDesc, end)
	if err != nil {
		return "", err
	}
	if flags&0x02 != 0 {
		return disasmType(indirectTable, typeDesc)
	}
	word, err := readU16At(indirectTable, typeDesc+2, end)
	if err != nil {
		return "", err
	}
	if word == 0 {
		return "", nil
	}
	offs := uint32(word>>2) * 10
	if offs+4 > uint32(len(objectTable)) {
		return "", nil
	}
	hlName, err := readU16At(objectTable, offs+6, end)
	if err != nil {
		return "", nil
	}
	return resolveID(hlName, identifiers, ver, is64bit), nil
}

// disasmVar renders a "var_" operand: a variable's name plus, when the
// declaration carries New and/or As clauses, a parenthesized type
// annotation (spec.md §4.6 var_ operand).
func disasmVar(indirectTable, objectTable []byte, identifiers []string, dword uint32, end endian, ver vbaVersion, is64bit bool) (string, error) {
	flag1, err := readU8At(indirectTable, dword)
	if err != nil {
		return "", err
	}
	flag2, err := readU8At(indirectTable, dword+1)
	if err != nil {
		return "", err
	}
	hasAs := flag1&0x20 != 0
	hasNew := flag2&0x20 != 0

	name, err := getName(indirectTable, identifiers, dword+2, end, ver, is64bit)
	if err != nil {
		return "", err
	}
	if !hasNew && !hasAs {
		return name, nil
	}

	decl := ""
	if hasNew {
		decl += "New"
		if hasAs {
			decl += " "
		}
	}
	if hasAs {
		offs := uint32(12)
		if is64bit {
			offs = 16
		}
		word, err := readU16At(indirectTable, dword+offs+2, end)
		if err != nil {
			return "", err
		}
		var typ string
		if word == 0xFFFF {
			id, err := readU8At(indirectTable, dword+offs)
			if err != nil {
				return "", err
			}
			typ = typeName(id)
		} else {
			typ, err = disasmObject(indirectTable, objectTable, identifiers, dword+offs, end, ver, is64bit)
			if err != nil {
				return "", err
			}
		}
		if len(typ) > 0 {
			decl += "As " + typ
		}
	}
	if len(decl) > 0 {
		name += " (" + decl + ")"
	}
	return name, nil
}

// disasmArg renders one entry of a function's argument chain: its name
// with ByVal/ByRef/Optional prefixes and, when present, its declared type
// (spec.md §4.8). ParamArray and custom-type arguments are intentionally
// not special-cased: the original tool's attempt at both never worked
// reliably and was disabled rather than shipped half-right.
func disasmArg(indirectTable []byte, identifiers []string, argOffset uint32, end endian, ver vbaVersion, is64bit bool) (string, error) {
	flags, err := readU16At(indirectTable, argOffset, end)
	if err != nil {
		return "", err
	}
	offs := uint32(0)
	if is64bit {
		offs = 4
	}
	name, err := getName(indirectTable, identifiers, argOffset+2, end, ver, is64bit)
	if err != nil {
		return "", err
	}
	argType, err := readU32At(indirectTable, argOffset+offs+12, end)
	if err != nil {
		return "", err
	}
	argOpts, err := readU16At(indirectTable, argOffset+offs+24, end)
	if err != nil {
		return "", err
	}
	if argOpts&0x0004 != 0 {
		name = "ByVal " + name
	}
	if argOpts&0x0002 != 0 {
		name = "ByRef " + name
	}
	if argOpts&0x0200 != 0 {
		name = "Optional " + name
	}
	if flags&0x0020 != 0 {
		name += " As "
		typ := ""
		if argType&0xFFFF0000 != 0 {
			typ = typeName(byte(argType & 0xFF))
		}
		name += typ
	}
	return name, nil
}

// disasmVarArg renders an opcode's trailing variable-length tail, whose
// interpretation depends entirely on the mnemonic it belongs to: quoted
// text for string-literal-shaped opcodes, a name list for On...GoSub/GoTo,
// and a raw hexdump otherwise (spec.md §4.6 variable-length tail).
func disasmVarArg(moduleData []byte, identifiers []string, offset, length uint32, mnemonic string, end endian, ver vbaVersion, is64bit bool, dec decoder) (string, error) {
	if offset+length > uint32(len(moduleData)) {
		return "", ErrOutsideBoundary
	}
	sub := moduleData[offset : offset+length]
	prefix := fmt.Sprintf("0x%04X ", length)

	switch mnemonic {
	case "LitStr", "QuoteRem", "Rem", "Reparse":
		return prefix + "\"" + dec.decode(sub) + "\"", nil
	case "OnGosub", "OnGoto":
		c := newCursor(sub, end)
		names := make([]string, 0, length/2)
		for c.remaining() >= 2 {
			word, err := c.readU16()
			if err != nil {
				return "", err
			}
			names = append(names, resolveID(word, identifiers, ver, is64bit))
		}
		joined := ""
		for i, n := range names {
			if i > 0 {
				joined += ", "
			}
			joined += n
		}
		return prefix + joined + " ", nil
	default:
		hex := ""
		for i, b := range sub {
			if i > 0 {
				hex += " "
			}
			hex += fmt.Sprintf("%02X", b)
		}
		return prefix + hex, nil
	}
}

// decoder turns raw module bytes into text, abstracting over the codepage
// a project declares (spec.md §4.4 PROJECTCODEPAGE).
type decoder interface {
	decode([]byte) string
}
