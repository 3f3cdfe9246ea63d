package pcodedmp

import "strings"

// disasmFunc renders a full function/sub/property signature from the
// indirect table, walking its argument chain and resolving its Declare
// library name against the declaration table when present (spec.md §4.8).
//
// 64-bit Office documents omit the Private/Declare markers entirely —
// their flag layout differs there and the original tool declined to guess
// at it, a limitation preserved here rather than invented around.
func disasmFunc(indirectTable, declarationTable []byte, identifiers []string, dword uint32, opType int, end endian, ver vbaVersion, is64bit bool) (string, error) {
	var b strings.Builder
	b.WriteByte('(')

	flags, err := readU16At(indirectTable, dword, end)
	if err != nil {
		return "", err
	}
	subName, err := getName(indirectTable, identifiers, dword+2, end, ver, is64bit)
	if err != nil {
		return "", err
	}

	offs2 := uint32(0)
	if ver > vbaVersion5 {
		offs2 = 4
	}
	if is64bit {
		offs2 += 16
	}

	argOffset, err := readU32At(indirectTable, dword+offs2+36, end)
	if err != nil {
		return "", err
	}
	retType, err := readU32At(indirectTable, dword+offs2+40, end)
	if err != nil {
		return "", err
	}
	declOffset, err := readU16At(indirectTable, dword+offs2+44, end)
	if err != nil {
		return "", err
	}
	cOptions, err := readU8At(indirectTable, dword+offs2+54)
	if err != nil {
		return "", err
	}
	newFlags, err := readU8At(indirectTable, dword+offs2+57)
	if err != nil {
		return "", err
	}

	hasDeclare := false
	if ver > vbaVersion5 {
		if newFlags&0x0002 == 0 && !is64bit {
			b.WriteString("Private ")
		}
		if newFlags&0x0004 != 0 {
			b.WriteString("Friend ")
		}
	} else if flags&0x0008 == 0 {
		b.WriteString("Private ")
	}
	if opType&0x04 != 0 {
		b.WriteString("Public ")
	}
	if flags&0x0080 != 0 {
		b.WriteString("Static ")
	}
	if cOptions&0x90 == 0 && declOffset != 0xFFFF && !is64bit {
		hasDeclare = true
		b.WriteString("Declare ")
	}
	if ver > vbaVersion5 && newFlags&0x20 != 0 {
		b.WriteString("PtrSafe ")
	}

	hasAs := flags&0x0020 != 0
	switch {
	case flags&0x1000 != 0:
		if opType == 2 || opType == 6 {
			b.WriteString("Function ")
		} else {
			b.WriteString("Sub ")
		}
	case flags&0x2000 != 0:
		b.WriteString("Property Get ")
	case flags&0x4000 != 0:
		b.WriteString("Property Let ")
	case flags&0x8000 != 0:
		b.WriteString("Property Set ")
	}
	b.WriteString(subName)

	if hasDeclare {
		libName, err := getName(declarationTable, identifiers, uint32(declOffset)+2, end, ver, is64bit)
		if err != nil {
			return "", err
		}
		b.WriteString(` Lib "` + libName + `" `)
	}

	var args []string
	for argOffset != 0xFFFFFFFF && argOffset != 0 && argOffset+26 < uint32(len(indirectTable)) {
		argName, err := disasmArg(indirectTable, identifiers, argOffset, end, ver, is64bit)
		if err != nil {
			return "", err
		}
		args = append(args, argName)
		argOffset, err = readU32At(indirectTable, argOffset+20, end)
		if err != nil {
			return "", err
		}
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(args, ", "))
	b.WriteByte(')')

	if hasAs {
		b.WriteString(" As ")
		var typ string
		if retType&0xFFFF0000 == 0xFFFF0000 {
			typ = typeName(byte(retType & 0xFF))
		} else {
			typ, err = getName(indirectTable, identifiers, retType+6, end, ver, is64bit)
			if err != nil {
				return "", err
			}
		}
		b.WriteString(typ)
	}
	b.WriteByte(')')
	return b.String(), nil
}
