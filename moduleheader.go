package pcodedmp

// moduleLayout locates a module stream's auxiliary tables and p-code
// region (spec.md §4.5).
type moduleLayout struct {
	end              endian
	ver              vbaVersion
	declarationTable []byte
	indirectTable    []byte
	objectTable      []byte
	pcodeStart       uint32
	lines            []pcodeLine
}

// pcodeLine is one entry of a module's line-index table: where its p-code
// starts (relative to pcodeStart) and how long it runs.
type pcodeLine struct {
	offset uint32
	length uint32
}

// locateModuleLayout walks a module stream's header to find its
// declaration/indirect/object auxiliary tables and its p-code region,
// picking the VBA6/7 32-bit, VBA6/7 64-bit, or VBA5 header shape
// according to the internal Office version recorded in the project's
// _VBA_PROJECT stream (spec.md §4.5).
func locateModuleLayout(moduleData, vbaProjectData []byte, is64bit bool) (*moduleLayout, error) {
	marker, err := peekU16LE(moduleData, 2)
	if err != nil {
		return nil, err
	}
	end := littleEndian
	if marker > 0xFF {
		end = bigEndian
	}

	version, err := readU16At(vbaProjectData, 2, end)
	if err != nil {
		return nil, ErrNoVBAProject
	}

	if version < 0x6B {
		declarationTable, indirectTable, objectTable, offset, err := locateVBA5Tables(moduleData, end)
		if err != nil {
			return nil, err
		}
		return finishModuleLayout(moduleData, end, vbaVersion5, declarationTable, indirectTable, objectTable, offset)
	}

	ver := vbaVersion6
	if version >= 0x97 {
		ver = vbaVersion7
	}

	var declarationTable []byte
	var offset uint32
	if is64bit {
		dwLength, err := readU32At(moduleData, 0x0043, end)
		if err != nil {
			return nil, err
		}
		declarationTable, err = sliceAt(moduleData, 0x0047, dwLength)
		if err != nil {
			return nil, err
		}
		dwLength, err = readU32At(moduleData, 0x0011, end)
		if err != nil {
			return nil, err
		}
		offset = dwLength + 12
	} else {
		dwLength, err := readU32At(moduleData, 0x003F, end)
		if err != nil {
			return nil, err
		}
		declarationTable, err = sliceAt(moduleData, 0x0043, dwLength)
		if err != nil {
			return nil, err
		}
		dwLength, err = readU32At(moduleData, 0x0011, end)
		if err != nil {
			return nil, err
		}
		offset = dwLength + 10
	}

	tableLength, err := readU32At(moduleData, offset, end)
	if err != nil {
		return nil, err
	}
	offset += 4
	indirectTable, err := sliceAt(moduleData, offset, tableLength)
	if err != nil {
		return nil, err
	}

	objBase, err := readU32At(moduleData, 0x0005, end)
	if err != nil {
		return nil, err
	}
	objBase += 0x8A
	objLength, err := readU32At(moduleData, objBase, end)
	if err != nil {
		return nil, err
	}
	objBase += 4
	objectTable, err := sliceAt(moduleData, objBase, objLength)
	if err != nil {
		return nil, err
	}

	return finishModuleLayout(moduleData, end, ver, declarationTable, indirectTable, objectTable, uint32(0x0019))
}

// locateVBA5Tables walks the VBA5 module header shape, which locates its
// auxiliary tables through a sequential chain of length-prefixed skips
// rather than fixed offsets (spec.md §4.5 VBA5 header).
func locateVBA5Tables(moduleData []byte, end endian) (declarationTable, indirectTable, objectTable []byte, pcodeOffset uint32, err error) {
	c := newCursor(moduleData, end)
	c.seek(11)

	dwLength, err := readU32At(moduleData, c.offset(), end)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	declarationTable, err = sliceAt(moduleData, c.offset()+4, dwLength)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	if err = c.skipArray(true, 1, false); err != nil {
		return nil, nil, nil, 0, err
	}
	c.advance(64)
	if err = c.skipArray(false, 16, false); err != nil {
		return nil, nil, nil, 0, err
	}
	if err = c.skipArray(true, 1, false); err != nil {
		return nil, nil, nil, 0, err
	}
	c.advance(6)
	if err = c.skipArray(true, 1, false); err != nil {
		return nil, nil, nil, 0, err
	}

	dwLength, err = readU32At(moduleData, c.offset()+8, end)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	tableStart := dwLength + 14
	indirectLength, err := readU32At(moduleData, dwLength+10, end)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	indirectTable, err = sliceAt(moduleData, tableStart, indirectLength)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	objBase, err := readU32At(moduleData, c.offset(), end)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	objBase += 0x8A
	objLength, err := readU32At(moduleData, objBase, end)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	objectTable, err = sliceAt(moduleData, objBase+4, objLength)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	return declarationTable, indirectTable, objectTable, c.offset() + 77, nil
}

// finishModuleLayout locates the p-code magic and line-index table
// starting at pcodeHeaderOffset, common to every module header shape once
// the auxiliary tables are known (spec.md §4.5 p-code region location).
func finishModuleLayout(moduleData []byte, end endian, ver vbaVersion, declarationTable, indirectTable, objectTable []byte, pcodeHeaderOffset uint32) (*moduleLayout, error) {
	dwLength, err := readU32At(moduleData, pcodeHeaderOffset, end)
	if err != nil {
		return nil, err
	}
	magicOffset := dwLength + 0x3C
	magic, err := readU16At(moduleData, magicOffset, end)
	if err != nil {
		return nil, err
	}
	if magic != 0xCAFE {
		return nil, ErrNoPcodeMagic
	}

	c := newCursor(moduleData, end)
	c.seek(magicOffset + 2)
	numLines, err := c.readU16()
	if err != nil {
		return nil, err
	}
	pcodeStart := c.offset() + uint32(numLines)*12 + 10

	lines := make([]pcodeLine, 0, numLines)
	for i := uint16(0); i < numLines; i++ {
		c.advance(4)
		length, err := c.readU16()
		if err != nil {
			return nil, err
		}
		c.advance(2)
		lineOffset, err := c.readU32()
		if err != nil {
			return nil, err
		}
		lines = append(lines, pcodeLine{offset: lineOffset, length: uint32(length)})
	}

	return &moduleLayout{
		end:              end,
		ver:              ver,
		declarationTable: declarationTable,
		indirectTable:    indirectTable,
		objectTable:      objectTable,
		pcodeStart:       pcodeStart,
		lines:            lines,
	}, nil
}

// sliceAt bounds-checks and returns buf[off:off+length].
func sliceAt(buf []byte, off, length uint32) ([]byte, error) {
	if off > uint32(len(buf)) || length > uint32(len(buf))-off {
		return nil, ErrOutsideBoundary
	}
	return buf[off : off+length], nil
}
