package pcodedmp

// extractIdentifiers walks the _VBA_PROJECT stream's reference table,
// module descriptor table and identifier-count header to recover the
// project's name table, in the exact order p-code name operands index
// into it (spec.md §4.3). A malformed or truncated stream yields however
// many identifiers were collected before the failure, never an error —
// identifier extraction is advisory, not load-bearing for the rest of a
// parse.
func extractIdentifiers(data []byte, maxIdentifiers uint32) (identifiers []string) {
	magic, err := peekU16LE(data, 0)
	if err != nil || magic != 0x61CC {
		return identifiers
	}
	version, err := peekU16LE(data, 2)
	if err != nil {
		return identifiers
	}

	unicodeRef := (version >= 0x5B && version != 0x60 && version != 0x62 && version != 0x63) || version == 0x4E
	unicodeName := (version >= 0x59 && version != 0x60 && version != 0x62 && version != 0x63) || version == 0x4E
	nonUnicodeName := (version <= 0x59 && version != 0x4E) || (version < 0x5F && version > 0x6B)

	endianMarker, err := peekU16LE(data, 5)
	if err != nil {
		return identifiers
	}
	end := littleEndian
	if endianMarker == 0x000E {
		end = bigEndian
	}
	c := newCursor(data, end)

	defer func() {
		recover() // a truncated/malformed stream just stops where it fails
	}()

	c.seek(0x1E)
	numRefs, err := c.readU16()
	must(err)
	c.advance(2)

	for i := uint16(0); i < numRefs; i++ {
		refLength, err := c.readU16()
		must(err)
		if refLength == 0 {
			c.advance(6)
		} else {
			tooShort := (unicodeRef && refLength < 5) || (!unicodeRef && refLength < 3)
			if tooShort {
				c.advance(uint32(refLength))
			} else {
				at := c.offset() + 2
				if unicodeRef {
					at = c.offset() + 4
				}
				ch, err := readU8At(data, at)
				must(err)
				c.advance(uint32(refLength))
				if ch == 'C' || ch == 'D' {
					must(c.skipArray(false, 1, false))
				}
			}
		}
		c.advance(10)
		word, err := c.readU16()
		must(err)
		if word != 0 {
			must(c.skipArray(false, 1, false))
			wLength, err := c.readU16()
			must(err)
			if wLength != 0 {
				c.advance(2)
			}
			c.advance(uint32(wLength) + 30)
		}
	}

	must(c.skipArray(false, 2, false)) // class/user forms table
	must(c.skipArray(false, 4, false)) // compile-time identifier-value pairs
	c.advance(2)
	must(c.skipArray(false, 1, true)) // typeinfo typeID
	must(c.skipArray(false, 1, true)) // project description
	must(c.skipArray(false, 1, true)) // project help file name
	c.advance(0x64)

	numProjects, err := c.readU16()
	must(err)
	for i := uint16(0); i < numProjects; i++ {
		wLength, err := c.readU16()
		must(err)
		if unicodeName {
			c.advance(uint32(wLength))
		}
		if nonUnicodeName {
			if wLength != 0 {
				wLength, err = c.readU16()
				must(err)
			}
			c.advance(uint32(wLength))
		}
		must(c.skipArray(false, 1, false)) // stream time
		must(c.skipArray(false, 1, true))
		_, err = c.readU16()
		must(err)
		if version >= 0x6B {
			must(c.skipArray(false, 1, true))
		}
		must(c.skipArray(false, 1, true))
		c.advance(2)
		if version != 0x51 {
			c.advance(4)
		}
		must(c.skipArray(false, 8, false))
		c.advance(11)
	}

	c.advance(6)
	must(c.skipArray(true, 1, false))
	c.advance(6)

	w0, err := c.readU16()
	must(err)
	numIDs, err := c.readU16()
	must(err)
	w1, err := c.readU16()
	must(err)
	c.advance(4)

	numJunkIDs := int(numIDs) + int(w1) - int(w0)
	numIDs = w0 - w1

	for i := 0; i < numJunkIDs; i++ {
		c.advance(4)
		idType, idLength, err := c.typeAndLength()
		must(err)
		c.advance(2)
		if idType > 0x7F {
			c.advance(6)
		}
		c.advance(uint32(idLength))
	}

	for i := uint16(0); i < numIDs; i++ {
		if uint32(len(identifiers)) >= maxIdentifiers {
			break
		}
		isKwd := false
		idType, idLength, err := c.typeAndLength()
		must(err)
		c.advance(2)
		if idLength == 0 && idType == 0 {
			c.advance(2)
			idType, idLength, err = c.typeAndLength()
			must(err)
			c.advance(2)
			isKwd = true
		}
		if idType&0x80 != 0 {
			c.advance(6)
		}
		if idLength != 0 {
			raw, err := c.readBytes(uint32(idLength))
			must(err)
			identifiers = append(identifiers, decodeLatin1(raw))
		}
		if !isKwd {
			c.advance(4)
		}
	}

	return identifiers
}

// must panics on a non-nil error; extractIdentifiers recovers it at the
// top level, mirroring the original tool's blanket try/except around the
// same walk — any structural surprise simply truncates the result.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
