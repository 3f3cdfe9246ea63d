package pcodedmp

import (
	"fmt"
	"io"
)

var (
	coerceTypeNames = [...]string{
		"Var", "?", "Int", "Lng", "Sng", "Dbl", "Cur", "Date", "Str", "Obj", "Err", "Bool", "Var",
	}
	litVarSpecials = [...]string{"False", "True", "Null", "Empty"}
	optionKinds    = [...]string{"Base 0", "Base 1", "Compare Text", "Compare Binary", "Explicit", "Private Module"}
)

// disassembleLine renders one p-code line as a sequence of mnemonic and
// operand text, in the exact per-opcode dispatch spec.md §4.9 describes.
// An unrecognized opcode ends the line with an unrecognizedOpcodeError;
// the caller goes on with the module's next line.
func disassembleLine(w io.Writer, moduleData []byte, lineStart, lineLength uint32, end endian, ver vbaVersion, is64bit bool, identifiers []string, tables auxTables, dec decoder, verbose bool, lineNum int) error {
	if verbose && lineLength > 0 {
		fmt.Fprintf(w, "%04X: ", lineStart)
	}
	fmt.Fprintf(w, "Line #%d:\n", lineNum)
	if lineLength == 0 {
		return nil
	}
	if verbose {
		fmt.Fprint(w, hexdump(moduleData[lineStart:lineStart+lineLength]))
	}

	c := newCursor(moduleData, end)
	c.seek(lineStart)
	endOfLine := lineStart + lineLength

	for c.offset() < endOfLine {
		rawWord, err := c.readU16()
		if err != nil {
			return err
		}
		opType := int((rawWord &^ 0x03FF) >> 10)
		opcode := rawWord & 0x03FF

		def, _, ok := lookupOpcode(opcode, ver, is64bit)
		if !ok {
			fmt.Fprintln(w, formatUnrecognizedOpcode(opcode, c.offset()))
			return &unrecognizedOpcodeError{opcode: opcode, offset: c.offset()}
		}
		mnemonic := def.mnemonic

		fmt.Fprint(w, "\t")
		if verbose {
			fmt.Fprintf(w, "%04X ", opcode)
		}
		fmt.Fprintf(w, "%s ", mnemonic)

		switch mnemonic {
		case "Coerce", "CoerceVar", "DefType":
			switch {
			case opType < len(coerceTypeNames):
				fmt.Fprintf(w, "(%s) ", coerceTypeNames[opType])
			case opType == 17:
				fmt.Fprint(w, "(Byte) ")
			default:
				fmt.Fprintf(w, "(%d) ", opType)
			}
		case "Dim", "DimImplicit", "Type":
			var parts []string
			switch {
			case opType&0x04 != 0:
				parts = append(parts, "Global")
			case opType&0x08 != 0:
				parts = append(parts, "Public")
			case opType&0x10 != 0:
				parts = append(parts, "Private")
			case opType&0x20 != 0:
				parts = append(parts, "Static")
			}
			if opType&0x01 != 0 && mnemonic != "Type" {
				parts = append(parts, "Const")
			}
			if len(parts) > 0 {
				fmt.Fprintf(w, "(%s) ", joinSpace(parts))
			}
		case "LitVarSpecial":
			if opType >= 0 && opType < len(litVarSpecials) {
				fmt.Fprintf(w, "(%s)", litVarSpecials[opType])
			}
		case "ArgsCall", "ArgsMemCall", "ArgsMemCallWith":
			if opType < 16 {
				fmt.Fprint(w, "(Call) ")
			} else {
				opType -= 16
			}
		case "Option":
			if opType >= 0 && opType < len(optionKinds) {
				fmt.Fprintf(w, " (%s)", optionKinds[opType])
			}
		case "Redim", "RedimAs":
			if opType&16 != 0 {
				fmt.Fprint(w, "(Preserve) ")
			}
		}

		for _, arg := range def.args {
			switch arg {
			case operandName:
				word, err := c.readU16()
				if err != nil {
					return err
				}
				fmt.Fprint(w, disasmName(word, identifiers, mnemonic, opType, ver, is64bit))

			case operandImm, operandImp:
				word, err := c.readU16()
				if err != nil {
					return err
				}
				fmt.Fprint(w, disasmImp(tables.object, identifiers, arg, word, mnemonic, end, ver, is64bit))

			case operandFunc, operandVar, operandRec, operandType, operandContext:
				dword, err := c.readU32()
				if err != nil {
					return err
				}
				switch {
				case arg == operandRec && uint32(len(tables.indirect)) >= dword+20:
					s, err := disasmRec(tables.indirect, identifiers, dword, end, ver, is64bit)
					if err != nil {
						return err
					}
					fmt.Fprint(w, s)
				case arg == operandType && uint32(len(tables.indirect)) >= dword+7:
					s, err := disasmType(tables.indirect, dword)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "(As %s)", s)
				case arg == operandVar && uint32(len(tables.indirect)) >= dword+16:
					if opType&0x20 != 0 {
						fmt.Fprint(w, "(WithEvents) ")
					}
					s, err := disasmVar(tables.indirect, tables.object, identifiers, dword, end, ver, is64bit)
					if err != nil {
						return err
					}
					fmt.Fprint(w, s)
					if opType&0x10 != 0 {
						word, err := c.readU16()
						if err != nil {
							return err
						}
						fmt.Fprintf(w, " 0x%04X", word)
					}
				case arg == operandFunc && uint32(len(tables.indirect)) >= dword+61:
					s, err := disasmFunc(tables.indirect, tables.declaration, identifiers, dword, opType, end, ver, is64bit)
					if err != nil {
						return err
					}
					fmt.Fprint(w, s)
				default:
					fmt.Fprintf(w, "%s%08X ", string(arg), dword)
				}
				if is64bit && arg == operandContext {
					dword, err := c.readU32()
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%08X ", dword)
				}
			}
		}

		if def.varg {
			length, err := c.readU16()
			if err != nil {
				return err
			}
			s, err := disasmVarArg(moduleData, identifiers, c.offset(), uint32(length), mnemonic, end, ver, is64bit, dec)
			if err != nil {
				return err
			}
			fmt.Fprint(w, s)
			c.advance(uint32(length))
			if length&1 != 0 {
				c.advance(1)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func joinSpace(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += " "
		}
		s += p
	}
	return s
}

// hexdump renders buf as 16-bytes-per-row offset/hex/ASCII text, matching
// the layout the teacher's codebase uses for its own stream dumps.
func hexdump(buf []byte) string {
	const width = 16
	var out []byte
	for off := 0; off < len(buf); off += width {
		end := off + width
		if end > len(buf) {
			end = len(buf)
		}
		row := buf[off:end]
		line := fmt.Sprintf("%08X   ", off)
		for i := 0; i < width; i++ {
			if i < len(row) {
				line += fmt.Sprintf("%02X ", row[i])
			} else {
				line += "   "
			}
		}
		line += "   "
		for _, b := range row {
			if b > 31 && b < 127 {
				line += string(rune(b))
			} else {
				line += "."
			}
		}
		out = append(out, []byte(line+"\n")...)
	}
	return string(out)
}
