package pcodedmp

// vbaVersion identifies which generation of the VBA p-code instruction
// encoding a module was compiled with (spec.md §4.2). Raw opcode values
// shift between generations; translateOpcode maps a raw value back to its
// canonical VBA7 index so a single opcodeTable can serve every version.
type vbaVersion int

const (
	vbaVersion3 vbaVersion = 3
	vbaVersion5 vbaVersion = 5
	vbaVersion6 vbaVersion = 6
	vbaVersion7 vbaVersion = 7
)

// translateOpcode maps a raw opcode word, as it appears in a module's
// p-code stream, to the canonical index into opcodeTable. The breakpoints
// below are exactly the per-version renumbering ranges recorded for
// VBA3, VBA5 and VBA6/7 (32-bit and 64-bit); VBA7 64-bit performs no
// translation since opcodeTable is indexed in that generation's numbering.
func translateOpcode(opcode uint16, ver vbaVersion, is64bit bool) uint16 {
	switch {
	case ver == vbaVersion3:
		switch {
		case opcode <= 67:
			return opcode
		case opcode <= 70:
			return opcode + 2
		case opcode <= 111:
			return opcode + 4
		case opcode <= 150:
			return opcode + 8
		case opcode <= 164:
			return opcode + 9
		case opcode <= 166:
			return opcode + 10
		case opcode <= 169:
			return opcode + 11
		case opcode <= 238:
			return opcode + 12
		default: // opcode == 239
			return opcode + 24
		}
	case ver == vbaVersion5:
		switch {
		case opcode <= 68:
			return opcode
		case opcode <= 71:
			return opcode + 1
		case opcode <= 112:
			return opcode + 3
		case opcode <= 151:
			return opcode + 7
		case opcode <= 165:
			return opcode + 8
		case opcode <= 167:
			return opcode + 9
		case opcode <= 170:
			return opcode + 10
		default: // 171 <= opcode <= 252
			return opcode + 11
		}
	case !is64bit: // VBA6/7, 32-bit
		switch {
		case opcode <= 173:
			return opcode
		case opcode <= 175:
			return opcode + 1
		case opcode <= 178:
			return opcode + 2
		default: // 179 <= opcode <= 260
			return opcode + 3
		}
	default: // VBA6/7, 64-bit
		return opcode
	}
}

// lookupOpcode translates a raw opcode and resolves it against
// opcodeTable, reporting whether the canonical index fell within range.
func lookupOpcode(raw uint16, ver vbaVersion, is64bit bool) (def opcodeDef, canonical uint16, ok bool) {
	canonical = translateOpcode(raw, ver, is64bit)
	if int(canonical) >= len(opcodeTable) {
		return opcodeDef{}, canonical, false
	}
	return opcodeTable[canonical], canonical, true
}
