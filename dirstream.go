package pcodedmp

// dirTag names the fields of a project's dir stream (spec.md §6 dir stream
// tag numbering). Tags absent from this table are rendered as "UNKNOWN"
// rather than rejected — unknown tags are common in documents written by
// newer Office versions than this table was built against.
var dirTags = map[uint16]string{
	1:  "PROJ_SYSKIND",
	2:  "PROJ_LCID",
	3:  "PROJ_CODEPAGE",
	4:  "PROJ_NAME",
	5:  "PROJ_DOCSTRING",
	6:  "PROJ_HELPFILE",
	7:  "PROJ_HELPCONTEXT",
	8:  "PROJ_LIBFLAGS",
	9:  "PROJ_VERSION",
	10: "PROJ_GUID",
	11: "PROJ_PROPERTIES",
	12: "PROJ_CONSTANTS",
	13: "PROJ_LIBID_REGISTERED",
	14: "PROJ_LIBID_PROJ",
	15: "PROJ_MODULECOUNT",
	16: "PROJ_EOF",
	17: "PROJ_TYPELIB_VERSION",
	18: "PROJ_COMPAT_EXE",
	19: "PROJ_COOKIE",
	20: "PROJ_LCIDINVOKE",
	21: "PROJ_COMMAND_LINE",
	22: "PROJ_REFNAME_PROJ",

	25: "MOD_NAME",
	26: "MOD_STREAM",

	28: "MOD_DOCSTRING",
	29: "MOD_HELPFILE",
	30: "MOD_HELPCONTEXT",

	32: "MOD_PROPERTIES",
	33: "MOD_FBASMOD_StdMods",
	34: "MOD_FBASMOD_Classes",
	35: "MOD_FBASMOD_Creatable",
	36: "MOD_FBASMOD_NoDisplay",
	37: "MOD_FBASMOD_NoEdit",
	38: "MOD_FBASMOD_RefLibs",
	39: "MOD_FBASMOD_NonBasic",
	40: "MOD_FBASMOD_Private",
	41: "MOD_FBASMOD_Internal",
	42: "MOD_FBASMOD_AllModTypes",
	43: "MOD_END",
	44: "MOD_COOKIETYPE",
	45: "MOD_BASECLASSNULL",
	46: "MOD_BASECLASS",
	47: "PROJ_LIBID_TWIDDLED",
	48: "PROJ_LIBID_EXTENDED",
	49: "MOD_TEXTOFFSET",
	50: "MOD_UNICODESTREAM",

	60: "PROJ_UNICODE_CONSTANTS",
	61: "PROJ_UNICODE_HELPFILE",
	62: "PROJ_UNICODE_REFNAME_PROJ",
	63: "PROJ_UNICODE_COMMAND_LINE",
	64: "PROJ_UNICODE_DOCSTRING",

	71: "MOD_UNICODE_NAME",
	72: "MOD_UNICODE_DOCSTRING",
	73: "MOD_UNICODE_HELPFILE",
}

// dirRecord is one decoded tag-length-value entry of a dir stream.
type dirRecord struct {
	offset uint32
	tag    uint16
	name   string
	value  []byte
}

// dirInfo is everything the rest of a project parse needs out of a dir
// stream: the decoded record list for display, the modules' stream names
// in declaration order, the project's codepage and whether its target is
// 64-bit (spec.md §4.4).
type dirInfo struct {
	records     []dirRecord
	moduleNames []string
	codepage    uint16
	is64bit     bool
}

// parseDirStream decodes an already-decompressed dir stream into its
// tag-length-value records (spec.md §4.4). The stream is always
// little-endian, even for documents produced on a Mac — only module
// p-code inherits the host's byte order.
func parseDirStream(data []byte) dirInfo {
	info := dirInfo{codepage: 1252}
	c := newCursor(data, littleEndian)

	for c.remaining() >= 6 {
		recOffset := c.offset()
		tag, err := c.readU16()
		if err != nil {
			break
		}
		length, err := c.readU16()
		if err != nil {
			break
		}
		c.advance(2) // reserved/high word of the length field

		// Microsoft's own format spec disagrees with itself for these
		// two tags; the actual on-disk length is fixed regardless of
		// what the length field says.
		switch tag {
		case 9:
			length = 6
		case 3:
			length = 2
		}

		name, ok := dirTags[tag]
		if !ok {
			name = "UNKNOWN"
		}

		var value []byte
		if length > 0 {
			value, err = c.readBytes(uint32(length))
			if err != nil {
				break
			}
		}

		info.records = append(info.records, dirRecord{
			offset: recOffset,
			tag:    tag,
			name:   name,
			value:  append([]byte(nil), value...),
		})

		switch name {
		case "PROJ_CODEPAGE":
			if len(value) >= 2 {
				info.codepage, _ = peekU16LE(value, 0)
			}
		case "MOD_UNICODESTREAM":
			info.moduleNames = append(info.moduleNames, decodeUTF16LE(value))
		case "PROJ_SYSKIND":
			if len(value) >= 4 {
				sysKind, _ := readU32At(value, 0, littleEndian)
				info.is64bit = sysKind == 3
			}
		}
	}

	return info
}
