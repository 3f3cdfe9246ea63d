package pcodedmp

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// codepageEncodings maps a PROJECTCODEPAGE value (spec.md §6 dir stream tag
// table, PROJ_CODEPAGE) to the text encoding module source strings were
// written in. Coverage follows the Windows code pages oletools' own
// codepage2codec table recognizes; anything absent here falls back to
// Latin-1, same as the original tool's default before a dir stream
// overrides it.
var codepageEncodings = map[uint16]encoding.Encoding{
	37:    charmap.CodePage037,
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1200:  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	1201:  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	20866: charmap.KOI8R,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28593: charmap.ISO8859_3,
	28594: charmap.ISO8859_4,
	28595: charmap.ISO8859_5,
	28596: charmap.ISO8859_6,
	28597: charmap.ISO8859_7,
	28598: charmap.ISO8859_8,
	28599: charmap.ISO8859_9,
	28603: charmap.ISO8859_13,
	28605: charmap.ISO8859_15,
}

// textDecoder implements the operand decoders' decoder interface over a
// codepage-selected golang.org/x/text encoding, defaulting to Latin-1.
type textDecoder struct {
	enc encoding.Encoding
}

// newDecoder resolves a codepage number to a textDecoder; an unrecognized
// codepage falls back to Latin-1, matching the original tool's default.
func newDecoder(codepage uint16) textDecoder {
	enc, ok := codepageEncodings[codepage]
	if !ok {
		enc = charmap.ISO8859_1
	}
	return textDecoder{enc: enc}
}

func (d textDecoder) decode(b []byte) string {
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return decodeLatin1(b)
	}
	return string(out)
}

// decodeLatin1 decodes bytes as Latin-1, used as the identifier-table
// extractor's fixed encoding and as textDecoder's fallback. Identifier
// names are always decoded as Latin-1; the codepage the dir stream declares
// is not applied to them.
func decodeLatin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// decodeUTF16LE decodes a MOD_UNICODESTREAM module stream name, which the
// dir stream always carries as UTF-16LE regardless of the project's
// declared codepage (spec.md §6 MOD_UNICODESTREAM).
func decodeUTF16LE(b []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
