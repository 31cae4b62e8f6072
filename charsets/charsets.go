// Package charsets resolves MIME charset labels to decoders that turn the
// payload of an encoded word into UTF-8. Undecodable input never fails a
// decode, it degrades to replacement runes.
//
// The built-in table covers the charsets seen in real mail traffic. The full
// WHATWG label index can be installed by importing the htmlcharset
// subpackage for its side effects; the message subpackage is an alternative
// backed by emersion/go-message.
package charsets

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ReaderLabel, when set, extends Lookup beyond the built-in table. It gets
// the lower-cased label and the raw payload and returns a reader producing
// UTF-8, or an error if the label is unknown. It must be safe for concurrent
// use and should be set once, from an init function, before any decoding
// starts.
var ReaderLabel func(label string, input io.Reader) (io.Reader, error)

// Charset is a resolved charset label. The zero value is not usable, obtain
// one through Lookup.
type Charset struct {
	name   string
	enc    encoding.Encoding
	reader func(label string, input io.Reader) (io.Reader, error)
}

// Name returns the normalized (lower-cased) label the charset was resolved
// from.
func (c Charset) Name() string { return c.name }

// Decode converts b into UTF-8. It never fails: bytes with no mapping in the
// charset come out as U+FFFD.
func (c Charset) Decode(b []byte) string {
	if c.enc != nil {
		out, err := c.enc.NewDecoder().Bytes(b)
		if err == nil {
			return string(out)
		}
	} else if c.reader != nil {
		r, err := c.reader(c.name, bytes.NewReader(b))
		if err == nil {
			if out, err := io.ReadAll(r); err == nil {
				return string(out)
			}
		}
	}
	return DecodeASCII(b)
}

// Lookup resolves a charset label. The label is matched case-insensitively
// against the built-in table, then the alias table, then the ReaderLabel
// hook if one is installed.
func Lookup(label []byte) (Charset, bool) {
	name := strings.ToLower(strings.TrimSpace(string(label)))

	if enc, ok := charsetEncodings[name]; ok {
		return Charset{name: name, enc: enc}, true
	}
	if alias, ok := charsetAliases[name]; ok {
		if enc, ok := charsetEncodings[alias]; ok {
			return Charset{name: alias, enc: enc}, true
		}
	}
	if ReaderLabel != nil {
		if _, err := ReaderLabel(name, bytes.NewReader(nil)); err == nil {
			return Charset{name: name, reader: ReaderLabel}, true
		}
	}
	return Charset{}, false
}

// DecodeASCII interprets b as raw ASCII, mapping every byte above 0x7f to
// U+FFFD. It is the fallback for encoded words whose charset label did not
// resolve.
func DecodeASCII(b []byte) string {
	if isASCII(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < utf8.RuneSelf {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(utf8.RuneError)
		}
	}
	return sb.String()
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

var charsetEncodings = map[string]encoding.Encoding{
	// ISO character sets
	"iso-8859-1":  charmap.ISO8859_1,
	"iso-8859-2":  charmap.ISO8859_2,
	"iso-8859-3":  charmap.ISO8859_3,
	"iso-8859-4":  charmap.ISO8859_4,
	"iso-8859-5":  charmap.ISO8859_5,
	"iso-8859-6":  charmap.ISO8859_6,
	"iso-8859-7":  charmap.ISO8859_7,
	"iso-8859-8":  charmap.ISO8859_8,
	"iso-8859-9":  charmap.ISO8859_9,
	"iso-8859-10": charmap.ISO8859_10,
	"iso-8859-13": charmap.ISO8859_13,
	"iso-8859-14": charmap.ISO8859_14,
	"iso-8859-15": charmap.ISO8859_15,
	"iso-8859-16": charmap.ISO8859_16,

	// Windows character sets
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1255": charmap.Windows1255,
	"windows-1256": charmap.Windows1256,
	"windows-1257": charmap.Windows1257,
	"windows-1258": charmap.Windows1258,
	"windows-874":  charmap.Windows874,

	// DOS character sets
	"ibm437":    charmap.CodePage437,
	"ibm850":    charmap.CodePage850,
	"ibm852":    charmap.CodePage852,
	"ibm855":    charmap.CodePage855,
	"ibm858":    charmap.CodePage858,
	"ibm866":    charmap.CodePage866,
	"koi8r":     charmap.KOI8R,
	"koi8u":     charmap.KOI8U,
	"macintosh": charmap.Macintosh,

	// Japanese character sets
	"shift_jis":   japanese.ShiftJIS,
	"shift-jis":   japanese.ShiftJIS,
	"sjis":        japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"eucjp":       japanese.EUCJP,
	"iso-2022-jp": japanese.ISO2022JP,
	"iso2022jp":   japanese.ISO2022JP,

	// Korean character sets
	"euc-kr": korean.EUCKR,
	"euckr":  korean.EUCKR,

	// Chinese character sets
	"gb2312":  simplifiedchinese.GB18030, // GB18030 is a superset of GB2312
	"gbk":     simplifiedchinese.GBK,
	"gb18030": simplifiedchinese.GB18030,
	"big5":    traditionalchinese.Big5,
	"big-5":   traditionalchinese.Big5,

	// Unicode encodings
	"utf-8":    unicode.UTF8,
	"utf-16be": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16":   unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
}

// Alias mappings for non-standard charset names
var charsetAliases = map[string]string{
	"ascii":      "iso-8859-1", // ASCII is a subset of ISO-8859-1
	"us-ascii":   "iso-8859-1",
	"utf8":       "utf-8",
	"latin1":     "iso-8859-1",
	"latin2":     "iso-8859-2",
	"latin3":     "iso-8859-3",
	"latin4":     "iso-8859-4",
	"latin5":     "iso-8859-9",
	"latin6":     "iso-8859-10",
	"latin7":     "iso-8859-13",
	"latin8":     "iso-8859-14",
	"latin9":     "iso-8859-15",
	"latin10":    "iso-8859-16",
	"cp1250":     "windows-1250",
	"cp1251":     "windows-1251",
	"cp1252":     "windows-1252",
	"cp1253":     "windows-1253",
	"cp1254":     "windows-1254",
	"cp1255":     "windows-1255",
	"cp1256":     "windows-1256",
	"cp1257":     "windows-1257",
	"cp1258":     "windows-1258",
	"cp874":      "windows-874",
	"ms874":      "windows-874",
	"tis-620":    "windows-874",
	"ms-ansi":    "windows-1252",
	"ms_kanji":   "shift-jis",
	"csshiftjis": "shift-jis",
	"x-sjis":     "shift-jis",
	"ms932":      "shift-jis",
	"5601":       "euc-kr",
	"ks_c_5601":  "euc-kr",
	"ansi936":    "gb2312",
	"cp936":      "gbk",
	"ms936":      "gbk",
	"ansi950":    "big5",
	"cp950":      "big5",
	"koi8-r":     "koi8r",
	"koi8-u":     "koi8u",
}
