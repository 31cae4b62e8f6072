package lexer

import (
	"fmt"
	"strings"
)

const (
	// Prefix opens an encoded word.
	Prefix = "=?"
	// Suffix closes an encoded word.
	Suffix = "?="

	// MaxEncodedWordLength is the maximum length of an encoded word,
	// delimiters included. RFC 2047 section 2.
	MaxEncodedWordLength = 75
)

// RecoverStrategy decides what happens with encoded words that are longer
// than MaxEncodedWordLength.
type RecoverStrategy int

const (
	// RecoverAbort fails the whole run with a *TooLongError listing every
	// offending encoded word. This is the default.
	RecoverAbort RecoverStrategy = iota
	// RecoverSkip reclassifies the offending encoded word as clear text, so
	// its literal source bytes end up in the output instead of being decoded.
	RecoverSkip
	// RecoverDecode decodes the offending encoded word as if it had a valid
	// length.
	RecoverDecode
)

func (s RecoverStrategy) String() string {
	switch s {
	case RecoverAbort:
		return "abort"
	case RecoverSkip:
		return "skip"
	case RecoverDecode:
		return "decode"
	}
	return fmt.Sprintf("RecoverStrategy(%d)", int(s))
}

// Token is either a ClearText or an EncodedWord.
type Token interface {
	// Len returns the number of source bytes the token spans.
	Len() int

	token()
}

// ClearText is a maximal run of bytes that is not part of any encoded word.
type ClearText []byte

func (t ClearText) Len() int { return len(t) }

func (ClearText) token() {}

// EncodedWord holds the three raw fields of one =?charset?encoding?text?=
// word. The fields are kept as found in the source, undecoded.
type EncodedWord struct {
	Charset  []byte
	Encoding []byte
	Text     []byte
}

func (EncodedWord) token() {}

// Len returns the length of the encoded word including the six delimiter
// bytes, which is the length RFC 2047 puts the 75 byte limit on.
func (w EncodedWord) Len() int {
	return len(Prefix) + len(w.Charset) + 1 + len(w.Encoding) + 1 + len(w.Text) + len(Suffix)
}

// Bytes renders the original source form of the encoded word.
func (w EncodedWord) Bytes() []byte {
	b := make([]byte, 0, w.Len())
	b = append(b, Prefix...)
	b = append(b, w.Charset...)
	b = append(b, questionMark)
	b = append(b, w.Encoding...)
	b = append(b, questionMark)
	b = append(b, w.Text...)
	b = append(b, Suffix...)
	return b
}

func (w EncodedWord) String() string {
	return string(w.Bytes())
}

// TooLongError is returned under RecoverAbort when one or more encoded
// words exceed MaxEncodedWordLength. Words holds the original source form
// of every offender, in order of occurrence.
type TooLongError struct {
	Words []string
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("encoded words longer than %d bytes: %s",
		MaxEncodedWordLength, strings.Join(e.Words, ", "))
}
