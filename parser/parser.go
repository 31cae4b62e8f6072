// Package parser turns raw lexer tokens into typed words: the encoding tag
// becomes B or Q, the charset label becomes a resolved charset handle.
package parser

import (
	"errors"
	"fmt"

	"github.com/modfin/rfc2047x/charsets"
	"github.com/modfin/rfc2047x/lexer"
)

// Encoding is the transfer encoding of an encoded word.
type Encoding byte

const (
	// B is the Base64 encoding. RFC 2047 section 4.1.
	B Encoding = 'B'
	// Q is the Quoted-Printable-like encoding. RFC 2047 section 4.2.
	Q Encoding = 'Q'
)

func (e Encoding) String() string { return string(byte(e)) }

// ErrMissingEncoding is returned for an encoded word with an empty encoding
// field, such as =?utf-8??dGV4dA==?=.
var ErrMissingEncoding = errors.New("encoded word has an empty encoding")

// TooLongEncodingError is returned when the encoding field spans more than
// one byte.
type TooLongEncodingError struct {
	Tag []byte
}

func (e *TooLongEncodingError) Error() string {
	return fmt.Sprintf("encoding %q is longer than one character", e.Tag)
}

// UnsupportedEncodingError is returned when the encoding field is neither B
// nor Q, in either case.
type UnsupportedEncodingError struct {
	Tag byte
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported encoding %q, expected B or Q", e.Tag)
}

// Word is either a ClearText or an EncodedWord.
type Word interface {
	word()
}

// ClearText passes through the parser untouched.
type ClearText []byte

func (ClearText) word() {}

// EncodedWord is a resolved encoded word, ready for evaluation. A nil
// Charset means the label was not recognized; the evaluator then treats the
// decoded payload as raw ASCII instead of failing.
type EncodedWord struct {
	Charset  *charsets.Charset
	Encoding Encoding
	Text     []byte
}

func (EncodedWord) word() {}

// Run resolves every token in order.
func Run(tokens []lexer.Token) ([]Word, error) {
	words := make([]Word, 0, len(tokens))
	for _, tok := range tokens {
		switch t := tok.(type) {
		case lexer.ClearText:
			words = append(words, ClearText(t))
		case lexer.EncodedWord:
			word, err := resolve(t)
			if err != nil {
				return nil, err
			}
			words = append(words, word)
		default:
			return nil, fmt.Errorf("unexpected token type %T", tok)
		}
	}
	return words, nil
}

func resolve(token lexer.EncodedWord) (EncodedWord, error) {
	encoding, err := resolveEncoding(token.Encoding)
	if err != nil {
		return EncodedWord{}, err
	}

	word := EncodedWord{Encoding: encoding, Text: token.Text}
	if cs, ok := charsets.Lookup(token.Charset); ok {
		word.Charset = &cs
	}
	return word, nil
}

func resolveEncoding(tag []byte) (Encoding, error) {
	if len(tag) == 0 {
		return 0, ErrMissingEncoding
	}
	if len(tag) > 1 {
		return 0, &TooLongEncodingError{Tag: tag}
	}
	switch tag[0] {
	case 'b', 'B':
		return B, nil
	case 'q', 'Q':
		return Q, nil
	}
	return 0, &UnsupportedEncodingError{Tag: tag[0]}
}
