// Package evaluator decodes resolved words into one UTF-8 string: the
// transfer encoding first, then the charset, concatenated in token order
// with nothing inserted between fragments.
package evaluator

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/quotedprintable"
	"strings"
	"unicode/utf8"

	"github.com/modfin/rfc2047x/charsets"
	"github.com/modfin/rfc2047x/parser"
)

// ErrInvalidClearText is returned when a clear-text run is not valid UTF-8.
var ErrInvalidClearText = errors.New("clear text is not valid utf-8")

// Run evaluates every word in order. Any failure is fatal for the whole
// header, there is no per-word recovery.
func Run(words []parser.Word) (string, error) {
	var sb strings.Builder
	for _, word := range words {
		switch w := word.(type) {
		case parser.ClearText:
			if !utf8.Valid(w) {
				return "", fmt.Errorf("%w: %q", ErrInvalidClearText, w)
			}
			sb.Write(w)
		case parser.EncodedWord:
			s, err := decodeWord(w)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		default:
			return "", fmt.Errorf("unexpected word type %T", word)
		}
	}
	return sb.String(), nil
}

func decodeWord(word parser.EncodedWord) (string, error) {
	var raw []byte
	var err error

	switch word.Encoding {
	case parser.B:
		raw, err = decodeBase64(word.Text)
	case parser.Q:
		raw, err = decodeQuotedPrintable(word.Text)
	default:
		err = fmt.Errorf("unexpected encoding %q", word.Encoding)
	}
	if err != nil {
		return "", err
	}

	if word.Charset != nil {
		return word.Charset.Decode(raw), nil
	}
	return charsets.DecodeASCII(raw), nil
}

// decodeBase64 decodes with the standard alphabet. StdEncoding already
// tolerates non-zero trailing padding bits; senders that get the padding
// itself wrong are handled by retrying without padding.
func decodeBase64(text []byte) ([]byte, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(raw, text)
	if err == nil {
		return raw[:n], nil
	}
	trimmed := bytes.TrimRight(text, "=")
	raw = make([]byte, base64.RawStdEncoding.DecodedLen(len(trimmed)))
	n, rerr := base64.RawStdEncoding.Decode(raw, trimmed)
	if rerr == nil {
		return raw[:n], nil
	}
	return nil, fmt.Errorf("decode base64 text: %w", err)
}

// decodeQuotedPrintable decodes with the RFC 2047 variant of the encoding,
// where an underscore stands for a space. The substitution happens before
// quoted-printable unescaping. RFC 2047 section 4.2.
func decodeQuotedPrintable(text []byte) ([]byte, error) {
	text = bytes.ReplaceAll(text, []byte{'_'}, []byte{' '})

	raw, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(text)))
	if err != nil {
		return nil, fmt.Errorf("decode quoted-printable text: %w", err)
	}
	return raw, nil
}
