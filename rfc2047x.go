// Package rfc2047x decodes MIME header values containing RFC 2047 encoded
// words (=?charset?encoding?text?=) into UTF-8. Decoding runs a fixed
// pipeline: the lexer splits the header into clear text and encoded words,
// the parser resolves encoding tags and charset labels, and the evaluator
// produces the final string.
//
// The zero value of Decoder is ready to use:
//
//	decoded, err := rfc2047x.Decode("=?UTF-8?Q?encoded_str_with_symbol_=E2=82=AC?=")
package rfc2047x

import (
	"io"
	"log/slog"

	"github.com/modfin/rfc2047x/evaluator"
	"github.com/modfin/rfc2047x/lexer"
	"github.com/modfin/rfc2047x/parser"
)

// RecoverStrategy selects how encoded words longer than 75 bytes are
// handled, see the lexer package for the semantics of each value.
type RecoverStrategy = lexer.RecoverStrategy

const (
	// RecoverAbort fails the decode, reporting every too-long word. Default.
	RecoverAbort = lexer.RecoverAbort
	// RecoverSkip emits too-long words verbatim instead of decoding them.
	RecoverSkip = lexer.RecoverSkip
	// RecoverDecode decodes too-long words as if they were valid.
	RecoverDecode = lexer.RecoverDecode
)

// Decoder decodes RFC 2047 header values. The zero value decodes with the
// default strategy and no logging. A Decoder is stateless and safe for
// concurrent use.
type Decoder struct {
	// TooLongEncodedWords is applied to encoded words exceeding
	// lexer.MaxEncodedWordLength. Defaults to RecoverAbort.
	TooLongEncodedWords RecoverStrategy

	// Logger receives debug records about each decode. Nil discards them.
	Logger *slog.Logger
}

// Decode decodes one header value. The input need not be valid UTF-8; the
// result always is. On error the result is empty, there are no partial
// results.
func (d *Decoder) Decode(header []byte) (string, error) {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tokens, err := lexer.Run(header, d.TooLongEncodedWords)
	if err != nil {
		return "", &Error{Stage: StageLexer, Err: err}
	}
	words, err := parser.Run(tokens)
	if err != nil {
		return "", &Error{Stage: StageParser, Err: err}
	}
	decoded, err := evaluator.Run(words)
	if err != nil {
		return "", &Error{Stage: StageEvaluator, Err: err}
	}

	log.Debug("decoded header",
		"tokens", len(tokens),
		"strategy", d.TooLongEncodedWords.String(),
		"in", len(header),
		"out", len(decoded))
	return decoded, nil
}

// DecodeString is Decode for string input.
func (d *Decoder) DecodeString(header string) (string, error) {
	return d.Decode([]byte(header))
}

// Decode decodes one header value with the default Decoder.
func Decode(header string) (string, error) {
	var d Decoder
	return d.DecodeString(header)
}
