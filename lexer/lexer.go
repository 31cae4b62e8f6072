// Package lexer splits a MIME header value into clear-text runs and RFC 2047
// encoded words, folding away the linear whitespace that separates two
// adjacent encoded words.
package lexer

import "bytes"

const questionMark = '?'

// especials may not appear in the charset and encoding fields of an encoded
// word. RFC 2047 section 2.
var especials = [256]bool{
	'(': true, ')': true, '<': true, '>': true, '@': true,
	',': true, ';': true, ':': true, '/': true, '[': true,
	']': true, '?': true, '.': true, '=': true,
}

// Run tokenizes input. Any byte sequence tokenizes: whatever does not match
// the encoded-word grammar falls back to clear text. The only error is
// *TooLongError, under RecoverAbort, when encoded words exceed
// MaxEncodedWordLength.
func Run(input []byte, strategy RecoverStrategy) ([]Token, error) {
	tokens := scan(input, strategy)

	if strategy == RecoverAbort {
		var tooLong []string
		for _, tok := range tokens {
			if w, ok := tok.(EncodedWord); ok && w.Len() > MaxEncodedWordLength {
				tooLong = append(tooLong, w.String())
			}
		}
		if len(tooLong) > 0 {
			return nil, &TooLongError{Words: tooLong}
		}
	}

	return tokens, nil
}

func scan(input []byte, strategy RecoverStrategy) []Token {
	var tokens []Token
	var pending []byte

	flush := func() {
		if len(pending) > 0 {
			tokens = append(tokens, ClearText(pending))
			pending = nil
		}
	}

	i := 0
	for i < len(input) {
		word, n, ok := scanEncodedWord(input[i:])
		if !ok {
			pending = append(pending, input[i])
			i++
			continue
		}
		flush()
		i += n

		if strategy == RecoverSkip && word.Len() > MaxEncodedWordLength {
			tokens = append(tokens, ClearText(word.Bytes()))
		} else {
			tokens = append(tokens, word)
		}

		// Linear whitespace strictly between two encoded words separates
		// them without being part of the text. RFC 2047 section 6.2.
		j := i
		for j < len(input) && isLinearWhitespace(input[j]) {
			j++
		}
		if j > i {
			if _, _, ok := scanEncodedWord(input[j:]); ok {
				i = j
			}
		}
	}
	flush()

	return tokens
}

// scanEncodedWord matches =?charset?encoding?encoded-text?= at the start of
// b and reports how many bytes it consumed. On any mismatch it reports
// false and the caller treats the bytes as clear text.
func scanEncodedWord(b []byte) (EncodedWord, int, bool) {
	if !bytes.HasPrefix(b, []byte(Prefix)) {
		return EncodedWord{}, 0, false
	}
	i := len(Prefix)

	charset, n := scanFieldToken(b[i:])
	if n == 0 {
		return EncodedWord{}, 0, false
	}
	i += n
	if i >= len(b) || b[i] != questionMark {
		return EncodedWord{}, 0, false
	}
	i++

	encoding, n := scanFieldToken(b[i:])
	if n == 0 {
		return EncodedWord{}, 0, false
	}
	i += n
	if i >= len(b) || b[i] != questionMark {
		return EncodedWord{}, 0, false
	}
	i++

	start := i
	for i < len(b) && b[i] != questionMark && b[i] != ' ' {
		i++
	}
	text := b[start:i]

	if !bytes.HasPrefix(b[i:], []byte(Suffix)) {
		return EncodedWord{}, 0, false
	}
	i += len(Suffix)

	return EncodedWord{Charset: charset, Encoding: encoding, Text: text}, i, true
}

// scanFieldToken consumes the longest run of bytes valid in the charset and
// encoding fields: no space, no ASCII control characters, no especials.
func scanFieldToken(b []byte) ([]byte, int) {
	i := 0
	for i < len(b) && isFieldByte(b[i]) {
		i++
	}
	return b[:i], i
}

func isFieldByte(c byte) bool {
	if c == ' ' || c < 0x20 || c == 0x7f {
		return false
	}
	return !especials[c]
}

func isLinearWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
