package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modfin/rfc2047x/lexer"
)

func TestRun(t *testing.T) {
	t.Run("ClearTextPassesThrough", func(t *testing.T) {
		words, err := Run([]lexer.Token{lexer.ClearText("plain")})
		require.NoError(t, err)
		assert.Equal(t, []Word{ClearText("plain")}, words)
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		words, err := Run([]lexer.Token{
			lexer.ClearText("a"),
			lexer.EncodedWord{Charset: []byte("UTF-8"), Encoding: []byte("B"), Text: []byte("Yg==")},
			lexer.ClearText("c"),
		})
		require.NoError(t, err)
		require.Len(t, words, 3)
		assert.Equal(t, ClearText("a"), words[0])
		assert.Equal(t, ClearText("c"), words[2])
		w, ok := words[1].(EncodedWord)
		require.True(t, ok)
		assert.Equal(t, B, w.Encoding)
	})
}

func TestResolveEncoding(t *testing.T) {
	cases := []struct {
		tag  string
		want Encoding
	}{
		{"B", B},
		{"b", B},
		{"Q", Q},
		{"q", Q},
	}
	for _, c := range cases {
		t.Run(c.tag, func(t *testing.T) {
			words, err := Run([]lexer.Token{lexer.EncodedWord{
				Charset:  []byte("UTF-8"),
				Encoding: []byte(c.tag),
				Text:     []byte("text"),
			}})
			require.NoError(t, err)
			w, ok := words[0].(EncodedWord)
			require.True(t, ok)
			assert.Equal(t, c.want, w.Encoding)
		})
	}

	t.Run("Empty", func(t *testing.T) {
		_, err := Run([]lexer.Token{lexer.EncodedWord{
			Charset:  []byte("UTF-8"),
			Encoding: nil,
			Text:     []byte("text"),
		}})
		assert.ErrorIs(t, err, ErrMissingEncoding)
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := Run([]lexer.Token{lexer.EncodedWord{
			Charset:  []byte("UTF-8"),
			Encoding: []byte("base64"),
			Text:     []byte("text"),
		}})
		var tooLong *TooLongEncodingError
		require.ErrorAs(t, err, &tooLong)
		assert.Equal(t, []byte("base64"), tooLong.Tag)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := Run([]lexer.Token{lexer.EncodedWord{
			Charset:  []byte("UTF-8"),
			Encoding: []byte("X"),
			Text:     []byte("text"),
		}})
		var unsupported *UnsupportedEncodingError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, byte('X'), unsupported.Tag)
	})
}

func TestResolveCharset(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		words, err := Run([]lexer.Token{lexer.EncodedWord{
			Charset:  []byte("ISO-8859-1"),
			Encoding: []byte("Q"),
			Text:     []byte("a"),
		}})
		require.NoError(t, err)
		w := words[0].(EncodedWord)
		require.NotNil(t, w.Charset)
		assert.Equal(t, "iso-8859-1", w.Charset.Name())
	})

	t.Run("UnknownIsLenient", func(t *testing.T) {
		words, err := Run([]lexer.Token{lexer.EncodedWord{
			Charset:  []byte("x-no-such-charset"),
			Encoding: []byte("Q"),
			Text:     []byte("a"),
		}})
		require.NoError(t, err)
		w := words[0].(EncodedWord)
		assert.Nil(t, w.Charset)
	})
}
