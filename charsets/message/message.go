// Package message is an alternative to the htmlcharset subpackage, widening
// the charset registry with the reader from emersion/go-message. Useful when
// the host application already depends on go-message and wants both to
// resolve labels identically. Import it for its side effects.
package message

import (
	"github.com/emersion/go-message/charset"

	"github.com/modfin/rfc2047x/charsets"
)

func init() {
	charsets.ReaderLabel = charset.Reader
}
