// Package htmlcharset widens the charset registry to the full WHATWG label
// index from golang.org/x/net/html/charset, which resolves a much larger
// range of labels than the built-in table. Import it for its side effects:
//
//	import _ "github.com/modfin/rfc2047x/charsets/htmlcharset"
package htmlcharset

import (
	"github.com/modfin/rfc2047x/charsets"

	cs "golang.org/x/net/html/charset"
)

func init() {
	charsets.ReaderLabel = cs.NewReaderLabel
}
