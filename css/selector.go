package css

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// ClassSelector returns class selector fragment for class name: "." + name.
// Names which are not valid CSS identifiers are escaped, empty name produces
// empty selector.
func ClassSelector(name string) string {
	if name == "" {
		return ""
	}
	if css.IsIdent([]byte(name)) {
		return "." + name
	}
	return "." + EscapeIdent(name)
}

// EscapeIdent escapes s so it could be used as CSS identifier, following
// the rules of CSS.escape().
func EscapeIdent(s string) string {
	if s == "-" {
		return `\-`
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		switch {
		case r == 0:
			b.WriteString(`\fffd `)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case r >= '0' && r <= '9':
			if i == 0 || (i == 1 && s[0] == '-') {
				fmt.Fprintf(&b, `\%x `, r)
			} else {
				b.WriteRune(r)
			}
		case r >= 0x80, r == '-', r == '_',
			r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
