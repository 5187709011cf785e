// Package menu expands user-menu command templates.
package menu

import (
	"strings"

	"github.com/alessio/shellescape"
)

// Item is one user-menu entry.
type Item struct {
	Label   string
	Command string
}

// Expand substitutes the macros of a command template:
//
//	%d  the active panel's directory
//	%f  the entry under the cursor
//	%%  a literal percent sign
//
// Substituted values are shell-quoted. Any other % sequence is copied
// unchanged.
func Expand(template, dir, current string) string {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 == len(template) {
			b.WriteByte(c)
			continue
		}
		switch template[i+1] {
		case 'd':
			b.WriteString(Quote(dir))
		case 'f':
			b.WriteString(Quote(current))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

// Expand fills the item's command.
func (it Item) Expand(dir, current string) string {
	return Expand(it.Command, dir, current)
}

// Quote makes s a single word for a POSIX shell. Plain words are left
// alone.
func Quote(s string) string {
	return shellescape.Quote(s)
}
