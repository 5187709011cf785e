package panel

import (
	"strings"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

func (p *Panel) Cursor() int { return p.cursor }

// CursorEntry returns the entry under the cursor; ok is false on an empty
// listing.
func (p *Panel) CursorEntry() (vfs.Entry, bool) {
	if len(p.entries) == 0 {
		return vfs.Entry{}, false
	}
	return p.entries[p.cursor], true
}

func (p *Panel) cursorName() string {
	if e, ok := p.CursorEntry(); ok {
		return e.Name
	}
	return ""
}

// SetCursor moves the cursor to i, clamped to the listing.
func (p *Panel) SetCursor(i int) {
	switch {
	case len(p.entries) == 0 || i < 0:
		p.cursor = 0
	case i >= len(p.entries):
		p.cursor = len(p.entries) - 1
	default:
		p.cursor = i
	}
}

func (p *Panel) MoveCursor(delta int) { p.SetCursor(p.cursor + delta) }

// SeekName puts the cursor on the named entry.
func (p *Panel) SeekName(name string) bool {
	for i, e := range p.entries {
		if e.Name == name {
			p.cursor = i
			return true
		}
	}
	return false
}

// SeekPrefix moves the cursor to the first entry whose name starts with
// prefix, ignoring case. The cursor stays put when nothing matches.
func (p *Panel) SeekPrefix(prefix string) bool {
	prefix = strings.ToLower(prefix)
	for i, e := range p.entries {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			p.cursor = i
			return true
		}
	}
	return false
}

// Toggle flips the mark on name and reports the new state. Names not in
// the listing are ignored.
func (p *Panel) Toggle(name string) bool {
	if _, ok := p.entry(name); !ok {
		return false
	}
	if _, marked := p.marked[name]; marked {
		delete(p.marked, name)
		return false
	}
	p.marked[name] = struct{}{}
	return true
}

func (p *Panel) MarkAll() {
	for _, e := range p.entries {
		p.marked[e.Name] = struct{}{}
	}
}

func (p *Panel) UnmarkAll() { clear(p.marked) }

func (p *Panel) InvertMarks() {
	for _, e := range p.entries {
		p.Toggle(e.Name)
	}
}

func (p *Panel) IsMarked(name string) bool {
	_, ok := p.marked[name]
	return ok
}

func (p *Panel) MarkedCount() int { return len(p.marked) }

// Marked returns the marked names in listing order.
func (p *Panel) Marked() []string {
	out := make([]string, 0, len(p.marked))
	for _, e := range p.entries {
		if p.IsMarked(e.Name) {
			out = append(out, e.Name)
		}
	}
	return out
}

// MarkedSize sums the sizes of marked entries.
func (p *Panel) MarkedSize() int64 {
	var total int64
	for _, e := range p.entries {
		if p.IsMarked(e.Name) {
			total += e.Size
		}
	}
	return total
}

// Selection is what a batch operation acts on: the marked entries, or the
// cursor entry when nothing is marked.
func (p *Panel) Selection() []vfs.Entry {
	if len(p.marked) == 0 {
		if e, ok := p.CursorEntry(); ok {
			return []vfs.Entry{e}
		}
		return nil
	}
	out := make([]vfs.Entry, 0, len(p.marked))
	for _, e := range p.entries {
		if p.IsMarked(e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// Sources returns the locations of Selection.
func (p *Panel) Sources() []vfs.Location {
	sel := p.Selection()
	out := make([]vfs.Location, len(sel))
	for i, e := range sel {
		out[i] = p.LocationOf(e)
	}
	return out
}
