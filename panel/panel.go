// Package panel keeps the navigation and selection state of one side of the
// dual-pane view. A Panel is not safe for concurrent use; it belongs to the
// UI loop that drives it.
package panel

import (
	"errors"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// ErrBoundary is returned by Ascend at the filesystem root.
var ErrBoundary = errors.New("already at the top")

// Lister resolves the listing of a location.
type Lister interface {
	List(loc vfs.Location) ([]vfs.Entry, error)
}

type Option func(*Panel)

func WithLogger(log *zap.Logger) Option {
	return func(p *Panel) {
		if log != nil {
			p.log = log
		}
	}
}

func WithSort(mode SortMode, reverse bool) Option {
	return func(p *Panel) { p.sortMode, p.reverse = mode, reverse }
}

func WithShowHidden(show bool) Option {
	return func(p *Panel) { p.showHidden = show }
}

type panelized struct {
	origin vfs.Location
	paths  []string
}

type Panel struct {
	lister Lister
	log    *zap.Logger

	loc     vfs.Location
	entries []vfs.Entry
	cursor  int
	marked  map[string]struct{}
	pz      *panelized

	hidden     bool
	showHidden bool
	sortMode   SortMode
	reverse    bool
}

// New opens a panel at loc.
func New(lister Lister, loc vfs.Location, opts ...Option) (*Panel, error) {
	p := &Panel{lister: lister, log: zap.NewNop(), marked: make(map[string]struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Navigate(loc); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Panel) Location() vfs.Location { return p.loc }

// Locations returns every location the panel still depends on, including
// the place a panelized view returns to.
func (p *Panel) Locations() []vfs.Location {
	if p.pz != nil && !p.pz.origin.Equal(p.loc) {
		return []vfs.Location{p.loc, p.pz.origin}
	}
	return []vfs.Location{p.loc}
}

func (p *Panel) Entries() []vfs.Entry { return slices.Clone(p.entries) }

func (p *Panel) Len() int { return len(p.entries) }

func (p *Panel) IsPanelized() bool { return p.pz != nil }

func (p *Panel) Hidden() bool { return p.hidden }

func (p *Panel) SetHidden(hidden bool) { p.hidden = hidden }

func (p *Panel) ShowHidden() bool { return p.showHidden }

// SetShowHidden toggles dot-file filtering and refreshes the listing.
func (p *Panel) SetShowHidden(show bool) error {
	p.showHidden = show
	return p.Refresh()
}

func (p *Panel) Sort() (SortMode, bool) { return p.sortMode, p.reverse }

// SetSort reorders the cached listing, keeping the cursor on its entry.
// Panelized listings keep their input order.
func (p *Panel) SetSort(mode SortMode, reverse bool) {
	p.sortMode, p.reverse = mode, reverse
	if p.pz != nil {
		return
	}
	name := p.cursorName()
	Sort(p.entries, mode, reverse)
	p.SeekName(name)
}

// Navigate replaces the listing with the one at loc. On failure the panel
// is left unchanged.
func (p *Panel) Navigate(loc vfs.Location) error {
	return p.navigate(loc, "")
}

func (p *Panel) navigate(loc vfs.Location, focus string) error {
	entries, err := p.load(loc)
	if err != nil {
		p.log.Debug("navigate failed", zap.Stringer("location", loc), zap.Error(err))
		return err
	}
	p.loc = loc
	p.pz = nil
	p.entries = entries
	p.marked = make(map[string]struct{})
	p.cursor = 0
	if focus != "" {
		p.SeekName(focus)
	}
	p.log.Debug("navigated", zap.Stringer("location", loc), zap.Int("entries", len(entries)))
	return nil
}

func (p *Panel) load(loc vfs.Location) ([]vfs.Entry, error) {
	entries, err := p.lister.List(loc)
	if err != nil {
		return nil, err
	}
	if !p.showHidden {
		entries = slices.DeleteFunc(entries, vfs.Entry.IsHidden)
	}
	Sort(entries, p.sortMode, p.reverse)
	return entries, nil
}

// Descend enters the named entry: a directory, a symlink that resolves to
// one, or an archive file (drill-in).
func (p *Panel) Descend(name string) error {
	e, ok := p.entry(name)
	if !ok {
		return vfs.NewError("descend", name, vfs.ErrNotFound, nil)
	}
	target := p.LocationOf(e)
	switch e.Kind {
	case vfs.Directory:
		return p.Navigate(target)
	case vfs.ArchiveRoot:
		return p.Navigate(vfs.Archived(target.Path()))
	case vfs.Symlink:
		resolved, err := vfs.StatFollow(target.Path())
		if err != nil {
			return err
		}
		switch resolved.Kind {
		case vfs.Directory:
			return p.Navigate(target)
		case vfs.ArchiveRoot:
			return p.Navigate(vfs.Archived(target.Path()))
		}
	case vfs.File:
		if !target.IsArchived() && vfs.IsArchiveName(e.Name) {
			return p.Navigate(vfs.Archived(target.Path()))
		}
	}
	return vfs.NewError("descend", target.String(), vfs.ErrNotADirectory, nil)
}

// Ascend moves one level up. Leaving an archive root returns to the
// directory holding the archive; leaving a panelized view restores the
// location it was built from.
func (p *Panel) Ascend() error {
	if p.pz != nil {
		return p.navigate(p.pz.origin, "")
	}
	parent, ok := p.loc.Parent()
	if !ok {
		return ErrBoundary
	}
	return p.navigate(parent, p.loc.Base())
}

// Refresh re-reads the current listing after a mutation. The cursor stays
// on the same name when it still exists, and surviving marks are kept.
func (p *Panel) Refresh() error {
	var entries []vfs.Entry
	if p.pz != nil {
		entries = p.panelizedEntries(p.pz.origin, p.pz.paths)
	} else {
		var err error
		if entries, err = p.load(p.loc); err != nil {
			return err
		}
	}
	name := p.cursorName()
	old := p.cursor
	p.entries = entries
	for m := range p.marked {
		if _, ok := p.entry(m); !ok {
			delete(p.marked, m)
		}
	}
	if !p.SeekName(name) {
		p.SetCursor(old)
	}
	return nil
}

// Panelize replaces the listing with a flat view of paths, in the given
// order. Paths that no longer exist and duplicates are dropped. Entry names
// are the paths relative to the current directory when they lie inside it.
func (p *Panel) Panelize(paths []string) {
	origin := p.loc
	if p.pz != nil {
		origin = p.pz.origin
	}
	clean := make([]string, 0, len(paths))
	for _, path := range paths {
		if abs, err := filepath.Abs(path); err == nil {
			clean = append(clean, abs)
		}
	}
	p.pz = &panelized{origin: origin, paths: clean}
	p.entries = p.panelizedEntries(origin, clean)
	p.marked = make(map[string]struct{})
	p.cursor = 0
	p.log.Debug("panelized", zap.Stringer("origin", origin), zap.Int("entries", len(p.entries)))
}

func (p *Panel) panelizedEntries(origin vfs.Location, paths []string) []vfs.Entry {
	seen := make(map[string]bool, len(paths))
	entries := make([]vfs.Entry, 0, len(paths))
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		e, err := vfs.StatReal(path)
		if err != nil {
			continue
		}
		e.Name = path
		if !origin.IsArchived() && path != origin.Path() && origin.Contains(vfs.Real(path)) {
			if rel, err := filepath.Rel(origin.Path(), path); err == nil {
				e.Name = rel
			}
		}
		e.Path = path
		entries = append(entries, e)
	}
	return entries
}

// LocationOf returns the address of one entry of the listing.
func (p *Panel) LocationOf(e vfs.Entry) vfs.Location {
	if e.Path != "" {
		return vfs.Real(e.Path)
	}
	return p.loc.Child(e.Name)
}

func (p *Panel) entry(name string) (vfs.Entry, bool) {
	for _, e := range p.entries {
		if e.Name == name {
			return e, true
		}
	}
	return vfs.Entry{}, false
}

// References reports whether the panel depends on the given archive file.
func (p *Panel) References(archive string) bool {
	for _, l := range p.Locations() {
		if l.IsArchived() && l.Archive() == archive {
			return true
		}
	}
	return false
}
