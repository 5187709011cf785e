package vfs

import (
	"path/filepath"
	"slices"
	"strings"
)

// Location addresses something directory-like: a real directory, or a path
// inside an archive file. The zero value is not a valid location.
type Location struct {
	path  string   // real directory, or the archive file when archived
	inner []string // nil for Real
	arch  bool
}

// Real returns the location of a real directory. Relative paths are made
// absolute against the working directory.
func Real(path string) Location {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Location{path: filepath.Clean(path)}
}

// Archived returns a location inside the archive at archivePath. Segments
// may be given whole ("a/b") or split; empty and "." segments are dropped.
func Archived(archivePath string, segments ...string) Location {
	l := Real(archivePath)
	l.arch = true
	l.inner = SplitInner(strings.Join(segments, "/"))
	return l
}

// SplitInner normalises a slash-separated archive path into segments.
func SplitInner(p string) []string {
	var out []string
	for _, s := range strings.Split(strings.ReplaceAll(p, "\\", "/"), "/") {
		if s == "" || s == "." {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (l Location) IsZero() bool { return l.path == "" }

func (l Location) IsArchived() bool { return l.arch }

// Path is the real directory for Real locations and the archive file for
// Archived ones.
func (l Location) Path() string { return l.path }

// Archive returns the archive file path, or "" for Real locations.
func (l Location) Archive() string {
	if !l.arch {
		return ""
	}
	return l.path
}

func (l Location) Inner() []string { return slices.Clone(l.inner) }

func (l Location) InnerPath() string { return strings.Join(l.inner, "/") }

func (l Location) IsArchiveRoot() bool { return l.arch && len(l.inner) == 0 }

// Base is the last element of the location: the directory name, the last
// internal segment, or the archive file name at an archive root.
func (l Location) Base() string {
	if l.arch && len(l.inner) > 0 {
		return l.inner[len(l.inner)-1]
	}
	return filepath.Base(l.path)
}

// Child descends one level.
func (l Location) Child(name string) Location {
	if !l.arch {
		return Location{path: filepath.Join(l.path, name)}
	}
	c := Location{path: l.path, arch: true, inner: make([]string, 0, len(l.inner)+1)}
	c.inner = append(append(c.inner, l.inner...), SplitInner(name)...)
	return c
}

// Parent ascends one level. At an archive root the parent is the real
// directory holding the archive. ok is false at the filesystem root.
func (l Location) Parent() (Location, bool) {
	switch {
	case l.arch && len(l.inner) > 0:
		return Location{path: l.path, arch: true, inner: slices.Clone(l.inner[:len(l.inner)-1])}, true
	case l.arch:
		return Location{path: filepath.Dir(l.path)}, true
	}
	parent := filepath.Dir(l.path)
	if parent == l.path {
		return l, false
	}
	return Location{path: parent}, true
}

func (l Location) Equal(o Location) bool {
	return l.path == o.path && l.arch == o.arch && slices.Equal(l.inner, o.inner)
}

// Contains reports whether o is l or lies beneath it.
func (l Location) Contains(o Location) bool {
	if !l.arch {
		return isWithin(l.path, o.path)
	}
	if !o.arch || o.path != l.path || len(o.inner) < len(l.inner) {
		return false
	}
	return slices.Equal(l.inner, o.inner[:len(l.inner)])
}

// Overlaps reports whether two locations share any subtree. An archive
// overlaps the real directories that hold it.
func (l Location) Overlaps(o Location) bool {
	return l.Contains(o) || o.Contains(l)
}

func (l Location) String() string {
	if !l.arch {
		return l.path
	}
	if len(l.inner) == 0 {
		return l.path + "#/"
	}
	return l.path + "#/" + l.InnerPath()
}

func isWithin(dir, p string) bool {
	if dir == p {
		return true
	}
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
