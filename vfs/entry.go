package vfs

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies an Entry.
type Kind int

const (
	File Kind = iota
	Directory
	ArchiveRoot
	Symlink
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "dir"
	case ArchiveRoot:
		return "archive"
	case Symlink:
		return "link"
	default:
		return "file"
	}
}

// ArchiveExt is the one browsable archive type.
const ArchiveExt = ".zip"

// IsArchiveName reports whether a file name carries the archive extension.
func IsArchiveName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ArchiveExt)
}

// Entry is one child of a location.
type Entry struct {
	Name    string
	Kind    Kind
	Size    int64
	ModTime time.Time // zero when unknown
	Mode    fs.FileMode
	HasMode bool
	// Path is the absolute real path of a panelized entry, empty otherwise.
	Path string
}

func (e Entry) IsDir() bool { return e.Kind == Directory }

func (e Entry) HasModTime() bool { return !e.ModTime.IsZero() }

func (e Entry) IsHidden() bool { return strings.HasPrefix(e.Name, ".") }

func entryFromInfo(name string, info fs.FileInfo) Entry {
	e := Entry{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode().Perm() | info.Mode()&(fs.ModeSetuid|fs.ModeSetgid|fs.ModeSticky),
		HasMode: true,
	}
	switch m := info.Mode(); {
	case m&fs.ModeSymlink != 0:
		e.Kind = Symlink
	case m.IsDir():
		e.Kind = Directory
		e.Size = 0
	case IsArchiveName(name):
		e.Kind = ArchiveRoot
	default:
		e.Kind = File
	}
	return e
}
