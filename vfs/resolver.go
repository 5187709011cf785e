package vfs

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Resolver answers read requests for any Location, dispatching on its tag
// to the real filesystem or to the archive cache.
type Resolver struct {
	archives *Archives
}

func NewResolver(archives *Archives) *Resolver {
	if archives == nil {
		archives = NewArchives(zap.NewNop())
	}
	return &Resolver{archives: archives}
}

func (r *Resolver) Archives() *Archives { return r.archives }

// List enumerates the children of loc.
func (r *Resolver) List(loc Location) ([]Entry, error) {
	if !loc.IsArchived() {
		return ListDir(loc.Path())
	}
	idx, err := r.archives.Open(loc.Path())
	if err != nil {
		return nil, err
	}
	return idx.List(loc.inner)
}

// Stat describes the entry loc points at.
func (r *Resolver) Stat(loc Location) (Entry, error) {
	if !loc.IsArchived() {
		return StatReal(loc.Path())
	}
	idx, err := r.archives.Open(loc.Path())
	if err != nil {
		return Entry{}, err
	}
	return idx.Stat(loc.inner)
}

// Index returns the archive index behind an archived location.
func (r *Resolver) Index(loc Location) (*Index, error) {
	if !loc.IsArchived() {
		return nil, NewError("index", loc.String(), ErrUnsupported, nil)
	}
	return r.archives.Open(loc.Path())
}

// Open reads a file at loc; archived files are decompressed on the fly.
func (r *Resolver) Open(loc Location) (io.ReadCloser, error) {
	if !loc.IsArchived() {
		f, err := os.Open(loc.Path())
		if err != nil {
			return nil, Classify("open", loc.Path(), err)
		}
		return f, nil
	}
	idx, err := r.archives.Open(loc.Path())
	if err != nil {
		return nil, err
	}
	return idx.Open(loc.inner)
}

func (r *Resolver) IsArchiveName(name string) bool { return IsArchiveName(name) }
