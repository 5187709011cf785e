package fileops

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// Mkdir creates name under parent and returns its location. name may hold
// several relative segments; missing intermediate directories below parent
// are created. parent itself must exist.
func (o *Ops) Mkdir(ctx context.Context, parent vfs.Location, name string) (vfs.Location, error) {
	if parent.IsArchived() {
		return vfs.Location{}, vfs.NewError("mkdir", parent.String(), vfs.ErrUnsupported, errors.New("archives are read-only"))
	}
	if name == "" || !filepath.IsLocal(name) {
		return vfs.Location{}, vfs.NewError("mkdir", name, vfs.ErrUnsupported, errors.New("name must be a relative path"))
	}
	target := parent.Child(name)

	id, release, err := o.dispatch.Acquire(ctx, target)
	if err != nil {
		return vfs.Location{}, vfs.Classify("mkdir", target.Path(), err)
	}
	defer release()

	// Only the segments of name are created; a parent that has gone away
	// is not brought back.
	info, err := os.Stat(parent.Path())
	if err != nil {
		return vfs.Location{}, vfs.Classify("mkdir", parent.Path(), err)
	}
	if !info.IsDir() {
		return vfs.Location{}, vfs.NewError("mkdir", parent.Path(), vfs.ErrNotADirectory, nil)
	}

	if _, err := os.Lstat(target.Path()); err == nil {
		return vfs.Location{}, vfs.NewError("mkdir", target.Path(), vfs.ErrAlreadyExists, nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return vfs.Location{}, vfs.Classify("mkdir", target.Path(), err)
	}
	if err := os.MkdirAll(target.Path(), 0o755); err != nil {
		return vfs.Location{}, vfs.Classify("mkdir", target.Path(), err)
	}
	o.log.Info("directory created", zap.Stringer("id", id), zap.Stringer("location", target))
	return target, nil
}
