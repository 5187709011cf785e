package vfs

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Archives caches one Index per archive file so both panels can share it.
// An index is rebuilt when the archive's mtime or size changes.
type Archives struct {
	log   *zap.Logger
	group singleflight.Group

	mu  sync.RWMutex
	idx map[string]*Index
}

func NewArchives(log *zap.Logger) *Archives {
	if log == nil {
		log = zap.NewNop()
	}
	return &Archives{log: log, idx: make(map[string]*Index)}
}

// Open returns the cached index for path, building it on first use.
// Concurrent first opens of the same archive parse it once.
func (a *Archives) Open(path string) (*Index, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, Classify("open archive", path, err)
	}

	a.mu.RLock()
	idx := a.idx[path]
	a.mu.RUnlock()
	if idx != nil && idx.modTime.Equal(info.ModTime()) && idx.size == info.Size() {
		return idx, nil
	}

	v, err, _ := a.group.Do(path, func() (any, error) {
		built, err := OpenArchive(path)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.idx[path] = built
		a.mu.Unlock()
		a.log.Debug("archive indexed",
			zap.String("archive", path),
			zap.Int("files", len(built.files)),
			zap.Int("dirs", len(built.dirs)-1),
			zap.Bool("rebuilt", idx != nil))
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Retain drops every index not referenced by one of locs and returns how
// many were dropped.
func (a *Archives) Retain(locs ...Location) int {
	keep := make(map[string]bool, len(locs))
	for _, l := range locs {
		if l.IsArchived() {
			keep[l.Archive()] = true
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	dropped := 0
	for p := range a.idx {
		if !keep[p] {
			delete(a.idx, p)
			dropped++
			a.log.Debug("archive index released", zap.String("archive", p))
		}
	}
	return dropped
}

// Len reports how many indexes are cached.
func (a *Archives) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.idx)
}
