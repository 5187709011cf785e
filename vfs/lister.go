package vfs

import (
	"errors"
	"io/fs"
	"os"
	"sort"
)

// ListDir enumerates the immediate children of a real directory. The
// directory itself is resolved through symlinks; children never are.
func ListDir(path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, Classify("list", path, err)
	}
	if !info.IsDir() {
		return nil, NewError("list", path, ErrNotADirectory, nil)
	}
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, Classify("list", path, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, Classify("list", path, err)
		}
		entries = append(entries, entryFromInfo(d.Name(), info))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// StatReal describes a single real path without following a final symlink.
func StatReal(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, Classify("stat", path, err)
	}
	return entryFromInfo(info.Name(), info), nil
}

// StatFollow describes a real path, resolving symlinks. It is how a symlink
// entry learns its target kind when descended into.
func StatFollow(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, Classify("stat", path, err)
	}
	return entryFromInfo(info.Name(), info), nil
}
