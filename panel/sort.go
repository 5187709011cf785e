package panel

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// SortMode orders a listing. Directories always come first and ties are
// broken by case-sensitive name.
type SortMode int

const (
	SortName SortMode = iota
	SortExt
	SortTime
	SortSize
	SortUnsorted
)

var sortNames = map[SortMode]string{
	SortName:     "name",
	SortExt:      "ext",
	SortTime:     "time",
	SortSize:     "size",
	SortUnsorted: "unsorted",
}

func (m SortMode) String() string { return sortNames[m] }

// ParseSortMode accepts the names printed by String.
func ParseSortMode(s string) (SortMode, error) {
	for m, name := range sortNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return SortName, fmt.Errorf("unknown sort mode %q", s)
}

// Sort orders entries in place.
func Sort(entries []vfs.Entry, mode SortMode, reverse bool) {
	slices.SortStableFunc(entries, func(a, b vfs.Entry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		if mode == SortUnsorted {
			return 0
		}
		c := 0
		switch mode {
		case SortExt:
			c = strings.Compare(filepath.Ext(a.Name), filepath.Ext(b.Name))
		case SortTime:
			c = a.ModTime.Compare(b.ModTime)
		case SortSize:
			c = cmpInt(a.Size, b.Size)
		}
		if c == 0 {
			c = strings.Compare(a.Name, b.Name)
		}
		if reverse {
			c = -c
		}
		return c
	})
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
