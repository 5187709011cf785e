// Package find searches a directory tree for names matching a pattern. Its
// results feed a panelized listing.
package find

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

var ErrEmptyPattern = errors.New("empty search pattern")

// IsGlob reports whether pattern uses glob syntax rather than plain text.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Find walks root and returns the absolute paths of every entry below it
// whose name matches pattern, sorted. Glob patterns are matched against the
// base name, or against the slash-separated path relative to root when the
// pattern contains a slash; "**" spans directories. Any other pattern is a
// case-insensitive substring of the name. Dot entries and everything below
// them are skipped unless showHidden is set. Unreadable directories are
// skipped silently.
func Find(ctx context.Context, root, pattern string, showHidden bool) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	match, err := matcher(pattern)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		matches []string
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || p == root {
			return nil
		}
		name := d.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if match(name, filepath.ToSlash(rel)) {
			mu.Lock()
			matches = append(matches, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find %q in %s: %w", pattern, root, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func matcher(pattern string) (func(name, rel string) bool, error) {
	if !IsGlob(pattern) {
		needle := strings.ToLower(pattern)
		return func(name, _ string) bool {
			return strings.Contains(strings.ToLower(name), needle)
		}, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	byPath := strings.Contains(pattern, "/")
	return func(name, rel string) bool {
		subject := name
		if byPath {
			subject = rel
		}
		ok, _ := doublestar.Match(pattern, subject)
		return ok
	}, nil
}
