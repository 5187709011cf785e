package fileops

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

var past = time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range files {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: past})
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func reals(paths ...string) []vfs.Location {
	out := make([]vfs.Location, len(paths))
	for i, p := range paths {
		out[i] = vfs.Real(p)
	}
	return out
}

func TestCopyDirectoryToMissingDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	writeFile(t, filepath.Join(src, "a.txt"), "0123456789")
	writeFile(t, filepath.Join(src, "d", "b.txt"), "b")

	var done, total int64
	ops := New(nil, WithProgress(func(d, n int64) { done, total = d, n }))
	r := ops.Copy(context.Background(), reals(src), vfs.Real(dst))

	require.NoError(t, r.Err())
	assert.Equal(t, 1, r.Count(Done))
	assert.Equal(t, dst, r.Results[0].Target)
	info, err := os.Stat(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.EqualValues(t, 10, info.Size())
	assert.Equal(t, "b", readFile(t, filepath.Join(dst, "d", "b.txt")))
	assert.EqualValues(t, 11, total)
	assert.Equal(t, total, done)
}

func TestCopyConflictLeavesContentUnchanged(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "note.txt"), "new")
	writeFile(t, filepath.Join(root, "src", "other.txt"), "other")
	writeFile(t, filepath.Join(root, "dst", "note.txt"), "old")

	r := New(nil).Copy(context.Background(),
		reals(filepath.Join(root, "src", "note.txt"), filepath.Join(root, "src", "other.txt")),
		vfs.Real(filepath.Join(root, "dst")))

	assert.Equal(t, Failed, r.Results[0].Status)
	assert.ErrorIs(t, r.Results[0].Err, vfs.ErrConflict)
	assert.Equal(t, Done, r.Results[1].Status)
	assert.Equal(t, "old", readFile(t, filepath.Join(root, "dst", "note.txt")))
	assert.Equal(t, "new", readFile(t, filepath.Join(root, "src", "note.txt")))
	assert.Equal(t, "other", readFile(t, filepath.Join(root, "dst", "other.txt")))
}

func TestCopyDestinationRules(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.txt")
	b := filepath.Join(root, "b.txt")
	writeFile(t, a, "a")
	writeFile(t, b, "b")
	ops := New(nil)
	ctx := context.Background()

	t.Run("several sources into missing dest create it", func(t *testing.T) {
		dest := filepath.Join(root, "out")
		r := ops.Copy(ctx, reals(a, b), vfs.Real(dest))
		require.NoError(t, r.Err())
		assert.Equal(t, "a", readFile(t, filepath.Join(dest, "a.txt")))
		assert.Equal(t, "b", readFile(t, filepath.Join(dest, "b.txt")))
	})

	t.Run("single source onto existing file conflicts", func(t *testing.T) {
		r := ops.Copy(ctx, reals(a), vfs.Real(b))
		assert.ErrorIs(t, r.Err(), vfs.ErrConflict)
		assert.Equal(t, "b", readFile(t, b))
	})

	t.Run("several sources onto a file", func(t *testing.T) {
		r := ops.Copy(ctx, reals(a, b), vfs.Real(b))
		assert.Equal(t, 2, r.Count(Failed))
		assert.ErrorIs(t, r.Err(), vfs.ErrNotADirectory)
	})

	t.Run("into own subtree", func(t *testing.T) {
		dir := filepath.Join(root, "tree")
		writeFile(t, filepath.Join(dir, "x"), "x")
		r := ops.Copy(ctx, reals(dir), vfs.Real(filepath.Join(dir, "copy")))
		assert.ErrorIs(t, r.Err(), vfs.ErrUnsupported)
		assert.NoDirExists(t, filepath.Join(dir, "copy"))
	})

	t.Run("into an archive", func(t *testing.T) {
		zipPath := filepath.Join(root, "p.zip")
		writeZip(t, zipPath, map[string]string{"f": "f"})
		r := ops.Copy(ctx, reals(a), vfs.Archived(zipPath))
		assert.ErrorIs(t, r.Err(), vfs.ErrUnsupported)
	})

	t.Run("missing source", func(t *testing.T) {
		r := ops.Copy(ctx, reals(filepath.Join(root, "ghost")), vfs.Real(filepath.Join(root, "out")))
		assert.ErrorIs(t, r.Err(), vfs.ErrNotFound)
	})
}

func TestCopyPreservesAttributes(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "run.sh"), "#!/bin/sh\n")
	require.NoError(t, os.Chmod(filepath.Join(src, "run.sh"), 0o750))
	require.NoError(t, os.Chtimes(filepath.Join(src, "run.sh"), past, past))
	require.NoError(t, os.Symlink("run.sh", filepath.Join(src, "link")))
	require.NoError(t, os.Chmod(src, 0o711))
	require.NoError(t, os.Chtimes(src, past, past))

	dst := filepath.Join(root, "dst")
	r := New(nil).Copy(context.Background(), reals(src), vfs.Real(dst))
	require.NoError(t, r.Err())

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o750), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(past))

	link, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	assert.Equal(t, "run.sh", link)

	info, err = os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o711), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(past))
}

func TestCopyFromArchiveExtracts(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "pack.zip")
	writeZip(t, zipPath, map[string]string{"x/y.txt": "why", "x/z.txt": "zed"})
	dest := filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(dest, 0o755))

	r := New(nil).Copy(context.Background(), []vfs.Location{vfs.Archived(zipPath, "x")}, vfs.Real(dest))
	require.NoError(t, r.Err())
	assert.Equal(t, "why", readFile(t, filepath.Join(dest, "x", "y.txt")))
	assert.Equal(t, "zed", readFile(t, filepath.Join(dest, "x", "z.txt")))

	r = New(nil).Copy(context.Background(), []vfs.Location{vfs.Archived(zipPath, "x", "y.txt")}, vfs.Real(dest))
	require.NoError(t, r.Err())
	assert.Equal(t, "why", readFile(t, filepath.Join(dest, "y.txt")))

	r = New(nil).Copy(context.Background(), []vfs.Location{vfs.Archived(zipPath, "x", "y.txt")}, vfs.Archived(zipPath))
	assert.ErrorIs(t, r.Err(), vfs.ErrUnsupported)
}

func TestMoveRenames(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	writeFile(t, src, "a")
	dest := filepath.Join(root, "dir")
	require.NoError(t, os.Mkdir(dest, 0o755))

	r := New(nil).Move(context.Background(), reals(src), vfs.Real(dest))
	require.NoError(t, r.Err())
	assert.NoFileExists(t, src)
	assert.Equal(t, "a", readFile(t, filepath.Join(dest, "a.txt")))

	zipPath := filepath.Join(root, "p.zip")
	writeZip(t, zipPath, map[string]string{"f": "f"})
	r = New(nil).Move(context.Background(), []vfs.Location{vfs.Archived(zipPath, "f")}, vfs.Real(dest))
	assert.ErrorIs(t, r.Err(), vfs.ErrUnsupported)
}

func crossDevice(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
}

func TestMoveCrossDeviceFallsBackToCopy(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "f.txt"), "f")
	dest := filepath.Join(root, "dest")

	ops := New(nil)
	ops.rename = crossDevice
	r := ops.Move(context.Background(), reals(src), vfs.Real(dest))
	require.NoError(t, r.Err())
	assert.NoDirExists(t, src)
	assert.Equal(t, "f", readFile(t, filepath.Join(dest, "f.txt")))
}

func TestMoveCrossDevicePartial(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "f.txt")
	writeFile(t, src, "data")
	dest := filepath.Join(root, "moved.txt")

	ops := New(nil)
	ops.rename = crossDevice
	ops.remove = func(path string) error {
		return &fs.PathError{Op: "remove", Path: path, Err: syscall.EACCES}
	}
	r := ops.Move(context.Background(), reals(src), vfs.Real(dest))

	require.Equal(t, Failed, r.Results[0].Status)
	assert.ErrorIs(t, r.Results[0].Err, vfs.ErrPartialMove)
	assert.Equal(t, src, vfs.FailedPath(r.Results[0].Err))
	assert.Equal(t, "data", readFile(t, src))
	assert.Equal(t, "data", readFile(t, dest))
}

func TestDeleteStopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()
	one := filepath.Join(root, "one")
	two := filepath.Join(root, "two")
	three := filepath.Join(root, "three.txt")
	writeFile(t, filepath.Join(one, "x"), "x")
	writeFile(t, filepath.Join(two, "y"), "y")
	writeFile(t, three, "z")

	ops := New(nil)
	ops.remove = func(path string) error {
		if path == filepath.Join(two, "y") {
			return &fs.PathError{Op: "remove", Path: path, Err: syscall.EACCES}
		}
		return os.Remove(path)
	}
	r := ops.Delete(context.Background(), reals(one, two, three))

	assert.Equal(t, Done, r.Results[0].Status)
	assert.Equal(t, Failed, r.Results[1].Status)
	assert.ErrorIs(t, r.Results[1].Err, vfs.ErrPermissionDenied)
	assert.Equal(t, filepath.Join(two, "y"), vfs.FailedPath(r.Results[1].Err))
	assert.Equal(t, Skipped, r.Results[2].Status)
	assert.NoDirExists(t, one)
	assert.FileExists(t, three)
}

func TestDeleteRejectsBeforeMutation(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "keep.txt")
	writeFile(t, keep, "k")
	zipPath := filepath.Join(root, "p.zip")
	writeZip(t, zipPath, map[string]string{"f": "f"})
	ops := New(nil)

	r := ops.Delete(context.Background(), []vfs.Location{vfs.Real(keep), vfs.Archived(zipPath, "f")})
	assert.Equal(t, 2, r.Count(Failed))
	assert.ErrorIs(t, r.Err(), vfs.ErrUnsupported)
	assert.FileExists(t, keep)

	r = ops.Delete(context.Background(), reals(keep, filepath.Join(root, "ghost")))
	assert.Equal(t, Skipped, r.Results[0].Status)
	assert.ErrorIs(t, r.Results[1].Err, vfs.ErrNotFound)
	assert.FileExists(t, keep)
}

func TestMkdir(t *testing.T) {
	root := t.TempDir()
	ops := New(nil)
	ctx := context.Background()

	loc, err := ops.Mkdir(ctx, vfs.Real(root), "a/b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b"), loc.Path())
	assert.DirExists(t, loc.Path())

	_, err = ops.Mkdir(ctx, vfs.Real(root), "a")
	assert.ErrorIs(t, err, vfs.ErrAlreadyExists)
	_, err = ops.Mkdir(ctx, vfs.Real(root), "../escape")
	assert.ErrorIs(t, err, vfs.ErrUnsupported)
	_, err = ops.Mkdir(ctx, vfs.Archived(filepath.Join(root, "p.zip")), "x")
	assert.ErrorIs(t, err, vfs.ErrUnsupported)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("755")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), m)

	m, err = ParseMode("4711")
	require.NoError(t, err)
	assert.Equal(t, fs.ModeSetuid|0o711, m)
	assert.Equal(t, "4711", FormatMode(m))

	for _, bad := range []string{"", "rwx", "888", "17777"} {
		_, err := ParseMode(bad)
		assert.Error(t, err, bad)
	}
}

func TestChmod(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	writeFile(t, a, "a")
	writeFile(t, b, "b")
	zipPath := filepath.Join(root, "p.zip")
	writeZip(t, zipPath, map[string]string{"f": "f"})

	srcs := append(reals(a, filepath.Join(root, "ghost")), vfs.Archived(zipPath, "f"), vfs.Real(b))
	r := New(nil, WithChmodWorkers(2)).Chmod(context.Background(), srcs, 0o600)

	assert.Equal(t, Done, r.Results[0].Status)
	assert.ErrorIs(t, r.Results[1].Err, vfs.ErrNotFound)
	assert.ErrorIs(t, r.Results[2].Err, vfs.ErrUnsupported)
	assert.Equal(t, Done, r.Results[3].Status)
	for _, p := range []string{a, b} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A")
	b := filepath.Join(root, "B")
	writeFile(t, filepath.Join(a, "same.txt"), "same")
	writeFile(t, filepath.Join(a, "changed.txt"), "new content")
	writeFile(t, filepath.Join(a, "tree", "leaf.txt"), "leaf")
	require.NoError(t, os.Symlink("same.txt", filepath.Join(a, "link")))
	writeFile(t, filepath.Join(b, "changed.txt"), "old")
	writeFile(t, filepath.Join(b, "extra.txt"), "extra")
	require.NoError(t, os.Chtimes(filepath.Join(a, "same.txt"), past, past))
	writeFile(t, filepath.Join(b, "same.txt"), "same")
	require.NoError(t, os.Chtimes(filepath.Join(b, "same.txt"), past, past))

	ops := New(nil)
	ctx := context.Background()
	plan, err := ops.PlanSync(ctx, vfs.Real(a), vfs.Real(b))
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Pending())

	report, err := ops.ApplySync(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Copied)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.FailedPaths)
	assert.Equal(t, "new content", readFile(t, filepath.Join(b, "changed.txt")))
	assert.Equal(t, "leaf", readFile(t, filepath.Join(b, "tree", "leaf.txt")))
	assert.Equal(t, "extra", readFile(t, filepath.Join(b, "extra.txt")))

	again, err := ops.Sync(ctx, vfs.Real(a), vfs.Real(b))
	require.NoError(t, err)
	assert.Zero(t, again.Copied)
	assert.Empty(t, again.FailedPaths)
}

func TestSyncReplacesKindMismatch(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A")
	b := filepath.Join(root, "B")
	writeFile(t, filepath.Join(a, "item", "inner.txt"), "inner")
	writeFile(t, filepath.Join(b, "item"), "a file in the way")

	report, err := New(nil).Sync(context.Background(), vfs.Real(a), vfs.Real(b))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Copied)
	assert.Equal(t, "inner", readFile(t, filepath.Join(b, "item", "inner.txt")))
}

func TestSyncRejectsArchives(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "p.zip")
	writeZip(t, zipPath, map[string]string{"f": "f"})
	_, err := New(nil).PlanSync(context.Background(), vfs.Archived(zipPath), vfs.Real(root))
	assert.ErrorIs(t, err, vfs.ErrUnsupported)
}

func TestDispatcherSerialisesOverlapping(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	d := NewDispatcher()
	ctx := context.Background()

	_, release, err := d.Acquire(ctx, vfs.Real(root))
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		_, rel, err := d.Acquire(ctx, vfs.Real(filepath.Join(root, "sub")))
		if assert.NoError(t, err) {
			close(acquired)
			rel()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("overlapping operation ran concurrently")
	case <-time.After(50 * time.Millisecond):
	}

	_, rel, err := d.Acquire(ctx, vfs.Real(other))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Running())
	rel()

	release()
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("waiting operation never ran")
	}

	_, release, err = d.Acquire(ctx, vfs.Real(root))
	require.NoError(t, err)
	defer release()
	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, _, err = d.Acquire(tctx, vfs.Archived(filepath.Join(root, "p.zip")))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMoveSameBaseNameConflicts(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a", "x.txt")
	b := filepath.Join(root, "b", "x.txt")
	writeFile(t, a, "from-a")
	writeFile(t, b, "from-b")
	dest := filepath.Join(root, "dst")
	require.NoError(t, os.Mkdir(dest, 0o755))

	r := New(nil).Move(context.Background(), reals(a, b), vfs.Real(dest))
	assert.Equal(t, Done, r.Results[0].Status)
	assert.Equal(t, Failed, r.Results[1].Status)
	assert.ErrorIs(t, r.Results[1].Err, vfs.ErrConflict)
	assert.Equal(t, "from-a", readFile(t, filepath.Join(dest, "x.txt")))
	assert.Equal(t, "from-b", readFile(t, b))
}

func TestRenameNeverReplaces(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	dst := filepath.Join(root, "dst.txt")
	writeFile(t, src, "src")
	writeFile(t, dst, "dst")

	err := renameNoReplace(src, dst)
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.Equal(t, "dst", readFile(t, dst))
	assert.Equal(t, "src", readFile(t, src))

	// A target that appears after planning still conflicts at execution.
	ops := New(nil)
	plan := &Plan{Steps: []Step{{Kind: StepRename, Source: vfs.Real(src), Target: dst}}}
	err = ops.execute(context.Background(), plan, &progress{})
	assert.ErrorIs(t, err, vfs.ErrConflict)
	assert.Equal(t, "dst", readFile(t, dst))

	require.NoError(t, renameNoReplace(src, filepath.Join(root, "new.txt")))
	assert.NoFileExists(t, src)
}

func TestCopySameBaseNameConflicts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "x.txt"), "from-a")
	writeFile(t, filepath.Join(root, "b", "x.txt"), "from-b")
	writeFile(t, filepath.Join(root, "a", "tree", "one"), "1")
	writeFile(t, filepath.Join(root, "b", "tree", "two"), "2")
	dest := filepath.Join(root, "dst")
	require.NoError(t, os.Mkdir(dest, 0o755))

	sources := reals(
		filepath.Join(root, "a", "x.txt"),
		filepath.Join(root, "b", "x.txt"),
		filepath.Join(root, "a", "tree"),
		filepath.Join(root, "b", "tree"),
	)
	r := New(nil).Copy(context.Background(), sources, vfs.Real(dest))
	assert.Equal(t, 2, r.Count(Done))
	for _, i := range []int{1, 3} {
		assert.Equal(t, Failed, r.Results[i].Status)
		assert.ErrorIs(t, r.Results[i].Err, vfs.ErrConflict)
	}
	assert.Equal(t, "from-a", readFile(t, filepath.Join(dest, "x.txt")))
	assert.FileExists(t, filepath.Join(dest, "tree", "one"))
	assert.NoFileExists(t, filepath.Join(dest, "tree", "two"))
}

func TestMissingDestinationNotCreatedWhenAllRejected(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "out")
	sources := reals(filepath.Join(root, "ghost1"), filepath.Join(root, "ghost2"))

	r := New(nil).Copy(context.Background(), sources, vfs.Real(dest))
	assert.Equal(t, 2, r.Count(Failed))
	assert.NoDirExists(t, dest)

	r = New(nil).Move(context.Background(), sources, vfs.Real(dest))
	assert.Equal(t, 2, r.Count(Failed))
	assert.NoDirExists(t, dest)
}

func TestMkdirRequiresParent(t *testing.T) {
	root := t.TempDir()
	ops := New(nil)
	ctx := context.Background()

	gone := filepath.Join(root, "gone")
	_, err := ops.Mkdir(ctx, vfs.Real(gone), "new")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
	assert.NoDirExists(t, gone)

	file := filepath.Join(root, "file")
	writeFile(t, file, "x")
	_, err = ops.Mkdir(ctx, vfs.Real(file), "new")
	assert.ErrorIs(t, err, vfs.ErrNotADirectory)
}

func TestCancelledOperationsAreTyped(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	writeFile(t, src, "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ops := New(nil)

	r := ops.Copy(ctx, reals(src), vfs.Real(filepath.Join(root, "b.txt")))
	assert.ErrorIs(t, r.Results[0].Err, vfs.ErrCancelled)
	assert.ErrorIs(t, r.Results[0].Err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(root, "b.txt"))

	plan := &Plan{Steps: []Step{{Kind: StepMkdir, Target: filepath.Join(root, "d")}}}
	err := ops.execute(ctx, plan, &progress{})
	assert.ErrorIs(t, err, vfs.ErrCancelled)
	assert.Equal(t, filepath.Join(root, "d"), vfs.FailedPath(err))

	_, release, err := ops.Dispatcher().Acquire(context.Background(), vfs.Real(root))
	require.NoError(t, err)
	defer release()
	r = ops.Delete(ctx, reals(src))
	assert.ErrorIs(t, r.Err(), vfs.ErrCancelled)
	assert.FileExists(t, src)
}
