package fileops

import (
	"io/fs"
	"os"
)

// renameChecked refuses to replace an existing newpath. The check and the
// rename are not atomic; it backs renameNoReplace where the kernel cannot.
func renameChecked(oldpath, newpath string) error {
	if _, err := os.Lstat(newpath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrExist}
	}
	return os.Rename(oldpath, newpath)
}
