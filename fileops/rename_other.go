//go:build !linux

package fileops

func renameNoReplace(oldpath, newpath string) error {
	return renameChecked(oldpath, newpath)
}
