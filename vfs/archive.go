package vfs

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

var errChecksum = errors.New("checksum mismatch")

// Index is the parsed central directory of one zip archive, exposed as a
// read-only hierarchy. It is immutable once built.
type Index struct {
	path    string
	modTime time.Time
	size    int64
	dirs    map[string]*dirNode
	files   map[string]*fileNode
}

type dirNode struct {
	children map[string]struct{}
	modTime  time.Time
}

type fileNode struct {
	offset  int64
	csize   int64
	usize   int64
	crc     uint32
	method  uint16
	modTime time.Time
	mode    fs.FileMode
	hasMode bool
}

// OpenArchive parses the archive at path.
func OpenArchive(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Classify("open archive", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, Classify("open archive", path, err)
	}
	if info.IsDir() {
		return nil, NewError("open archive", path, ErrInvalidArchive, nil)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, NewError("open archive", path, ErrInvalidArchive, err)
	}

	idx := &Index{
		path:    path,
		modTime: info.ModTime(),
		size:    info.Size(),
		dirs:    map[string]*dirNode{"": {children: map[string]struct{}{}}},
		files:   make(map[string]*fileNode),
	}
	for _, zf := range zr.File {
		segs := SplitInner(zf.Name)
		if len(segs) == 0 {
			continue
		}
		if slices.Contains(segs, "..") {
			return nil, NewError("open archive", path, ErrInvalidArchive, fmt.Errorf("entry %q escapes the archive root", zf.Name))
		}
		for i := range segs {
			idx.dir(strings.Join(segs[:i], "/")).children[segs[i]] = struct{}{}
		}
		key := strings.Join(segs, "/")
		if strings.HasSuffix(zf.Name, "/") || zf.Mode().IsDir() {
			idx.dir(key).modTime = headerTime(&zf.FileHeader)
			continue
		}
		if !supportedMethod(zf.Method) {
			return nil, NewError("open archive", path, ErrUnsupportedCompression, fmt.Errorf("entry %q uses method %d", zf.Name, zf.Method))
		}
		off, err := zf.DataOffset()
		if err != nil {
			return nil, NewError("open archive", path, ErrInvalidArchive, err)
		}
		idx.files[key] = &fileNode{
			offset:  off,
			csize:   int64(zf.CompressedSize64),
			usize:   int64(zf.UncompressedSize64),
			crc:     zf.CRC32,
			method:  zf.Method,
			modTime: headerTime(&zf.FileHeader),
			mode:    zf.Mode().Perm(),
			hasMode: zf.ExternalAttrs != 0,
		}
	}
	// A name used both as a file and as a directory prefix is a directory.
	for key := range idx.files {
		if _, ok := idx.dirs[key]; ok {
			delete(idx.files, key)
		}
	}
	return idx, nil
}

func (idx *Index) dir(key string) *dirNode {
	d, ok := idx.dirs[key]
	if !ok {
		d = &dirNode{children: make(map[string]struct{})}
		idx.dirs[key] = d
	}
	return d
}

func supportedMethod(m uint16) bool {
	switch m {
	case zip.Store, zip.Deflate, zstd.ZipMethodWinZip, zstd.ZipMethodPKWare:
		return true
	}
	return false
}

func headerTime(h *zip.FileHeader) time.Time {
	if h.ModifiedDate == 0 && h.Modified.IsZero() {
		return time.Time{}
	}
	return h.Modified
}

// Path returns the real path of the archive file.
func (idx *Index) Path() string { return idx.path }

// ModTime is the archive file's modification time when the index was built.
func (idx *Index) ModTime() time.Time { return idx.modTime }

// Dirs returns every directory path in the index except the root, sorted.
func (idx *Index) Dirs() []string {
	out := make([]string, 0, len(idx.dirs))
	for k := range idx.dirs {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Files returns every file path in the index, sorted.
func (idx *Index) Files() []string {
	out := make([]string, 0, len(idx.files))
	for k := range idx.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// List returns the children of an internal directory.
func (idx *Index) List(inner []string) ([]Entry, error) {
	key := strings.Join(inner, "/")
	if _, ok := idx.files[key]; ok {
		return nil, NewError("list", idx.display(key), ErrNotADirectory, nil)
	}
	d, ok := idx.dirs[key]
	if !ok {
		return nil, NewError("list", idx.display(key), ErrNotFound, nil)
	}
	entries := make([]Entry, 0, len(d.children))
	for name := range d.children {
		e, err := idx.stat(path.Join(key, name), name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Stat describes one internal path. The root is reported as a directory
// named after the archive file.
func (idx *Index) Stat(inner []string) (Entry, error) {
	if len(inner) == 0 {
		return Entry{Name: filepath.Base(idx.path), Kind: Directory, ModTime: idx.modTime}, nil
	}
	key := strings.Join(inner, "/")
	return idx.stat(key, inner[len(inner)-1])
}

func (idx *Index) stat(key, name string) (Entry, error) {
	if d, ok := idx.dirs[key]; ok {
		return Entry{Name: name, Kind: Directory, ModTime: d.modTime}, nil
	}
	if f, ok := idx.files[key]; ok {
		return Entry{Name: name, Kind: File, Size: f.usize, ModTime: f.modTime, Mode: f.mode, HasMode: f.hasMode}, nil
	}
	return Entry{}, NewError("stat", idx.display(key), ErrNotFound, nil)
}

// Open streams the decompressed contents of a file record. The reader
// fails with ErrExtractionFailed on a short read or CRC mismatch.
func (idx *Index) Open(inner []string) (io.ReadCloser, error) {
	key := strings.Join(inner, "/")
	node, ok := idx.files[key]
	if !ok {
		if _, isDir := idx.dirs[key]; isDir {
			return nil, NewError("open", idx.display(key), ErrUnsupported, errors.New("is a directory"))
		}
		return nil, NewError("open", idx.display(key), ErrNotFound, nil)
	}
	f, err := os.Open(idx.path)
	if err != nil {
		return nil, NewError("open", idx.display(key), ErrExtractionFailed, err)
	}
	sr := io.NewSectionReader(f, node.offset, node.csize)
	var rc io.ReadCloser
	switch node.method {
	case zip.Store:
		rc = io.NopCloser(sr)
	case zip.Deflate:
		rc = flate.NewReader(sr)
	default:
		rc = zstd.ZipDecompressor()(sr)
	}
	return &checksumReader{
		rc:   rc,
		file: f,
		hash: crc32.NewIEEE(),
		want: node.crc,
		size: node.usize,
		name: idx.display(key),
	}, nil
}

// Extract decompresses one file record to dest. The data is written to a
// pending file beside dest and renamed into place only once verified, so
// a failure leaves nothing at dest. An existing dest is replaced.
func (idx *Index) Extract(inner []string, dest string) error {
	key := strings.Join(inner, "/")
	rc, err := idx.Open(inner)
	if err != nil {
		return err
	}
	defer rc.Close()

	node := idx.files[key]
	mode := fs.FileMode(0o644)
	if node.hasMode && node.mode != 0 {
		mode = node.mode
	}
	pf, err := renameio.NewPendingFile(dest,
		renameio.WithTempDir(filepath.Dir(dest)),
		renameio.WithStaticPermissions(mode),
	)
	if err != nil {
		return NewError("extract", dest, ErrExtractionFailed, err)
	}
	defer pf.Cleanup()

	if _, err := io.Copy(pf, rc); err != nil {
		return NewError("extract", dest, ErrExtractionFailed, unwrapKind(err))
	}
	if !node.modTime.IsZero() {
		if err := os.Chtimes(pf.Name(), node.modTime, node.modTime); err != nil {
			return NewError("extract", dest, ErrExtractionFailed, err)
		}
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return NewError("extract", dest, ErrExtractionFailed, err)
	}
	return nil
}

func (idx *Index) display(key string) string {
	return idx.path + "#/" + key
}

// unwrapKind returns the cause of a checksumReader failure so extraction
// errors do not nest two ErrExtractionFailed wrappers.
func unwrapKind(err error) error {
	var pe *PathError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}
	return err
}

type checksumReader struct {
	rc   io.ReadCloser
	file *os.File
	hash hash.Hash32
	want uint32
	size int64
	read int64
	name string
	err  error
}

func (r *checksumReader) Read(b []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.rc.Read(b)
	r.hash.Write(b[:n])
	r.read += int64(n)
	if r.read > r.size {
		err = errChecksum
	}
	switch {
	case err == io.EOF:
		if r.read != r.size {
			err = io.ErrUnexpectedEOF
		} else if r.hash.Sum32() != r.want {
			err = errChecksum
		}
	case err == nil && r.read == r.size && r.hash.Sum32() != r.want:
		err = errChecksum
	}
	if err != nil && err != io.EOF {
		r.err = NewError("read", r.name, ErrExtractionFailed, err)
		return n, r.err
	}
	return n, err
}

func (r *checksumReader) Close() error {
	err := r.rc.Close()
	if ferr := r.file.Close(); err == nil {
		err = ferr
	}
	return err
}
