package fileops

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// ParseMode reads an octal permission string such as "755" or "0644".
// Values above 07777 are rejected.
func ParseMode(s string) (fs.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: must be octal", s)
	}
	if v > 0o7777 {
		return 0, fmt.Errorf("invalid mode %q: out of range", s)
	}
	m := fs.FileMode(v & 0o777)
	if v&0o4000 != 0 {
		m |= fs.ModeSetuid
	}
	if v&0o2000 != 0 {
		m |= fs.ModeSetgid
	}
	if v&0o1000 != 0 {
		m |= fs.ModeSticky
	}
	return m, nil
}

// FormatMode is the inverse of ParseMode.
func FormatMode(m fs.FileMode) string {
	v := uint32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		v |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		v |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		v |= 0o1000
	}
	return fmt.Sprintf("%04o", v)
}

// Chmod sets mode on every source. Sources are independent: one failure
// does not stop the others.
func (o *Ops) Chmod(ctx context.Context, sources []vfs.Location, mode fs.FileMode) *Report {
	r, log, release := o.begin(ctx, "chmod", sources)
	if release == nil {
		return r
	}
	defer release()
	defer o.finish(log, r)

	prog := o.newProgress(int64(len(sources)))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.chmodWorkers)
	for i, src := range sources {
		r.Results[i].Target = src.Path()
		g.Go(func() error {
			defer prog.add(1)
			if err := gctx.Err(); err != nil {
				r.Results[i].Err = vfs.Classify("chmod", src.String(), err)
				return nil
			}
			if src.IsArchived() {
				r.fail(i, vfs.NewError("chmod", src.String(), vfs.ErrUnsupported, nil))
				return nil
			}
			if err := os.Chmod(src.Path(), mode); err != nil {
				r.fail(i, vfs.Classify("chmod", src.Path(), err))
				return nil
			}
			r.Results[i].Status = Done
			return nil
		})
	}
	_ = g.Wait()
	return r
}
