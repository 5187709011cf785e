package fileops

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

type SyncAction int

const (
	SyncSkip SyncAction = iota
	SyncCopy
)

func (a SyncAction) String() string {
	if a == SyncCopy {
		return "copy"
	}
	return "skip"
}

// SyncItem is the decision for one top-level entry of the source side.
type SyncItem struct {
	Name   string
	Action SyncAction
	Reason string
	Err    error
}

// SyncPlan is the comparison of two directories, ready to be confirmed and
// applied.
type SyncPlan struct {
	Active   vfs.Location
	Inactive vfs.Location
	Items    []SyncItem
}

// Pending counts the entries that would be copied.
func (p *SyncPlan) Pending() int {
	n := 0
	for _, it := range p.Items {
		if it.Action == SyncCopy {
			n++
		}
	}
	return n
}

type SyncReport struct {
	Copied      int
	Skipped     int
	Failed      int
	FailedPaths []string
	Entries     []SyncItem
}

// Sync makes inactive mirror the entries of active. Extra entries of
// inactive are never removed.
func (o *Ops) Sync(ctx context.Context, active, inactive vfs.Location) (*SyncReport, error) {
	plan, err := o.PlanSync(ctx, active, inactive)
	if err != nil {
		return nil, err
	}
	return o.ApplySync(ctx, plan)
}

// PlanSync compares each entry of active with the same name in inactive.
// Entries that are missing, of another kind, or differ in size or
// modification second are planned for copying.
func (o *Ops) PlanSync(ctx context.Context, active, inactive vfs.Location) (*SyncPlan, error) {
	for _, l := range []vfs.Location{active, inactive} {
		if l.IsArchived() {
			return nil, vfs.NewError("sync", l.String(), vfs.ErrUnsupported, errors.New("archives are read-only"))
		}
	}
	if active.Overlaps(inactive) {
		return nil, vfs.NewError("sync", inactive.Path(), vfs.ErrUnsupported, errors.New("directories overlap"))
	}
	entries, err := vfs.ListDir(active.Path())
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(inactive.Path()); err != nil {
		return nil, vfs.Classify("sync", inactive.Path(), err)
	} else if !info.IsDir() {
		return nil, vfs.NewError("sync", inactive.Path(), vfs.ErrNotADirectory, nil)
	}

	plan := &SyncPlan{Active: active, Inactive: inactive, Items: make([]SyncItem, len(entries))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.syncWorkers)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return vfs.Classify("sync", active.Path(), err)
			}
			plan.Items[i] = compare(filepath.Join(active.Path(), e.Name), filepath.Join(inactive.Path(), e.Name))
			plan.Items[i].Name = e.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	o.log.Debug("sync planned",
		zap.Stringer("active", active),
		zap.Stringer("inactive", inactive),
		zap.Int("entries", len(plan.Items)),
		zap.Int("pending", plan.Pending()),
	)
	return plan, nil
}

func compare(src, dst string) SyncItem {
	si, err := os.Lstat(src)
	if err != nil {
		return SyncItem{Action: SyncCopy, Reason: "unreadable", Err: vfs.Classify("sync", src, err)}
	}
	di, err := os.Lstat(dst)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return SyncItem{Action: SyncCopy, Reason: "missing"}
	case err != nil:
		return SyncItem{Action: SyncCopy, Reason: "unreadable"}
	case si.Mode().Type() != di.Mode().Type():
		return SyncItem{Action: SyncCopy, Reason: "kind differs"}
	}
	if si.Mode()&fs.ModeSymlink != 0 {
		a, _ := os.Readlink(src)
		b, _ := os.Readlink(dst)
		if a != b {
			return SyncItem{Action: SyncCopy, Reason: "link differs"}
		}
		return SyncItem{Action: SyncSkip, Reason: "identical"}
	}
	if !si.IsDir() && si.Size() != di.Size() {
		return SyncItem{Action: SyncCopy, Reason: "size differs"}
	}
	if si.ModTime().Unix() != di.ModTime().Unix() {
		return SyncItem{Action: SyncCopy, Reason: "time differs"}
	}
	return SyncItem{Action: SyncSkip, Reason: "identical"}
}

// ApplySync copies the planned entries, overwriting what is in the way.
// A failing entry is recorded and the others still run.
func (o *Ops) ApplySync(ctx context.Context, plan *SyncPlan) (*SyncReport, error) {
	id, release, err := o.dispatch.Acquire(ctx, plan.Active, plan.Inactive)
	if err != nil {
		return nil, vfs.Classify("sync", plan.Inactive.Path(), err)
	}
	defer release()
	log := o.log.With(zap.String("op", "sync"), zap.Stringer("id", id))

	report := &SyncReport{Entries: make([]SyncItem, len(plan.Items))}
	prog := o.newProgress(int64(plan.Pending()))
	for i, it := range plan.Items {
		report.Entries[i] = it
		if it.Action != SyncCopy {
			report.Skipped++
			continue
		}
		var err error
		if cerr := ctx.Err(); cerr != nil {
			err = vfs.Classify("sync", filepath.Join(plan.Inactive.Path(), it.Name), cerr)
		} else {
			err = syncEntry(filepath.Join(plan.Active.Path(), it.Name), filepath.Join(plan.Inactive.Path(), it.Name))
		}
		prog.add(1)
		if err != nil {
			report.Failed++
			report.Entries[i].Err = err
			p := vfs.FailedPath(err)
			if p == "" {
				p = filepath.Join(plan.Inactive.Path(), it.Name)
			}
			report.FailedPaths = append(report.FailedPaths, p)
			log.Warn("sync entry failed", zap.String("name", it.Name), zap.Error(err))
			continue
		}
		report.Copied++
	}
	log.Info("sync finished",
		zap.Int("copied", report.Copied),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// syncEntry copies src over dst recursively. Files are replaced through a
// pending sibling file so readers never see a partial file.
func syncEntry(src, dst string) error {
	si, err := os.Lstat(src)
	if err != nil {
		return vfs.Classify("sync", src, err)
	}
	di, err := os.Lstat(dst)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return vfs.Classify("sync", dst, err)
	}
	if exists && (si.Mode().Type() != di.Mode().Type() || si.Mode()&fs.ModeSymlink != 0) {
		if err := os.RemoveAll(dst); err != nil {
			return vfs.Classify("sync", dst, err)
		}
		exists = false
	}

	switch {
	case si.Mode()&fs.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return vfs.Classify("sync", src, err)
		}
		if err := os.Symlink(link, dst); err != nil {
			return vfs.Classify("sync", dst, err)
		}
		return nil
	case si.IsDir():
		if !exists {
			if err := os.Mkdir(dst, 0o700); err != nil {
				return vfs.Classify("sync", dst, err)
			}
		}
		children, err := os.ReadDir(src)
		if err != nil {
			return vfs.Classify("sync", src, err)
		}
		for _, c := range children {
			if err := syncEntry(filepath.Join(src, c.Name()), filepath.Join(dst, c.Name())); err != nil {
				return err
			}
		}
		finishDir(Step{Target: dst, Mode: fileMode(si), ModTime: si.ModTime()})
		return nil
	case si.Mode().IsRegular():
		return replaceFile(src, dst, si)
	}
	return vfs.NewError("sync", src, vfs.ErrUnsupported, nil)
}

func replaceFile(src, dst string, si fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return vfs.Classify("sync", src, err)
	}
	defer in.Close()
	pf, err := renameio.NewPendingFile(dst,
		renameio.WithTempDir(filepath.Dir(dst)),
		renameio.WithStaticPermissions(fileMode(si)),
	)
	if err != nil {
		return vfs.Classify("sync", dst, err)
	}
	defer pf.Cleanup()

	_, err = io.Copy(pf, in)
	if err == nil {
		err = os.Chtimes(pf.Name(), si.ModTime(), si.ModTime())
	}
	if err == nil {
		err = pf.CloseAtomicallyReplace()
	}
	if err != nil {
		return vfs.Classify("sync", dst, err)
	}
	return nil
}
