package fileops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// destination is where the sources of a copy or move land: inside path
// when dir is set, or at path itself for a single source. A missing
// directory for several sources is only created once planning is done.
type destination struct {
	path   string
	dir    bool
	create bool
}

func (d destination) target(src vfs.Location) string {
	if d.dir {
		return filepath.Join(d.path, src.Base())
	}
	return d.path
}

// prepare creates the destination directory when it was missing.
func (d destination) prepare() error {
	if !d.create {
		return nil
	}
	if err := os.Mkdir(d.path, 0o755); err != nil {
		return vfs.Classify("mkdir", d.path, err)
	}
	return nil
}

// resolveDest applies the target rules: an existing directory receives the
// sources by name, a missing path becomes the single target or a new
// directory for several sources, and an existing file is a conflict.
func resolveDest(op string, dest vfs.Location, n int) (destination, error) {
	if dest.IsArchived() {
		return destination{}, vfs.NewError(op, dest.String(), vfs.ErrUnsupported, nil)
	}
	d := destination{path: dest.Path()}
	info, err := os.Stat(d.path)
	switch {
	case err == nil && info.IsDir():
		d.dir = true
	case err == nil && n == 1:
		return d, vfs.NewError(op, d.path, vfs.ErrConflict, nil)
	case err == nil:
		return d, vfs.NewError(op, d.path, vfs.ErrNotADirectory, nil)
	case !errors.Is(err, fs.ErrNotExist):
		return d, vfs.Classify(op, d.path, err)
	case n > 1:
		d.dir, d.create = true, true
	}
	return d, nil
}

// claims holds the targets promised to earlier sources of one batch, so two
// sources sharing a base name cannot both land on the same path.
type claims map[string]vfs.Location

func (c claims) claim(op string, src vfs.Location, target string) error {
	if prev, ok := c[target]; ok {
		return vfs.NewError(op, target, vfs.ErrConflict, fmt.Errorf("already the target of %s", prev))
	}
	c[target] = src
	return nil
}

// checkTarget rejects targets that already exist and copies of a directory
// into itself.
func checkTarget(op string, src vfs.Location, target string) error {
	if _, err := os.Lstat(target); err == nil {
		return vfs.NewError(op, target, vfs.ErrConflict, nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return vfs.Classify(op, target, err)
	}
	if !src.IsArchived() && src.Contains(vfs.Real(target)) {
		return vfs.NewError(op, target, vfs.ErrUnsupported, errors.New("target is inside the source"))
	}
	return nil
}

// Copy copies every source into dest. Archived sources are extracted.
// A source whose target exists fails with ErrConflict and the rest go on.
func (o *Ops) Copy(ctx context.Context, sources []vfs.Location, dest vfs.Location) *Report {
	r, log, release := o.begin(ctx, "copy", sources, dest)
	if release == nil {
		return r
	}
	defer release()
	defer o.finish(log, r)

	d, err := resolveDest("copy", dest, len(sources))
	if err != nil {
		return r.failAll(err)
	}
	plans := make([]*Plan, len(sources))
	claimed := make(claims, len(sources))
	var total int64
	for i, src := range sources {
		target := d.target(src)
		r.Results[i].Target = target
		plan, err := o.prepareCopy(src, target)
		if err == nil {
			err = claimed.claim("copy", src, target)
		}
		if err != nil {
			r.fail(i, err)
			continue
		}
		plans[i] = plan
		total += plan.Bytes
	}
	if !o.prepareDest(r, d, plans) {
		return r
	}

	prog := o.newProgress(total)
	for i, plan := range plans {
		if plan == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			r.Results[i].Err = vfs.Classify("copy", sources[i].String(), err)
			continue
		}
		if err := o.execute(ctx, plan, prog); err != nil {
			r.fail(i, err)
			continue
		}
		r.Results[i].Status = Done
		log.Debug("copied", zap.Stringer("source", sources[i]), zap.String("target", r.Results[i].Target))
	}
	return r
}

// prepareDest creates a missing destination directory once at least one
// source survived planning. On failure every planned source fails.
func (o *Ops) prepareDest(r *Report, d destination, plans []*Plan) bool {
	planned := slices.ContainsFunc(plans, func(p *Plan) bool { return p != nil })
	if !planned {
		return false
	}
	if err := d.prepare(); err != nil {
		for i, p := range plans {
			if p != nil {
				r.fail(i, err)
			}
		}
		return false
	}
	return true
}

func (o *Ops) prepareCopy(src vfs.Location, target string) (*Plan, error) {
	if src.IsArchiveRoot() {
		return nil, vfs.NewError("copy", src.String(), vfs.ErrUnsupported, nil)
	}
	if err := checkTarget("copy", src, target); err != nil {
		return nil, err
	}
	return o.planCopy(src, target)
}

// Move renames every source into dest. A rename across filesystems falls
// back once to copy then delete; if the delete fails the source is reported
// with ErrPartialMove and both copies stay in place.
func (o *Ops) Move(ctx context.Context, sources []vfs.Location, dest vfs.Location) *Report {
	r, log, release := o.begin(ctx, "move", sources, dest)
	if release == nil {
		return r
	}
	defer release()
	defer o.finish(log, r)

	d, err := resolveDest("move", dest, len(sources))
	if err != nil {
		return r.failAll(err)
	}
	plans := make([]*Plan, len(sources))
	claimed := make(claims, len(sources))
	for i, src := range sources {
		target := d.target(src)
		r.Results[i].Target = target
		plan, err := prepareMove(src, target)
		if err == nil {
			err = claimed.claim("move", src, target)
		}
		if err != nil {
			r.fail(i, err)
			continue
		}
		plans[i] = plan
	}
	if !o.prepareDest(r, d, plans) {
		return r
	}

	prog := o.newProgress(int64(len(sources)))
	for i, plan := range plans {
		if plan == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			r.Results[i].Err = vfs.Classify("move", sources[i].String(), err)
			continue
		}
		err := o.execute(ctx, plan, prog)
		if errors.Is(err, vfs.ErrCrossDevice) {
			log.Debug("rename crosses devices, copying", zap.Stringer("source", sources[i]))
			err = o.moveByCopy(ctx, sources[i].Path(), r.Results[i].Target)
		}
		prog.add(1)
		if err != nil {
			r.fail(i, err)
			continue
		}
		r.Results[i].Status = Done
	}
	return r
}

func prepareMove(src vfs.Location, target string) (*Plan, error) {
	if src.IsArchived() {
		return nil, vfs.NewError("move", src.String(), vfs.ErrUnsupported, errors.New("archives are read-only"))
	}
	if _, err := os.Lstat(src.Path()); err != nil {
		return nil, vfs.Classify("move", src.Path(), err)
	}
	if err := checkTarget("move", src, target); err != nil {
		return nil, err
	}
	return &Plan{Steps: []Step{{Kind: StepRename, Source: src, Target: target}}}, nil
}

func (o *Ops) moveByCopy(ctx context.Context, src, target string) error {
	quiet := &progress{}
	copyPlan := &Plan{}
	if err := planRealCopy(copyPlan, src, target); err != nil {
		return err
	}
	if err := o.execute(ctx, copyPlan, quiet); err != nil {
		return err
	}
	deletePlan := &Plan{}
	err := planDelete(deletePlan, src)
	if err == nil {
		err = o.execute(ctx, deletePlan, quiet)
	}
	if err != nil {
		p, cause := src, err
		var pe *vfs.PathError
		if errors.As(err, &pe) {
			p, cause = pe.Path, pe.Err
		}
		return vfs.NewError("move", p, vfs.ErrPartialMove, cause)
	}
	return nil
}
