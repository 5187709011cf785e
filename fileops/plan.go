package fileops

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

type StepKind int

const (
	StepMkdir StepKind = iota
	StepCopy
	StepExtract
	StepSymlink
	StepDelete
	StepRename
)

var stepNames = [...]string{"mkdir", "copy", "extract", "symlink", "delete", "rename"}

func (k StepKind) String() string {
	if int(k) < len(stepNames) {
		return stepNames[k]
	}
	return "unknown"
}

// Step is one filesystem mutation. Target is always a real path.
type Step struct {
	Kind    StepKind
	Source  vfs.Location
	Target  string
	Mode    fs.FileMode
	ModTime time.Time
	Size    int64
	Link    string
}

// Plan is an ordered list of steps computed before anything is changed.
type Plan struct {
	Steps []Step
	Bytes int64
}

func (p *Plan) add(s Step) {
	p.Steps = append(p.Steps, s)
	if s.Kind == StepCopy || s.Kind == StepExtract {
		p.Bytes += s.Size
	}
}

// planCopy walks src depth-first, emitting a mkdir before the children of
// every directory.
func (o *Ops) planCopy(src vfs.Location, target string) (*Plan, error) {
	plan := &Plan{}
	var err error
	if src.IsArchived() {
		err = o.planExtract(plan, src, target)
	} else {
		err = planRealCopy(plan, src.Path(), target)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func planRealCopy(plan *Plan, src, target string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return vfs.Classify("copy", src, err)
	}
	step := Step{Source: vfs.Real(src), Target: target, Mode: fileMode(info), ModTime: info.ModTime(), Size: info.Size()}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		if step.Link, err = os.Readlink(src); err != nil {
			return vfs.Classify("copy", src, err)
		}
		step.Kind, step.Size = StepSymlink, 0
		plan.add(step)
	case info.IsDir():
		step.Kind, step.Size = StepMkdir, 0
		plan.add(step)
		children, err := os.ReadDir(src)
		if err != nil {
			return vfs.Classify("copy", src, err)
		}
		for _, c := range children {
			if err := planRealCopy(plan, filepath.Join(src, c.Name()), filepath.Join(target, c.Name())); err != nil {
				return err
			}
		}
	case info.Mode().IsRegular():
		step.Kind = StepCopy
		plan.add(step)
	default:
		return vfs.NewError("copy", src, vfs.ErrUnsupported, nil)
	}
	return nil
}

func (o *Ops) planExtract(plan *Plan, src vfs.Location, target string) error {
	e, err := o.resolver.Stat(src)
	if err != nil {
		return err
	}
	step := Step{Source: src, Target: target, ModTime: e.ModTime, Size: e.Size, Mode: e.Mode}
	if !e.IsDir() {
		if !e.HasMode {
			step.Mode = 0o644
		}
		step.Kind = StepExtract
		plan.add(step)
		return nil
	}
	step.Kind, step.Mode = StepMkdir, 0o755
	plan.add(step)
	children, err := o.resolver.List(src)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := o.planExtract(plan, src.Child(c.Name), filepath.Join(target, c.Name)); err != nil {
			return err
		}
	}
	return nil
}

// planDelete emits children before their directory.
func planDelete(plan *Plan, p string) error {
	info, err := os.Lstat(p)
	if err != nil {
		return vfs.Classify("delete", p, err)
	}
	if info.IsDir() {
		children, err := os.ReadDir(p)
		if err != nil {
			return vfs.Classify("delete", p, err)
		}
		for _, c := range children {
			if err := planDelete(plan, filepath.Join(p, c.Name())); err != nil {
				return err
			}
		}
	}
	plan.add(Step{Kind: StepDelete, Source: vfs.Real(p), Target: p})
	return nil
}

func fileMode(info fs.FileInfo) fs.FileMode {
	return info.Mode() & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
}

// execute runs the steps in order and stops at the first failure, whose
// error names the failing path. Directory modes and times are applied last,
// innermost first, so creating children does not disturb them.
func (o *Ops) execute(ctx context.Context, plan *Plan, prog *progress) error {
	var dirs []Step
	defer func() {
		for i := len(dirs) - 1; i >= 0; i-- {
			finishDir(dirs[i])
		}
	}()
	for _, s := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return vfs.Classify(s.Kind.String(), s.Target, err)
		}
		if err := o.step(s, prog); err != nil {
			return err
		}
		if s.Kind == StepMkdir {
			dirs = append(dirs, s)
		}
	}
	return nil
}

func (o *Ops) step(s Step, prog *progress) error {
	switch s.Kind {
	case StepMkdir:
		if err := os.Mkdir(s.Target, 0o700); err != nil {
			return vfs.Classify("mkdir", s.Target, err)
		}
	case StepCopy:
		return copyFile(s, prog)
	case StepExtract:
		return o.extract(s, prog)
	case StepSymlink:
		if err := os.Symlink(s.Link, s.Target); err != nil {
			return vfs.Classify("symlink", s.Target, err)
		}
	case StepDelete:
		if err := o.remove(s.Target); err != nil {
			return vfs.Classify("delete", s.Target, err)
		}
		prog.add(1)
	case StepRename:
		if err := o.rename(s.Source.Path(), s.Target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return vfs.NewError("rename", s.Target, vfs.ErrConflict, err)
			}
			return vfs.Classify("rename", s.Source.Path(), err)
		}
	}
	return nil
}

func finishDir(s Step) {
	_ = os.Chmod(s.Target, s.Mode)
	if !s.ModTime.IsZero() {
		_ = os.Chtimes(s.Target, s.ModTime, s.ModTime)
	}
}

// copyFile never overwrites: the target is created exclusively.
func copyFile(s Step, prog *progress) error {
	src := s.Source.Path()
	in, err := os.Open(src)
	if err != nil {
		return vfs.Classify("copy", src, err)
	}
	defer in.Close()
	out, err := os.OpenFile(s.Target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.Mode.Perm())
	if err != nil {
		return vfs.Classify("copy", s.Target, err)
	}
	_, err = io.Copy(out, io.TeeReader(in, prog))
	if err == nil {
		err = out.Chmod(s.Mode)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return vfs.Classify("copy", s.Target, err)
	}
	if !s.ModTime.IsZero() {
		if err := os.Chtimes(s.Target, s.ModTime, s.ModTime); err != nil {
			return vfs.Classify("copy", s.Target, err)
		}
	}
	return nil
}

func (o *Ops) extract(s Step, prog *progress) error {
	if _, err := os.Lstat(s.Target); err == nil {
		return vfs.NewError("extract", s.Target, vfs.ErrConflict, nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return vfs.Classify("extract", s.Target, err)
	}
	idx, err := o.resolver.Index(s.Source)
	if err != nil {
		return err
	}
	if err := idx.Extract(s.Source.Inner(), s.Target); err != nil {
		return err
	}
	prog.add(s.Size)
	return nil
}
