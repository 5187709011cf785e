// Package fileops performs the mutating file operations of the manager:
// copy, move, delete, mkdir, chmod and directory sync. Every operation is
// planned and validated before the first change is made, and reports an
// outcome per source.
package fileops

import (
	"context"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

const defaultWorkers = 4

type Option func(*Ops)

func WithLogger(log *zap.Logger) Option {
	return func(o *Ops) {
		if log != nil {
			o.log = log
		}
	}
}

// WithProgress installs a callback receiving (done, total). Copy and move
// count bytes; delete, chmod and sync count entries. It may be called from
// several goroutines.
func WithProgress(fn func(done, total int64)) Option {
	return func(o *Ops) { o.progress = fn }
}

// WithDispatcher shares one dispatcher between several Ops values.
func WithDispatcher(d *Dispatcher) Option {
	return func(o *Ops) {
		if d != nil {
			o.dispatch = d
		}
	}
}

func WithChmodWorkers(n int) Option {
	return func(o *Ops) {
		if n > 0 {
			o.chmodWorkers = n
		}
	}
}

func WithSyncWorkers(n int) Option {
	return func(o *Ops) {
		if n > 0 {
			o.syncWorkers = n
		}
	}
}

type Ops struct {
	resolver *vfs.Resolver
	log      *zap.Logger
	progress func(done, total int64)
	dispatch *Dispatcher

	chmodWorkers int
	syncWorkers  int

	// replaced in tests to force failures
	rename func(oldpath, newpath string) error
	remove func(path string) error
}

func New(resolver *vfs.Resolver, opts ...Option) *Ops {
	if resolver == nil {
		resolver = vfs.NewResolver(nil)
	}
	o := &Ops{
		resolver:     resolver,
		log:          zap.NewNop(),
		dispatch:     NewDispatcher(),
		chmodWorkers: defaultWorkers,
		syncWorkers:  defaultWorkers,
		rename:       renameNoReplace,
		remove:       os.Remove,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Ops) Dispatcher() *Dispatcher { return o.dispatch }

// begin waits for the dispatcher and returns a report seeded with the
// sources. When waiting fails every source is marked Failed and release is
// nil.
func (o *Ops) begin(ctx context.Context, op string, sources []vfs.Location, extra ...vfs.Location) (*Report, *zap.Logger, func()) {
	locs := append(append(make([]vfs.Location, 0, len(sources)+len(extra)), sources...), extra...)
	id, release, err := o.dispatch.Acquire(ctx, locs...)
	r := newReport(id, op, sources)
	if err != nil {
		o.log.Warn("operation cancelled while waiting", zap.String("op", op), zap.Error(err))
		path := ""
		if len(locs) > 0 {
			path = locs[0].String()
		}
		r.failAll(vfs.Classify(op, path, err))
		return r, nil, nil
	}
	log := o.log.With(zap.String("op", op), zap.Stringer("id", id))
	log.Debug("operation started", zap.Int("sources", len(sources)))
	return r, log, release
}

func (o *Ops) finish(log *zap.Logger, r *Report) {
	log.Info("operation finished",
		zap.Int("done", r.Count(Done)),
		zap.Int("failed", r.Count(Failed)),
		zap.Int("skipped", r.Count(Skipped)),
	)
	for _, res := range r.Failures() {
		log.Debug("source failed", zap.Stringer("source", res.Source), zap.Error(res.Err))
	}
}

type progress struct {
	fn    func(done, total int64)
	done  atomic.Int64
	total int64
}

func (o *Ops) newProgress(total int64) *progress {
	p := &progress{fn: o.progress, total: total}
	p.report()
	return p
}

func (p *progress) add(n int64) {
	p.done.Add(n)
	p.report()
}

func (p *progress) report() {
	if p.fn != nil {
		p.fn(p.done.Load(), p.total)
	}
}

// Write lets a progress sit behind an io.TeeReader.
func (p *progress) Write(b []byte) (int, error) {
	p.add(int64(len(b)))
	return len(b), nil
}
