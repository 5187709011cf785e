package fileops

import (
	"context"

	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// Delete removes every source recursively. A batch holding any archived
// source is rejected before anything is removed. Execution stops at the
// first failure: that source is Failed and the ones after it are Skipped.
// Every source is planned first, so a source that cannot be walked fails
// the batch before anything is removed.
func (o *Ops) Delete(ctx context.Context, sources []vfs.Location) *Report {
	r, log, release := o.begin(ctx, "delete", sources)
	if release == nil {
		return r
	}
	defer release()
	defer o.finish(log, r)

	for _, src := range sources {
		if src.IsArchived() {
			return r.failAll(vfs.NewError("delete", src.String(), vfs.ErrUnsupported, nil))
		}
	}

	plans := make([]*Plan, len(sources))
	var total int64
	for i, src := range sources {
		r.Results[i].Target = src.Path()
		plan := &Plan{}
		if err := planDelete(plan, src.Path()); err != nil {
			r.fail(i, err)
			r.skipRest(i, err)
			return r
		}
		plans[i] = plan
		total += int64(len(plan.Steps))
	}

	prog := o.newProgress(total)
	for i, plan := range plans {
		if err := o.execute(ctx, plan, prog); err != nil {
			r.fail(i, err)
			r.skipRest(i, err)
			return r
		}
		r.Results[i].Status = Done
		log.Debug("deleted", zap.Stringer("source", sources[i]), zap.Int("entries", len(plan.Steps)))
	}
	return r
}
