package src

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/fileops"
	"github.com/HackerOS-Linux-System/ngt/find"
	"github.com/HackerOS-Linux-System/ngt/menu"
	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// workDir is the real directory commands run in: the panel directory, or
// the directory holding the archive being browsed.
func workDir(loc vfs.Location) string {
	if loc.IsArchived() {
		return filepath.Dir(loc.Path())
	}
	return loc.Path()
}

func (m *Model) executeCommand(cmdStr string) {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		m.statusMsg = errorStyle.Render("Empty command")
		return
	}
	p := m.activePane().pane
	if dir, ok := strings.CutPrefix(cmdStr, "cd "); ok || cmdStr == "cd" {
		m.changeDir(strings.TrimSpace(dir))
		return
	}
	current := ""
	if e, ok := p.CursorEntry(); ok {
		current = e.Name
	}
	m.runSystemCommand(menu.Expand(cmdStr, workDir(p.Location()), current), workDir(p.Location()))
}

func (m *Model) changeDir(dir string) {
	p := m.activePane().pane
	switch {
	case dir == "" || dir == "~":
		dir = homeDir()
	case dir == "..":
		if err := p.Ascend(); err != nil {
			m.statusMsg = errorStyle.Render(fmt.Sprintf("cd failed: %v", err))
		}
		m.syncList(m.activePanel)
		m.retainArchives()
		return
	case !filepath.IsAbs(dir):
		dir = filepath.Join(workDir(p.Location()), dir)
	}
	target := vfs.Real(dir)
	if vfs.IsArchiveName(dir) {
		target = vfs.Archived(dir)
	}
	if err := p.Navigate(target); err != nil {
		m.statusMsg = errorStyle.Render(fmt.Sprintf("cd failed: %v", err))
		return
	}
	m.syncList(m.activePanel)
	m.retainArchives()
	m.statusMsg = successStyle.Render("Changed directory to " + target.String())
}

func (m *Model) runSystemCommand(command, dir string) {
	m.log.Info("running command", zap.String("command", command), zap.String("dir", dir))
	ch := m.ResultChan
	go func() {
		cmd := exec.Command("sh", "-c", command)
		cmd.Dir = dir
		output, err := cmd.CombinedOutput()
		ch <- CommandResult{Output: string(output), Err: err}
	}()
}

// startOp runs a mutation in the background. Progress arrives on
// ProgressChan, the outcome on ResultChan; esc cancels through ctx.
func (m *Model) startOp(name string, run func(ctx context.Context) CommandResult) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mode = progressMode
	m.statusMsg = name + "..."
	ch := m.ResultChan
	go func() {
		defer cancel()
		ch <- run(ctx)
	}()
}

func summarize(r *fileops.Report) CommandResult {
	out := fmt.Sprintf("%s: %d done", r.Op, r.Count(fileops.Done))
	if n := r.Count(fileops.Failed); n > 0 {
		out += fmt.Sprintf(", %d failed", n)
	}
	if n := r.Count(fileops.Skipped); n > 0 {
		out += fmt.Sprintf(", %d skipped", n)
	}
	return CommandResult{Output: out, Err: r.Err()}
}

// parseDest turns prompt text into a destination. The other panel's own
// location string selects it as is, so archive locations survive the round
// trip through the prompt.
func (m *Model) parseDest(input string) vfs.Location {
	input = strings.TrimSpace(input)
	if other := m.otherPane().pane.Location(); input == other.String() {
		return other
	}
	if !filepath.IsAbs(input) {
		input = filepath.Join(workDir(m.activePane().pane.Location()), input)
	}
	return vfs.Real(input)
}

func (m *Model) copySelection(dest string) {
	sources := m.activePane().pane.Sources()
	to := m.parseDest(dest)
	ops := m.ops
	m.startOp("Copying", func(ctx context.Context) CommandResult {
		return summarize(ops.Copy(ctx, sources, to))
	})
}

func (m *Model) moveSelection(dest string) {
	sources := m.activePane().pane.Sources()
	to := m.parseDest(dest)
	ops := m.ops
	m.startOp("Moving", func(ctx context.Context) CommandResult {
		return summarize(ops.Move(ctx, sources, to))
	})
}

func (m *Model) deleteSelection() {
	sources := m.activePane().pane.Sources()
	ops := m.ops
	m.startOp("Deleting", func(ctx context.Context) CommandResult {
		return summarize(ops.Delete(ctx, sources))
	})
}

func (m *Model) chmodSelection(text string) {
	mode, err := fileops.ParseMode(text)
	if err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return
	}
	sources := m.activePane().pane.Sources()
	ops := m.ops
	m.startOp("Changing mode", func(ctx context.Context) CommandResult {
		return summarize(ops.Chmod(ctx, sources, mode))
	})
}

func (m *Model) makeDir(name string) {
	p := m.activePane().pane
	loc, err := m.ops.Mkdir(context.Background(), p.Location(), strings.TrimSpace(name))
	if err != nil {
		m.statusMsg = errorStyle.Render(fmt.Sprintf("mkdir failed: %v", err))
		return
	}
	m.refreshAll()
	first, _, _ := strings.Cut(filepath.ToSlash(strings.TrimSpace(name)), "/")
	p.SeekName(first)
	m.syncList(m.activePanel)
	m.statusMsg = successStyle.Render("Created " + loc.String())
}

// planSync compares the active directory with the other one off the UI
// loop; the plan comes back for confirmation.
func (m *Model) planSync() tea.Cmd {
	active := m.activePane().pane.Location()
	inactive := m.otherPane().pane.Location()
	ops := m.ops
	return func() tea.Msg {
		plan, err := ops.PlanSync(context.Background(), active, inactive)
		return syncPlannedMsg{plan: plan, err: err}
	}
}

func (m *Model) applySync(plan *fileops.SyncPlan) {
	ops := m.ops
	m.startOp("Synchronizing", func(ctx context.Context) CommandResult {
		report, err := ops.ApplySync(ctx, plan)
		if err != nil {
			return CommandResult{Err: err}
		}
		res := CommandResult{Output: fmt.Sprintf("sync: %d copied, %d identical", report.Copied, report.Skipped)}
		if report.Failed > 0 {
			res.Err = fmt.Errorf("%d entries failed: %s", report.Failed, strings.Join(report.FailedPaths, ", "))
		}
		return res
	})
}

func (m *Model) findFiles(pattern string) tea.Cmd {
	p := m.activePane().pane
	if p.Location().IsArchived() {
		m.statusMsg = errorStyle.Render("find works on real directories only")
		return nil
	}
	root := p.Location().Path()
	showHidden := p.ShowHidden()
	m.statusMsg = "Searching..."
	return func() tea.Msg {
		paths, err := find.Find(context.Background(), root, pattern, showHidden)
		return findDoneMsg{paths: paths, err: err}
	}
}
