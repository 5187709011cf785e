package src

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/fileops"
	"github.com/HackerOS-Linux-System/ngt/menu"
	"github.com/HackerOS-Linux-System/ngt/panel"
	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// item adapts a vfs.Entry to the bubbles list.
type item struct {
	entry  vfs.Entry
	marked bool
}

func (i item) Title() string {
	title := i.entry.Name
	switch i.entry.Kind {
	case vfs.Directory:
		title = dirStyle.Render(title + "/")
	case vfs.ArchiveRoot:
		title = archiveStyle.Render(title)
	case vfs.Symlink:
		title = linkStyle.Render(title + "@")
	}
	if i.marked {
		title = markedStyle.Render("* " + i.entry.Name)
	}
	return title
}

func (i item) Description() string {
	size := humanSize(i.entry.Size)
	if i.entry.IsDir() {
		size = "<DIR>"
	}
	mod := "-"
	if i.entry.HasModTime() {
		mod = i.entry.ModTime.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%s | %s | %s", i.entry.Kind, size, mod)
}

func (i item) FilterValue() string { return i.entry.Name }

// CommandResult ends a background operation or shell command.
type CommandResult struct {
	Output string
	Err    error
}

type ProgressMsg struct {
	Percent float64
}

// syncPlannedMsg carries a sync plan waiting for confirmation.
type syncPlannedMsg struct {
	plan *fileops.SyncPlan
	err  error
}

// findDoneMsg carries search results for the active side.
type findDoneMsg struct {
	paths []string
	err   error
}

type side struct {
	pane     *panel.Panel
	fileList list.Model
}

type Model struct {
	sides        [2]side
	activePanel  int
	commandInput textinput.Model
	prompt       textinput.Model
	promptKind   promptKind
	confirm      confirmKind
	syncPlan     *fileops.SyncPlan
	menuItems    []menu.Item
	menuList     list.Model
	viewer       viewport.Model
	viewerTitle  string
	statusMsg    string
	keys         keyMap
	mode         mode
	progress     progress.Model
	quitting     bool
	width        int

	resolver *vfs.Resolver
	ops      *fileops.Ops
	log      *zap.Logger
	cancel   context.CancelFunc

	ProgressChan chan ProgressMsg
	ResultChan   chan CommandResult
}

// Options configure InitialModel.
type Options struct {
	LeftDir      string
	RightDir     string
	ShowHidden   bool
	Sort         panel.SortMode
	SortReverse  bool
	ChmodWorkers int
	SyncWorkers  int
	MenuItems    []menu.Item
	Logger       *zap.Logger
}

var defaultMenu = []menu.Item{
	{Label: "List directory", Command: "ls -la %d"},
	{Label: "Disk usage of entry", Command: "du -sh %f"},
	{Label: "File type", Command: "file %f"},
	{Label: "Checksum", Command: "sha256sum %f"},
}

func InitialModel(opts Options) (Model, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.LeftDir == "" {
		opts.LeftDir = "."
	}
	if opts.RightDir == "" {
		opts.RightDir = opts.LeftDir
	}
	if opts.MenuItems == nil {
		opts.MenuItems = defaultMenu
	}

	ci := textinput.New()
	ci.Placeholder = "shell command (%d = directory, %f = entry, cd <dir>)"
	ci.Width = 80
	pi := textinput.New()
	pi.Width = 80

	m := Model{
		commandInput: ci,
		prompt:       pi,
		keys:         newKeyMap(),
		mode:         explorerMode,
		progress:     progress.New(progress.WithDefaultGradient()),
		viewer:       viewport.New(80, 20),
		menuItems:    opts.MenuItems,
		resolver:     vfs.NewResolver(vfs.NewArchives(log.Named("archives"))),
		log:          log,
		ProgressChan: make(chan ProgressMsg, 16),
		ResultChan:   make(chan CommandResult, 1),
	}
	m.ops = fileops.New(m.resolver,
		fileops.WithLogger(log.Named("ops")),
		fileops.WithProgress(progressSender(m.ProgressChan)),
		fileops.WithChmodWorkers(opts.ChmodWorkers),
		fileops.WithSyncWorkers(opts.SyncWorkers),
	)

	titles := [2]string{"Left Panel", "Right Panel"}
	for i, dir := range [2]string{opts.LeftDir, opts.RightDir} {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return Model{}, err
		}
		p, err := panel.New(m.resolver, vfs.Real(abs),
			panel.WithLogger(log.Named("panel")),
			panel.WithSort(opts.Sort, opts.SortReverse),
			panel.WithShowHidden(opts.ShowHidden),
		)
		if err != nil {
			return Model{}, fmt.Errorf("open %s panel at %s: %w", titles[i], abs, err)
		}
		m.sides[i] = side{pane: p, fileList: newFileList(titles[i])}
	}
	m.menuList = newMenuList(m.menuItems)
	for i := range m.sides {
		m.syncList(i)
	}
	return m, nil
}

func newFileList(title string) list.Model {
	del := list.NewDefaultDelegate()
	del.Styles.SelectedTitle = del.Styles.SelectedTitle.Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	del.Styles.NormalTitle = del.Styles.NormalTitle.Foreground(lipgloss.Color("#CCCCCC"))
	l := list.New([]list.Item{}, del, 0, 0)
	l.Title = title
	l.Styles.Title = subtitleStyle
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

type menuEntry struct{ menu.Item }

func (e menuEntry) Title() string       { return e.Label }
func (e menuEntry) Description() string { return e.Command }
func (e menuEntry) FilterValue() string { return e.Label }

func newMenuList(items []menu.Item) list.Model {
	entries := make([]list.Item, len(items))
	for i, it := range items {
		entries[i] = menuEntry{it}
	}
	l := list.New(entries, list.NewDefaultDelegate(), 60, 14)
	l.Title = "User menu"
	l.Styles.Title = subtitleStyle
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// progressSender forwards whole-percent changes without ever blocking the
// operation; the UI only needs the latest value.
func progressSender(ch chan<- ProgressMsg) func(done, total int64) {
	var last atomic.Int64
	last.Store(-1)
	return func(done, total int64) {
		pct := int64(100)
		if total > 0 {
			pct = done * 100 / total
		}
		if last.Swap(pct) == pct {
			return
		}
		select {
		case ch <- ProgressMsg{Percent: float64(pct) / 100}:
		default:
		}
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
