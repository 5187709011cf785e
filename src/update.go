package src

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HackerOS-Linux-System/ngt/fileops"
	"github.com/HackerOS-Linux-System/ngt/panel"
	"github.com/HackerOS-Linux-System/ngt/vfs"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case CommandResult:
		wasOp := m.mode == progressMode
		m.cancel = nil
		m.mode = explorerMode
		if msg.Err != nil {
			m.statusMsg = errorStyle.Render(fmt.Sprintf("Command failed: %v", msg.Err))
		} else {
			m.statusMsg = successStyle.Render(lastLine([]byte(msg.Output)))
		}
		if wasOp {
			m.activePane().pane.UnmarkAll()
			cmds = append(cmds, m.progress.SetPercent(0))
		} else if strings.Count(strings.TrimSpace(msg.Output), "\n") > 0 {
			m.viewerTitle = "Command output"
			m.viewer.SetContent(msg.Output)
			m.viewer.GotoTop()
			m.mode = viewMode
		}
		m.refreshAll()
	case ProgressMsg:
		cmds = append(cmds, m.progress.SetPercent(msg.Percent))
	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		cmds = append(cmds, cmd)
	case syncPlannedMsg:
		switch {
		case msg.err != nil:
			m.statusMsg = errorStyle.Render(fmt.Sprintf("sync failed: %v", msg.err))
		case msg.plan.Pending() == 0:
			m.statusMsg = successStyle.Render("Directories are already in sync")
		default:
			m.syncPlan = msg.plan
			m.confirm = confirmSync
			m.mode = confirmMode
		}
	case findDoneMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render(fmt.Sprintf("find failed: %v", msg.err))
			break
		}
		m.activePane().pane.Panelize(msg.paths)
		m.syncList(m.activePanel)
		m.statusMsg = successStyle.Render(fmt.Sprintf("Found %d entries (backspace returns)", len(msg.paths)))
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.width = w
		topHeight := lipgloss.Height(titleStyle.Render(appName+" "+version)) + 1
		panelWidth := (w / 2) - 4
		contentHeight := h - topHeight - 10
		for i := range m.sides {
			m.sides[i].fileList.SetSize(panelWidth, contentHeight)
		}
		m.viewer.Width = w - 6
		m.viewer.Height = h - topHeight - 8
		m.menuList.SetSize(w-6, contentHeight)
		m.commandInput.Width = w - 8
		m.prompt.Width = w - 8
		m.progress.Width = w - 4
	}
	if m.mode == viewMode {
		m.viewer, cmd = m.viewer.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case progressMode:
		if key.Matches(msg, m.keys.cancel) && m.cancel != nil {
			m.cancel()
			m.statusMsg = "Cancelling..."
		}
		return m, nil
	case viewMode:
		if key.Matches(msg, m.keys.cancel, m.keys.view, m.keys.quit) {
			m.mode = explorerMode
			return m, nil
		}
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd
	case menuMode:
		switch {
		case key.Matches(msg, m.keys.cancel):
			m.mode = explorerMode
		case key.Matches(msg, m.keys.execute):
			m.mode = explorerMode
			if it, ok := m.menuList.SelectedItem().(menuEntry); ok {
				m.statusMsg = "Run: " + it.Command
				m.executeCommand(it.Command)
			}
		default:
			m.menuList, cmd = m.menuList.Update(msg)
		}
		return m, cmd
	case confirmMode:
		switch {
		case key.Matches(msg, m.keys.yes):
			m.mode = explorerMode
			if m.confirm == confirmSync {
				m.applySync(m.syncPlan)
				m.syncPlan = nil
			} else {
				m.deleteSelection()
			}
		case key.Matches(msg, m.keys.no):
			m.mode = explorerMode
			m.syncPlan = nil
			m.statusMsg = "Cancelled"
		}
		return m, nil
	case promptMode:
		return m.handlePrompt(msg)
	case commandMode:
		switch {
		case key.Matches(msg, m.keys.cancel):
			m.commandInput.Blur()
			m.mode = explorerMode
		case key.Matches(msg, m.keys.execute):
			cmdStr := m.commandInput.Value()
			m.commandInput.Reset()
			m.commandInput.Blur()
			m.mode = explorerMode
			m.executeCommand(cmdStr)
		default:
			m.commandInput, cmd = m.commandInput.Update(msg)
		}
		return m, cmd
	}
	return m.handleExplorerKey(msg)
}

func (m Model) handleExplorerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.activePane()
	p := s.pane
	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab):
		m.activePanel = 1 - m.activePanel
	case key.Matches(msg, m.keys.down):
		p.MoveCursor(1)
	case key.Matches(msg, m.keys.up):
		p.MoveCursor(-1)
	case key.Matches(msg, m.keys.pageDown):
		p.MoveCursor(s.fileList.Paginator.PerPage)
	case key.Matches(msg, m.keys.pageUp):
		p.MoveCursor(-s.fileList.Paginator.PerPage)
	case key.Matches(msg, m.keys.home):
		p.SetCursor(0)
	case key.Matches(msg, m.keys.end):
		p.SetCursor(p.Len() - 1)
	case key.Matches(msg, m.keys.enter):
		m.open()
	case key.Matches(msg, m.keys.back):
		if err := p.Ascend(); err != nil && !errors.Is(err, panel.ErrBoundary) {
			m.statusMsg = errorStyle.Render(err.Error())
		}
		m.retainArchives()
	case key.Matches(msg, m.keys.selectIt):
		if e, ok := p.CursorEntry(); ok {
			p.Toggle(e.Name)
			p.MoveCursor(1)
		}
	case key.Matches(msg, m.keys.markAll):
		p.MarkAll()
	case key.Matches(msg, m.keys.unmarkAll):
		p.UnmarkAll()
	case key.Matches(msg, m.keys.invert):
		p.InvertMarks()
	case key.Matches(msg, m.keys.refresh):
		m.refreshAll()
		m.statusMsg = successStyle.Render("Panels refreshed")
	case key.Matches(msg, m.keys.command):
		m.mode = commandMode
		return m, m.commandInput.Focus()
	case key.Matches(msg, m.keys.userMenu):
		m.mode = menuMode
	case key.Matches(msg, m.keys.view):
		m.view()
	case key.Matches(msg, m.keys.copy):
		if m.needSelection() {
			return m, m.openPrompt(promptCopy, "Copy to: ", m.otherPane().pane.Location().String())
		}
	case key.Matches(msg, m.keys.move):
		if m.needSelection() {
			return m, m.openPrompt(promptMove, "Move to: ", m.otherPane().pane.Location().String())
		}
	case key.Matches(msg, m.keys.mkdir):
		return m, m.openPrompt(promptMkdir, "New directory: ", "")
	case key.Matches(msg, m.keys.delete):
		if m.needSelection() {
			m.confirm = confirmDelete
			m.mode = confirmMode
		}
	case key.Matches(msg, m.keys.chmod):
		if m.needSelection() {
			current := ""
			if e, ok := p.CursorEntry(); ok && e.HasMode {
				current = fileops.FormatMode(e.Mode)
			}
			return m, m.openPrompt(promptChmod, "Mode (octal): ", current)
		}
	case key.Matches(msg, m.keys.find):
		return m, m.openPrompt(promptFind, "Find (text or glob): ", "")
	case key.Matches(msg, m.keys.search):
		return m, m.openPrompt(promptSearch, "Search: ", "")
	case key.Matches(msg, m.keys.sync):
		m.statusMsg = "Comparing directories..."
		return m, m.planSync()
	case key.Matches(msg, m.keys.sort):
		mode, rev := p.Sort()
		p.SetSort((mode+1)%(panel.SortUnsorted+1), rev)
		m.statusMsg = "Sort: " + sortLabel(p)
	case key.Matches(msg, m.keys.reverse):
		mode, rev := p.Sort()
		p.SetSort(mode, !rev)
		m.statusMsg = "Sort: " + sortLabel(p)
	case key.Matches(msg, m.keys.hidden):
		if err := p.SetShowHidden(!p.ShowHidden()); err != nil {
			m.statusMsg = errorStyle.Render(err.Error())
		}
	case key.Matches(msg, m.keys.help):
		m.statusMsg = m.helpLine()
	default:
		return m, nil
	}
	m.syncList(m.activePanel)
	return m, nil
}

// open descends into the cursor entry, or views it when it is a file.
func (m *Model) open() {
	p := m.activePane().pane
	e, ok := p.CursorEntry()
	if !ok {
		return
	}
	err := p.Descend(e.Name)
	switch {
	case err == nil:
		m.retainArchives()
	case errors.Is(err, vfs.ErrNotADirectory):
		m.view()
	default:
		m.statusMsg = errorStyle.Render(err.Error())
	}
}

func (m *Model) view() {
	if err := m.loadPreview(); err != nil {
		m.statusMsg = errorStyle.Render(fmt.Sprintf("view failed: %v", err))
		return
	}
	m.mode = viewMode
}

func (m *Model) needSelection() bool {
	if len(m.activePane().pane.Selection()) == 0 {
		m.statusMsg = errorStyle.Render("Nothing selected")
		return false
	}
	return true
}

func (m *Model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	m.promptKind = kind
	m.prompt.Reset()
	m.prompt.Prompt = label
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.mode = promptMode
	return m.prompt.Focus()
}

func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.prompt.Blur()
		m.mode = explorerMode
		return m, nil
	case key.Matches(msg, m.keys.execute):
		value := m.prompt.Value()
		m.prompt.Blur()
		m.mode = explorerMode
		return m, m.submitPrompt(value)
	}
	m.prompt, cmd = m.prompt.Update(msg)
	if m.promptKind == promptSearch {
		m.activePane().pane.SeekPrefix(m.prompt.Value())
		m.syncList(m.activePanel)
	}
	return m, cmd
}

func (m *Model) submitPrompt(value string) tea.Cmd {
	if strings.TrimSpace(value) == "" && m.promptKind != promptSearch {
		m.statusMsg = "Cancelled"
		return nil
	}
	switch m.promptKind {
	case promptCopy:
		m.copySelection(value)
	case promptMove:
		m.moveSelection(value)
	case promptMkdir:
		m.makeDir(value)
	case promptChmod:
		m.chmodSelection(value)
	case promptFind:
		return m.findFiles(value)
	}
	return nil
}

func sortLabel(p *panel.Panel) string {
	mode, rev := p.Sort()
	if rev {
		return mode.String() + " (reversed)"
	}
	return mode.String()
}

func (m Model) helpLine() string {
	return strings.Join([]string{
		helpString(m.keys.enter),
		helpString(m.keys.back),
		helpString(m.keys.selectIt),
		helpString(m.keys.markAll),
		helpString(m.keys.invert),
		helpString(m.keys.search),
		helpString(m.keys.find),
		helpString(m.keys.sync),
		helpString(m.keys.sort),
		helpString(m.keys.reverse),
		helpString(m.keys.hidden),
		helpString(m.keys.command),
	}, " • ")
}
