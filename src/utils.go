package src

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/bubbles/list"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// syncList copies the panel state of side idx into its list widget.
func (m *Model) syncList(idx int) {
	s := &m.sides[idx]
	entries := s.pane.Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = item{entry: e, marked: s.pane.IsMarked(e.Name)}
	}
	s.fileList.SetItems(items)
	s.fileList.Select(s.pane.Cursor())
	title := s.pane.Location().String()
	if s.pane.IsPanelized() {
		title = "panelized: " + title
	}
	if n := s.pane.MarkedCount(); n > 0 {
		title += fmt.Sprintf("  [%d marked, %s]", n, humanSize(s.pane.MarkedSize()))
	}
	s.fileList.Title = title
}

// refreshPanel re-reads side idx after a mutation.
func (m *Model) refreshPanel(idx int) {
	pane := m.sides[idx].pane
	if err := pane.Refresh(); err != nil {
		m.statusMsg = errorStyle.Render(fmt.Sprintf("Error reading directory: %v", err))
		// The directory itself is gone; fall back to the nearest parent.
		for loc, ok := pane.Location().Parent(); ok; loc, ok = loc.Parent() {
			if pane.Navigate(loc) == nil {
				break
			}
		}
	}
	m.syncList(idx)
}

func (m *Model) refreshAll() {
	for i := range m.sides {
		m.refreshPanel(i)
	}
	m.retainArchives()
}

// retainArchives drops cached archive indexes no panel looks at any more.
func (m *Model) retainArchives() {
	var locs []vfs.Location
	for _, s := range m.sides {
		locs = append(locs, s.pane.Locations()...)
	}
	if dropped := m.resolver.Archives().Retain(locs...); dropped > 0 {
		m.log.Debug("archive indexes released", zap.Int("dropped", dropped))
	}
}

func (m *Model) activePane() *side { return &m.sides[m.activePanel] }

func (m *Model) otherPane() *side { return &m.sides[1-m.activePanel] }

// loadPreview reads the cursor entry of the active side, real or archived,
// and renders it for the viewer. Text is highlighted with chroma.
func (m *Model) loadPreview() error {
	s := m.activePane()
	e, ok := s.pane.CursorEntry()
	if !ok {
		return errors.New("nothing to view")
	}
	if e.IsDir() || e.Kind == vfs.ArchiveRoot {
		return fmt.Errorf("%s is not a regular file", e.Name)
	}
	loc := s.pane.LocationOf(e)
	r, err := m.resolver.Open(loc)
	if err != nil {
		return err
	}
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxPreviewBytes))
	if err != nil {
		return err
	}
	m.viewerTitle = loc.String()
	m.viewer.SetContent(render(e.Name, data))
	m.viewer.GotoTop()
	return nil
}

func render(name string, data []byte) string {
	mtype := mimetype.Detect(data[:min(len(data), sniffBytes)])
	if !isText(mtype) {
		return fmt.Sprintf("Binary file: %s (%s)", mtype.String(), humanSize(int64(len(data))))
	}
	content := string(data)
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}
	var sb strings.Builder
	if err := chromaFormatter.Format(&sb, chromaStyle, iterator); err != nil {
		return content
	}
	return sb.String()
}

func isText(mtype *mimetype.MIME) bool {
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return true
		}
	}
	return false
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// lastLine trims command output to something the status bar can hold.
func lastLine(out []byte) string {
	out = bytes.TrimSpace(out)
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		return string(out[i+1:])
	}
	return string(out)
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/"
}
