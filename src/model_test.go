package src

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

func fixture(t *testing.T) (string, string) {
	t.Helper()
	left := t.TempDir()
	right := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(left, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(left, "docs", "guide.md"), []byte("# guide\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(left, "main.go"), []byte("package main\n"), 0o644))
	return left, right
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestInitialModel(t *testing.T) {
	left, right := fixture(t)
	m, err := InitialModel(Options{LeftDir: left, RightDir: right})
	require.NoError(t, err)
	assert.Equal(t, left, m.sides[0].pane.Location().Path())
	assert.Equal(t, right, m.sides[1].pane.Location().Path())
	assert.Len(t, m.sides[0].fileList.Items(), 2)

	_, err = InitialModel(Options{LeftDir: filepath.Join(left, "missing")})
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestKeyboardNavigation(t *testing.T) {
	left, right := fixture(t)
	m, err := InitialModel(Options{LeftDir: left, RightDir: right})
	require.NoError(t, err)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, filepath.Join(left, "docs"), m.sides[0].pane.Location().Path())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, left, m.sides[0].pane.Location().Path())
	e, _ := m.sides[0].pane.CursorEntry()
	assert.Equal(t, "docs", e.Name)

	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewMode, m.mode)
	assert.Contains(t, m.viewerTitle, "main.go")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, explorerMode, m.mode)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.activePanel)
	assert.Equal(t, 1, m.sides[0].pane.MarkedCount())
}

func TestPromptsAndCommandLine(t *testing.T) {
	left, right := fixture(t)
	m, err := InitialModel(Options{LeftDir: left, RightDir: right})
	require.NoError(t, err)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyF7})
	require.Equal(t, promptMode, m.mode)
	m = press(t, m, runes("new"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.DirExists(t, filepath.Join(left, "new"))
	e, _ := m.sides[0].pane.CursorEntry()
	assert.Equal(t, "new", e.Name)

	m = press(t, m, runes(":"), runes("cd docs"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, filepath.Join(left, "docs"), m.sides[0].pane.Location().Path())
}

func TestParseDest(t *testing.T) {
	left, right := fixture(t)
	m, err := InitialModel(Options{LeftDir: left, RightDir: right})
	require.NoError(t, err)

	assert.True(t, m.parseDest(right).Equal(vfs.Real(right)))
	assert.Equal(t, filepath.Join(left, "sub"), m.parseDest("sub").Path())

	archive := vfs.Archived(filepath.Join(right, "p.zip"), "x")
	assert.True(t, m.parseDest(archive.String()).Equal(vfs.Real(archive.String())))
}

func TestProgressSenderDropsRepeats(t *testing.T) {
	ch := make(chan ProgressMsg, 16)
	send := progressSender(ch)
	send(0, 200)
	send(1, 200)
	send(100, 200)
	send(200, 200)
	close(ch)
	var got []float64
	for msg := range ch {
		got = append(got, msg.Percent)
	}
	assert.Equal(t, []float64{0, 0.5, 1}, got)
}

func TestRender(t *testing.T) {
	assert.NotContains(t, render("main.go", []byte("package main\n")), "Binary file")
	assert.Contains(t, render("blob", []byte{0x00, 0x01, 0x02, 0x03, 0x00, 0x9c}), "Binary file")
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KiB", humanSize(1536))
	assert.Equal(t, "2.0 MiB", humanSize(2<<20))
}
