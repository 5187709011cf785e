package src

import (
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const (
	appName         = "ngt (night)"
	version         = "v0.3"
	maxPreviewBytes = 1 << 20
	sniffBytes      = 3072
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Background(lipgloss.Color("#1E1E1E")).
			Padding(0, 1).
			Bold(true)
	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Italic(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#808080")).
			Padding(1).
			Margin(1)
	activeListStyle = listStyle.Copy().
			BorderForeground(lipgloss.Color("#FFD700"))
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Background(lipgloss.Color("#2F2F2F"))
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#808080")).
			Padding(1).
			Margin(1).
			Background(lipgloss.Color("#1A1A1A"))
	dirStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Bold(true)
	archiveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5FD7"))
	linkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FFFFF"))
	markedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	chromaStyle     = styles.Register(styles.Fallback)
	chromaFormatter = formatters.TTY256
	fBarStyle       = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Background(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)
	fBarContent = "1Help  2Menu  3View  5Copy  6Move  7Mkdir  8Delete  9Chmod  10Quit"
)
