package src

import (
	"github.com/charmbracelet/bubbles/key"
)

type mode int

const (
	explorerMode mode = iota
	commandMode
	promptMode
	confirmMode
	progressMode
	viewMode
	menuMode
)

type promptKind int

const (
	promptCopy promptKind = iota
	promptMove
	promptMkdir
	promptChmod
	promptFind
	promptSearch
)

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmSync
)

type keyMap struct {
	quit      key.Binding
	execute   key.Binding
	cancel    key.Binding
	refresh   key.Binding
	enter     key.Binding
	back      key.Binding
	selectIt  key.Binding
	markAll   key.Binding
	unmarkAll key.Binding
	invert    key.Binding
	tab       key.Binding
	down      key.Binding
	up        key.Binding
	pageDown  key.Binding
	pageUp    key.Binding
	home      key.Binding
	end       key.Binding
	command   key.Binding
	userMenu  key.Binding
	view      key.Binding
	copy      key.Binding
	move      key.Binding
	mkdir     key.Binding
	delete    key.Binding
	chmod     key.Binding
	find      key.Binding
	search    key.Binding
	sync      key.Binding
	sort      key.Binding
	reverse   key.Binding
	hidden    key.Binding
	yes       key.Binding
	no        key.Binding
	help      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:      key.NewBinding(key.WithKeys("ctrl+c", "q", "f10"), key.WithHelp("F10/q", "quit")),
		execute:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel/back")),
		refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("Ctrl+R", "refresh")),
		enter:     key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
		back:      key.NewBinding(key.WithKeys("backspace", "h", "left"), key.WithHelp("backspace", "up")),
		selectIt:  key.NewBinding(key.WithKeys(" ", "insert"), key.WithHelp("space", "mark")),
		markAll:   key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "mark all")),
		unmarkAll: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "unmark all")),
		invert:    key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "invert marks")),
		tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		down:      key.NewBinding(key.WithKeys("j", "down")),
		up:        key.NewBinding(key.WithKeys("k", "up")),
		pageDown:  key.NewBinding(key.WithKeys("pgdown")),
		pageUp:    key.NewBinding(key.WithKeys("pgup")),
		home:      key.NewBinding(key.WithKeys("home", "g")),
		end:       key.NewBinding(key.WithKeys("end", "G")),
		command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		userMenu:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "menu")),
		view:      key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "view")),
		copy:      key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "copy")),
		move:      key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "move")),
		mkdir:     key.NewBinding(key.WithKeys("f7"), key.WithHelp("F7", "mkdir")),
		delete:    key.NewBinding(key.WithKeys("f8", "delete"), key.WithHelp("F8", "delete")),
		chmod:     key.NewBinding(key.WithKeys("f9"), key.WithHelp("F9", "chmod")),
		find:      key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("Ctrl+F", "find")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "quick search")),
		sync:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "sync dirs")),
		sort:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl+S", "sort")),
		reverse:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("Ctrl+E", "reverse")),
		hidden:    key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden files")),
		yes:       key.NewBinding(key.WithKeys("y", "Y", "enter")),
		no:        key.NewBinding(key.WithKeys("n", "N", "esc")),
		help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
	}
}

func helpString(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}
