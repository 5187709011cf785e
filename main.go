package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/HackerOS-Linux-System/ngt/config"
	"github.com/HackerOS-Linux-System/ngt/logging"
	"github.com/HackerOS-Linux-System/ngt/panel"
	"github.com/HackerOS-Linux-System/ngt/src"
)

func main() {
	if err := run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.NewFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	sortMode, err := panel.ParseSortMode(cfg.Panels.Sort)
	if err != nil {
		return err
	}
	left := cfg.Panels.StartDir
	if len(os.Args) > 1 {
		left = os.Args[1]
	}
	right := cfg.Panels.RightDir
	if len(os.Args) > 2 {
		right = os.Args[2]
	}

	m, err := src.InitialModel(src.Options{
		LeftDir:      left,
		RightDir:     right,
		ShowHidden:   cfg.Panels.ShowHidden,
		Sort:         sortMode,
		SortReverse:  cfg.Panels.SortReverse,
		ChmodWorkers: cfg.Ops.ChmodWorkers,
		SyncWorkers:  cfg.Ops.SyncWorkers,
		Logger:       log,
	})
	if err != nil {
		return err
	}
	log.Info("starting", zap.String("left", left), zap.String("right", right))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case pm := <-m.ProgressChan:
				p.Send(pm)
			case cr := <-m.ResultChan:
				p.Send(cr)
			case <-done:
				return
			}
		}
	}()
	_, err = p.Run()
	return err
}
