package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/storage"
	"github.com/yeonwoo-dev/studyr/internal/store"
	"github.com/yeonwoo-dev/studyr/internal/timer"
	"github.com/yeonwoo-dev/studyr/internal/tui"
)

func main() {
	path, err := storage.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	gw := storage.NewFileGateway(path)

	st, err := store.New(gw, clock)
	if err != nil {
		var corrupt *storage.CorruptError
		if errors.As(err, &corrupt) {
			fmt.Fprintf(os.Stderr, "error: %v\nmove the file aside to start fresh\n", corrupt)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error loading state: %v\n", err)
		os.Exit(1)
	}

	engine := timer.New(clock)

	app := tui.NewApp(st, engine, clock)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
