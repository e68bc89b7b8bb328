package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Faultbox/assetview/internal/config"
	"github.com/Faultbox/assetview/internal/keepalive"
	"github.com/Faultbox/assetview/internal/logger"
)

// runShell reads commands until quit or EOF. Lines are read on their own
// goroutine and handed to the session together with backend events, so
// the session is only touched from this goroutine.
func runShell(s *session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "assetview> ",
		HistoryFile:     filepath.Join(config.ConfigDir(), "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, "Type help for commands.")

	lines := make(chan string)
	readErr := make(chan error, 1)
	next := make(chan struct{})
	go func() {
		for range next {
			line, err := rl.Readline()
			if err != nil {
				readErr <- err
				return
			}
			lines <- line
		}
	}()
	defer close(next)

	next <- struct{}{}
	events := s.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				logger.Warn("backend disconnected; previews are unavailable")
				fmt.Fprintln(s.out, "backend disconnected")
				events = nil
				continue
			}
			s.handleEvent(ev)
			rl.Refresh()

		case err := <-readErr:
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err

		case line := <-lines:
			err := s.exec(strings.TrimSpace(line))
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
			next <- struct{}{}
		}
	}
}

func completer() *readline.PrefixCompleter {
	var profiles []readline.PrefixCompleterInterface
	for _, p := range keepalive.Profiles() {
		profiles = append(profiles, readline.PcItem(string(p)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("search"),
		readline.PcItem("open"),
		readline.PcItem("settings"),
		readline.PcItem("go"),
		readline.PcItem("back"),
		readline.PcItem("forward"),
		readline.PcItem("scroll"),
		readline.PcItem("profile", profiles...),
		readline.PcItem("show"),
		readline.PcItem("pages"),
		readline.PcItem("history"),
		readline.PcItem("stats"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
