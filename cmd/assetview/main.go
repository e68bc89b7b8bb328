// assetview browses game assets through a page cache that restores
// previously visited pages on navigation.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/config"
	"github.com/Faultbox/assetview/internal/keepalive"
	"github.com/Faultbox/assetview/internal/logger"
	"github.com/Faultbox/assetview/internal/search"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	command := "shell"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "capacity", "cap":
		cmdCapacity()
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "shell", "search":
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== assetview ===", zap.String("command", command))
	logger.Debug("config loaded", zap.String("path", cfg.Path()), zap.String("profile", cfg.UI.CacheProfile))

	s, err := newSession(context.Background(), cfg, os.Stdout)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer s.Close()

	switch command {
	case "search":
		err = cmdSearch(s, args)
	default:
		err = runShell(s)
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("assetview closed normally")
}

func printUsage() {
	fmt.Println(`assetview - asset browser with a page cache

Usage:
  assetview [flags] [command] [args]

Commands:
  shell                 Interactive browser (default)
  search <query>        Print matching assets and exit
  capacity              Show page cache capacity per profile

Flags:
  -config <file>        Config file
  -content <file>       YAML content map
  -backend <url>        Backend websocket URL
  -profile <name>       Page cache profile
  -debug                Debug logging, render pages without caching

Examples:
  assetview -content content.yaml
  assetview -content content.yaml search button
  assetview -backend ws://127.0.0.1:9230/bridge -profile bigger`)
}

func cmdCapacity() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"PROFILE"}
	for _, ns := range keepalive.Namespaces() {
		header = append(header, strings.ToUpper(string(ns)))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, p := range keepalive.Profiles() {
		row := []string{string(p)}
		for _, ns := range keepalive.Namespaces() {
			row = append(row, capacityString(keepalive.Capacity(p, ns)))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func capacityString(n int) string {
	if n <= 0 {
		return "unbounded"
	}
	return fmt.Sprint(n)
}

func cmdSearch(s *session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: assetview search <query>")
	}
	query := strings.Join(args, " ")
	res, err := s.index.Search(context.Background(), s.cfg.Search.Index, query, search.Options{Limit: s.cfg.Search.Limit})
	if err != nil {
		return err
	}
	for _, hit := range res.Hits {
		a, _ := s.content.Get(hit.ID)
		fmt.Fprintf(s.out, "%-24s %-12s %s\n", hit.ID, a.Kind(), hit.Text)
	}
	fmt.Fprintf(s.out, "\n%d of %d matches\n", len(res.Hits), res.EstimatedTotalHits)
	return nil
}
