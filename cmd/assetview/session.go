package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/assets"
	"github.com/Faultbox/assetview/internal/bridge"
	"github.com/Faultbox/assetview/internal/config"
	"github.com/Faultbox/assetview/internal/keepalive"
	"github.com/Faultbox/assetview/internal/logger"
	"github.com/Faultbox/assetview/internal/pages"
	"github.com/Faultbox/assetview/internal/router"
	"github.com/Faultbox/assetview/internal/search"
	"github.com/Faultbox/assetview/internal/view"
)

// methodContent asks the backend for the content map.
const methodContent = "content"

var errQuit = errors.New("quit")

// session owns every UI object. All methods run on one goroutine.
type session struct {
	cfg *config.Config
	out io.Writer
	log *zap.Logger

	client   *bridge.Client
	content  *assets.Map
	index    *search.FuzzyIndex
	loader   *assets.Manager
	provider *keepalive.Provider
	app      *pages.App
	router   *router.Manager
	viewport *view.Node

	registry *prometheus.Registry
	server   *http.Server
}

func newSession(ctx context.Context, cfg *config.Config, out io.Writer) (*session, error) {
	s := &session{
		cfg:      cfg,
		out:      out,
		log:      logger.Named("shell"),
		viewport: view.NewNode("article"),
		registry: prometheus.NewRegistry(),
	}
	s.registry.MustRegister(collectors.NewGoCollector())

	if cfg.Backend.URL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, cfg.Backend.CallTimeout)
		client, err := bridge.Dial(dialCtx, cfg.Backend.URL)
		cancel()
		if err != nil {
			return nil, err
		}
		s.client = client
	}

	content, err := s.loadContent(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.content = content

	s.index = search.NewFuzzyIndex()
	for _, id := range content.IDs() {
		a, _ := content.Get(id)
		s.index.Add(cfg.Search.Index, id, a.Name())
	}

	if s.client != nil {
		s.loader, err = assets.NewManager(s.client, cfg.Assets.DecodedCacheSize)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	s.provider = keepalive.NewProvider(keepalive.Options{
		Profile:  cfg.Profile(),
		Disabled: cfg.UI.Debug,
		Metrics:  keepalive.NewMetrics(s.registry),
	})
	s.provider.SetScrollableWidget(s.viewport)

	deps := pages.Deps{
		Provider:    s.provider,
		Content:     content,
		Search:      s.index,
		Loader:      s.loader,
		Index:       cfg.Search.Index,
		Limit:       cfg.Search.Limit,
		CallTimeout: cfg.Backend.CallTimeout,
	}
	s.app = pages.NewApp(deps)
	s.router = router.NewManager(s.viewport, s.app.Resolve)

	if cfg.Metrics.Listen != "" {
		s.serveMetrics()
	}

	s.log.Info("session ready",
		zap.Int("assets", content.Len()),
		zap.String("profile", string(s.provider.Profile())),
		zap.Bool("backend", s.client != nil))
	return s, nil
}

func (s *session) loadContent(ctx context.Context) (*assets.Map, error) {
	if s.cfg.Assets.ContentFile != "" {
		return assets.LoadFile(s.cfg.Assets.ContentFile)
	}
	if s.client == nil {
		return nil, errors.New("no content: set assets.content_file or backend.url")
	}
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Backend.CallTimeout)
	defer cancel()
	var records []assets.Record
	if err := s.client.Call(callCtx, methodContent, nil, &records); err != nil {
		return nil, fmt.Errorf("fetching content map: %w", err)
	}
	return assets.NewMap(records)
}

func (s *session) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	s.server = &http.Server{
		Addr:              s.cfg.Metrics.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 30 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	s.log.Info("serving metrics", zap.String("addr", s.cfg.Metrics.Listen), zap.String("path", s.cfg.Metrics.Path))
}

// Events returns backend events, or nil without a backend.
func (s *session) Events() <-chan bridge.Event {
	if s.client == nil {
		return nil
	}
	return s.client.Events()
}

// Close releases the backend connection and the metrics endpoint.
func (s *session) Close() {
	if s.app != nil {
		s.app.Close()
	}
	if s.loader != nil {
		s.loader.Close()
	}
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctx)
	}
}

// handleEvent applies a backend event.
func (s *session) handleEvent(ev bridge.Event) {
	switch ev.Name {
	case bridge.EventSettings:
		var settings bridge.Settings
		if err := ev.Decode(&settings); err != nil {
			s.log.Warn("bad settings event", zap.Error(err))
			return
		}
		if settings.CacheProfile == "" {
			return
		}
		if err := s.setProfile(settings.CacheProfile); err != nil {
			s.log.Warn("ignoring settings event", zap.Error(err))
		}
	case bridge.EventToast:
		var toast bridge.Toast
		if err := ev.Decode(&toast); err != nil {
			s.log.Warn("bad toast event", zap.Error(err))
			return
		}
		fmt.Fprintf(s.out, "[%s] %s\n", toastIntent(toast.Intent), toast.Message)
	case bridge.EventProgress:
		var p bridge.Progress
		if err := ev.Decode(&p); err != nil {
			s.log.Warn("bad progress event", zap.Error(err))
			return
		}
		s.log.Debug("backend progress", zap.String("task", p.Task), zap.Int("current", p.Current), zap.Int("total", p.Total))
	default:
		s.log.Debug("unhandled backend event", zap.String("event", ev.Name))
	}
}

func toastIntent(intent string) string {
	if intent == "" {
		return "info"
	}
	return intent
}

func (s *session) setProfile(name string) error {
	profile, err := keepalive.ParseProfile(name)
	if err != nil {
		return err
	}
	s.cfg.UI.CacheProfile = string(profile)
	s.provider.SetProfile(profile)
	return nil
}

func (s *session) navigate(loc router.Location) error {
	s.router.Navigate(loc)
	if err := s.router.Update(); err != nil {
		return err
	}
	return s.show()
}

func (s *session) show() error {
	fmt.Fprint(s.out, s.viewport.Tree())
	return nil
}

// exec runs one shell command. It returns errQuit to end the shell.
func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

	switch cmd {
	case "search", "s":
		return s.navigate(router.Location{Path: pages.PathSearch, Query: "q=" + url.QueryEscape(rest)})

	case "open", "o":
		if len(args) != 1 {
			return errors.New("usage: open <asset-id>")
		}
		return s.navigate(router.Location{Path: pages.PathAsset, Query: "id=" + url.QueryEscape(args[0])})

	case "settings":
		return s.navigate(router.Location{Path: pages.PathSettings})

	case "go":
		if len(args) != 1 {
			return errors.New("usage: go <location>")
		}
		return s.navigate(router.Parse(args[0]))

	case "back", "b":
		if !s.router.Back() {
			return errors.New("no previous page")
		}
		if err := s.router.Update(); err != nil {
			return err
		}
		return s.show()

	case "forward", "f":
		if !s.router.Forward() {
			return errors.New("no next page")
		}
		if err := s.router.Update(); err != nil {
			return err
		}
		return s.show()

	case "scroll":
		if len(args) != 1 {
			fmt.Fprintf(s.out, "scroll %d\n", s.viewport.ScrollTop)
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid scroll offset %q", args[0])
		}
		s.viewport.ScrollTop = n
		return nil

	case "profile":
		if len(args) == 0 {
			fmt.Fprintf(s.out, "profile %s\n", s.provider.Profile())
			return nil
		}
		if err := s.setProfile(args[0]); err != nil {
			return err
		}
		if len(args) > 1 && args[1] == "save" {
			return s.cfg.Save()
		}
		return nil

	case "show":
		return s.show()

	case "pages":
		for _, id := range s.provider.Resident() {
			fmt.Fprintf(s.out, "%-10s %s\n", s.provider.Stage(id), id)
		}
		fmt.Fprint(s.out, s.provider.Root().Tree())
		return nil

	case "history":
		history, pos := s.router.History()
		for i, loc := range history {
			marker := " "
			if i == pos {
				marker = ">"
			}
			fmt.Fprintf(s.out, "%s %s\n", marker, loc)
		}
		return nil

	case "stats":
		for _, ns := range keepalive.Namespaces() {
			cache := s.provider.Cache(ns)
			fmt.Fprintf(s.out, "%-12s %d/%s\n", ns, cache.Len(), capacityString(cache.Capacity()))
		}
		if s.loader != nil {
			hits, misses, resident := s.loader.Stats()
			fmt.Fprintf(s.out, "decoded      %d resident, %d hits, %d misses\n", resident, hits, misses)
		}
		return nil

	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil

	case "quit", "exit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

const shellHelp = `search <query>     show the search page for query
open <id>          show the asset page for id
settings           show cache settings
go <location>      navigate to a location such as /asset?id=btn
back, forward      move through history
scroll [n]         show or set the viewport scroll offset
profile [name]     show or set the cache profile ("profile max save" persists it)
show               print the current page
pages              print cached pages
history            print navigation history
stats              print cache statistics
quit               leave`
