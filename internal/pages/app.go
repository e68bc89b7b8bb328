// Package pages renders the search-result, asset-detail and settings pages
// and resolves locations to them.
package pages

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/assets"
	"github.com/Faultbox/assetview/internal/keepalive"
	"github.com/Faultbox/assetview/internal/logger"
	"github.com/Faultbox/assetview/internal/router"
	"github.com/Faultbox/assetview/internal/search"
	"github.com/Faultbox/assetview/internal/view"
)

// Route paths.
const (
	PathSearch   = "/search"
	PathAsset    = "/asset"
	PathSettings = "/settings"
)

// Deps are the collaborators pages render with.
type Deps struct {
	Provider *keepalive.Provider
	Content  *assets.Map
	Search   search.Client
	// Loader is optional; without it previews show metadata only.
	Loader      *assets.Manager
	Index       string
	Limit       int
	CallTimeout time.Duration
	Logger      *zap.Logger
}

// App resolves locations to routes.
type App struct {
	deps        Deps
	log         *zap.Logger
	unsubscribe func()
}

// NewApp creates the page set. Resources loaded by a page are released
// when the page cache drops it.
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = logger.Named("pages")
	}
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = 10 * time.Second
	}
	a := &App{deps: deps, log: deps.Logger}
	a.unsubscribe = deps.Provider.Subscribe(a.onCacheEvent)
	return a
}

// Close stops listening to cache events.
func (a *App) Close() {
	a.unsubscribe()
}

func (a *App) onCacheEvent(ev keepalive.Event) {
	switch ev.Type {
	case keepalive.EventDropped:
		a.release(ev.CacheID)
	case keepalive.EventRestored, keepalive.EventUnmounted:
		a.log.Debug("page "+ev.Type.String(), zap.String("page", ev.CacheID), zap.Int("scroll", ev.ScrollTop))
	}
}

// Resolve implements router.Resolver.
func (a *App) Resolve(loc router.Location) (router.Route, error) {
	switch loc.Path {
	case PathSearch:
		query := loc.Param("q")
		el := &searchElement{app: a, query: query, cacheID: keepalive.PageID(keepalive.SearchPage, query)}
		return &cachedRoute{app: a, page: a.deps.Provider.Page(keepalive.SearchPage, query, el)}, nil

	case PathAsset:
		id := loc.Param("id")
		asset, ok := a.deps.Content.Get(id)
		if !ok {
			return &plainRoute{app: a, name: "invalid", el: invalidElement(id)}, nil
		}
		cacheID := keepalive.PageID(keepalive.AssetPage, loc.Key())
		el := &assetElement{app: a, asset: asset, cacheID: cacheID}
		if !assets.Cacheable(asset) {
			return &plainRoute{app: a, name: cacheID, el: el}, nil
		}
		return &cachedRoute{app: a, page: a.deps.Provider.Page(keepalive.AssetPage, loc.Key(), el)}, nil

	case PathSettings:
		return &plainRoute{app: a, name: "settings", el: settingsElement{provider: a.deps.Provider}}, nil

	default:
		return nil, fmt.Errorf("no route for %s", loc)
	}
}

// release frees the resources pageID loaded.
func (a *App) release(pageID string) {
	if a.deps.Loader == nil {
		return
	}
	if n := a.deps.Loader.ReleasePage(pageID); n > 0 {
		a.log.Debug("released page resources", zap.String("page", pageID), zap.Int("assets", n))
	}
}

func (a *App) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.deps.CallTimeout)
}

// cachedRoute shows a page through the keepalive cache.
type cachedRoute struct {
	app  *App
	page *keepalive.Page
}

func (r *cachedRoute) Enter(outlet *view.Node) error {
	r.page.Mount(outlet)
	return nil
}

func (r *cachedRoute) Exit() error {
	r.page.Unmount()
	// Without caching the page is gone and no drop event will follow.
	if r.app.deps.Provider.Disabled() {
		r.app.release(r.page.CacheID())
	}
	return nil
}

// Page returns the keepalive container behind the route.
func (r *cachedRoute) Page() *keepalive.Page {
	return r.page
}

// plainRoute renders its element on every visit and releases what it
// loaded when left.
type plainRoute struct {
	app   *App
	name  string
	el    view.Element
	mount *view.Node
}

func (r *plainRoute) Enter(outlet *view.Node) error {
	r.mount = view.NewNode(r.name)
	outlet.AppendChild(r.mount)
	r.el.Render(r.mount)
	return nil
}

func (r *plainRoute) Exit() error {
	if r.mount != nil {
		r.mount.Detach()
		r.mount = nil
	}
	r.app.release(r.name)
	return nil
}
