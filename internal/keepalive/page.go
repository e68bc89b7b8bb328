package keepalive

import (
	"slices"

	"github.com/Faultbox/assetview/internal/view"
)

// Page is the container of one cached page. The element it was created
// with is rendered at most once for the lifetime of the cache entry; later
// mounts of the same identifier reuse the nodes rendered the first time.
type Page struct {
	provider  *Provider
	namespace Namespace
	cacheID   string
	element   view.Element

	mount    *view.Node
	nodes    []*view.Node
	restored bool
}

// CacheID returns the page identifier.
func (pg *Page) CacheID() string {
	return pg.cacheID
}

// Namespace returns the namespace the page is cached in.
func (pg *Page) Namespace() Namespace {
	return pg.namespace
}

// Node returns the mount point, or nil while unmounted.
func (pg *Page) Node() *view.Node {
	return pg.mount
}

// Restored reports whether the last Mount reused cached nodes.
func (pg *Page) Restored() bool {
	return pg.restored
}

// Mount attaches the page under parent. Mounting an already mounted page
// does nothing.
func (pg *Page) Mount(parent *view.Node) {
	if pg.mount != nil {
		return
	}
	pg.mount = view.NewNode(pg.cacheID)
	parent.AppendChild(pg.mount)

	p := pg.provider
	if p.disabled {
		if pg.element != nil {
			pg.element.Render(pg.mount)
		}
		return
	}
	if e, ok := p.store.State().Entry(pg.cacheID); ok && e.Nodes != nil {
		pg.restore(e)
	} else {
		pg.create()
	}
	p.activate(pg.cacheID)
}

func (pg *Page) create() {
	p := pg.provider
	p.store.Dispatch(Creating{CacheID: pg.cacheID, Element: pg.element})
	p.caches[pg.namespace].Set(pg.cacheID, struct{}{})
	p.updateResident(pg.namespace)
	pg.restored = false

	if e, ok := p.store.State().Entry(pg.cacheID); ok {
		pg.adopt(e.Nodes)
	}
}

func (pg *Page) restore(e Entry) {
	p := pg.provider
	pg.adopt(e.Nodes)
	if w := p.store.State().Widget(); w != nil {
		w.ScrollTop = e.ScrollTop
	}
	p.caches[pg.namespace].Set(pg.cacheID, struct{}{})
	p.updateResident(pg.namespace)
	p.metrics.incRestored(pg.namespace)
	pg.restored = true
	p.emit(Event{Type: EventRestored, CacheID: pg.cacheID, ScrollTop: e.ScrollTop})
}

// adopt moves the entry's nodes into the mount point. They stay owned by
// the entry and go back to its host on Unmount.
func (pg *Page) adopt(nodes []*view.Node) {
	for _, n := range nodes {
		pg.mount.AppendChild(n)
	}
	pg.nodes = nodes
}

// Unmount hides the page, recording the viewport's scroll offset.
func (pg *Page) Unmount() {
	if pg.mount == nil {
		return
	}
	p := pg.provider
	if p.disabled {
		pg.mount.Clear()
		pg.mount.Detach()
		pg.mount = nil
		return
	}

	state := p.store.State()
	scrollTop := 0
	if w := state.Widget(); w != nil {
		scrollTop = w.ScrollTop
	}
	e, ok := state.Entry(pg.cacheID)
	if ok && slices.Equal(e.Nodes, pg.nodes) {
		p.store.Dispatch(Suspended{CacheID: pg.cacheID, ScrollTop: scrollTop})
		host := p.hosts[pg.cacheID]
		for _, n := range pg.nodes {
			host.AppendChild(n)
		}
	} else {
		// Dropped while mounted: nobody owns these nodes any more.
		pg.mount.Clear()
	}
	pg.nodes = nil
	pg.mount.Detach()
	pg.mount = nil
	if p.active == pg.cacheID {
		p.activate("")
	}
	p.emit(Event{Type: EventUnmounted, CacheID: pg.cacheID, ScrollTop: scrollTop})
}
