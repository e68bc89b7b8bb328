// Package keepalive caches rendered pages so that navigating back to them
// restores their nodes and scroll offset instead of rendering them again.
//
// A Provider owns the cache [Store] and one [ResizableCache] per
// [Namespace]. Each resident page keeps a hidden host node under the
// provider's root; a [Page] borrows the cached nodes from that host while it
// is mounted and hands them back when it unmounts. When a namespace grows
// past its capacity the least recently visited pages are dropped in one
// batch.
//
// The package assumes a single UI goroutine and takes no locks.
package keepalive

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/logger"
	"github.com/Faultbox/assetview/internal/view"
)

// Options configures a Provider.
type Options struct {
	Profile Profile
	// Disabled renders pages directly without caching them.
	Disabled bool
	Logger   *zap.Logger
	Metrics  *Metrics
}

// Provider wires the namespace caches to the store and renders every
// resident page.
type Provider struct {
	store    *Store
	caches   map[Namespace]*ResizableCache[string, struct{}]
	profile  Profile
	disabled bool

	root   *view.Node
	hosts  map[string]*view.Node
	active string

	listeners    map[int]func(Event)
	nextListener int

	log     *zap.Logger
	metrics *Metrics
}

// NewProvider creates a provider. An empty profile means [ProfileDefault].
func NewProvider(opts Options) *Provider {
	if opts.Profile == "" {
		opts.Profile = ProfileDefault
	}
	p := &Provider{
		store:     NewStore(),
		caches:    make(map[Namespace]*ResizableCache[string, struct{}]),
		profile:   opts.Profile,
		disabled:  opts.Disabled,
		root:      view.NewNode("keepalive"),
		hosts:     make(map[string]*view.Node),
		listeners: make(map[int]func(Event)),
		log:       opts.Logger,
		metrics:   opts.Metrics,
	}
	if p.log == nil {
		p.log = logger.Named("keepalive")
	}
	for _, ns := range Namespaces() {
		capacity := Capacity(p.profile, ns)
		cache := NewResizableCache[string, struct{}](capacity)
		cache.SetOnEvict(func(ids []string) { p.evicted(ns, ids) })
		p.caches[ns] = cache
		p.metrics.setCapacity(ns, capacity)
	}
	p.store.Subscribe(p.render)
	return p
}

// Store returns the underlying cache store.
func (p *Provider) Store() *Store {
	return p.store
}

// Root returns the node holding one host per resident page.
func (p *Provider) Root() *view.Node {
	return p.root
}

// Profile returns the active capacity profile.
func (p *Provider) Profile() Profile {
	return p.profile
}

// Disabled reports whether caching is bypassed.
func (p *Provider) Disabled() bool {
	return p.disabled
}

// Cache returns the LRU record of a namespace.
func (p *Provider) Cache(ns Namespace) *ResizableCache[string, struct{}] {
	cache, ok := p.caches[ns]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownNamespace, ns))
	}
	return cache
}

// SetScrollableWidget records the viewport every page scrolls in.
func (p *Provider) SetScrollableWidget(node *view.Node) {
	p.store.Dispatch(SetWidget{Node: node})
}

// Mount creates an entry for cacheID unless one exists.
func (p *Provider) Mount(cacheID string, element view.Element) {
	p.store.Dispatch(Creating{CacheID: cacheID, Element: element})
}

// Suspend records the scroll offset of a hidden page.
func (p *Provider) Suspend(cacheID string, scrollTop int) {
	p.store.Dispatch(Suspended{CacheID: cacheID, ScrollTop: scrollTop})
}

// Drop removes pages from the cache.
func (p *Provider) Drop(cacheIDs ...string) {
	for _, id := range cacheIDs {
		if cache, ok := p.caches[NamespaceOf(id)]; ok {
			cache.Remove(id)
		}
	}
	p.store.Dispatch(Drop{CacheIDs: cacheIDs})
}

// SetProfile switches every namespace to the capacities of profile,
// evicting right away if a namespace shrinks below its resident count.
func (p *Provider) SetProfile(profile Profile) {
	if profile == p.profile {
		return
	}
	// Resolve every capacity first so an unknown profile changes nothing.
	namespaces := Namespaces()
	bounds := make([]int, len(namespaces))
	for i, ns := range namespaces {
		bounds[i] = Capacity(profile, ns)
	}
	p.log.Debug("cache profile changed",
		zap.String("from", string(p.profile)), zap.String("to", string(profile)))
	p.profile = profile
	for i, ns := range namespaces {
		p.metrics.setCapacity(ns, bounds[i])
		p.caches[ns].Resize(bounds[i])
	}
}

// Resident returns the cached page identifiers in creation order.
func (p *Provider) Resident() []string {
	return p.store.State().IDs()
}

// Active returns the identifier of the mounted page, if any.
func (p *Provider) Active() string {
	return p.active
}

// Stage reports the lifecycle stage of cacheID.
func (p *Provider) Stage(cacheID string) Status {
	e, ok := p.store.State().Entry(cacheID)
	switch {
	case !ok:
		return StatusDropped
	case e.Status == StatusCreated && p.active != cacheID:
		return StatusSuspended
	default:
		return e.Status
	}
}

// Subscribe registers fn for lifecycle events. The returned function
// unregisters it.
func (p *Provider) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := p.nextListener
	p.nextListener++
	p.listeners[id] = fn
	return func() { delete(p.listeners, id) }
}

// Page returns a container for the page identified by namespace and key.
func (p *Provider) Page(ns Namespace, key string, element view.Element) *Page {
	if _, ok := p.caches[ns]; !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownNamespace, ns))
	}
	return &Page{
		provider:  p,
		namespace: ns,
		cacheID:   PageID(ns, key),
		element:   element,
	}
}

func (p *Provider) emit(ev Event) {
	for _, id := range slices.Sorted(maps.Keys(p.listeners)) {
		if fn, ok := p.listeners[id]; ok {
			fn(ev)
		}
	}
}

func (p *Provider) evicted(ns Namespace, ids []string) {
	p.log.Debug("evicting pages", zap.String("namespace", string(ns)), zap.Strings("ids", ids))
	p.metrics.addEvictions(ns, len(ids))
	p.store.Dispatch(Drop{CacheIDs: ids})
}

// render keeps one host per resident entry. A new entry's element is
// rendered into its host exactly once and its nodes are captured.
func (p *Provider) render(prev, next *State) {
	for _, id := range prev.order {
		if _, ok := next.entries[id]; ok {
			continue
		}
		if host, ok := p.hosts[id]; ok {
			host.Detach()
			delete(p.hosts, id)
		}
		p.updateResident(NamespaceOf(id))
		p.emit(Event{Type: EventDropped, CacheID: id})
	}
	for _, id := range next.order {
		if _, ok := p.hosts[id]; ok {
			continue
		}
		host := view.NewNode(id)
		host.Hidden = id != p.active
		p.root.AppendChild(host)
		p.hosts[id] = host

		e := next.entries[id]
		if e.Element != nil {
			e.Element.Render(host)
		}
		p.metrics.incCreated(NamespaceOf(id))
		p.store.Dispatch(Created{CacheID: id, Nodes: host.Children()})
	}
}

func (p *Provider) updateResident(ns Namespace) {
	if cache, ok := p.caches[ns]; ok {
		p.metrics.setResident(ns, cache.Len())
	}
}

// activate shows the host of cacheID and hides every other host.
func (p *Provider) activate(cacheID string) {
	p.active = cacheID
	for id, host := range p.hosts {
		host.Hidden = id != cacheID
	}
}
