package keepalive

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Faultbox/assetview/internal/view"
)

// Status is the lifecycle stage of a cached page.
type Status int

const (
	StatusDropped Status = iota // not in the store
	StatusCreating
	StatusCreated
	StatusSuspended
)

func (s Status) String() string {
	switch s {
	case StatusDropped:
		return "DROPPED"
	case StatusCreating:
		return "CREATING"
	case StatusCreated:
		return "CREATED"
	case StatusSuspended:
		return "SUSPENDED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Entry is the cached state of one page. Entries are immutable snapshots;
// Nodes must not be modified through an Entry.
type Entry struct {
	CacheID      string
	Status       Status
	Element      view.Element
	Nodes        []*view.Node
	ScrollTop    int
	HasScrollTop bool // false until the page is first suspended
}

// State is an immutable snapshot of the cache store.
type State struct {
	widget  *view.Node
	entries map[string]Entry
	order   []string
}

var emptyState = &State{entries: map[string]Entry{}}

// Widget returns the shared scrollable container, or nil if none was set.
func (s *State) Widget() *view.Node {
	return s.widget
}

// Entry returns the entry for cacheID.
func (s *State) Entry(cacheID string) (Entry, bool) {
	e, ok := s.entries[cacheID]
	return e, ok
}

// IDs returns the resident cache identifiers in creation order.
func (s *State) IDs() []string {
	return slices.Clone(s.order)
}

// Len returns the number of resident entries.
func (s *State) Len() int {
	return len(s.order)
}

func (s *State) clone() *State {
	return &State{
		widget:  s.widget,
		entries: maps.Clone(s.entries),
		order:   slices.Clone(s.order),
	}
}

// Action is a store transition. The set of actions is closed.
type Action interface {
	isAction()
}

// SetWidget records the shared scrollable container.
type SetWidget struct {
	Node *view.Node
}

// Creating inserts a new entry unless one exists for CacheID.
type Creating struct {
	CacheID string
	Element view.Element
}

// Created attaches the rendered nodes of an existing entry.
type Created struct {
	CacheID string
	Nodes   []*view.Node
}

// Suspended records the scroll offset of an existing entry as it is hidden.
type Suspended struct {
	CacheID   string
	ScrollTop int
}

// Drop removes entries. One eviction pass is one Drop.
type Drop struct {
	CacheIDs []string
}

func (SetWidget) isAction() {}
func (Creating) isAction()  {}
func (Created) isAction()   {}
func (Suspended) isAction() {}
func (Drop) isAction()      {}

// Reduce returns the state following action. It never modifies s, and it
// returns s itself when the action changes nothing.
func Reduce(s *State, action Action) *State {
	switch a := action.(type) {
	case SetWidget:
		if s.widget == a.Node {
			return s
		}
		next := s.clone()
		next.widget = a.Node
		return next

	case Creating:
		if _, ok := s.entries[a.CacheID]; ok {
			return s
		}
		next := s.clone()
		next.entries[a.CacheID] = Entry{
			CacheID: a.CacheID,
			Status:  StatusCreating,
			Element: a.Element,
		}
		next.order = append(next.order, a.CacheID)
		return next

	case Created:
		e := mustEntry(s, a.CacheID, "CREATED")
		e.Status = StatusCreated
		e.Nodes = slices.Clone(a.Nodes)
		if e.Nodes == nil {
			e.Nodes = []*view.Node{}
		}
		next := s.clone()
		next.entries[a.CacheID] = e
		return next

	case Suspended:
		e := mustEntry(s, a.CacheID, "SUSPENDED")
		e.ScrollTop = a.ScrollTop
		e.HasScrollTop = true
		next := s.clone()
		next.entries[a.CacheID] = e
		return next

	case Drop:
		var next *State
		for _, id := range a.CacheIDs {
			if _, ok := s.entries[id]; !ok {
				continue
			}
			if next == nil {
				next = s.clone()
			}
			delete(next.entries, id)
			next.order = slices.DeleteFunc(next.order, func(o string) bool { return o == id })
		}
		if next == nil {
			return s
		}
		return next

	default:
		panic(fmt.Sprintf("keepalive: unhandled action %T", action))
	}
}

func mustEntry(s *State, cacheID, action string) Entry {
	e, ok := s.entries[cacheID]
	if !ok {
		panic(fmt.Errorf("%w: %s for %q", ErrUnknownEntry, action, cacheID))
	}
	return e
}

// Store applies actions one at a time in submission order and notifies
// subscribers of every state change. Actions dispatched by a subscriber are
// queued behind the one being processed.
type Store struct {
	state       *State
	subscribers map[int]func(prev, next *State)
	nextSub     int
	queue       []Action
	dispatching bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		state:       emptyState,
		subscribers: make(map[int]func(prev, next *State)),
	}
}

// State returns the current snapshot.
func (s *Store) State() *State {
	return s.state
}

// Dispatch submits an action.
func (s *Store) Dispatch(action Action) {
	s.queue = append(s.queue, action)
	if s.dispatching {
		return
	}
	s.dispatching = true
	defer func() {
		s.dispatching = false
		s.queue = nil
	}()
	for len(s.queue) > 0 {
		a := s.queue[0]
		s.queue = s.queue[1:]
		prev := s.state
		next := Reduce(prev, a)
		if next == prev {
			continue
		}
		s.state = next
		for _, id := range slices.Sorted(maps.Keys(s.subscribers)) {
			if fn, ok := s.subscribers[id]; ok {
				fn(prev, next)
			}
		}
	}
}

// Subscribe registers fn to run after every state change.
// The returned function unregisters it.
func (s *Store) Subscribe(fn func(prev, next *State)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}
