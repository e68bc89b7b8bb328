// Package router implements navigation between routes.
package router

import "github.com/Faultbox/assetview/internal/view"

// Route is what a location shows.
type Route interface {
	// Enter is called when the route becomes current.
	Enter(outlet *view.Node) error

	// Exit is called when leaving the route.
	Exit() error
}

// Resolver maps a location to the route showing it.
type Resolver func(Location) (Route, error)

// Manager manages route transitions and history.
type Manager struct {
	outlet  *view.Node
	resolve Resolver

	current    Route
	currentLoc Location
	next       *Location

	history []Location
	pos     int
}

// NewManager creates a manager rendering routes into outlet.
func NewManager(outlet *view.Node, resolve Resolver) *Manager {
	return &Manager{outlet: outlet, resolve: resolve, pos: -1}
}

// Current returns the current location and route.
func (m *Manager) Current() (Location, Route) {
	return m.currentLoc, m.current
}

// Navigate schedules a transition to loc, discarding forward history.
func (m *Manager) Navigate(loc Location) {
	m.history = append(m.history[:m.pos+1], loc)
	m.pos = len(m.history) - 1
	m.next = &loc
}

// Back schedules a transition to the previous location.
func (m *Manager) Back() bool {
	if m.pos <= 0 {
		return false
	}
	m.pos--
	loc := m.history[m.pos]
	m.next = &loc
	return true
}

// Forward schedules a transition to the next location.
func (m *Manager) Forward() bool {
	if m.pos >= len(m.history)-1 {
		return false
	}
	m.pos++
	loc := m.history[m.pos]
	m.next = &loc
	return true
}

// History returns the visited locations and the index of the current one.
func (m *Manager) History() ([]Location, int) {
	out := make([]Location, len(m.history))
	copy(out, m.history)
	return out, m.pos
}

// Update processes a scheduled transition. The current route is exited
// before the next one is resolved and entered.
func (m *Manager) Update() error {
	if m.next == nil {
		return nil
	}
	loc := *m.next
	m.next = nil
	if m.current != nil && loc.String() == m.currentLoc.String() {
		return nil
	}

	if m.current != nil {
		if err := m.current.Exit(); err != nil {
			return err
		}
		m.current = nil
	}
	route, err := m.resolve(loc)
	if err != nil {
		return err
	}
	m.current = route
	m.currentLoc = loc
	return m.current.Enter(m.outlet)
}
