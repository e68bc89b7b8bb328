package keepalive

// EventType identifies a page lifecycle notification.
type EventType int

const (
	// EventRestored fires when a page is shown again from its cached nodes.
	EventRestored EventType = iota
	// EventUnmounted fires when a page is hidden. ScrollTop holds the
	// offset recorded for it.
	EventUnmounted
	// EventDropped fires for every entry removed from the cache.
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventRestored:
		return "restored"
	case EventUnmounted:
		return "unmounted"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event is delivered to Provider subscribers.
type Event struct {
	Type      EventType
	CacheID   string
	ScrollTop int
}
