package bridge

import "encoding/json"

// Backend event names.
const (
	EventProgress = "progress"
	EventSettings = "settings"
	EventToast    = "toast"
)

// Event is a message pushed by the backend.
type Event struct {
	Name    string
	Payload json.RawMessage
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Progress reports a long-running backend task.
type Progress struct {
	Task    string `json:"task"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// Settings carries settings changed on the backend side.
type Settings struct {
	CacheProfile string `json:"cache_profile,omitempty"`
}

// Toast is a user-facing notification.
type Toast struct {
	Message string `json:"message"`
	Intent  string `json:"intent,omitempty"`
}
