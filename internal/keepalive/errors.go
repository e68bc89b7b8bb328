package keepalive

type constError string

// Programming errors. The cache panics with these (wrapped with context)
// when a caller breaks its contract.
const (
	ErrUnknownProfile   = constError("unknown cache profile")
	ErrUnknownNamespace = constError("unknown page namespace")
	ErrUnknownEntry     = constError("unknown cache entry")
)

func (errStr constError) Error() string { return string(errStr) }
