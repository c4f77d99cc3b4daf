package framestat

// TokenSource names the part of the sampler an error came from.
type TokenSource int

const (
	// TokenLoop is the sampler lifecycle (Start, Stop, options).
	TokenLoop TokenSource = iota
	// TokenTick is a single sampling tick.
	TokenTick
	// TokenSurface is a capability query against a registered surface.
	TokenSurface
	// TokenScheduler is a frame scheduler.
	TokenScheduler
)

func (t TokenSource) String() string {
	switch t {
	case TokenLoop:
		return "loop"
	case TokenTick:
		return "tick"
	case TokenSurface:
		return "surface"
	case TokenScheduler:
		return "scheduler"
	}
	return "unknown"
}
