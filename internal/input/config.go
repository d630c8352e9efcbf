package input

import "time"

// DefaultFlushInterval is how long the binder waits for more keys
// before committing the best pending match or giving up.
const DefaultFlushInterval = 1000 * time.Millisecond

// Config configures a Binder.
type Config struct {
	// FlushInterval is the silence interval after which an ambiguous
	// match is resolved. Non-positive values select
	// DefaultFlushInterval.
	FlushInterval time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FlushInterval: DefaultFlushInterval,
	}
}
