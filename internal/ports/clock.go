package ports

import "time"

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	// C returns the tick channel.
	C() <-chan time.Time

	// Stop releases the ticker. No ticks are delivered afterwards.
	Stop()
}

// Clock supplies "now" and periodic ticks. Now must be side-effect free and
// callable at arbitrary frequency.
// This is a driven port (implemented by adapters).
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// NewTicker creates a ticker with the given period.
	NewTicker(d time.Duration) Ticker
}
