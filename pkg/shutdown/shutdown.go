package shutdown

import (
	"context"
	"os/signal"
	"syscall"
)

// WithSignals derives a context that ends on SIGINT or SIGTERM, giving the
// server a window to drain in-flight requests before the process exits.
// Cancel releases the signal registration; a second signal after that kills
// the process with the default handler.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
