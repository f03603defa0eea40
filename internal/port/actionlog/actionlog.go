package actionlog

import "context"

// Logger is the append-only audit trail for dashboard management actions.
// Implementations must record the entry before returning so that a forbidden
// decision is never observable without its audit line.
type Logger interface {
	Log(ctx context.Context, actor, message string)
}

// Nop discards entries. Used where an audit trail is not wired, e.g. tests.
type Nop struct{}

func (Nop) Log(context.Context, string, string) {}
