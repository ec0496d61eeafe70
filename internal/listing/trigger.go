package listing

import "context"

// Trigger converts a near-end-of-list signal into a LoadNext call. The
// caller reports sentinel proximity; the trigger fires only when more
// data is known to exist and nothing is loading. Repeated firing is
// harmless: the session's in-flight guard is the backstop.
type Trigger struct {
	session *Session
}

// NewTrigger binds a trigger to a session.
func NewTrigger(s *Session) *Trigger { return &Trigger{session: s} }

// Notify evaluates the signal and advances the session when warranted.
// It reports whether a load was started.
func (t *Trigger) Notify(ctx context.Context, nearEnd bool) bool {
	if !nearEnd {
		return false
	}
	snap := t.session.Snapshot()
	if !snap.HasMore || snap.LoadingInitial || snap.LoadingMore {
		return false
	}
	t.session.LoadNext(ctx)
	return true
}
