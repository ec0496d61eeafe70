package listing

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestRegistry(maxAge time.Duration) *Registry {
	f := &fakeFetcher{handler: paginatedHandler("m", 45)}
	return NewRegistry(f, 20, maxAge, zerolog.Nop())
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r := newTestRegistry(time.Minute)

	id, s := r.Create()
	if id == "" || s == nil {
		t.Fatalf("Create returned empty id or nil session")
	}

	got, ok := r.Get(id)
	if !ok || got != s {
		t.Fatalf("Get did not return the created session")
	}
	if _, ok := r.Get("nope"); ok {
		t.Fatalf("Get must miss for unknown ids")
	}

	r.Delete(id)
	if _, ok := r.Get(id); ok {
		t.Fatalf("deleted session still resolvable")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after delete", r.Len())
	}
}

func TestRegistry_SweepDropsIdleSessions(t *testing.T) {
	r := newTestRegistry(time.Minute)
	r.Create()
	r.Create()

	if n := r.Sweep(time.Now().Add(2 * time.Minute)); n != 2 {
		t.Fatalf("Sweep removed %d sessions, want 2", n)
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after sweep", r.Len())
	}
}

func TestRegistry_SweepKeepsActiveSessions(t *testing.T) {
	r := newTestRegistry(time.Minute)
	id, _ := r.Create()

	if n := r.Sweep(time.Now().Add(30 * time.Second)); n != 0 {
		t.Fatalf("Sweep removed %d sessions inside the idle window", n)
	}
	if _, ok := r.Get(id); !ok {
		t.Fatalf("active session swept")
	}
}
