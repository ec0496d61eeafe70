package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakePinger struct {
	fail atomic.Bool
}

func (p *fakePinger) Ping(ctx context.Context) error {
	if p.fail.Load() {
		return errors.New("unreachable")
	}
	return nil
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestUpstreamChecker_TracksHealth(t *testing.T) {
	p := &fakePinger{}
	hc := NewUpstreamChecker("media-server", p, zerolog.Nop(), time.Second)

	if hc.IsHealthy() {
		t.Fatal("checker must start unhealthy")
	}
	if hc.Name() != "media-server" {
		t.Fatalf("name = %q", hc.Name())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, 10*time.Millisecond)

	waitFor(t, hc.IsHealthy, "checker never became healthy")

	p.fail.Store(true)
	waitFor(t, func() bool { return !hc.IsHealthy() }, "checker never became unhealthy")

	p.fail.Store(false)
	waitFor(t, hc.IsHealthy, "checker never recovered")
}

func TestServiceHealthChecker_Aggregates(t *testing.T) {
	good := &fakePinger{}
	bad := &fakePinger{}
	bad.fail.Store(true)

	c1 := NewUpstreamChecker("a", good, zerolog.Nop(), time.Second)
	c2 := NewUpstreamChecker("b", bad, zerolog.Nop(), time.Second)
	svc := NewServiceHealthChecker(zerolog.Nop(), c1, c2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c1.Start(ctx, 10*time.Millisecond)
	go c2.Start(ctx, 10*time.Millisecond)
	go svc.Start(ctx, 10*time.Millisecond)

	waitFor(t, c1.IsHealthy, "good checker never became healthy")
	time.Sleep(50 * time.Millisecond)
	if svc.IsHealthy() {
		t.Fatal("service must be unhealthy while any dependency is down")
	}

	bad.fail.Store(false)
	waitFor(t, svc.IsHealthy, "service never became healthy")
}

func TestServiceHealthChecker_NoDepsIsHealthy(t *testing.T) {
	svc := NewServiceHealthChecker(zerolog.Nop())
	if !svc.IsHealthy() {
		t.Fatal("service with no dependencies must report healthy")
	}
}
