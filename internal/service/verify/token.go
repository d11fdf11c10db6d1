package verify

import (
	"context"
	"sync"
)

// Gate tracks in-flight asynchronous verifications so the host process can
// drain them before tearing down. The triggering dispatch returns
// immediately; the work it launched stays accounted for here.
type Gate struct {
	wg sync.WaitGroup
}

func NewGate() *Gate {
	return &Gate{}
}

// Begin acquires a completion token. The caller must arrange for Release on
// every exit path, normally via defer.
func (g *Gate) Begin() *Token {
	g.wg.Add(1)
	return &Token{gate: g}
}

// Wait blocks until every outstanding token is released or ctx expires.
func (g *Gate) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Token keeps the process alive for one asynchronous check. Release is
// idempotent; failing to release on any path is a correctness bug, so the
// token is safe to release from multiple defers.
type Token struct {
	gate *Gate
	once sync.Once
}

func (t *Token) Release() {
	t.once.Do(t.gate.wg.Done)
}
