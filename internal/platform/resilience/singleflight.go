package resilience

import "sync"

// Group collapses concurrent calls sharing a key into one execution.
// The zero value is ready to use.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done chan struct{}
	val  T
	err  error
	dups int
}

// Do runs fn once per in-flight key. shared reports whether the result was
// delivered to more than one caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall[T])
	}
	if c, ok := g.calls[key]; ok {
		c.dups++
		g.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall[T]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	func() {
		defer close(c.done)
		c.val, c.err = fn()
	}()

	g.mu.Lock()
	delete(g.calls, key)
	shared = c.dups > 0
	g.mu.Unlock()

	return c.val, c.err, shared
}
