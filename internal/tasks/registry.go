package tasks

import (
	"context"
	"log"
	"sync"
)

// Registry runs background work decoupled from request handling. Tasks are
// supervised: panics are recovered, errors are logged, and Shutdown waits for
// everything scheduled so no task is silently dropped while the process exits.
type Registry struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewRegistry creates a new Registry
func NewRegistry() *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{ctx: ctx, cancel: cancel}
}

// Go schedules a named task. The task runs with the registry's context, not
// the triggering request's, so it outlives the request that scheduled it.
// After Shutdown, new tasks are rejected and logged.
func (r *Registry) Go(name string, fn func(ctx context.Context) error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		log.Printf("task %q rejected: registry is shut down", name)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("task %q panicked: %v", name, rec)
			}
		}()
		if err := fn(r.ctx); err != nil {
			log.Printf("task %q failed: %v", name, err)
		}
	}()
}

// Shutdown stops accepting tasks and waits for in-flight ones to finish or
// for ctx to expire, whichever comes first
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}
