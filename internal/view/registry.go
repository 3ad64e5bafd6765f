package view

import (
	"context"
	"sync"
)

// Controller brings a view to life once its fragment is in the container.
type Controller interface {
	Mount(ctx context.Context, c *Container) (Handle, error)
}

// Handle is returned by Mount and released before the next view mounts.
type Handle interface {
	Unmount()
}

// HandleFunc adapts a function to Handle.
type HandleFunc func()

func (f HandleFunc) Unmount() { f() }

// InitFunc adapts a plain initializer that needs no teardown.
type InitFunc func(ctx context.Context, c *Container) error

func (f InitFunc) Mount(ctx context.Context, c *Container) (Handle, error) {
	return HandleFunc(func() {}), f(ctx, c)
}

// Registry maps view ids to controllers. It is filled at start-up and read
// on every navigation.
type Registry struct {
	mu          sync.RWMutex
	controllers map[ID]Controller
}

func NewRegistry() *Registry {
	return &Registry{controllers: make(map[ID]Controller)}
}

// Register stores ctrl under id, replacing any earlier controller.
func (r *Registry) Register(id ID, ctrl Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[id] = ctrl
}

func (r *Registry) Lookup(id ID) (Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, ok := r.controllers[id]
	return ctrl, ok
}
