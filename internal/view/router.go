package view

import (
	"context"
	"log"
)

// Router swaps views in and out of one container.
type Router struct {
	registry  *Registry
	loader    FragmentLoader
	container *Container

	current ID
	mounted Handle
}

func NewRouter(registry *Registry, loader FragmentLoader, container *Container) *Router {
	return &Router{
		registry:  registry,
		loader:    loader,
		container: container,
	}
}

func (r *Router) Container() *Container { return r.container }

// Navigate shows the view named by fragment. Failures end up as an inline
// message in the container, never as a returned error.
func (r *Router) Navigate(ctx context.Context, fragment string) ID {
	id := ParseID(fragment)
	c := r.container

	// 1. Guard: only the landing view is open without a session
	if id != Landing && (c.session == nil || c.session.Username() == "") {
		c.Redirect(Landing)
		return id
	}

	// 2. Tear down the previous view
	r.unmount()
	r.current = id

	// 3. Load and insert the fragment
	tmpl, err := r.loader.Load(id)
	if err != nil {
		log.Printf("view: load %q: %v", string(id), err)
		c.fail(id)
		return id
	}
	c.load(id, tmpl)

	// 4. Mount the controller, if one is registered
	ctrl, ok := r.registry.Lookup(id)
	if !ok {
		return id
	}
	h, err := ctrl.Mount(ctx, c)
	if err != nil {
		log.Printf("view: mount %q: %v", string(id), err)
		if h != nil {
			h.Unmount()
		}
		c.unbind()
		c.fail(id)
		return id
	}
	r.mounted = h
	return id
}

// Dispatch delivers ev to the listener bound by the mounted view. When the
// listener neither redirects nor fails, the view is mounted again so it
// shows the new state.
func (r *Router) Dispatch(ctx context.Context, ev Event) error {
	fn, ok := r.container.listener(ev.Name)
	if !ok {
		return ErrNoListener
	}
	if err := fn(ctx, ev); err != nil {
		return err
	}
	if _, redirected := r.container.Redirected(); !redirected {
		r.Navigate(ctx, string(r.current))
	}
	return nil
}

// Close releases the mounted view.
func (r *Router) Close() {
	r.unmount()
}

func (r *Router) unmount() {
	if r.mounted != nil {
		r.mounted.Unmount()
		r.mounted = nil
	}
	r.container.unbind()
}
