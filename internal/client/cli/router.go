package cli

import (
	"sync"

	"github.com/dmitrijs2005/billed/internal/client/models"
)

// router records navigation requests. Navigate may be called from any
// goroutine; the REPL renders the pending route on its own goroutine.
type router struct {
	mu      sync.Mutex
	current models.Route
	pending bool
}

func (r *router) Navigate(route models.Route) {
	r.mu.Lock()
	r.current = route
	r.pending = true
	r.mu.Unlock()
}

// take returns the route to render, if a navigation happened since the last
// call.
func (r *router) take() (models.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pending
	r.pending = false
	return r.current, p
}

func (r *router) Current() models.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
