// Package servicemanager is the directory where services register under a
// well-known name and where clients resolve them.
package servicemanager

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"helloworld/domain"
	"helloworld/errors"
)

type Registry struct {
	mu       sync.RWMutex
	services map[string]domain.Registration // map name -> registration
	waiters  map[string][]chan struct{}     // map name -> pending WaitForService
	alive    func(pid int32) bool
}

// NewRegistry builds an empty registry. alive tells whether the holder of
// a name still runs; nil treats every holder as alive.
func NewRegistry(alive func(pid int32) bool) *Registry {
	return &Registry{
		services: make(map[string]domain.Registration),
		waiters:  make(map[string][]chan struct{}),
		alive:    alive,
	}
}

// Add registers a service and wakes every caller waiting for its name.
// A process may replace its own registration, and a name whose holder has
// exited is taken over. A name held by another live process is refused.
func (r *Registry) Add(reg domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.services[reg.Name]; ok && existing.PID != reg.PID && r.holderAlive(existing.PID) {
		return fmt.Errorf("%w: %s is held by pid %d", errors.ErrAlreadyRegistered, reg.Name, existing.PID)
	}
	r.services[reg.Name] = reg

	for _, ch := range r.waiters[reg.Name] {
		close(ch)
	}
	delete(r.waiters, reg.Name)
	return nil
}

func (r *Registry) holderAlive(pid int32) bool {
	if pid <= 0 || r.alive == nil {
		return true
	}
	return r.alive(pid)
}

func (r *Registry) Get(name string) (domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.services[name]
	if !ok {
		return domain.Registration{}, fmt.Errorf("%w: %s", errors.ErrServiceNotFound, name)
	}
	return reg, nil
}

// Wait blocks until name is registered or ctx is done.
func (r *Registry) Wait(ctx context.Context, name string) (domain.Registration, error) {
	for {
		r.mu.Lock()
		if reg, ok := r.services[name]; ok {
			r.mu.Unlock()
			return reg, nil
		}
		ch := make(chan struct{})
		r.waiters[name] = append(r.waiters[name], ch)
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			r.dropWaiter(name, ch)
			return domain.Registration{}, fmt.Errorf("%w: %s: %v", errors.ErrServiceNotFound, name, ctx.Err())
		case <-ch:
			// Registered, loop to read it. It may already be gone again.
		}
	}
}

func (r *Registry) dropWaiter(name string, ch chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	waiters := slices.DeleteFunc(r.waiters[name], func(c chan struct{}) bool { return c == ch })
	if len(waiters) == 0 {
		delete(r.waiters, name)
		return
	}
	r.waiters[name] = waiters
}

// Remove drops a registration. It reports whether the name was registered.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.services[name]
	delete(r.services, name)
	return ok
}

// List returns all registrations sorted by name.
func (r *Registry) List() []domain.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]domain.Registration, 0, len(r.services))
	for _, reg := range r.services {
		regs = append(regs, reg)
	}
	slices.SortFunc(regs, func(a, b domain.Registration) int { return strings.Compare(a.Name, b.Name) })
	return regs
}

// Prune removes the registrations whose owner process is gone and returns
// their names. Registrations without a pid are kept.
func (r *Registry) Prune(alive func(pid int32) bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for name, reg := range r.services {
		if reg.PID <= 0 || alive(reg.PID) {
			continue
		}
		delete(r.services, name)
		removed = append(removed, name)
	}
	slices.Sort(removed)
	return removed
}
