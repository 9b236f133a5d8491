package servicemanager

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Reaper drops registrations whose owner process has exited, the way a
// binder death notification unregisters a dead service.
type Reaper struct {
	log      *slog.Logger
	registry *Registry
	interval time.Duration
	alive    func(pid int32) bool
}

func NewReaper(log *slog.Logger, registry *Registry, interval time.Duration) *Reaper {
	return &Reaper{log: log, registry: registry, interval: interval, alive: ProcessAlive}
}

// ProcessAlive reports whether pid runs. An unreadable process table counts
// as alive.
func ProcessAlive(pid int32) bool {
	exists, err := process.PidExists(pid)
	return err != nil || exists
}

func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Context done, stopping reaper")
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep prunes once and returns the removed names.
func (r *Reaper) Sweep() []string {
	removed := r.registry.Prune(r.alive)
	for _, name := range removed {
		r.log.Info("Service owner died, unregistered", "name", name)
	}
	return removed
}
