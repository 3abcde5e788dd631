// Package scheduler dispatches capabilities that carry a schedule
// expression in their front matter.
//
// The registry is the source of truth: the scheduler periodically resyncs
// its cron entries against the current snapshot, so hot-reloaded schedule
// changes take effect without a restart.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"skilld/internal/registry"
	"skilld/internal/skill"
	"skilld/pkg/logging"
)

// resyncInterval is how often the scheduler reconciles its cron entries
// with the registry.
const resyncInterval = 30 * time.Second

// Dispatcher is the slice of the executor the scheduler needs.
type Dispatcher interface {
	Execute(ctx context.Context, name string, params map[string]string, call *skill.CallContext) (*skill.Result, error)
}

// entry tracks one scheduled capability.
type entry struct {
	id   cron.EntryID
	spec string
}

// Scheduler runs capabilities on their cron schedules.
type Scheduler struct {
	mu         sync.Mutex
	registry   *registry.Registry
	dispatcher Dispatcher
	cron       *cron.Cron
	entries    map[string]entry // capability name -> cron entry
}

// New creates a scheduler over the given registry and dispatcher.
func New(reg *registry.Registry, dispatcher Dispatcher) *Scheduler {
	return &Scheduler{
		registry:   reg,
		dispatcher: dispatcher,
		cron:       cron.New(),
		entries:    make(map[string]entry),
	}
}

// Run starts the cron engine and keeps it reconciled with the registry
// until the context is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.resync(ctx)
	s.cron.Start()
	defer s.cron.Stop()

	ticker := time.NewTicker(resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.resync(ctx)
		}
	}
}

// resync reconciles cron entries with the registry's current snapshot:
// new or changed schedules are (re)registered, vanished ones removed.
func (s *Scheduler) resync(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]*skill.Definition)
	for _, def := range s.registry.ListAll() {
		if def.Schedule != "" && def.Dispatchable() {
			wanted[def.Name] = def
		}
	}

	for name, existing := range s.entries {
		def, stillWanted := wanted[name]
		if stillWanted && def.Schedule == existing.spec {
			delete(wanted, name)
			continue
		}
		s.cron.Remove(existing.id)
		delete(s.entries, name)
		if !stillWanted {
			logging.Info("Scheduler", "Unscheduled capability %s", name)
		}
	}

	for name, def := range wanted {
		id, err := s.cron.AddFunc(def.Schedule, s.runJob(ctx, name, def.Timezone))
		if err != nil {
			logging.Warn("Scheduler", "Invalid schedule '%s' for %s: %v", def.Schedule, name, err)
			continue
		}
		s.entries[name] = entry{id: id, spec: def.Schedule}
		logging.Info("Scheduler", "Scheduled capability %s at '%s'", name, def.Schedule)
	}
}

// runJob builds the cron callback for one capability.
func (s *Scheduler) runJob(ctx context.Context, name, timezone string) func() {
	return func() {
		call := skill.NewCallContext("scheduled", "system", "scheduler")
		call.Timezone = timezone

		result, err := s.dispatcher.Execute(ctx, name, map[string]string{}, call)
		if err != nil {
			logging.Warn("Scheduler", "Scheduled run of %s failed: %v", name, err)
			return
		}
		if result != nil && !result.OK() {
			logging.Warn("Scheduler", "Scheduled run of %s reported error: %s", name, result.Content)
			return
		}
		logging.Debug("Scheduler", "Scheduled run of %s completed", name)
	}
}
