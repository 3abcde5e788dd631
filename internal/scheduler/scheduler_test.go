package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilld/internal/registry"
	"skilld/internal/skill"
)

// recordingDispatcher records scheduled executions.
type recordingDispatcher struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingDispatcher) Execute(ctx context.Context, name string, params map[string]string, call *skill.CallContext) (*skill.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	return &skill.Result{Status: skill.StatusOK}, nil
}

// allKnown resolves every handler identifier, so scheduled fixtures are
// dispatchable.
type allKnown struct{}

func (allKnown) Known(string) bool { return true }

func writeSkill(t *testing.T, root, relPath, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func scheduledSkill(name, schedule string) string {
	return fmt.Sprintf("---\nname: %s\ndescription: scheduled fixture\nhandler: H\nschedule: %q\n---\nDocs.\n", name, schedule)
}

func newScheduler(t *testing.T) (*Scheduler, *registry.Registry, string) {
	t.Helper()
	root := t.TempDir()
	writeSkill(t, root, "report/daily.md", scheduledSkill("report.daily", "0 8 * * *"))
	writeSkill(t, root, "report/manual.md", "---\nname: report.manual\ndescription: no schedule\nhandler: H\n---\nDocs.\n")

	reg := registry.New(root, allKnown{})
	require.NoError(t, reg.LoadAll())

	return New(reg, &recordingDispatcher{}), reg, root
}

func TestScheduler_ResyncRegistersScheduledCapabilities(t *testing.T) {
	s, _, _ := newScheduler(t)

	s.resync(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Contains(t, s.entries, "report.daily")
	assert.Equal(t, "0 8 * * *", s.entries["report.daily"].spec)
	assert.NotContains(t, s.entries, "report.manual")
}

func TestScheduler_ResyncFollowsScheduleChanges(t *testing.T) {
	s, reg, root := newScheduler(t)
	ctx := context.Background()

	s.resync(ctx)
	s.mu.Lock()
	firstID := s.entries["report.daily"].id
	s.mu.Unlock()

	// Changed schedule gets re-registered under a new cron entry.
	path := writeSkill(t, root, "report/daily.md", scheduledSkill("report.daily", "30 9 * * *"))
	require.NoError(t, reg.ReloadOne(path))
	s.resync(ctx)

	s.mu.Lock()
	entry := s.entries["report.daily"]
	s.mu.Unlock()
	assert.Equal(t, "30 9 * * *", entry.spec)
	assert.NotEqual(t, firstID, entry.id)
}

func TestScheduler_ResyncDropsRemovedCapability(t *testing.T) {
	s, reg, root := newScheduler(t)
	ctx := context.Background()

	s.resync(ctx)
	reg.Remove(filepath.Join(root, "report", "daily.md"))
	s.resync(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.entries)
}

func TestScheduler_InvalidScheduleIsSkipped(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "report/bad.md", scheduledSkill("report.bad", "not a cron spec"))

	reg := registry.New(root, allKnown{})
	require.NoError(t, reg.LoadAll())

	s := New(reg, &recordingDispatcher{})
	s.resync(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.entries)
}
