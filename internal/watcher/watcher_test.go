package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTarget records ReloadOne/Remove calls.
type recordingTarget struct {
	mu       sync.Mutex
	reloaded []string
	removed  []string
}

func (r *recordingTarget) ReloadOne(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloaded = append(r.reloaded, path)
	return nil
}

func (r *recordingTarget) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, path)
}

func (r *recordingTarget) reloadedPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reloaded...)
}

func (r *recordingTarget) removedPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed...)
}

func startWatcher(t *testing.T, root string, target Target) *Watcher {
	t.Helper()
	w := New(root, target, 50*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_FileChangeTriggersReload(t *testing.T) {
	root := t.TempDir()
	domainDir := filepath.Join(root, "email")
	require.NoError(t, os.MkdirAll(domainDir, 0755))

	target := &recordingTarget{}
	startWatcher(t, root, target)

	path := filepath.Join(domainDir, "send.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nname: email.send\n---\nbody\n"), 0644))

	require.Eventually(t, func() bool {
		return len(target.reloadedPaths()) > 0
	}, 3*time.Second, 20*time.Millisecond, "expected a reload for the new file")
	assert.Contains(t, target.reloadedPaths(), path)
}

func TestWatcher_FileRemovalTriggersRemove(t *testing.T) {
	root := t.TempDir()
	domainDir := filepath.Join(root, "email")
	require.NoError(t, os.MkdirAll(domainDir, 0755))
	path := filepath.Join(domainDir, "send.md")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	target := &recordingTarget{}
	startWatcher(t, root, target)

	require.NoError(t, os.Remove(path))

	require.Eventually(t, func() bool {
		return len(target.removedPaths()) > 0
	}, 3*time.Second, 20*time.Millisecond, "expected a remove for the deleted file")
	assert.Contains(t, target.removedPaths(), path)
}

func TestWatcher_NonMarkdownIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "email"), 0755))

	target := &recordingTarget{}
	startWatcher(t, root, target)

	require.NoError(t, os.WriteFile(filepath.Join(root, "email", "notes.txt"), []byte("x"), 0644))

	// Give the debounce window time to fire if it was going to.
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, target.reloadedPaths())
	assert.Empty(t, target.removedPaths())
}

func TestWatcher_NewDomainDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()

	target := &recordingTarget{}
	startWatcher(t, root, target)

	// Create a new domain directory after the watcher started, then a file
	// inside it.
	domainDir := filepath.Join(root, "calendar")
	require.NoError(t, os.MkdirAll(domainDir, 0755))
	// Small pause so the directory watch is registered before the write.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(domainDir, "list.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nname: calendar.list\n---\nbody\n"), 0644))

	require.Eventually(t, func() bool {
		for _, p := range target.reloadedPaths() {
			if p == path {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond, "expected reload for file in new directory")
}

func TestWatcher_DebounceCoalescesWrites(t *testing.T) {
	root := t.TempDir()
	domainDir := filepath.Join(root, "email")
	require.NoError(t, os.MkdirAll(domainDir, 0755))

	target := &recordingTarget{}
	startWatcher(t, root, target)

	path := filepath.Join(domainDir, "send.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("rev"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(target.reloadedPaths()) > 0
	}, 3*time.Second, 20*time.Millisecond)

	// Rapid successive writes collapse into far fewer reloads than events.
	time.Sleep(200 * time.Millisecond)
	assert.LessOrEqual(t, len(target.reloadedPaths()), 2)
}

func TestWatcher_StartIsIdempotentAndStops(t *testing.T) {
	root := t.TempDir()
	target := &recordingTarget{}

	w := New(root, target, 50*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx)) // second start is a no-op
	w.Stop()
	w.Stop() // second stop is a no-op
}
