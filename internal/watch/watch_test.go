package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specYAML = "artifacts:\n  - kind: schema\n    name: User\n    fields:\n      - name: email\n        type: string\n"

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
}

func TestWatcher_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	require.NoError(t, os.WriteFile(path, []byte(specYAML), 0o644))

	changed := make(chan string, 8)
	w, err := New(func(_ context.Context, p string) error {
		changed <- p
		return nil
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Add(path))
	startWatcher(t, w)

	// The sibling is not watched.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(specYAML), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(specYAML+"\n"), 0o644))

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		assert.Equal(t, want, got)
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestWatcher_DirectoryAndHandlerErrors(t *testing.T) {
	dir := t.TempDir()

	calls := make(chan string, 8)
	w, err := New(func(_ context.Context, p string) error {
		calls <- filepath.Base(p)
		return errors.New("boom")
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))
	startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "form.cue"), []byte("artifacts: []\n"), 0o644))

	select {
	case got := <-calls:
		assert.Equal(t, "form.cue", got)
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}

	// A failing handler does not stop the watcher.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "form.cue"), []byte("artifacts: [ ]\n"), 0o644))
	select {
	case got := <-calls:
		assert.Equal(t, "form.cue", got)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher stopped after a handler error")
	}
}

func TestWatcher_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	w, err := New(func(context.Context, string) error { return nil })
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing.yaml")))

	notSpec := filepath.Join(t.TempDir(), "readme.md")
	require.NoError(t, os.WriteFile(notSpec, []byte("x"), 0o644))
	assert.Error(t, w.Add(notSpec))
}

func TestWatcher_RunReturnsOnCancel(t *testing.T) {
	w, err := New(func(context.Context, string) error { return nil })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Run(ctx), context.Canceled)
}
