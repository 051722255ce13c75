package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/poet/errors"
)

func collect(w *Watcher) func() []string {
	var mu sync.Mutex
	var seen []string
	w.OnChange(func(path string) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, path)
		return nil
	})
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), seen...)
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "greeter.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("v1"), 0o644))

	w, err := New([]string{doc}, 50*time.Millisecond)
	require.NoError(t, err)
	seen := collect(w)
	w.Start()
	defer w.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(doc, []byte("v2"), 0o644))
	}

	require.Eventually(t, func() bool { return len(seen()) > 0 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{doc}, seen(), "rapid writes collapse into one callback")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "greeter.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("v1"), 0o644))

	w, err := New([]string{doc}, 20*time.Millisecond)
	require.NoError(t, err)
	seen := collect(w)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, seen())
}

func TestWatcher_CallbackErrorDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "greeter.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("v1"), 0o644))

	w, err := New([]string{doc}, 20*time.Millisecond)
	require.NoError(t, err)
	w.OnChange(func(string) error { return errors.New("render failed") })
	seen := collect(w)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(doc, []byte("v2"), 0o644))
	require.Eventually(t, func() bool { return len(seen()) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = New([]string{filepath.Join(t.TempDir(), "missing", "doc.yaml")}, time.Millisecond)
	assert.Error(t, err)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("version: \"1.0\"\n"), 0o644))
	w, err := New([]string{doc}, time.Millisecond)
	require.NoError(t, err)

	stopped := make(chan error, 1)
	go func() { stopped <- w.Stop() }()

	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on a watcher that was never started")
	}
}
