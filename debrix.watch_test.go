package debrix

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchTimeout = 5 * time.Second

// startWatcher runs a watcher for project and returns its event stream
func startWatcher(t *testing.T, project *Project) <-chan WatchEvent {
	t.Helper()
	events := make(chan WatchEvent, 16)
	watcher := NewWatcher(project, func(e WatchEvent) { events <- e })
	watcher.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(watchTimeout):
			t.Error("watcher did not stop")
		}
	})

	// fsnotify has no ready signal
	time.Sleep(100 * time.Millisecond)
	return events
}

// waitFor returns the first event accepted by match
func waitFor(t *testing.T, events <-chan WatchEvent, match func(WatchEvent) bool) WatchEvent {
	t.Helper()
	deadline := time.After(watchTimeout)
	for {
		select {
		case e := <-events:
			if match(e) {
				return e
			}
		case <-deadline:
			t.Fatal("timed out waiting for watch event")
			return WatchEvent{}
		}
	}
}

func TestWatcher_RebuildsChangedFile(t *testing.T) {
	project := newTestProject(t, map[string]string{"a.debrix": `<p/>`})
	events := startWatcher(t, project)

	src := filepath.Join(project.Config().SourceDir(), "a.debrix")
	require.NoError(t, os.WriteFile(src, []byte(elementTemplate), 0o644))

	e := waitFor(t, events, func(e WatchEvent) bool { return len(e.Paths) > 0 })
	assert.Equal(t, []string{"a.debrix"}, e.Paths)
	require.NoError(t, e.Err)
	require.NotNil(t, e.Report)
	require.Len(t, e.Report.Files, 1)
	require.True(t, e.Report.Files[0].OK())

	code, err := os.ReadFile(project.OutputPath("a.debrix"))
	require.NoError(t, err)
	assert.Contains(t, string(code), `attr(div_1, "class", "x");`)
}

func TestWatcher_ReportsFailures(t *testing.T) {
	project := newTestProject(t, map[string]string{"a.debrix": `<p/>`})
	events := startWatcher(t, project)

	src := filepath.Join(project.Config().SourceDir(), "a.debrix")
	require.NoError(t, os.WriteFile(src, []byte(`<p>`), 0o644))

	e := waitFor(t, events, func(e WatchEvent) bool { return e.Report != nil })
	require.True(t, e.Report.HasErrors())
	assert.Equal(t, ErrorKindParser, ErrorKind(e.Report.Files[0].Err))
}

func TestWatcher_RemovesOutputsOfDeletedFile(t *testing.T) {
	project := newTestProject(t, map[string]string{"a.debrix": `<p/>`})
	_, err := project.BuildAll(context.Background())
	require.NoError(t, err)

	out := project.OutputPath("a.debrix")
	require.FileExists(t, out)
	require.FileExists(t, out+SourceMapExtension)

	events := startWatcher(t, project)
	require.NoError(t, os.Remove(filepath.Join(project.Config().SourceDir(), "a.debrix")))

	e := waitFor(t, events, func(e WatchEvent) bool { return len(e.Removed) > 0 })
	assert.Equal(t, []string{"a.debrix"}, e.Removed)
	assert.Nil(t, e.Report)
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, out+SourceMapExtension)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	project := newTestProject(t, map[string]string{"a.debrix": `<p/>`})
	events := startWatcher(t, project)

	dir := project.Config().SourceDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.debrix"), []byte(`<i/>`), 0o644))

	e := waitFor(t, events, func(e WatchEvent) bool { return len(e.Paths) > 0 })
	assert.Equal(t, []string{"a.debrix"}, e.Paths)
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	project := newTestProject(t, nil)
	watcher := NewWatcher(project, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(watchTimeout):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingSourceDir(t *testing.T) {
	project := newTestProject(t, nil)
	require.NoError(t, os.RemoveAll(project.Config().SourceDir()))

	err := NewWatcher(project, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgWatchFailed)
}
