package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerWaitsForQuietPath(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	start := time.Unix(0, 0)

	_, ok := d.next(start)
	assert.False(t, ok, "nothing pending")

	d.add("scene.yaml", SceneChanged, start)
	d.add("scene.yaml", SceneChanged, start.Add(80*time.Millisecond))

	assert.Empty(t, d.flush(start.Add(120*time.Millisecond)), "second write restarts the wait")
	wait, ok := d.next(start.Add(120 * time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, 60*time.Millisecond, wait)

	got := d.flush(start.Add(180 * time.Millisecond))
	assert.Equal(t, []Change{{Path: "scene.yaml", Kind: SceneChanged}}, got)
	_, ok = d.next(start.Add(180 * time.Millisecond))
	assert.False(t, ok)
}

func TestDebouncerFlushesEachPath(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	start := time.Unix(0, 0)

	d.add("scripts/b.tengo", ScriptChanged, start)
	d.add("a.yaml", SceneChanged, start.Add(10*time.Millisecond))
	d.add("late.yaml", SceneChanged, start.Add(90*time.Millisecond))

	got := d.flush(start.Add(110 * time.Millisecond))
	assert.Equal(t, []Change{
		{Path: "a.yaml", Kind: SceneChanged},
		{Path: "scripts/b.tengo", Kind: ScriptChanged},
	}, got)

	wait, ok := d.next(start.Add(110 * time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, 80*time.Millisecond, wait)
}

func TestWatcherReportsTruncateThenWriteOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\n"), 0o644))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("name: b\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var got []Change
	require.Eventually(t, func() bool {
		got = append(got, w.Poll()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(3 * reloadDebounce)
	got = append(got, w.Poll()...)
	require.Len(t, got, 1)
	assert.Equal(t, SceneChanged, got[0].Kind)
	assert.Equal(t, "scene.yaml", filepath.Base(got[0].Path))

	data, err := os.ReadFile(got[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "name: b\n", string(data))
}
