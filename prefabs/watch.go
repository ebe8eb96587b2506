package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const reloadDebounce = 100 * time.Millisecond

type ChangeKind int

const (
	SceneChanged ChangeKind = iota
	ScriptChanged
)

type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to on-disk scenes and easing scripts so the running
// app can rebuild its world.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "prefabs: create watcher")
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "prefabs: watch %s", dir)
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// WatchDirs returns the prefab directory and its scripts folder.
func WatchDirs() []string {
	return []string{Dir, filepath.Join(Dir, "scripts")}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

// Poll drains pending changes without blocking.
func (w *Watcher) Poll() []Change {
	var out []Change
	for {
		select {
		case c, ok := <-w.Changes:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := newDebouncer(reloadDebounce)
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	var settle <-chan time.Time
	arm := func(now time.Time) {
		timer.Stop()
		settle = nil
		if wait, ok := pending.next(now); ok {
			timer.Reset(wait)
			settle = timer.C
		}
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			pending.add(event.Name, kind, now)
			arm(now)
		case <-settle:
			now := time.Now()
			for _, c := range pending.flush(now) {
				select {
				case w.Changes <- c:
				default:
				}
			}
			arm(now)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// debouncer holds a change back until its path has been quiet for delay, so
// a truncate followed by a write reports once, after the final write.
type debouncer struct {
	delay   time.Duration
	pending map[string]pendingChange
}

type pendingChange struct {
	kind ChangeKind
	due  time.Time
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, pending: make(map[string]pendingChange)}
}

func (d *debouncer) add(path string, kind ChangeKind, now time.Time) {
	d.pending[path] = pendingChange{kind: kind, due: now.Add(d.delay)}
}

// next reports how long until the earliest pending change settles.
func (d *debouncer) next(now time.Time) (time.Duration, bool) {
	var earliest time.Time
	for _, p := range d.pending {
		if earliest.IsZero() || p.due.Before(earliest) {
			earliest = p.due
		}
	}
	if earliest.IsZero() {
		return 0, false
	}
	return max(earliest.Sub(now), 0), true
}

// flush removes and returns the settled changes ordered by path.
func (d *debouncer) flush(now time.Time) []Change {
	var out []Change
	for path, p := range d.pending {
		if p.due.After(now) {
			continue
		}
		out = append(out, Change{Path: path, Kind: p.kind})
		delete(d.pending, path)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SceneChanged, true
	case ".tengo":
		return ScriptChanged, true
	}
	return 0, false
}
