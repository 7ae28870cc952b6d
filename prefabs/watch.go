package prefabs

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// QuietPeriod is how long a file must stay untouched before its change is
// reported. Editors often write a file in several steps.
const QuietPeriod = 150 * time.Millisecond

type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is one settled edit to a prefab or filter script.
type Change struct {
	Name string
	Path string
	Kind ChangeKind
}

// Watcher reports edits to prefab and filter files once they settle.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan Change
	Errors chan error

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fw,
		Events: make(chan Change, 16),
		Errors: make(chan error, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]ChangeKind)
	settle := time.NewTimer(QuietPeriod)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind, ok := classify(ev)
			if !ok {
				continue
			}
			pending[ev.Name] = kind
			settle.Reset(QuietPeriod)

		case <-settle.C:
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				c := Change{Name: filepath.Base(path), Path: path, Kind: pending[path]}
				select {
				case w.Events <- c:
				case <-w.stop:
					return
				}
			}
			clear(pending)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.stop:
			return
		}
	}
}

func classify(ev fsnotify.Event) (ChangeKind, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return 0, false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml", ".json":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
