package profile

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports profile file changes in the watched directories. Events
// carries the path of each changed profile; Errors carries watch failures.
// Both channels close when the watcher is closed.
//
// The watcher only reports changes. Rebuilding the rig from the changed
// profile is the caller's job, since profiles never mutate a live rig.
type Watcher struct {
	watcher *fsnotify.Watcher

	Events chan string
	Errors chan error

	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the given directories for profile file changes.
//
// Parameters:
//   - dirs: directories to watch
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the underlying watcher cannot be created or a
//     directory cannot be added
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}

	go watcher.run()

	return watcher, nil
}

// Close stops the watcher and closes its channels. Safe to call more than
// once.
//
// Returns:
//   - error: error from closing the underlying watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	// run is the only sender, so it closes the outgoing channels on exit.
	defer close(w.Errors)
	defer close(w.Events)

	// Editors fire bursts of events per save; collapse anything within
	// 100ms of the last report for the same path.
	last := make(map[string]time.Time)
	const debounce = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isProfileFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now

			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func isProfileFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
