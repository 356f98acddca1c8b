package fswatcher

import (
	"path/filepath"
	"sync"

	fsnotify "github.com/fsnotify/fsnotify"
)

// Watches files through their parent directories, so a file replaced by a
// rename (common when saving or installing fonts) is still reported.
// Events are sent on Events() as *Event or error.
type FsnWatcher struct {
	w      *fsnotify.Watcher
	events chan interface{}
	opMask Op

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]int // watched files per dir
}

func NewFsnWatcher() (*FsnWatcher, error) {
	w0, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FsnWatcher{
		w:      w0,
		events: make(chan interface{}),
		opMask: AllOps,
		files:  map[string]bool{},
		dirs:   map[string]int{},
	}
	go w.eventLoop()
	return w, nil
}

//----------

func (w *FsnWatcher) Close() error {
	return w.w.Close()
}

// Must be set before adding files.
func (w *FsnWatcher) SetOpMask(op Op) {
	w.opMask = op
}

//----------

func (w *FsnWatcher) Add(name string) error {
	name, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[name] {
		return nil
	}
	dir := filepath.Dir(name)
	if w.dirs[dir] == 0 {
		if err := w.w.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[name] = true
	return nil
}

func (w *FsnWatcher) Remove(name string) error {
	name, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[name] {
		return nil
	}
	delete(w.files, name)
	dir := filepath.Dir(name)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.w.Remove(dir)
	}
	return nil
}

func (w *FsnWatcher) watching(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[name]
}

//----------

func (w *FsnWatcher) Events() <-chan interface{} {
	return w.events
}

func (w *FsnWatcher) eventLoop() {
	defer close(w.events)
	for {
		select {
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.events <- err

		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			name := filepath.Clean(ev.Name)
			if !w.watching(name) {
				continue
			}

			var op Op
			if ev.Op&fsnotify.Create > 0 {
				op.Add(Create)
			}
			if ev.Op&fsnotify.Write > 0 {
				op.Add(Modify)
			}
			if ev.Op&fsnotify.Remove > 0 {
				op.Add(Remove)
			}
			if ev.Op&fsnotify.Rename > 0 {
				op.Add(Rename)
			}
			if ev.Op&fsnotify.Chmod > 0 {
				op.Add(Attrib)
			}

			if op&w.opMask > 0 {
				w.events <- &Event{Op: op, Name: name}
			}
		}
	}
}
