package roster

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals changes to a roster file so the UI can reload and
// re-ingest. Rapid saves are coalesced behind a debounce window.
type Watcher struct {
	path     string
	fw       *fsnotify.Watcher
	debounce time.Duration
	events   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Watch starts watching the roster file at path. It watches the containing
// directory rather than the file: editors often replace the file on save,
// which would silently drop a watch set on the file itself.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fw:       fw,
		debounce: 250 * time.Millisecond,
		events:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers one signal per settled change to the watched file.
func (w *Watcher) Events() <-chan struct{} { return w.events }

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) Close() error {
	close(w.stopCh)
	err := w.fw.Close()
	<-w.doneCh
	return err
}
