package main

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// configWatcher signals on Changed whenever the config file is written.
// The directory is watched rather than the file so editors that replace
// the file on save are still seen.
type configWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	log     *log.Logger
}

func newConfigWatcher(path string, logger *log.Logger) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	cw := &configWatcher{
		path:    abs,
		watcher: w,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     logger,
	}
	go cw.run()
	return cw, nil
}

func (cw *configWatcher) run() {
	defer close(cw.done)
	for {
		select {
		case e, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cw.log.Debug("config changed", "path", e.Name, "op", e.Op)
			// coalesce bursts; one pending reload is enough
			select {
			case cw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Error("config watcher", "err", err)
		}
	}
}

// Changed is polled from the game loop.
func (cw *configWatcher) Changed() <-chan struct{} {
	return cw.changed
}

func (cw *configWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
