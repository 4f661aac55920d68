package file

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a tuning file into a Store whenever it changes. A file
// that fails to parse is logged and the previous tuning stays in effect.
type Watcher struct {
	path    string
	store   *Store
	logger  *log.Logger
	watcher *fsnotify.Watcher
	Reloads chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch observes the file's directory so that editors replacing the file by
// rename are still seen.
func Watch(path string, store *Store, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		store:   store,
		logger:  logger,
		watcher: fw,
		Reloads: make(chan error, 16),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Reloads)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	// Reload once the file has been quiet for reloadDebounce; a single save
	// usually arrives as a truncate followed by a write.
	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("tuning watcher: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err == nil {
		w.store.Set(t)
		w.logger.Printf("tuning reloaded from %s", w.path)
	} else {
		w.logger.Printf("tuning reload rejected: %v", err)
	}
	select {
	case w.Reloads <- err:
	default:
	}
}
