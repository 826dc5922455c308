package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/zfogg/resep/pkg/events"
	"github.com/zfogg/resep/pkg/logger"
)

const fileExt = ".json"

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore keeps one file per key in a directory. Other processes using the
// same directory see each other's writes through Watch.
type FileStore struct {
	dir string

	mu      sync.Mutex
	written map[string]string // last value this handle wrote, per key

	bus *events.Bus[Event]

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	doneCh  chan struct{}
}

// NewFileStore creates the directory if needed and returns a store over it
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	return &FileStore{
		dir:     dir,
		written: make(map[string]string),
		bus:     events.NewBus[Event](),
	}, nil
}

// Dir returns the backing directory
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return string(data), true, nil
}

// Set writes value through a temp file and rename so readers in other
// processes never see a half-written blob
func (s *FileStore) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	s.written[key] = value
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		delete(s.written, key)
		os.Remove(tmpName)
		return err
	}

	return nil
}

func (s *FileStore) Subscribe(key string, fn func(Event)) func() {
	return s.bus.Subscribe(func(e Event) {
		if e.Key == key {
			fn(e)
		}
	})
}

// Watch starts delivering changes made by other processes to subscribers.
// It returns immediately; the watch stops when ctx is done or Close is
// called. Calling Watch on a store that is already watching is a no-op.
func (s *FileStore) Watch(ctx context.Context) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch storage dir: %w", err)
	}

	s.watcher = watcher
	s.doneCh = make(chan struct{})

	go s.run(ctx, watcher, s.doneCh)

	logger.Debug("Watching storage dir", "dir", s.dir)
	return nil
}

// Close stops the watcher and waits for it to exit
func (s *FileStore) Close() error {
	s.watchMu.Lock()
	watcher := s.watcher
	done := s.doneCh
	s.watcher = nil
	s.watchMu.Unlock()

	if watcher == nil {
		return nil
	}

	err := watcher.Close()
	<-done
	return err
}

func (s *FileStore) run(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			watcher.Close()
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			s.handle(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Storage watcher error", "error", err)
		}
	}
}

func (s *FileStore) handle(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
		return
	}
	key := strings.TrimSuffix(name, fileExt)

	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		if _, err := os.Stat(ev.Name); errors.Is(err, os.ErrNotExist) {
			s.mu.Lock()
			delete(s.written, key)
			s.mu.Unlock()
			s.bus.Publish(Event{Key: key, Deleted: true})
			return
		}
	}

	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}

	value, ok, err := s.Get(key)
	if err != nil || !ok {
		return
	}

	s.mu.Lock()
	own, wrote := s.written[key]
	s.mu.Unlock()
	if wrote && own == value {
		return
	}

	logger.Debug("External storage change", "key", key)
	s.bus.Publish(Event{Key: key, Value: value})
}
