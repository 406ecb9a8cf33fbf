// Package localfs tracks the files under the workspace mapping roots and
// owns the serialized side effects the resolution flow performs on them.
package localfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"resolvo/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Index is an fsnotify-backed registry of known files. A single event-loop
// goroutine consumes watcher events and scheduled operations, so everything
// submitted through Do runs serialized with file-system event handling.
type Index struct {
	fw     *fsnotify.Watcher
	ignore []string
	opCh   chan func()
	doneCh chan struct{}

	mu    sync.RWMutex
	files map[string]struct{}

	closeOnce sync.Once
}

// NewIndex creates an index. Paths with a segment matching one of the ignore
// patterns never enter it; the write temp files and VCS metadata directories
// would otherwise churn through with every resolution.
func NewIndex(bufferSize int, ignore []string) (*Index, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ix := &Index{
		fw:     fw,
		ignore: ignore,
		opCh:   make(chan func(), bufferSize),
		doneCh: make(chan struct{}),
		files:  make(map[string]struct{}),
	}
	go ix.run()

	return ix, nil
}

// Watch registers a mapping root and everything currently under it.
func (ix *Index) Watch(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if _, err := os.Stat(absRoot); err != nil {
		return fmt.Errorf("mapping root not found: %w", err)
	}

	if err := ix.addRecursive(absRoot); err != nil {
		return err
	}

	logger.Log.Info("index watching root", zap.String("dir", absRoot))
	return nil
}

func (ix *Index) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && ignored(d.Name(), ix.ignore) {
				return filepath.SkipDir
			}
			if err := ix.fw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			return nil
		}

		if !ignored(d.Name(), ix.ignore) {
			ix.register(path)
		}
		return nil
	})
}

func (ix *Index) run() {
	for {
		select {
		case <-ix.doneCh:
			return
		case op := <-ix.opCh:
			op()
		case ev, ok := <-ix.fw.Events:
			if !ok {
				return
			}
			ix.handleEvent(ev)
		case err, ok := <-ix.fw.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("index watcher error", zap.Error(err))
		}
	}
}

func (ix *Index) handleEvent(ev fsnotify.Event) {
	if ignored(filepath.Base(ev.Name), ix.ignore) {
		return
	}

	switch {
	case ev.Has(fsnotify.Create):
		info, err := os.Stat(ev.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if err := ix.addRecursive(ev.Name); err != nil {
				logger.Log.Warn("failed to watch new directory",
					zap.String("path", ev.Name),
					zap.Error(err))
			}
			return
		}
		ix.register(ev.Name)
	case ev.Has(fsnotify.Write):
		ix.register(ev.Name)
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		ix.forget(ev.Name)
	}
}

// RefreshAndFind stats the path directly, bypassing any stale index state,
// and registers the file when it exists. Returns whether a regular file is
// there right now.
func (ix *Index) RefreshAndFind(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		ix.forget(path)
		return false
	}

	ix.register(path)
	return true
}

func (ix *Index) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(b), nil
}

// ClearReadOnly makes the file writable. The chmod runs on the event loop so
// it is serialized with the watcher's own view of the file.
func (ix *Index) ClearReadOnly(path string) error {
	return ix.Do(func() error {
		return MakeWritable(path)
	})
}

// Do runs op on the event loop and waits for it.
func (ix *Index) Do(op func() error) error {
	errCh := make(chan error, 1)

	select {
	case ix.opCh <- func() { errCh <- op() }:
	case <-ix.doneCh:
		return fmt.Errorf("index is closed")
	}

	select {
	case err := <-errCh:
		return err
	case <-ix.doneCh:
		return fmt.Errorf("index is closed")
	}
}

func (ix *Index) register(path string) {
	ix.mu.Lock()
	ix.files[path] = struct{}{}
	ix.mu.Unlock()
}

func (ix *Index) forget(path string) {
	ix.mu.Lock()
	delete(ix.files, path)
	ix.mu.Unlock()
}

// Size reports how many files the index currently knows about.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return len(ix.files)
}

func (ix *Index) Close() error {
	var err error
	ix.closeOnce.Do(func() {
		close(ix.doneCh)
		err = ix.fw.Close()
	})

	return err
}
