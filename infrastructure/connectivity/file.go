package connectivity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"cookbook/domain/connectivity"
)

// FileMonitor reports the connectivity state recorded in a small JSON file
// ({"reachable": true, "transport": "wifi"}) and watches it for changes. The
// platform's network layer owns the file; this process only reads it.
// Current is a cached read, never a disk access.
type FileMonitor struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu          sync.RWMutex
	state       connectivity.State
	subscribers map[int]func(connectivity.State)
	nextID      int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewFileMonitor loads the initial state from path and starts watching for
// updates. The directory is watched too so atomic rename saves are caught.
func NewFileMonitor(path string, logger *zap.Logger) (*FileMonitor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	state, err := loadStateFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load connectivity state: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch connectivity file: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("failed to watch connectivity directory", zap.Error(err))
	}

	m := &FileMonitor{
		path:        path,
		watcher:     watcher,
		logger:      logger,
		state:       state,
		subscribers: make(map[int]func(connectivity.State)),
		stopCh:      make(chan struct{}),
	}
	go m.watchLoop()
	return m, nil
}

// Current returns the last observed state.
func (m *FileMonitor) Current() connectivity.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers a change callback and returns its cancel function.
func (m *FileMonitor) Subscribe(fn func(connectivity.State)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Stop stops watching. The monitor keeps reporting the last observed state.
func (m *FileMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.watcher.Close()
	})
}

func (m *FileMonitor) watchLoop() {
	// Debounce so an editor's write+rename burst reloads once.
	var debounce *time.Timer
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-m.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, m.reload)

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("connectivity watcher error", zap.Error(err))
		}
	}
}

func (m *FileMonitor) reload() {
	state, err := loadStateFile(m.path)
	if err != nil {
		m.logger.Warn("failed to reload connectivity state",
			zap.String("path", m.path),
			zap.Error(err),
		)
		return
	}

	m.mu.Lock()
	changed := state != m.state
	m.state = state
	fns := make([]func(connectivity.State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	if !changed {
		return
	}
	m.logger.Info("connectivity state changed",
		zap.Bool("reachable", state.Reachable),
		zap.String("transport", string(state.Transport)),
	)
	for _, fn := range fns {
		fn(state)
	}
}

func loadStateFile(path string) (connectivity.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return connectivity.State{}, err
	}
	var raw struct {
		Reachable bool   `json:"reachable"`
		Transport string `json:"transport"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return connectivity.State{}, err
	}
	return connectivity.State{
		Reachable: raw.Reachable,
		Transport: connectivity.ParseTransport(raw.Transport),
	}, nil
}
