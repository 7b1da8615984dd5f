package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// FileWatcher reloads a ConfigManager when its config file changes on disk
type FileWatcher struct {
	manager *ConfigManager
	logger  hclog.Logger
	watcher *fsnotify.Watcher
	path    string

	debounce time.Duration
	timer    *time.Timer
	timerMu  sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFileWatcher creates a watcher for the manager's current config path
func NewFileWatcher(manager *ConfigManager, logger hclog.Logger, debounce time.Duration) (*FileWatcher, error) {
	path := manager.ConfigPath()
	if path == "" {
		return nil, fmt.Errorf("no config file to watch")
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FileWatcher{
		manager:  manager,
		logger:   logger.Named("config-watch"),
		watcher:  watcher,
		path:     filepath.Clean(path),
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start begins watching. The parent directory is watched so that editors
// which replace the file atomically are still picked up.
func (fw *FileWatcher) Start() error {
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.path, err)
	}

	fw.wg.Add(1)
	go fw.eventLoop()

	fw.logger.Info("watching config file", "path", fw.path)
	return nil
}

// Stop ends the event loop and waits for it to exit
func (fw *FileWatcher) Stop() error {
	fw.cancel()
	err := fw.watcher.Close()

	fw.timerMu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timerMu.Unlock()

	fw.wg.Wait()
	return err
}

func (fw *FileWatcher) eventLoop() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.scheduleReload()
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("config watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) scheduleReload() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.reload)
}

func (fw *FileWatcher) reload() {
	if fw.ctx.Err() != nil {
		return
	}
	if err := fw.manager.LoadConfig(fw.path); err != nil {
		// keep serving with the previous configuration
		fw.logger.Warn("config reload failed", "path", fw.path, "error", err)
		return
	}
	fw.logger.Info("config reloaded", "path", fw.path)
}
