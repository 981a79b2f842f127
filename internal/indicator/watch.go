package indicator

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileSource keeps the most recently loaded catalog file and exposes it as a
// Filter. Reload swaps the file in place, so a registry holding the filter
// sees the new contents on its next access.
type FileSource struct {
	path   string
	logger zerolog.Logger

	mu      sync.RWMutex
	current *FileCatalog

	// OnReload, if set, is called after every reload attempt with its
	// result.
	OnReload func(err error)
}

// NewFileSource loads path and returns a source for it.
func NewFileSource(path string, logger zerolog.Logger) (*FileSource, error) {
	fc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, logger: logger, current: fc}, nil
}

// Filter applies the current file catalog.
func (s *FileSource) Filter() Filter {
	return func(defs []Definition) []Definition {
		s.mu.RLock()
		fc := s.current
		s.mu.RUnlock()
		if fc == nil {
			return defs
		}
		return fc.Apply(defs)
	}
}

// Reload re-reads the file. On error the previous catalog stays in effect.
func (s *FileSource) Reload() error {
	fc, err := LoadFile(s.path)
	if err == nil {
		s.mu.Lock()
		s.current = fc
		s.mu.Unlock()
	}
	if s.OnReload != nil {
		s.OnReload(err)
	}
	return err
}

// Watch reloads the file whenever it changes until ctx is cancelled. The
// parent directory is watched so that editors which replace the file by
// rename are picked up too.
func (s *FileSource) Watch(ctx context.Context, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	go func() {
		defer w.Close()
		target := filepath.Clean(s.path)
		var timer *time.Timer
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case <-fire:
				if err := s.Reload(); err != nil {
					s.logger.Warn().Err(err).Str("catalog_file", s.path).Msg("catalog reload failed, keeping previous catalog")
					continue
				}
				s.logger.Info().Str("catalog_file", s.path).Msg("catalog reloaded")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn().Err(err).Str("catalog_file", s.path).Msg("catalog watcher error")
			}
		}
	}()
	return nil
}
