// Package watch re-runs a conversion whenever its input file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Areng14/BeePEE/internal/convert"
	"github.com/Areng14/BeePEE/internal/logger"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Config describes what to watch and how to convert it.
type Config struct {
	Input    string
	Output   string
	Options  convert.Options
	Debounce time.Duration
}

// Event is the outcome of one triggered conversion.
type Event struct {
	Result *convert.Result
	Err    error
}

// Watch converts cfg.Input once, then again after every write, create or
// rename that touches it, until ctx is cancelled. The parent directory is
// watched so editors that save by replacing the file are still seen.
// Bursts of events within the debounce window trigger a single conversion.
// onEvent, if non-nil, is called after every conversion attempt.
func Watch(ctx context.Context, cfg Config, onEvent func(Event)) error {
	input, err := filepath.Abs(cfg.Input)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", cfg.Input, err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(input), err)
	}

	run := func() {
		res, err := convert.Run(cfg.Input, cfg.Output, cfg.Options)
		if err != nil {
			logger.Failure(convert.Describe(err), zap.Error(err))
		}
		if onEvent != nil {
			onEvent(Event{Result: res, Err: err})
		}
	}

	run()
	logger.Info("Watching for changes", zap.String("input", cfg.Input))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isRelevant(event, input) {
				logger.Debug("Input changed", zap.String("op", event.Op.String()))
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", zap.Error(err))
		case <-timer.C:
			run()
		}
	}
}

// isRelevant reports whether event may have changed the file at input.
func isRelevant(event fsnotify.Event, input string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != input {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
