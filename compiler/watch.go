package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
)

// DebounceTime groups bursts of file events into a single generation.
var DebounceTime = 100 * time.Millisecond

// Watch runs Generate once, then again after every change of a schema
// file, until ctx is done. Each outcome is passed to fn; generation
// errors do not stop the watch.
func Watch(ctx context.Context, cfg *gen.Config, fn func(*Result, error)) error {
	if cfg == nil {
		return fmt.Errorf("compiler: %w", gen.ErrMissingConfig)
	}
	dirs, err := watchDirs(cfg.Schema)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("compiler: create watcher: %w", err)
	}
	defer w.Close()
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("compiler: watch %s: %w", dir, err)
		}
	}
	fn(Generate(ctx, cfg))

	var (
		timer *time.Timer
		fire  = make(chan struct{}, 1)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !schemaEvent(ev) {
				continue
			}
			cfg.Logger.Debug().Str("file", ev.Name).Stringer("op", ev.Op).Msg("schema changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceTime, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			fn(Generate(ctx, cfg))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Error().Err(err).Msg("watch")
		}
	}
}

// watchDirs returns the directories holding the schema paths.
func watchDirs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, gen.NewConfigError("Schema", nil, "no schema file or directory")
	}
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("compiler: %w", err)
		}
		if !info.IsDir() {
			p = filepath.Dir(p)
		}
		dirs = append(dirs, filepath.Clean(p))
	}
	return lo.Uniq(dirs), nil
}

func schemaEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return slices.Contains(load.Extensions, strings.ToLower(filepath.Ext(ev.Name)))
}
