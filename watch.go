package iconbake

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
	"golang.org/x/sync/errgroup"
)

// debounceInterval coalesces the burst of fsnotify events an editor save
// produces into a single regeneration.
const debounceInterval = 500 * time.Millisecond

// Watch bakes the icon set once, then regenerates it whenever the source
// file changes, until ctx is canceled. Render errors inside the loop are
// reported and the watch keeps running; only watcher failures stop it.
func (g *Generator) Watch(ctx context.Context, sourcePath, outDir string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	src, err := NewImage(sourcePath)
	if err != nil {
		return err
	}
	if err := g.Generate(ctx, src, outDir); err != nil {
		g.logger.Error("generate failed", slog.Any("error", err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go quiet.
	dir := filepath.Dir(sourcePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var timer *time.Timer
		regen := make(chan struct{}, 1)
		g.logger.Info("waiting for source change", slog.String("source", sourcePath))
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-watcher.Events:
				if !ok {
					return fmt.Errorf("watcher closed")
				}
				name, err := filepath.Abs(event.Name)
				if err != nil || name != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceInterval, func() {
					select {
					case regen <- struct{}{}:
					default:
					}
				})
			case werr, ok := <-watcher.Errors:
				if !ok {
					return fmt.Errorf("watcher closed")
				}
				return fmt.Errorf("watch error: %w", werr)
			case <-regen:
				g.logger.Info("source changed", slog.String("source", sourcePath))
				src, err := NewImage(sourcePath)
				if err != nil {
					g.logger.Error("failed to reload source image", slog.Any("error", err))
				} else if err := g.Generate(ctx, src, outDir); err != nil {
					g.logger.Error("generate failed", slog.Any("error", err))
				}
				g.logger.Info("waiting for source change", slog.String("source", sourcePath))
			}
		}
	})
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
