package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/Telenav/smithy-sub007/compiler/load"
)

const debounce = 100 * time.Millisecond

// watchAndRun runs fn once, then again whenever a shape document under
// paths is written or created, until ctx is canceled or the process is
// interrupted. Failed runs are reported to w and do not stop watching.
func watchAndRun(ctx context.Context, paths []string, w io.Writer, fn func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fmt.Fprintf(w, "[watch] watching %s\n", dir)
	}

	report := func() {
		if err := fn(ctx); err != nil && ctx.Err() == nil {
			color.New(color.FgRed).Fprintf(w, "[watch] %v\n", err)
		}
	}
	report()

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isShapeDocument(event.Name) {
				continue
			}
			fmt.Fprintf(w, "[watch] changed: %s\n", event.Name)
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "[watch] error: %v\n", err)
		case <-timer.C:
			report()
		case <-ctx.Done():
			return nil
		}
	}
}

// watchDirs returns the directories holding paths. Directories are watched
// with all their subdirectories.
func watchDirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Dir(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

func isShapeDocument(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	_, ok := load.FormatOf(path)
	return ok
}
