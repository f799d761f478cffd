// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild is triggered
const DefaultDebounce = 300 * time.Millisecond

var skippedDirs = map[string]bool{".git": true, "node_modules": true}

// Watcher invokes OnChange when files under its directories or one of its
// files change. Bursts of events are collapsed into one call.
type Watcher struct {
	// Dirs are watched recursively
	Dirs []string
	// Files are watched individually
	Files []string
	// Ignore lists paths whose changes are ignored, such as the output directory
	Ignore []string
	// Debounce is the quiet period, DefaultDebounce when zero
	Debounce time.Duration
	// OnChange is called after changes settle. Errors are logged.
	OnChange func(ctx context.Context) error

	watcher *fsnotify.Watcher
	files   map[string]bool
	ignore  []string
}

// Run watches until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	var err error
	if w.watcher, err = fsnotify.NewWatcher(); err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer w.watcher.Close()
	if err = w.setup(); err != nil {
		return err
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	klog.V(2).Info("watching files started")
	defer klog.V(2).Info("watching files stopped")

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-timerC:
			timerC = nil
			if w.OnChange != nil {
				if err := w.OnChange(ctx); err != nil {
					klog.Errorf("rebuild failed: %v", err)
				}
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			klog.V(6).Infof("%s %s", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						klog.Warningf("failed to watch %s: %v", event.Name, err)
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			timerC = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) setup() error {
	w.files = map[string]bool{}
	w.ignore = nil
	for _, p := range w.Ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		w.ignore = append(w.ignore, abs)
	}
	for _, d := range w.Dirs {
		if err := w.addRecursive(d); err != nil {
			return err
		}
	}
	// the parent directory is watched so editors replacing the file are seen
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.files[abs] = true
		if err = w.watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("could not watch %s: %w", f, err)
		}
	}
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] || w.ignored(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("could not watch %s: %w", p, err)
		}
		klog.V(6).Infof("watching %s", p)
		return nil
	})
}

func (w *Watcher) ignored(p string) bool {
	for _, i := range w.ignore {
		if p == i || strings.HasPrefix(p, i+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	p, err := filepath.Abs(event.Name)
	if err != nil || w.ignored(p) {
		return false
	}
	if w.files[p] {
		return true
	}
	for _, d := range w.Dirs {
		abs, err := filepath.Abs(d)
		if err == nil && (p == abs || strings.HasPrefix(p, abs+string(filepath.Separator))) {
			return true
		}
	}
	return false
}
