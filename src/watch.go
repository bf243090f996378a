package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// debounceDelay coalesces the burst of fs events editors and atomic-save
// tools fire for one logical write.
const debounceDelay = 500 * time.Millisecond

// watchAndRender blocks, re-running the job whenever its input file
// changes. The parent directory is watched because many tools replace the
// file instead of writing it in place.
func watchAndRender(job renderJob) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer w.Close()
	dir := filepath.Dir(job.file)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target, err := filepath.Abs(job.file)
	if err != nil {
		return err
	}
	fmt.Printf("[watch] watching %s for changes to %s (interrupt to stop)\n", dir, filepath.Base(job.file))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p, err := filepath.Abs(ev.Name)
			if err != nil || p != target {
				continue
			}
			stocks.Debugf("watch event: %s", ev)
			if timer == nil {
				timer = time.AfterFunc(debounceDelay, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounceDelay)
			}
		case <-fire:
			timer = nil
			fmt.Printf("[watch] change detected, re-rendering\n")
			if err := job.run(); err != nil {
				// Keep watching; a half-written file often fails exactly once.
				stocks.Errorf("re-render: %v", err)
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			stocks.Warnf("watch: %v", werr)
		case <-sig:
			fmt.Printf("[watch] interrupted, exiting\n")
			return nil
		}
	}
}
