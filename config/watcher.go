package config

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-loads path whenever it is written or re-created and sends the new
// config on out. Invalid edits are logged and ignored. Watch blocks until ctx
// is done. out should be buffered; sends never block and a pending unread
// config is replaced by the newer one.
func Watch(ctx context.Context, path string, out chan AppConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors replace files by rename, so watch the directory.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	log.Printf("watching config %s", path)

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.Printf("config reload rejected: %v", err)
				continue
			}
			log.Printf("config reloaded: %s", path)
			offer(out, cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher error: %v", err)
		}
	}
}

func offer(out chan AppConfig, cfg AppConfig) {
	select {
	case out <- cfg:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- cfg:
	default:
		log.Printf("config reload dropped: receiver busy")
	}
}
