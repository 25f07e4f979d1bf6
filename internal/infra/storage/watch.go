package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Watch llama onChange con cada versión válida del archivo hasta que ctx termine.
// Se observa el directorio porque los editores suelen reemplazar el archivo
// con un rename. Un archivo corrupto se loguea y se ignora.
func (r *SettingsRepo) Watch(ctx context.Context, log *slog.Logger, onChange func(SettingsFile)) error {
	if log == nil {
		log = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(r.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Base(r.path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("settings watcher error", "err", werr)
		case <-timer.C:
			f, err := r.read()
			if err != nil {
				log.Warn("⚠️ settings reload failed, keeping previous values", "path", r.path, "err", err)
				continue
			}
			log.Info("🔁 settings reloaded", "path", r.path)
			onChange(f)
		}
	}
}

func (r *SettingsRepo) read() (SettingsFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReadSettings(r.path)
}
