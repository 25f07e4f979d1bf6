package storage

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// SettingsRepo guarda la configuración en un archivo json(c) o yaml.
type SettingsRepo struct {
	path string
	mu   sync.Mutex
}

func NewSettingsRepo(path string) *SettingsRepo { return &SettingsRepo{path: path} }

func (r *SettingsRepo) Path() string { return r.path }

// Load devuelve el archivo tal cual; si no existe lo crea con los defaults.
func (r *SettingsRepo) Load(ctx context.Context) (SettingsFile, error) {
	if err := ctx.Err(); err != nil {
		return SettingsFile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := ReadSettings(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		// crea default
		f = DefaultSettings()
		if err := WriteSettings(r.path, f); err != nil {
			return SettingsFile{}, err
		}
		return f, nil
	}
	return f, err
}

// Peek lee sin escribir nada: si el archivo no existe devuelve los defaults.
func (r *SettingsRepo) Peek(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := ReadSettings(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings().Snapshot(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return f.Snapshot(), nil
}

func (r *SettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	f, err := r.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return f.Snapshot(), nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return WriteSettings(r.path, FromSnapshot(s))
}
