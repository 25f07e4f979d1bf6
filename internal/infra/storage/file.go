package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var ErrCorrupt = errors.New("settings file is corrupt")

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parte de los defaults: una clave ausente conserva su valor por defecto.
func Decode(path string, data []byte) (SettingsFile, error) {
	f := DefaultSettings()
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(jsonc.ToJSON(data), &f)
	}
	if err != nil {
		return SettingsFile{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(path), err)
	}
	if f.AllowedQueueIDs == nil {
		f.AllowedQueueIDs = []int{}
	}
	return f, nil
}

func Encode(path string, f SettingsFile) ([]byte, error) {
	if f.AllowedQueueIDs == nil {
		f.AllowedQueueIDs = []int{}
	}
	if isYAML(path) {
		return yaml.Marshal(f)
	}
	b, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func ReadSettings(path string) (SettingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SettingsFile{}, err
	}
	return Decode(path, data)
}

// WriteSettings escribe a un temporal en el mismo dir y renombra encima.
func WriteSettings(path string, f SettingsFile) error {
	content, err := Encode(path, f)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".queuebot-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename settings: %w", err)
	}
	return nil
}
