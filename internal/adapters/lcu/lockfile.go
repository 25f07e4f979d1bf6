package lcu

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// LockfileName es el archivo que el cliente escribe en su carpeta de instalación
// mientras está abierto.
const LockfileName = "lockfile"

// Credentials sale del lockfile: name:pid:port:password:protocol
type Credentials struct {
	Name     string
	PID      int
	Port     int
	Password string
	Protocol string
}

func ParseLockfile(b []byte) (Credentials, error) {
	parts := strings.Split(strings.TrimSpace(string(b)), ":")
	if len(parts) != 5 {
		return Credentials{}, fmt.Errorf("%w: want 5 fields, got %d", ErrBadLockfile, len(parts))
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: pid %q", ErrBadLockfile, parts[1])
	}
	port, err := strconv.Atoi(parts[2])
	if err != nil || port <= 0 || port > 65535 {
		return Credentials{}, fmt.Errorf("%w: port %q", ErrBadLockfile, parts[2])
	}
	if parts[3] == "" {
		return Credentials{}, fmt.Errorf("%w: empty password", ErrBadLockfile)
	}
	return Credentials{
		Name:     parts[0],
		PID:      pid,
		Port:     port,
		Password: parts[3],
		Protocol: parts[4],
	}, nil
}

func ReadLockfile(path string) (Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, err
	}
	return ParseLockfile(b)
}

// LockfilePath devuelve <installDir>/lockfile.
func LockfilePath(installDir string) string {
	return filepath.Join(installDir, LockfileName)
}

// DefaultInstallDir is the stock install location; empty where the client
// has no native build.
func DefaultInstallDir() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Riot Games\League of Legends`
	case "darwin":
		return "/Applications/League of Legends.app/Contents/LoL"
	default:
		return ""
	}
}

func (c Credentials) BaseURL() string {
	return fmt.Sprintf("%s://127.0.0.1:%d", c.scheme(), c.Port)
}

func (c Credentials) WebsocketURL() string {
	ws := "wss"
	if c.scheme() == "http" {
		ws = "ws"
	}
	return fmt.Sprintf("%s://127.0.0.1:%d/", ws, c.Port)
}

func (c Credentials) scheme() string {
	if c.Protocol == "" {
		return "https"
	}
	return c.Protocol
}

func (c Credentials) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte("riot:" + c.Password))
}
