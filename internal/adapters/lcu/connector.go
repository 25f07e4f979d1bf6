package lcu

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/jose-valero/lcu-queue-bot/internal/app/service"
	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// Connector mantiene la conexión con el cliente: espera el lockfile, abre el
// websocket, se suscribe al ready-check y reintenta cuando el cliente se cierra.
type Connector struct {
	installDir string
	log        *slog.Logger
	dialer     *websocket.Dialer
	clientOpts []Option

	minPoll        time.Duration
	maxPoll        time.Duration
	reconnectDelay time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

var _ service.Transport = (*Connector)(nil)

func NewConnector(installDir string, opts ...ConnectorOption) *Connector {
	c := &Connector{
		installDir: installDir,
		log:        slog.Default(),
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // loopback only
		},
		minPoll:        500 * time.Millisecond,
		maxPoll:        5 * time.Second,
		reconnectDelay: 2 * time.Second,
		done:           make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stop es idempotente y se puede llamar antes de Run.
func (c *Connector) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Connector) stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Run bloquea hasta Stop o ctx. Sólo devuelve error si no se puede ni
// empezar a vigilar la carpeta del cliente.
func (c *Connector) Run(ctx context.Context, l service.Listener) error {
	if c.installDir == "" {
		return errors.New("league install dir not configured (set LCU_INSTALL_DIR)")
	}
	if st, err := os.Stat(c.installDir); err != nil {
		return fmt.Errorf("league install dir: %w", err)
	} else if !st.IsDir() {
		return fmt.Errorf("league install dir %s is not a directory", c.installDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(c.installDir); err != nil {
		return fmt.Errorf("watch %s: %w", c.installDir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if c.stopped() {
			return nil
		}
		creds, err := c.waitForClient(ctx, watcher)
		if err != nil || c.stopped() {
			return nil
		}
		// durante la sesión nadie lee el watcher: se suelta y se retoma después
		_ = watcher.Remove(c.installDir)
		if err := c.session(ctx, creds, l); err != nil {
			c.log.Debug("lcu session ended", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.reconnectDelay):
		}
		drainWatcher(watcher)
		if err := watcher.Add(c.installDir); err != nil {
			c.log.Warn("could not re-watch install dir, polling only", "dir", c.installDir, "err", err)
		}
	}
}

// drainWatcher descarta lo que quedó encolado de antes de la sesión.
func drainWatcher(w *fsnotify.Watcher) {
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// waitForClient lee el lockfile; si no está, espera un evento de fsnotify o
// el siguiente tick del backoff.
func (c *Connector) waitForClient(ctx context.Context, w *fsnotify.Watcher) (Credentials, error) {
	path := LockfilePath(c.installDir)
	backoff := retry.WithCappedDuration(c.maxPoll, retry.NewExponential(c.minPoll))

	for {
		creds, err := ReadLockfile(path)
		if err == nil {
			return creds, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Debug("lockfile not ready", "path", path, "err", err)
		}

		wait, _ := backoff.Next()
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return Credentials{}, ctx.Err()
		case ev, ok := <-w.Events:
			t.Stop()
			if ok && filepath.Base(ev.Name) == LockfileName {
				c.log.Debug("lockfile changed", "op", ev.Op.String())
			}
		case werr, ok := <-w.Errors:
			t.Stop()
			if ok {
				c.log.Warn("fsnotify error", "err", werr)
			}
		case <-t.C:
		}
	}
}

// session abre el websocket y despacha eventos hasta que se corta.
func (c *Connector) session(ctx context.Context, creds Credentials, l service.Listener) error {
	hdr := http.Header{}
	hdr.Set("Authorization", "Basic "+creds.basicAuth())

	conn, _, err := c.dialer.DialContext(ctx, creds.WebsocketURL(), hdr)
	if err != nil {
		return fmt.Errorf("dial lcu websocket: %w", err)
	}
	defer conn.Close()
	stopClose := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stopClose()

	if err := conn.WriteJSON([]any{wampSubscribe, readyCheckTopic}); err != nil {
		return fmt.Errorf("subscribe %s: %w", readyCheckTopic, err)
	}

	api := New(creds, c.clientOpts...)
	l.Connected(ctx, api)
	defer l.Disconnected(ctx)

	// si ya había un ready-check abierto al conectar, se entrega como primer evento
	if ev, err := api.ReadyCheck(ctx); err == nil {
		l.ReadyCheckChanged(ctx, api, ev)
	} else if !errors.Is(err, ErrNotFound) {
		c.log.Debug("initial ready-check lookup failed", "err", err)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read lcu websocket: %w", err)
		}
		ev, ok, err := decodeFrame(msg)
		if err != nil {
			c.log.Debug("skipping undecodable frame", "err", err)
			continue
		}
		if ok {
			l.ReadyCheckChanged(ctx, api, ev)
		}
	}
}

// decodeFrame interpreta [8, topic, payload]. ok=false para frames que no
// son eventos de ready-check.
func decodeFrame(msg []byte) (domain.ReadyCheckEvent, bool, error) {
	if len(msg) == 0 {
		return domain.ReadyCheckEvent{}, false, nil
	}
	var frame []json.RawMessage
	if err := json.Unmarshal(msg, &frame); err != nil {
		return domain.ReadyCheckEvent{}, false, fmt.Errorf("decode wamp frame: %w", err)
	}
	if len(frame) < 3 {
		return domain.ReadyCheckEvent{}, false, nil
	}

	var opcode int
	if err := json.Unmarshal(frame[0], &opcode); err != nil || opcode != wampEvent {
		return domain.ReadyCheckEvent{}, false, nil
	}
	var topic string
	if err := json.Unmarshal(frame[1], &topic); err != nil || topic != readyCheckTopic {
		return domain.ReadyCheckEvent{}, false, nil
	}

	var p jsonAPIEvent
	if err := json.Unmarshal(frame[2], &p); err != nil {
		return domain.ReadyCheckEvent{}, false, fmt.Errorf("decode %s payload: %w", topic, err)
	}
	switch p.EventType {
	case "Update":
		if p.Data == nil {
			return domain.ReadyCheckEvent{}, false, nil
		}
		return p.Data.event(), true, nil
	case "Delete":
		// el ready-check desapareció: se trata como fin de la ocurrencia
		return domain.ReadyCheckEvent{State: domain.StateInvalid, PlayerResponse: domain.ResponseNone}, true, nil
	default:
		return domain.ReadyCheckEvent{}, false, nil
	}
}
