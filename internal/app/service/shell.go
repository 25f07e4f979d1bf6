package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// Shell envuelve el controller con el bookkeeping de conexión y expone
// Start/Stop al proceso host.
type Shell struct {
	transport Transport
	ctrl      *ReadyCheckService
	log       *slog.Logger

	connected atomic.Bool
	stopped   atomic.Bool
}

func NewShell(t Transport, ctrl *ReadyCheckService, log *slog.Logger) *Shell {
	return &Shell{transport: t, ctrl: ctrl, log: log}
}

// Status is what the host surface (tray / control API) displays.
type Status struct {
	Paused    bool `json:"paused"`
	Connected bool `json:"connected"`
}

// Pause, Resume y TogglePause son la superficie del host (antes el menú del tray).
func (s *Shell) Pause()            { s.ctrl.Pause() }
func (s *Shell) Resume()           { s.ctrl.Resume() }
func (s *Shell) TogglePause() bool { return s.ctrl.TogglePause() }

func (s *Shell) Status() Status {
	return Status{Paused: s.ctrl.Paused(), Connected: s.connected.Load()}
}

// Start bloquea hasta que el transporte se detiene. Sólo devuelve errores de
// arranque (no se pudo engancharse al cliente); desconexiones no son fatales.
func (s *Shell) Start(ctx context.Context) error {
	if s.stopped.Load() {
		return nil
	}
	s.log.Info("🔎 searching for League client...")
	if err := s.transport.Run(ctx, s); err != nil {
		return fmt.Errorf("lcu transport: %w", err)
	}
	return nil
}

// Stop se puede llamar desde cualquier goroutine, antes o después de Start,
// cuantas veces sea.
func (s *Shell) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		s.log.Warn("stopping LCU connector...")
	}
	s.transport.Stop()
}

func (s *Shell) Connected(ctx context.Context, _ ClientAPI) {
	s.connected.Store(true)
	s.ctrl.Connected(ctx)
}

func (s *Shell) Disconnected(ctx context.Context) {
	s.connected.Store(false)
	s.ctrl.Disconnected(ctx)
}

func (s *Shell) ReadyCheckChanged(ctx context.Context, api ClientAPI, ev domain.ReadyCheckEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("panic handling ready-check", "panic", fmt.Sprint(rec), "state", ev.State)
		}
	}()
	s.ctrl.HandleReadyCheck(ctx, api, ev)
}
