package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

const defaultNotifyTimeout = 10 * time.Second

// ReadyCheckService decide si y cuándo aceptar un ready-check.
//
// accepting lo escribe sólo la goroutine del transporte; paused lo escribe
// el host (control HTTP). No hay invariante entre los dos.
type ReadyCheckService struct {
	log     *slog.Logger
	queues  *QueueService
	desktop DesktopNotifier
	webhook WebhookPinger

	settings  atomic.Pointer[domain.Settings]
	accepting atomic.Bool
	paused    atomic.Bool

	notifyTimeout time.Duration
	inflight      sync.WaitGroup
}

func NewReadyCheckService(log *slog.Logger, st domain.Settings, desktop DesktopNotifier, webhook WebhookPinger) *ReadyCheckService {
	s := &ReadyCheckService{
		log:           log,
		queues:        NewQueueService(log),
		desktop:       desktop,
		webhook:       webhook,
		notifyTimeout: defaultNotifyTimeout,
	}
	s.settings.Store(&st)
	return s
}

// SetSettings reemplaza el snapshot completo (hot reload).
func (s *ReadyCheckService) SetSettings(st domain.Settings) {
	s.settings.Store(&st)
}

func (s *ReadyCheckService) Settings() domain.Settings {
	return *s.settings.Load()
}

func (s *ReadyCheckService) Pause()       { s.paused.Store(true) }
func (s *ReadyCheckService) Resume()      { s.paused.Store(false) }
func (s *ReadyCheckService) Paused() bool { return s.paused.Load() }

// TogglePause devuelve el estado nuevo.
func (s *ReadyCheckService) TogglePause() bool {
	for {
		cur := s.paused.Load()
		if s.paused.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Accepting exposes the latch for tests and status output.
func (s *ReadyCheckService) Accepting() bool { return s.accepting.Load() }

// Connected arranca sin suposiciones sobre ready-checks previos.
func (s *ReadyCheckService) Connected(_ context.Context) {
	s.accepting.Store(false)
	s.log.Info("✅ League client connected, monitoring queue", "settings", Describe(s.Settings()))
}

func (s *ReadyCheckService) Disconnected(_ context.Context) {
	s.log.Warn("⚠️ League client disconnected, waiting...")
}

// HandleReadyCheck procesa un evento de /lol-matchmaking/v1/ready-check.
func (s *ReadyCheckService) HandleReadyCheck(ctx context.Context, api ClientAPI, ev domain.ReadyCheckEvent) {
	if s.paused.Load() {
		return
	}
	if ev.State != domain.StateInProgress {
		s.accepting.Store(false)
		return
	}
	// ya respondido: nada que hacer
	if !ev.Pending() {
		return
	}
	// evento duplicado del mismo ready-check
	if !s.accepting.CompareAndSwap(false, true) {
		return
	}

	st := s.Settings()
	log := s.log.With("occurrence", uuid.NewString())

	mode, queueID := s.queues.Resolve(ctx, api)
	if !st.Allows(queueID) {
		log.Info("skipping queue, not in allowed list", "mode", mode)
		// el check puede quedar InProgress hasta que el usuario responda;
		// sin este reset el latch quedaría trabado
		s.accepting.Store(false)
		return
	}

	log.Info("⚡ QUEUE POPPED ⚡ accepting match", "mode", mode)
	s.notify(ctx, log, st, mode)

	// un accept ya emitido no se cancela con el apagado; lo acota el timeout del cliente
	if err := api.AcceptReadyCheck(context.WithoutCancel(ctx)); err != nil {
		log.Error("could not accept match", "mode", mode, "err", err)
		return
	}
	log.Info("✅ match accepted", "mode", mode)
}

// notify lanza los sinks sin esperarlos. Cada uno corre en su goroutine,
// con su propio timeout, y no puede tumbar el flujo del accept.
func (s *ReadyCheckService) notify(ctx context.Context, log *slog.Logger, st domain.Settings, mode string) {
	base := context.WithoutCancel(ctx)

	if st.DesktopNotifications && s.desktop != nil {
		s.spawn(base, log, "desktop", func(ctx context.Context) error {
			return s.desktop.QueuePopped(ctx, mode)
		})
	}
	if st.WebhookURL != "" && s.webhook != nil {
		s.spawn(base, log, "webhook", func(ctx context.Context) error {
			return s.webhook.QueuePopped(ctx, st.WebhookURL, st.MentionUserID, mode)
		})
	}
}

func (s *ReadyCheckService) spawn(base context.Context, log *slog.Logger, sink string, fn func(context.Context) error) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Warn("notification sink panicked", "sink", sink, "panic", fmt.Sprint(rec))
			}
		}()

		ctx, cancel := context.WithTimeout(base, s.notifyTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn("notification failed", "sink", sink, "err", err)
			return
		}
		log.Debug("notification sent", "sink", sink)
	}()
}

// Wait bloquea hasta que terminen las notificaciones en vuelo.
func (s *ReadyCheckService) Wait() {
	s.inflight.Wait()
}

// WaitTimeout es Wait con límite; devuelve false si venció.
func (s *ReadyCheckService) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
