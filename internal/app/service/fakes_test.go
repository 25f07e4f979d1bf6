package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func queueID(v int) *int { return &v }

type fakeAPI struct {
	mu         sync.Mutex
	lobby      domain.LobbyInfo
	lobbyErr   error
	acceptErr  error
	lobbyCalls int
	accepts    int
	onAccept   func(ctx context.Context)
}

func (f *fakeAPI) Lobby(context.Context) (domain.LobbyInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lobbyCalls++
	return f.lobby, f.lobbyErr
}

func (f *fakeAPI) AcceptReadyCheck(ctx context.Context) error {
	if f.onAccept != nil {
		f.onAccept(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepts++
	return f.acceptErr
}

func (f *fakeAPI) acceptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accepts
}

type fakeDesktop struct {
	mu    sync.Mutex
	modes []string
	err   error
	panic bool
}

func (f *fakeDesktop) QueuePopped(_ context.Context, mode string) error {
	f.mu.Lock()
	f.modes = append(f.modes, mode)
	f.mu.Unlock()
	if f.panic {
		panic("toast backend exploded")
	}
	return f.err
}

func (f *fakeDesktop) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.modes...)
}

type webhookCall struct {
	URL, UserID, Mode string
}

type fakeWebhook struct {
	mu    sync.Mutex
	sent  []webhookCall
	err   error
	block chan struct{}
}

func (f *fakeWebhook) QueuePopped(ctx context.Context, url, userID, mode string) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	f.sent = append(f.sent, webhookCall{URL: url, UserID: userID, Mode: mode})
	f.mu.Unlock()
	return f.err
}

func (f *fakeWebhook) calls() []webhookCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]webhookCall(nil), f.sent...)
}

var errBoom = errors.New("boom")

var (
	pending   = domain.ReadyCheckEvent{State: domain.StateInProgress, PlayerResponse: domain.ResponseNone}
	responded = domain.ReadyCheckEvent{State: domain.StateInProgress, PlayerResponse: domain.ResponseAccepted}
	finished  = domain.ReadyCheckEvent{State: domain.StateEveryoneReady, PlayerResponse: domain.ResponseAccepted}
	cancelled = domain.ReadyCheckEvent{State: domain.StateInvalid, PlayerResponse: domain.ResponseNone}
)
