package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// scriptedTransport entrega una secuencia fija y luego espera Stop.
type scriptedTransport struct {
	api     ClientAPI
	events  []domain.ReadyCheckEvent
	runErr  error
	stops   atomic.Int32
	stopped chan struct{}
	once    sync.Once
}

func newScriptedTransport(api ClientAPI, events ...domain.ReadyCheckEvent) *scriptedTransport {
	return &scriptedTransport{api: api, events: events, stopped: make(chan struct{})}
}

func (t *scriptedTransport) Run(ctx context.Context, l Listener) error {
	if t.runErr != nil {
		return t.runErr
	}
	l.Connected(ctx, t.api)
	for _, ev := range t.events {
		l.ReadyCheckChanged(ctx, t.api, ev)
	}
	l.Disconnected(ctx)
	select {
	case <-t.stopped:
	case <-ctx.Done():
	}
	return nil
}

func (t *scriptedTransport) Stop() {
	t.stops.Add(1)
	t.once.Do(func() { close(t.stopped) })
}

func TestShell_StartStop(t *testing.T) {
	api := &fakeAPI{lobby: domain.LobbyInfo{QueueID: queueID(1100)}}
	tr := newScriptedTransport(api, pending, pending, finished)
	ctrl := NewReadyCheckService(discardLogger(), domain.NewSettings("", "", false, nil), nil, nil)
	sh := NewShell(tr, ctrl, discardLogger())

	done := make(chan error, 1)
	go func() { done <- sh.Start(context.Background()) }()

	require.Eventually(t, func() bool { return api.acceptCount() == 1 }, time.Second, 5*time.Millisecond)

	sh.Stop()
	sh.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
	assert.Equal(t, int32(2), tr.stops.Load())
	assert.False(t, sh.Status().Connected)
}

func TestShell_StopBeforeStart(t *testing.T) {
	tr := newScriptedTransport(&fakeAPI{})
	ctrl := NewReadyCheckService(discardLogger(), domain.NewSettings("", "", false, nil), nil, nil)
	sh := NewShell(tr, ctrl, discardLogger())

	sh.Stop()
	require.NoError(t, sh.Start(context.Background()))
}

func TestShell_StartupFaultPropagates(t *testing.T) {
	tr := newScriptedTransport(&fakeAPI{})
	tr.runErr = errors.New("install dir not found")
	ctrl := NewReadyCheckService(discardLogger(), domain.NewSettings("", "", false, nil), nil, nil)
	sh := NewShell(tr, ctrl, discardLogger())

	err := sh.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, tr.runErr)
}

func TestShell_ConnectionBookkeeping(t *testing.T) {
	ctrl := NewReadyCheckService(discardLogger(), domain.NewSettings("", "", false, nil), nil, nil)
	sh := NewShell(newScriptedTransport(&fakeAPI{}), ctrl, discardLogger())
	ctx := context.Background()

	sh.Connected(ctx, &fakeAPI{})
	assert.Equal(t, Status{Connected: true}, sh.Status())

	ctrl.Pause()
	sh.Disconnected(ctx)
	assert.Equal(t, Status{Paused: true}, sh.Status())
}

type panickyAPI struct{ fakeAPI }

func (p *panickyAPI) Lobby(context.Context) (domain.LobbyInfo, error) {
	panic("nil lobby")
}

func TestShell_RecoversHandlerPanic(t *testing.T) {
	ctrl := NewReadyCheckService(discardLogger(), domain.NewSettings("", "", false, nil), nil, nil)
	sh := NewShell(newScriptedTransport(&fakeAPI{}), ctrl, discardLogger())

	assert.NotPanics(t, func() {
		sh.ReadyCheckChanged(context.Background(), &panickyAPI{}, pending)
	})
}
