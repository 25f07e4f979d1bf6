package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lcu-queue-bot/internal/adapters/httpcontrol"
	"github.com/jose-valero/lcu-queue-bot/internal/app/service"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/config"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/storage"
)

func execute(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		SettingsPath: filepath.Join(t.TempDir(), "config.json"),
		ControlAddr:  "127.0.0.1:1",
	}
}

func TestParseQueueIDs(t *testing.T) {
	ids, err := parseQueueIDs(" 1100, 420,1100 ,")
	require.NoError(t, err)
	assert.Equal(t, []int{420, 1100}, ids)

	for _, all := range []string{"", "all", "ALL"} {
		ids, err := parseQueueIDs(all)
		require.NoError(t, err)
		assert.Empty(t, ids)
	}

	_, err = parseQueueIDs("1100,tft")
	assert.Error(t, err)
	_, err = parseQueueIDs("-3")
	assert.Error(t, err)
}

func TestConfigSetAndShow(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, cfg, "config", "set",
		"--webhook-url", "https://discord.com/api/webhooks/1/abc",
		"--user-id", "42",
		"--desktop-notifications=false",
		"--queues", "1100,1160")
	require.NoError(t, err)
	assert.Contains(t, out, "Configured")

	f, err := storage.ReadSettings(cfg.SettingsPath)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", f.WebhookURL)
	assert.Equal(t, "42", f.UserID)
	assert.False(t, f.DesktopNotifications)
	assert.Equal(t, []int{1100, 1160}, f.AllowedQueueIDs)

	out, err = execute(t, cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "TFT Ranked")
	assert.Contains(t, out, "TFT Double Up")

	// sólo cambia lo que se pasa
	_, err = execute(t, cfg, "config", "set", "--queues", "all")
	require.NoError(t, err)
	f, err = storage.ReadSettings(cfg.SettingsPath)
	require.NoError(t, err)
	assert.Empty(t, f.AllowedQueueIDs)
	assert.Equal(t, "42", f.UserID)
}

func TestReadOnlyCommandsDoNotCreateSettings(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Allowed queues")

	_, err = execute(t, cfg, "queues")
	require.NoError(t, err)

	_, err = execute(t, cfg, "test-webhook")
	require.Error(t, err)

	_, err = os.Stat(cfg.SettingsPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigSet_Rejects(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "config", "set")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = execute(t, cfg, "config", "set", "--webhook-url", "discord webhook")
	assert.ErrorContains(t, err, "webhook")
}

func TestConfigPath(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(t, cfg, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfg.SettingsPath+"\n", out)
}

func TestQueues(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(t, cfg, "queues")
	require.NoError(t, err)
	assert.Contains(t, out, "Tocker's Trials")
	assert.Contains(t, out, "all queues allowed")
}

func TestTestWebhook_NotConfigured(t *testing.T) {
	_, err := execute(t, testConfig(t), "test-webhook")
	assert.ErrorContains(t, err, "no webhook configured")
}

func TestTestWebhook_Sends(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		got <- body.Content
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := execute(t, testConfig(t), "test-webhook", "--url", srv.URL+"/api/webhooks/1/abc", "--queue", "1160")
	require.NoError(t, err)
	assert.Contains(t, out, "webhook sent")
	assert.Equal(t, " 🚨 QUEUE POPPED! 🚨\nMode: TFT Double Up\nAccepting match automatically.", <-got)
}

type fakeControl struct{ paused atomic.Bool }

func (f *fakeControl) Status() service.Status { return service.Status{Paused: f.paused.Load(), Connected: true} }
func (f *fakeControl) Pause()                 { f.paused.Store(true) }
func (f *fakeControl) Resume()                { f.paused.Store(false) }
func (f *fakeControl) TogglePause() bool {
	for {
		v := f.paused.Load()
		if f.paused.CompareAndSwap(v, !v) {
			return !v
		}
	}
}

func TestControlCommands(t *testing.T) {
	ctl := &fakeControl{}
	stopped := make(chan struct{})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(httpcontrol.New("secret", ctl, func() { close(stopped) }, "v1.2.3", log).Handler())
	defer srv.Close()

	cfg := testConfig(t)
	cfg.ControlAddr = srv.URL
	cfg.ControlToken = "secret"

	out, err := execute(t, cfg, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "connected")

	_, err = execute(t, cfg, "pause")
	require.NoError(t, err)
	assert.True(t, ctl.paused.Load())

	_, err = execute(t, cfg, "toggle")
	require.NoError(t, err)
	assert.False(t, ctl.paused.Load())

	_, err = execute(t, cfg, "stop")
	require.NoError(t, err)
	<-stopped

	cfg.ControlToken = "wrong"
	_, err = execute(t, cfg, "status")
	assert.Error(t, err)
}

func TestControlCommands_NoInstance(t *testing.T) {
	_, err := execute(t, testConfig(t), "status")
	assert.ErrorContains(t, err, "not reachable")
}
