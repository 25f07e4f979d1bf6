package service

import (
	"context"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// Lo implementa internal/adapters/lcu.Client
type ClientAPI interface {
	Lobby(ctx context.Context) (domain.LobbyInfo, error)
	AcceptReadyCheck(ctx context.Context) error
}

// Lo implementa internal/adapters/lcu.Connector
type Transport interface {
	Run(ctx context.Context, l Listener) error
	Stop()
}

// Listener recibe las señales del transporte. Todas las llamadas llegan
// desde la misma goroutine, en orden de entrega.
type Listener interface {
	Connected(ctx context.Context, api ClientAPI)
	Disconnected(ctx context.Context)
	ReadyCheckChanged(ctx context.Context, api ClientAPI, ev domain.ReadyCheckEvent)
}

// Lo implementa internal/adapters/desktop.Notifier
type DesktopNotifier interface {
	QueuePopped(ctx context.Context, gameMode string) error
}

// Lo implementa internal/adapters/discord.Webhook
type WebhookPinger interface {
	QueuePopped(ctx context.Context, webhookURL, userID, gameMode string) error
}

// Lo implementa internal/infra/storage.SettingsRepo
type SettingsRepo interface {
	Get(ctx context.Context) (domain.Settings, error)
	Upsert(ctx context.Context, s domain.Settings) error
}
