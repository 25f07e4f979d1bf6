package service

import (
	"context"
	"log/slog"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// UnknownMode se usa cuando no se pudo leer el lobby.
const UnknownMode = "Unknown Mode"

// NoQueueName: el lobby respondió pero sin gameConfig.queueId.
const NoQueueName = "Unknown (ID: None)"

type QueueService struct {
	log *slog.Logger
}

func NewQueueService(log *slog.Logger) *QueueService {
	return &QueueService{log: log}
}

// Resolve hace un round trip al lobby. Un fallo nunca corta el pipeline:
// devuelve (UnknownMode, nil) y sigue. Un lobby sin cola da (NoQueueName, nil).
func (s *QueueService) Resolve(ctx context.Context, api ClientAPI) (string, *int) {
	lobby, err := api.Lobby(ctx)
	if err != nil {
		s.log.Warn("could not retrieve queue info", "err", err)
		return UnknownMode, nil
	}
	if lobby.QueueID == nil {
		return NoQueueName, nil
	}
	id := *lobby.QueueID
	return domain.QueueName(id), &id
}

// Catalog lista las colas conocidas marcando las permitidas por el snapshot.
func (s *QueueService) Catalog(st domain.Settings) []CatalogEntry {
	qs := domain.Queues()
	out := make([]CatalogEntry, 0, len(qs))
	for _, q := range qs {
		id := q.ID
		out = append(out, CatalogEntry{
			QueueDescriptor: q,
			Allowed:         !st.AcceptsAll() && st.Allows(&id),
		})
	}
	return out
}

type CatalogEntry struct {
	domain.QueueDescriptor
	Allowed bool
}
