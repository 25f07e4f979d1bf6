package lcu

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

const (
	pathLobby            = "/lol-lobby/v2/lobby"
	pathReadyCheck       = "/lol-matchmaking/v1/ready-check"
	pathReadyCheckAccept = "/lol-matchmaking/v1/ready-check/accept"
)

// Lobby lee el lobby actual; el queueId puede venir vacío.
func (c *Client) Lobby(ctx context.Context) (domain.LobbyInfo, error) {
	var dto lobbyDTO
	if err := c.doJSON(ctx, http.MethodGet, pathLobby, nil, &dto); err != nil {
		return domain.LobbyInfo{}, fmt.Errorf("get lobby: %w", err)
	}
	return domain.LobbyInfo{QueueID: dto.GameConfig.QueueID}, nil
}

// AcceptReadyCheck: POST sin payload, éxito = 2xx.
func (c *Client) AcceptReadyCheck(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, pathReadyCheckAccept, nil, nil); err != nil {
		return fmt.Errorf("accept ready-check: %w", err)
	}
	return nil
}

// ReadyCheck devuelve el estado actual del ready-check (404 si no hay ninguno).
func (c *Client) ReadyCheck(ctx context.Context) (domain.ReadyCheckEvent, error) {
	var dto readyCheckDTO
	if err := c.doJSON(ctx, http.MethodGet, pathReadyCheck, nil, &dto); err != nil {
		return domain.ReadyCheckEvent{}, fmt.Errorf("get ready-check: %w", err)
	}
	return dto.event(), nil
}

func (d readyCheckDTO) event() domain.ReadyCheckEvent {
	return domain.ReadyCheckEvent{
		State:          domain.ReadyCheckState(d.State),
		PlayerResponse: domain.PlayerResponse(d.PlayerResponse),
	}
}
