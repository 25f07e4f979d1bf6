package lcu

// --- Lobby ---
type lobbyDTO struct {
	GameConfig struct {
		QueueID *int `json:"queueId"`
	} `json:"gameConfig"`
}

// --- WAMP ---
const (
	wampSubscribe = 5
	wampEvent     = 8

	readyCheckTopic = "OnJsonApiEvent_lol-matchmaking_v1_ready-check"
)

type jsonAPIEvent struct {
	Data      *readyCheckDTO `json:"data"`
	EventType string         `json:"eventType"`
	URI       string         `json:"uri"`
}

type readyCheckDTO struct {
	State          string `json:"state"`
	PlayerResponse string `json:"playerResponse"`
}
