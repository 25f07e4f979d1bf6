package domain

// ReadyCheckState mirrors the "state" field of /lol-matchmaking/v1/ready-check.
type ReadyCheckState string

const (
	StateInvalid          ReadyCheckState = "Invalid"
	StateInProgress       ReadyCheckState = "InProgress"
	StateEveryoneReady    ReadyCheckState = "EveryoneReady"
	StateStrangerNotReady ReadyCheckState = "StrangerNotReady"
	StatePartyNotReady    ReadyCheckState = "PartyNotReady"
	StateError            ReadyCheckState = "Error"
)

// PlayerResponse mirrors the "playerResponse" field.
type PlayerResponse string

const (
	ResponseNone     PlayerResponse = "None"
	ResponseAccepted PlayerResponse = "Accepted"
	ResponseDeclined PlayerResponse = "Declined"
)

// ReadyCheckEvent llega una vez por cambio; no se guarda.
type ReadyCheckEvent struct {
	State          ReadyCheckState `json:"state"`
	PlayerResponse PlayerResponse  `json:"playerResponse"`
}

// Pending reports an in-progress check the local player has not answered yet.
func (e ReadyCheckEvent) Pending() bool {
	return e.State == StateInProgress && e.PlayerResponse == ResponseNone
}

// LobbyInfo se pide on demand en cada ready-check.
type LobbyInfo struct {
	QueueID *int
}
