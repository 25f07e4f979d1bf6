package domain

import "sort"

// Settings is the immutable configuration snapshot handed to the controller.
// A reload builds a new value; nobody mutates one in place.
type Settings struct {
	WebhookURL           string
	MentionUserID        string
	DesktopNotifications bool
	allowed              map[int]struct{}
}

// NewSettings copia los ids para que el snapshot no comparta memoria con el caller.
func NewSettings(webhookURL, userID string, desktop bool, allowedQueueIDs []int) Settings {
	s := Settings{
		WebhookURL:           webhookURL,
		MentionUserID:        userID,
		DesktopNotifications: desktop,
	}
	if len(allowedQueueIDs) > 0 {
		s.allowed = make(map[int]struct{}, len(allowedQueueIDs))
		for _, id := range allowedQueueIDs {
			s.allowed[id] = struct{}{}
		}
	}
	return s
}

// AcceptsAll is true when the allow-list is empty.
func (s Settings) AcceptsAll() bool { return len(s.allowed) == 0 }

// Allows aplica el filtro: lista vacía acepta todo (incluso id desconocido);
// con lista, un id nil nunca pasa.
func (s Settings) Allows(queueID *int) bool {
	if s.AcceptsAll() {
		return true
	}
	if queueID == nil {
		return false
	}
	_, ok := s.allowed[*queueID]
	return ok
}

// AllowedQueueIDs: primero los del catálogo (por id), después los desconocidos.
func (s Settings) AllowedQueueIDs() []int {
	out := make([]int, 0, len(s.allowed))
	for _, q := range Queues() {
		if _, ok := s.allowed[q.ID]; ok {
			out = append(out, q.ID)
		}
	}
	var extra []int
	for id := range s.allowed {
		if !KnownQueue(id) {
			extra = append(extra, id)
		}
	}
	sort.Ints(extra)
	return append(out, extra...)
}
