package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

// PolicyService edita la configuración persistida (reemplaza el editor gráfico).
type PolicyService struct {
	repo SettingsRepo
}

func NewPolicyService(r SettingsRepo) *PolicyService { return &PolicyService{repo: r} }

// PolicyPatch: nil = no tocar.
type PolicyPatch struct {
	WebhookURL           *string
	UserID               *string
	DesktopNotifications *bool
	AllowedQueueIDs      *[]int
}

func (p PolicyPatch) Empty() bool {
	return p.WebhookURL == nil && p.UserID == nil && p.DesktopNotifications == nil && p.AllowedQueueIDs == nil
}

// Describe renders a snapshot the way the status panel shows it.
func Describe(st domain.Settings) string {
	webhook := "Disabled"
	if st.WebhookURL != "" {
		webhook = "Configured"
	}
	user := st.MentionUserID
	if user == "" {
		user = "None"
	}
	queues := "All"
	if !st.AcceptsAll() {
		names := make([]string, 0)
		for _, id := range st.AllowedQueueIDs() {
			names = append(names, domain.QueueName(id))
		}
		queues = strings.Join(names, ", ")
	}
	return fmt.Sprintf(
		"Webhook: %s\nUser ID: %s\nDesktop notifications: %v\nAllowed queues: %s",
		webhook, user, st.DesktopNotifications, queues,
	)
}

func (s *PolicyService) Update(ctx context.Context, patch PolicyPatch) (string, error) {
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}

	webhook := cur.WebhookURL
	user := cur.MentionUserID
	desktop := cur.DesktopNotifications
	allowed := cur.AllowedQueueIDs()

	if patch.WebhookURL != nil {
		webhook = strings.TrimSpace(*patch.WebhookURL)
	}
	if patch.UserID != nil {
		user = strings.TrimSpace(*patch.UserID)
	}
	if patch.DesktopNotifications != nil {
		desktop = *patch.DesktopNotifications
	}
	if patch.AllowedQueueIDs != nil {
		allowed = *patch.AllowedQueueIDs
	}

	next := domain.NewSettings(webhook, user, desktop, allowed)
	if err := s.repo.Upsert(ctx, next); err != nil {
		return "", err
	}
	return Describe(next), nil
}
