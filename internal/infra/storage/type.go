package storage

import "github.com/jose-valero/lcu-queue-bot/internal/domain"

// SettingsFile es la forma en disco de config.json / config.yaml.
type SettingsFile struct {
	WebhookURL           string `json:"webhook_url" yaml:"webhook_url"`
	UserID               string `json:"user_id" yaml:"user_id"`
	DesktopNotifications bool   `json:"desktop_notifications" yaml:"desktop_notifications"`
	AllowedQueueIDs      []int  `json:"allowed_queue_ids" yaml:"allowed_queue_ids"`
}

// DefaultSettings: sin webhook, notificaciones de escritorio activas, todas las colas.
func DefaultSettings() SettingsFile {
	return SettingsFile{
		DesktopNotifications: true,
		AllowedQueueIDs:      []int{},
	}
}

// Snapshot arma el valor inmutable que consume el controller.
func (f SettingsFile) Snapshot() domain.Settings {
	return domain.NewSettings(f.WebhookURL, f.UserID, f.DesktopNotifications, f.AllowedQueueIDs)
}

func FromSnapshot(s domain.Settings) SettingsFile {
	ids := s.AllowedQueueIDs()
	if ids == nil {
		ids = []int{}
	}
	return SettingsFile{
		WebhookURL:           s.WebhookURL,
		UserID:               s.MentionUserID,
		DesktopNotifications: s.DesktopNotifications,
		AllowedQueueIDs:      ids,
	}
}
