package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

var errInvalidURL = errors.New("invalid webhook url")

// payload es el único shape que mandamos: {"content": "..."}.
type payload struct {
	Content string `json:"content"`
}

// Webhook publica el aviso de cola en un webhook de Discord (o cualquier
// endpoint que acepte el mismo JSON). Sin reintentos.
type Webhook struct {
	session *discordgo.Session
}

type Option func(*Webhook)

func WithHTTPClient(h *http.Client) Option {
	return func(w *Webhook) { w.session.Client = h }
}

func NewWebhook(opts ...Option) (*Webhook, error) {
	// sin token: el webhook lleva su propio token en la URL
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discordgo session: %w", err)
	}
	s.Client = &http.Client{Timeout: 10 * time.Second}
	s.MaxRestRetries = 0
	s.ShouldRetryOnRateLimit = false

	w := &Webhook{session: s}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// QueuePopMessage arma el texto; la mención sólo va si hay user id.
func QueuePopMessage(userID, gameMode string) string {
	mention := ""
	if userID != "" {
		mention = "<@" + userID + ">"
	}
	return fmt.Sprintf("%s 🚨 QUEUE POPPED! 🚨\nMode: %s\nAccepting match automatically.", mention, gameMode)
}

// QueuePopped es no-op si no hay URL.
func (w *Webhook) QueuePopped(ctx context.Context, webhookURL, userID, gameMode string) error {
	if webhookURL == "" {
		return nil
	}
	return w.Send(ctx, webhookURL, QueuePopMessage(userID, gameMode))
}

// Send postea content tal cual.
func (w *Webhook) Send(ctx context.Context, webhookURL, content string) error {
	u, err := url.Parse(webhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errInvalidURL
	}

	_, err = w.session.RequestWithBucketID(
		http.MethodPost, webhookURL, payload{Content: content}, bucketID(u),
		discordgo.WithContext(ctx),
	)
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil {
			return fmt.Errorf("webhook status %d: %w", restErr.Response.StatusCode, err)
		}
		return fmt.Errorf("webhook post: %w", err)
	}
	return nil
}

// bucketID agrupa por webhook sin meter el token en el bucket.
func bucketID(u *url.URL) string {
	if id, _, ok := ParseWebhookURL(u.String()); ok {
		return discordgo.EndpointWebhook(id)
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// ParseWebhookURL extrae id y token de https://discord.com/api[/vN]/webhooks/<id>/<token>.
func ParseWebhookURL(raw string) (id, token string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}
	switch u.Host {
	case "discord.com", "discordapp.com", "canary.discord.com", "ptb.discord.com":
	default:
		return "", "", false
	}

	_, rest, found := strings.Cut(u.Path, "/webhooks/")
	if !found || !strings.HasPrefix(u.Path, "/api/") {
		return "", "", false
	}
	id, token, _ = strings.Cut(strings.Trim(rest, "/"), "/")
	if id == "" || token == "" || strings.Contains(token, "/") {
		return "", "", false
	}
	return id, token, true
}
