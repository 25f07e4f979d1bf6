package lcu

import (
	"log/slog"
	"net/http"
	"time"
)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

type ConnectorOption func(*Connector)

func WithClientOptions(opts ...Option) ConnectorOption {
	return func(c *Connector) { c.clientOpts = append(c.clientOpts, opts...) }
}

func WithLogger(l *slog.Logger) ConnectorOption {
	return func(c *Connector) { c.log = l }
}

// WithPolling ajusta el backoff mientras se espera el lockfile.
func WithPolling(min, max time.Duration) ConnectorOption {
	return func(c *Connector) { c.minPoll, c.maxPoll = min, max }
}

func WithReconnectDelay(d time.Duration) ConnectorOption {
	return func(c *Connector) { c.reconnectDelay = d }
}
