package httpcontrol

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client habla con una instancia corriendo (lo usan los subcomandos del CLI).
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(addr, token string) *Client {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{baseURL: strings.TrimRight(base, "/"), token: token, http: &http.Client{Timeout: 5 * time.Second}}
}

func (c *Client) Status(ctx context.Context) (StatusResponse, error) {
	return c.do(ctx, http.MethodGet, "/status")
}
func (c *Client) Pause(ctx context.Context) (StatusResponse, error) {
	return c.do(ctx, http.MethodPost, "/pause")
}
func (c *Client) Resume(ctx context.Context) (StatusResponse, error) {
	return c.do(ctx, http.MethodPost, "/resume")
}
func (c *Client) Toggle(ctx context.Context) (StatusResponse, error) {
	return c.do(ctx, http.MethodPost, "/toggle")
}

func (c *Client) Stop(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/stop")
	return err
}

func (c *Client) do(ctx context.Context, method, path string) (StatusResponse, error) {
	var out StatusResponse
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return out, err
	}
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("queuebot not reachable at %s: %w", c.baseURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return out, fmt.Errorf("control api status %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}
	if res.StatusCode == http.StatusAccepted {
		return out, nil
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode status: %w", err)
	}
	return out, nil
}
