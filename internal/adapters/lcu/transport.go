package lcu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client habla con la API REST local del cliente (League Client Update).
type Client struct {
	creds   Credentials
	http    *http.Client
	baseURL string
}

// insecureTransport: el LCU sirve un certificado self-signed en 127.0.0.1.
func insecureTransport() *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // loopback only
	}
}

func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		http:    &http.Client{Timeout: 10 * time.Second, Transport: insecureTransport()},
		baseURL: creds.BaseURL(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// doJSON: arma la URL, agrega basic auth, mapea 404 y status no-2xx.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("lcu encode: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("lcu request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.creds.basicAuth())
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("lcu http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
