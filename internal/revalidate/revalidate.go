// Package revalidate tells the statically built frontend that portfolio
// content changed so it can rebuild the affected pages.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// Notifier posts the shared secret to the frontend's revalidation hook.
type Notifier struct {
	url    string
	secret string
	client *http.Client
}

// New returns a Notifier. An empty url yields a Notifier that does nothing.
func New(url, secret string) *Notifier {
	return &Notifier{
		url:    strings.TrimSpace(url),
		secret: secret,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Enabled reports whether a revalidation URL is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// Notify triggers a revalidation in the background. The outcome is logged.
func (n *Notifier) Notify(reason string) {
	if !n.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := n.Trigger(ctx); err != nil {
			slog.Warn("revalidation failed", "reason", reason, "err", err)
			return
		}
		slog.Info("revalidation triggered", "reason", reason)
	}()
}

// Trigger performs one revalidation request synchronously.
func (n *Notifier) Trigger(ctx context.Context) error {
	if !n.Enabled() {
		return nil
	}
	payload, err := json.Marshal(map[string]string{"secret": n.secret})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return nil
}
