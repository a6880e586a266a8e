// Package notify reports application events to a side channel. The
// notifier is injectable and strictly fire-and-forget: a failing or
// slow endpoint must never block or fail the user-visible flow.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Notifier receives application events after they have succeeded.
type Notifier interface {
	Event(ctx context.Context, email, event, page string, payload map[string]any)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Event(context.Context, string, string, string, map[string]any) {}

// Webhook posts events to a remote endpoint in the background.
type Webhook struct {
	URL    string
	Secret string
	Client *http.Client
}

// NewWebhook creates a webhook notifier with a short timeout; event
// delivery is best effort.
func NewWebhook(url, secret string) *Webhook {
	return &Webhook{
		URL:    url,
		Secret: secret,
		Client: &http.Client{Timeout: 6 * time.Second},
	}
}

type eventBody struct {
	Action  string         `json:"action"`
	Secret  string         `json:"secret"`
	Email   string         `json:"email"`
	Event   string         `json:"event"`
	Page    string         `json:"page"`
	Payload map[string]any `json:"payload"`
}

// Event delivers one event asynchronously. Failures are logged and
// swallowed. The caller's context carries over for its values only:
// delivery outlives the request, so its cancellation is detached.
func (w *Webhook) Event(ctx context.Context, email, event, page string, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	body := eventBody{
		Action:  "event",
		Secret:  w.Secret,
		Email:   email,
		Event:   event,
		Page:    page,
		Payload: payload,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.Client.Timeout)
		defer cancel()

		data, err := json.Marshal(body)
		if err != nil {
			slog.Warn("notify: marshal event", "event", event, "error", err)
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(data))
		if err != nil {
			slog.Warn("notify: build request", "event", event, "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.Client.Do(req)
		if err != nil {
			slog.Warn("notify: deliver event", "event", event, "error", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			slog.Warn("notify: endpoint rejected event", "event", event, "status", resp.StatusCode)
		}
	}()
}
