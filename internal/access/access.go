// Package access gates the application behind a remote approval
// service. The core treats it as an opaque collaborator: a token goes
// in, an approved e-mail comes out, anything else is a denial.
package access

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDenied is returned when the token is missing, invalid, expired,
// or not approved.
var ErrDenied = errors.New("access denied")

// Grant is the identity released by an approved token.
type Grant struct {
	Email string
}

// Validator checks an access token against the approval service.
type Validator interface {
	Validate(ctx context.Context, token string) (Grant, error)
}

// AllowAll approves every request without a token. Used for open
// deployments and in tests.
type AllowAll struct{}

func (AllowAll) Validate(context.Context, string) (Grant, error) {
	return Grant{}, nil
}

// WebhookValidator validates tokens against a remote webhook, the
// approval service keeping the invitation sheet.
type WebhookValidator struct {
	URL    string
	Secret string
	Client *http.Client
}

// NewWebhookValidator creates a validator with a bounded timeout.
func NewWebhookValidator(url, secret string) *WebhookValidator {
	return &WebhookValidator{
		URL:    url,
		Secret: secret,
		Client: &http.Client{Timeout: 12 * time.Second},
	}
}

type validateRequest struct {
	Action string `json:"action"`
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

type validateResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
	Email  string `json:"email"`
}

// Validate posts the token to the webhook. Only an explicit
// {ok:true, status:"approved"} response grants access; every failure
// mode, transport errors included, denies.
func (v *WebhookValidator) Validate(ctx context.Context, token string) (Grant, error) {
	if token == "" {
		return Grant{}, ErrDenied
	}

	body, err := json.Marshal(validateRequest{Action: "validate_token", Token: token, Secret: v.Secret})
	if err != nil {
		return Grant{}, fmt.Errorf("marshal validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, bytes.NewReader(body))
	if err != nil {
		return Grant{}, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.Client.Do(req)
	if err != nil {
		return Grant{}, fmt.Errorf("call access webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Grant{}, fmt.Errorf("access webhook returned %d: %w", resp.StatusCode, ErrDenied)
	}

	var vr validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return Grant{}, fmt.Errorf("decode access webhook response: %w", err)
	}
	if !vr.OK || vr.Status != "approved" {
		return Grant{}, ErrDenied
	}
	return Grant{Email: vr.Email}, nil
}
