package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/resume-leads/internal/infra/http/middleware"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type Client struct {
	secret    string
	verifyURL string
	http      *http.Client
}

// NewClient cria o cliente do siteverify. verifyURL vazio usa o endpoint
// oficial da Cloudflare; os testes injetam um servidor local.
func NewClient(secret, verifyURL string) *Client {
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}
	return &Client{
		secret:    secret,
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled indica se existe secret configurado. Sem secret o handler nem
// tenta verificar e responde bot_check_failed direto.
func (c *Client) Enabled() bool {
	return c.secret != ""
}

// Verify manda {secret, response, remoteip} form-encoded e lê {success}.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	form.Set("remoteip", remoteIP)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("turnstile")
		return false, fmt.Errorf("turnstile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("turnstile")
		return false, fmt.Errorf("turnstile siteverify status %d", resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("turnstile decode: %w", err)
	}

	return result.Success, nil
}
