package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/resume-leads/internal/infra/http/middleware"
)

const defaultBaseURL = "https://api.telegram.org"

type Client struct {
	token   string
	chatID  string
	baseURL string
	http    *http.Client
}

// NewClient cria o notificador do Telegram. baseURL vazio usa a API oficial.
func NewClient(token, chatID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:   token,
		chatID:  chatID,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyLead manda o resumo do lead pro chat configurado. Sem token ou
// chat_id configurado não é erro: a notificação é simplesmente pulada.
func (c *Client) NotifyLead(status, email, source string, at time.Time) error {
	if c.token == "" || c.chatID == "" {
		return nil
	}

	text := strings.Join([]string{
		"*Resume lead captured*",
		"- Status: " + status,
		"- Email: " + email,
		"- Source: " + source,
		"- Time: " + at.Format(time.RFC3339),
	}, "\n")

	payload := sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram marshal: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("telegram")
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("telegram")
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram sendMessage status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
