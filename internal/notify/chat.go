package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shop-service/internal/config"
)

const slackPostMessageURL = "https://slack.com/api/chat.postMessage"

// ChatTransport delivers one chat payload. Implementations differ only in how
// operators configured Slack access, never in the payload shape.
type ChatTransport interface {
	Send(ctx context.Context, msg Message) error
}

// NewChatTransport picks the transport by configuration: webhook URL first,
// bot token + channel as fallback, nil when neither is set.
func NewChatTransport(cfg config.Slack) ChatTransport {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	if cfg.WebhookURL != "" {
		return &WebhookTransport{URL: cfg.WebhookURL, Client: httpClient}
	}
	if cfg.BotToken != "" {
		return &BotTransport{Token: cfg.BotToken, Channel: cfg.Channel, Client: httpClient}
	}
	return nil
}

type WebhookTransport struct {
	URL    string
	Client *http.Client
}

func (t *WebhookTransport) Send(ctx context.Context, msg Message) error {
	msg.Channel = ""
	return post(ctx, t.Client, t.URL, "", msg, false)
}

type BotTransport struct {
	Token   string
	Channel string
	Client  *http.Client
}

func (t *BotTransport) Send(ctx context.Context, msg Message) error {
	msg.Channel = t.Channel
	return post(ctx, t.Client, slackPostMessageURL, t.Token, msg, true)
}

func post(ctx context.Context, client *http.Client, url, bearer string, msg Message, checkOK bool) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal chat message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	// chat.postMessage returns 200 with ok=false on API-level failures.
	if checkOK {
		var apiResp struct {
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
			return fmt.Errorf("decode chat response: %w", err)
		}
		if !apiResp.OK {
			return fmt.Errorf("chat API error: %s", apiResp.Error)
		}
	}
	return nil
}
