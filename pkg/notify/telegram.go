package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// telegramMaxLength is the Bot API limit for one message
const telegramMaxLength = 4096

// TelegramRelay posts messages to a chat through the Telegram Bot API
type TelegramRelay struct {
	apiURL   string
	botToken string
	chatID   string
	client   *http.Client
}

// TelegramConfig holds configuration for the Telegram relay
type TelegramConfig struct {
	APIURL   string // defaults to https://api.telegram.org
	BotToken string
	ChatID   string
	Timeout  time.Duration
}

// NewTelegramRelay creates a new Telegram relay
func NewTelegramRelay(config TelegramConfig) *TelegramRelay {
	apiURL := strings.TrimRight(config.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramRelay{
		apiURL:   apiURL,
		botToken: config.BotToken,
		chatID:   config.ChatID,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendMessageRequest is the sendMessage request body
type SendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// SendMessageResponse is the Bot API envelope
type SendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
}

// Name implements Notifier
func (t *TelegramRelay) Name() string {
	return "telegram"
}

// Configured reports whether the relay has credentials
func (t *TelegramRelay) Configured() bool {
	return t.botToken != "" && t.chatID != ""
}

// Notify sends msg.HTML to the configured chat
func (t *TelegramRelay) Notify(ctx context.Context, msg Message) error {
	if !t.Configured() {
		return ErrNotConfigured
	}

	text := truncateMessage(msg.HTML, telegramMaxLength)

	jsonData, err := json.Marshal(SendMessageRequest{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// The URL embeds the bot token; never let it reach the logs
		return fmt.Errorf("failed to send telegram request: %s", redact(err.Error(), t.botToken))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var apiResp SendMessageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("failed to parse telegram response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !apiResp.OK {
		return fmt.Errorf("telegram API error %d: %s", apiResp.ErrorCode, apiResp.Description)
	}

	return nil
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "***")
}

// truncateMessage cuts text to limit runes. Summaries keep every tag on one
// line, so the cut falls on the last line break when there is one.
func truncateMessage(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := runes[:limit-1]
	for i := len(cut) - 1; i > 0; i-- {
		if cut[i] == '\n' {
			cut = cut[:i+1]
			break
		}
	}
	return string(cut) + "…"
}
