// Package telegram posts messages to a Telegram chat or channel through the
// Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNotConfigured = errors.New("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set")

type Bot struct {
	token    string
	chatID   string
	endpoint string
	client   *http.Client

	mu  sync.Mutex
	api *tgbotapi.BotAPI
}

func NewBot(token, chatID string, timeout time.Duration) *Bot {
	return &Bot{
		token:    token,
		chatID:   chatID,
		endpoint: tgbotapi.APIEndpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithEndpoint points the bot at another Bot API server. The endpoint is a
// format string taking the token and the method name.
func (b *Bot) WithEndpoint(endpoint string) *Bot {
	b.endpoint = endpoint
	return b
}

func (b *Bot) Configured() bool {
	return b != nil && b.token != "" && b.chatID != ""
}

// Send posts text to the configured chat with Markdown formatting. The Bot API
// client is created on first use, so an unconfigured bot never touches the
// network.
func (b *Bot) Send(ctx context.Context, text string) error {
	if !b.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	api, err := b.botAPI()
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	msg, err := b.newMessage(text)
	if err != nil {
		return err
	}
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := api.Send(msg); err != nil {
		log.Printf("Failed to send telegram message: %v", err)
		return err
	}
	return nil
}

func (b *Bot) botAPI() (*tgbotapi.BotAPI, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.api != nil {
		return b.api, nil
	}
	api, err := tgbotapi.NewBotAPIWithClient(b.token, b.endpoint, b.client)
	if err != nil {
		return nil, err
	}
	b.api = api
	return api, nil
}

// newMessage addresses a numeric chat id directly and anything else, such as
// "@channel", as a channel username.
func (b *Bot) newMessage(text string) (tgbotapi.MessageConfig, error) {
	chat := strings.TrimSpace(b.chatID)
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text), nil
	}
	if !strings.HasPrefix(chat, "@") {
		return tgbotapi.MessageConfig{}, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", chat)
	}
	return tgbotapi.NewMessageToChannel(chat, text), nil
}
