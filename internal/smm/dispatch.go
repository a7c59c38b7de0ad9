package smm

import (
	"context"
	"log"

	"github.com/ObiAU/contentagents/internal/config"
	"github.com/ObiAU/contentagents/internal/models"
)

// Dispatcher delivers a post to one platform and reports whether it was
// accepted. Implementations never panic and skip quietly when unconfigured.
type Dispatcher interface {
	Platform() string
	Dispatch(ctx context.Context, message string) bool
}

// MessageSender is the part of the Telegram bot the pipeline needs.
type MessageSender interface {
	Send(ctx context.Context, text string) error
}

type TelegramDispatcher struct {
	enabled bool
	sender  MessageSender
}

func NewTelegramDispatcher(features config.Features, sender MessageSender) *TelegramDispatcher {
	return &TelegramDispatcher{enabled: features.TelegramEnabled, sender: sender}
}

func (d *TelegramDispatcher) Platform() string { return models.PlatformTelegram }

func (d *TelegramDispatcher) Dispatch(ctx context.Context, message string) bool {
	if !d.enabled || d.sender == nil {
		log.Println("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set - skipping Telegram")
		return false
	}
	if err := d.sender.Send(ctx, message); err != nil {
		log.Printf("Telegram error: %v", err)
		return false
	}
	return true
}

// stubDispatcher covers platforms whose posting API is not wired yet. It
// reports failure either way.
type stubDispatcher struct {
	platform string
	enabled  bool
	envVar   string
}

func NewFacebookDispatcher(features config.Features) Dispatcher {
	return &stubDispatcher{platform: models.PlatformFacebook, enabled: features.FacebookEnabled, envVar: "FB_PAGE_TOKEN"}
}

func NewTwitterDispatcher(features config.Features) Dispatcher {
	return &stubDispatcher{platform: models.PlatformTwitter, enabled: features.TwitterEnabled, envVar: "X_API_TOKEN"}
}

func (d *stubDispatcher) Platform() string { return d.platform }

func (d *stubDispatcher) Dispatch(_ context.Context, _ string) bool {
	if !d.enabled {
		log.Printf("%s not set - skipping %s", d.envVar, d.platform)
		return false
	}
	log.Printf("%s posting not implemented yet", d.platform)
	return false
}
