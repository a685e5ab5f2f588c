package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Sender delivers a formatted message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier creates a notifier with optional proxy support.
// endpoint is the Bot API URL pattern; empty means tgbotapi.APIEndpoint.
func NewTelegramNotifier(botToken string, chatID int64, proxyURL, endpoint string) (*TelegramNotifier, error) {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{
		Timeout:   40 * time.Second, // above the long-poll timeout
		Transport: transport,
	}
	bot, err := tgbotapi.NewBotAPIWithClient(botToken, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	log.Info().Str("bot", bot.Self.UserName).Msg("telegram bot authorized")
	return &TelegramNotifier{Bot: bot, ChatID: chatID}, nil
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(_ context.Context, text string) error {
	return t.sendTo(t.ChatID, text)
}

func (t *TelegramNotifier) sendTo(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.Bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func SendWithRetry(ctx context.Context, s Sender, text string, maxRetries int) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := s.Send(ctx, text)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Int("max", maxRetries+1).Msg("telegram send failed")
		}
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("all %d attempts failed: %w", attempt, err)
	}
	return nil
}
