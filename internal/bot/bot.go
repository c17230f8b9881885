// Package bot runs the Telegram bot whose only job is opening the Mini
// App web view.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot answers commands with a keyboard that opens the web app.
type Bot struct {
	api       *tgbotapi.BotAPI
	webAppURL string
	log       *zap.Logger
}

func New(token, webAppURL string, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	return &Bot{api: api, webAppURL: webAppURL, log: log}, nil
}

// Start long-polls updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("bot started", zap.String("username", b.api.Self.UserName))

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := b.api.GetUpdatesChan(updateCfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, startGreeting(msg.From), true)
	case "help":
		text := "Доступные команды:\n" +
			"/start - Запустить бота и показать кнопку веб-приложения\n" +
			"/help - Показать справку"
		b.reply(msg.Chat.ID, text, false)
	default:
		if msg.Command() != "" || strings.TrimSpace(msg.Text) == "" {
			return
		}
		b.reply(msg.Chat.ID, "Используйте кнопку ниже для доступа к обучающей платформе:", true)
	}
}

// startGreeting addresses the user by first name when one is available.
// From is nil for channel posts and some service updates.
func startGreeting(from *tgbotapi.User) string {
	name := "пользователь"
	if from != nil && from.FirstName != "" {
		name = from.FirstName
	}
	return fmt.Sprintf(
		"Привет, %s! 👋\n\nЯ бот обучающей платформы. Нажми на кнопку ниже, чтобы открыть учебные материалы.",
		name,
	)
}

func (b *Bot) reply(chatID int64, text string, withKeyboard bool) {
	out := tgbotapi.NewMessage(chatID, text)
	if withKeyboard {
		out.ReplyMarkup = webAppKeyboard(b.webAppURL)
	}
	if _, err := b.api.Send(out); err != nil {
		b.log.Warn("send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

// The web_app button arrived in Bot API 6.0, after the client library's
// last release, so the reply markup is marshaled from local types instead
// of tgbotapi ones. MessageConfig.ReplyMarkup takes any JSON-marshalable
// value.
type webAppInfo struct {
	URL string `json:"url"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type replyKeyboardMarkup struct {
	Keyboard       [][]webAppButton `json:"keyboard"`
	ResizeKeyboard bool             `json:"resize_keyboard"`
}

func webAppKeyboard(url string) replyKeyboardMarkup {
	return replyKeyboardMarkup{
		Keyboard: [][]webAppButton{{
			{Text: "🌐 Открыть веб-приложение", WebApp: webAppInfo{URL: url}},
		}},
		ResizeKeyboard: true,
	}
}
