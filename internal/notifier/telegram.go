package notifier

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// Telegram sends messages to a fixed chat via the Telegram Bot API.
type Telegram struct {
	bot  *tele.Bot
	chat tele.ChatID
}

// NewTelegram creates a send-only Telegram notifier.
func NewTelegram(botToken, chatID string) (*Telegram, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat_id %q: %w", chatID, err)
	}
	b, err := tele.NewBot(tele.Settings{Token: botToken})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{bot: b, chat: tele.ChatID(id)}, nil
}

// Send delivers one HTML-formatted message to the configured chat.
func (t *Telegram) Send(text string) error {
	if _, err := t.bot.Send(t.chat, text, tele.ModeHTML); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
