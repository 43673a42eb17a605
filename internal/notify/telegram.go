package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSink sends reminders to Telegram chats; group ids are chat
// ids as decimal strings.
type TelegramSink struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSink(token string) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramSink{bot: bot}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Deliver(_ context.Context, groupID string, payload Payload) error {
	chatID, err := strconv.ParseInt(groupID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram chat id %q is not numeric: %w", groupID, err)
	}

	msg := tgbotapi.NewMessage(chatID, RenderText(payload))
	msg.DisableWebPagePreview = true
	_, err = s.bot.Send(msg)
	return err
}
