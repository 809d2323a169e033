package notifier

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	// ErrSendFailed возвращается, когда сообщение не удалось доставить
	ErrSendFailed = errors.New("notifier: failed to send message")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TelegramNotifier отправляет уведомления агентам через Telegram Bot API
// Доставка best-effort: вызывающая сторона логирует и проглатывает ошибки,
// смена статуса карточки не откатывается из-за недоставленного сообщения
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	log Logger
}

// NewTelegramNotifier создает нотификатор с указанным токеном бота
func NewTelegramNotifier(botToken string, log Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("notifier: failed to initialize bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, log: log}, nil
}

// Notify отправляет текстовое сообщение в чат агента
func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, message string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	msg := tgbotapi.NewMessage(chatID, message)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: chat=%d: %v", ErrSendFailed, chatID, err)
	}

	n.log.Info("Notify: message delivered to chat=%d", chatID)
	return nil
}

// NoopNotifier заглушка, используемая при выключенных уведомлениях
type NoopNotifier struct{}

// Notify ничего не делает
func (NoopNotifier) Notify(ctx context.Context, chatID int64, message string) error {
	return nil
}
