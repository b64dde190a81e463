package notify

import (
	"context"
	"dailyq/internal/question"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageSender is the part of tgbotapi.BotAPI used for delivery.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts the batch as a single HTML message to a chat.
type TelegramNotifier struct {
	api    messageSender
	chatID int64
	now    func() time.Time
}

// Notify sends the batch summary. The context is accepted for interface
// compatibility; the bot API client has its own timeouts.
func (tn *TelegramNotifier) Notify(ctx context.Context, batch []question.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(tn.chatID, FormatTelegram(batch, tn.now()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := tn.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatTelegram renders a compact HTML digest for Telegram.
func FormatTelegram(batch []question.Question, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(Subject(now)))
	for i, q := range batch {
		fmt.Fprintf(&b, "\n%d. <a href=\"%s\">%s</a>\n", i+1, html.EscapeString(q.URL), html.EscapeString(q.Title))
		fmt.Fprintf(&b, "%s | score %.1f", html.EscapeString(q.Difficulty), q.PriorityScore)
		if q.AskedByFAANG {
			b.WriteString(" | FAANG")
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Asked by: %s\n", html.EscapeString(CompanySummary(q)))
	}
	return b.String()
}

// NewTelegramNotifier connects to the bot API with token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID, now: time.Now}, nil
}
