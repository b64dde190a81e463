package notify

import (
	"context"
	"dailyq/internal/question"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

var sendTime = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func sampleBatch() []question.Question {
	return []question.Question{
		{
			ID:             1,
			Title:          "Two Sum",
			Difficulty:     "Easy",
			Description:    "Find two numbers <adding> up to target.",
			URL:            "https://leetcode.com/problems/two-sum",
			Frequency:      ptr(95.34),
			Rating:         ptr(4.75),
			Likes:          ptr(31234.0),
			AcceptanceRate: ptr(49.1),
			Companies:      ptr("Google,Amazon"),
			AskedByFAANG:   true,
			PriorityScore:  512.3,
		},
		{
			ID:         2,
			Title:      "LRU Cache",
			Difficulty: "Medium",
			URL:        "https://leetcode.com/problems/lru-cache",
		},
	}
}

// fakeNotifier records calls and returns a preset error.
type fakeNotifier struct {
	calls int
	err   error
}

func (fn *fakeNotifier) Notify(_ context.Context, _ []question.Question) error {
	fn.calls++
	return fn.err
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Daily LeetCode - Oct 16, 2026", Subject(sendTime))
}

func TestRender(t *testing.T) {
	body, err := Render(sampleBatch(), sendTime)
	require.NoError(t, err)

	assert.Contains(t, body, "Friday, October 16, 2026")
	assert.Contains(t, body, "Question 1: Two Sum")
	assert.Contains(t, body, "Question 2: LRU Cache")
	assert.Contains(t, body, `class="difficulty easy">EASY`)
	assert.Contains(t, body, `class="difficulty medium">MEDIUM`)
	assert.Equal(t, 1, strings.Count(body, "FAANG FAVORITE"))
	assert.Contains(t, body, "Google, Amazon")
	assert.Contains(t, body, "31,234")
	assert.Contains(t, body, "95.3/100")
	assert.Contains(t, body, "49.1%")
	assert.Contains(t, body, "&lt;adding&gt;", "description must be escaped")
	assert.Contains(t, body, "No description available")
	assert.Contains(t, body, `href="https://leetcode.com/problems/lru-cache"`)
}

func TestCompanySummary(t *testing.T) {
	assert.Equal(t, "N/A", CompanySummary(question.Question{}))

	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	q := question.Question{Companies: ptr(strings.Join(names, ","))}
	assert.Equal(t, "A, B, C, D, E, F, G, H, I, J and 2 more", CompanySummary(q))
}

func TestTruncateDescription(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, TruncateDescription(short))

	long := strings.Repeat("é", maxDescription+5)
	truncated := TruncateDescription(long)
	assert.True(t, strings.HasPrefix(truncated, strings.Repeat("é", maxDescription)))
	assert.True(t, strings.HasSuffix(truncated, truncatedSuffix))

	assert.Equal(t, "No description available", TruncateDescription("  "))
}

func TestMulti_AllSucceed(t *testing.T) {
	a, b := &fakeNotifier{}, &fakeNotifier{}

	err := NewMulti(a, b).Notify(context.Background(), sampleBatch())
	assert.NoError(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestMulti_FailureIsReported(t *testing.T) {
	boom := errors.New("boom")
	a, b := &fakeNotifier{err: boom}, &fakeNotifier{}

	err := NewMulti(a, b).Notify(context.Background(), sampleBatch())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, b.calls, "remaining channels are still attempted")
}

func TestMulti_NoChannels(t *testing.T) {
	assert.Error(t, NewMulti().Notify(context.Background(), nil))
}

func TestNewEmailNotifier_Validation(t *testing.T) {
	_, err := NewEmailNotifier(EmailConfig{From: "a@example.com", To: []string{"b@example.com"}})
	assert.Error(t, err)

	_, err = NewEmailNotifier(EmailConfig{Host: "smtp.example.com", To: []string{"b@example.com"}})
	assert.Error(t, err)

	_, err = NewEmailNotifier(EmailConfig{Host: "smtp.example.com", From: "a@example.com"})
	assert.Error(t, err)

	notifier, err := NewEmailNotifier(EmailConfig{Host: "smtp.example.com", From: "a@example.com", To: []string{"b@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, 465, notifier.config.Port)
	assert.Equal(t, 30*time.Second, notifier.config.Timeout)
}

func TestEmailNotifier_Notify(t *testing.T) {
	notifier, err := NewEmailNotifier(EmailConfig{
		Host: "smtp.example.com",
		From: "sender@example.com",
		To:   []string{"recipient@example.com"},
	})
	require.NoError(t, err)
	notifier.now = func() time.Time { return sendTime }

	var sent *mail.Msg
	notifier.send = func(_ context.Context, msg *mail.Msg) error {
		sent = msg
		return nil
	}

	require.NoError(t, notifier.Notify(context.Background(), sampleBatch()))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"Daily LeetCode - Oct 16, 2026"}, sent.GetGenHeader(mail.HeaderSubject))
}

func TestEmailNotifier_SendFailure(t *testing.T) {
	notifier, err := NewEmailNotifier(EmailConfig{
		Host: "smtp.example.com",
		From: "sender@example.com",
		To:   []string{"recipient@example.com"},
	})
	require.NoError(t, err)

	boom := errors.New("connection refused")
	notifier.send = func(context.Context, *mail.Msg) error { return boom }

	err = notifier.Notify(context.Background(), sampleBatch())
	assert.ErrorIs(t, err, boom)
}

func TestEmailNotifier_InvalidAddress(t *testing.T) {
	notifier, err := NewEmailNotifier(EmailConfig{
		Host: "smtp.example.com",
		From: "not an address",
		To:   []string{"recipient@example.com"},
	})
	require.NoError(t, err)
	notifier.send = func(context.Context, *mail.Msg) error {
		t.Fatal("send must not be called")
		return nil
	}

	assert.Error(t, notifier.Notify(context.Background(), sampleBatch()))
}

// fakeSender captures Telegram messages.
type fakeSender struct {
	messages []tgbotapi.MessageConfig
	err      error
}

func (fs *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		fs.messages = append(fs.messages, msg)
	}
	return tgbotapi.Message{}, fs.err
}

func TestTelegramNotifier_Notify(t *testing.T) {
	sender := &fakeSender{}
	notifier := &TelegramNotifier{api: sender, chatID: 42, now: func() time.Time { return sendTime }}

	require.NoError(t, notifier.Notify(context.Background(), sampleBatch()))
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "<b>Daily LeetCode - Oct 16, 2026</b>")
	assert.Contains(t, msg.Text, `1. <a href="https://leetcode.com/problems/two-sum">Two Sum</a>`)
	assert.Contains(t, msg.Text, "Easy | score 512.3 | FAANG")
	assert.Contains(t, msg.Text, "Asked by: N/A")
}

func TestTelegramNotifier_Errors(t *testing.T) {
	boom := errors.New("flood wait")
	notifier := &TelegramNotifier{api: &fakeSender{err: boom}, chatID: 1, now: time.Now}

	assert.ErrorIs(t, notifier.Notify(context.Background(), sampleBatch()), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, notifier.Notify(ctx, sampleBatch()), context.Canceled)
}

func TestFormatTelegram_Escapes(t *testing.T) {
	text := FormatTelegram([]question.Question{{Title: "a < b & c", Difficulty: "Hard"}}, sendTime)
	assert.Contains(t, text, "a &lt; b &amp; c")
}
