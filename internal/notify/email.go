package notify

import (
	"context"
	"dailyq/internal/question"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	// SSL selects implicit TLS (port 465 style); otherwise STARTTLS is required.
	SSL     bool
	Timeout time.Duration
}

// EmailNotifier sends the batch as an HTML e-mail.
type EmailNotifier struct {
	config EmailConfig
	now    func() time.Time
	// send delivers a composed message; replaced in tests.
	send func(ctx context.Context, msg *mail.Msg) error
}

// Notify renders batch and sends it to every configured recipient.
func (en *EmailNotifier) Notify(ctx context.Context, batch []question.Question) error {
	now := en.now()
	body, err := Render(batch, now)
	if err != nil {
		return err
	}

	msg, err := en.message(Subject(now), body)
	if err != nil {
		return err
	}

	slog.Info("Sending email", "host", en.config.Host, "port", en.config.Port, "recipients", len(en.config.To))
	if err := en.send(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	slog.Info("Email sent", "recipients", en.config.To)
	return nil
}

func (en *EmailNotifier) message(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(en.config.From); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(en.config.To...); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func (en *EmailNotifier) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	options := []mail.Option{
		mail.WithPort(en.config.Port),
		mail.WithTimeout(en.config.Timeout),
	}
	if en.config.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(en.config.Username),
			mail.WithPassword(en.config.Password),
		)
	}
	if en.config.SSL {
		options = append(options, mail.WithSSL())
	} else {
		options = append(options, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(en.config.Host, options...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// NewEmailNotifier creates an SMTP notifier.
// Host, From and at least one recipient are required.
func NewEmailNotifier(config EmailConfig) (*EmailNotifier, error) {
	if config.Host == "" {
		return nil, errors.New("email: host must be specified")
	}
	if config.From == "" {
		return nil, errors.New("email: sender must be specified")
	}
	if len(config.To) == 0 {
		return nil, errors.New("email: at least one recipient must be specified")
	}
	if config.Port == 0 {
		config.Port = 465
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	notifier := &EmailNotifier{config: config, now: time.Now}
	notifier.send = notifier.dialAndSend
	return notifier, nil
}
