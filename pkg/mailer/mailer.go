package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"univer-cinema/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hello {{.Username}},</p>
<p>We received a request to reset your password. Use the link below within 24 hours:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request this, you can ignore this email.</p>`))

type resetData struct {
	Username string
	Link     string
}

// New returns an SMTP mailer, or a mailer that only logs when no SMTP host is configured.
func New(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	log = log.With(zap.String("component", "mailer"))
	if cfg.Host == "" {
		return &logMailer{log: log}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, to, username, link string) error {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, resetData{Username: username, Link: link}); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset")
	msg.SetBody("text/html", body.String())

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send reset email", zap.Error(err), zap.String("to", to))
		return fmt.Errorf("send reset email: %w", err)
	}

	m.log.Info("Reset email sent", zap.String("to", to))
	return nil
}

type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) SendPasswordReset(_ context.Context, to, username, link string) error {
	m.log.Info("SMTP not configured, reset link logged instead",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("link", link),
	)
	return nil
}
