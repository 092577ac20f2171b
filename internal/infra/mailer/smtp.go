package mailer

import (
	"context"

	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTP) Send(_ context.Context, msg mailing.Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	return s.dialer.DialAndSend(m)
}

// Log writes emails to the logger instead of sending them. Used when no
// SMTP host is configured.
type Log struct{}

func (Log) Send(ctx context.Context, msg mailing.Message) error {
	logger.FromContext(ctx).Info("email (not sent, SMTP disabled)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
