package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cheapticket/config"
	"cheapticket/infras/otel"
	"cheapticket/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

var ErrNoRecipient = errors.New("mail requires at least one recipient")

// Mailer sends plain text mail.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// sender abstracts the SMTP dial so the console fallback can stand in for it.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailImpl struct {
	from   string
	sender sender
	otel   otel.Otel
}

// consoleSender writes the message to the log instead of an SMTP server.
type consoleSender struct{}

func (consoleSender) DialAndSend(messages ...*gomail.Message) error {
	for _, m := range messages {
		var body strings.Builder
		if _, err := m.WriteTo(&body); err != nil {
			return fmt.Errorf("render mail: %w", err)
		}

		log.Info().
			Strs("to", m.GetHeader("To")).
			Strs("subject", m.GetHeader("Subject")).
			Msg(body.String())
	}

	return nil
}

func New(config *config.Config, otl otel.Otel) Mailer {
	from := config.Mail.From
	if from == "" {
		from = config.Mail.Username
	}

	if config.Mail.Host == "" {
		log.Warn().Msg("No SMTP host configured, mail will be written to the log")

		return &mailImpl{from: from, sender: consoleSender{}, otel: otl}
	}

	dialer := gomail.NewDialer(config.Mail.Host, config.Mail.Port, config.Mail.Username, config.Mail.Password)

	log.Info().Str("host", config.Mail.Host).Int("port", config.Mail.Port).Msg("SMTP mailer initialized")

	return &mailImpl{from: from, sender: dialer, otel: otl}
}

func (m *mailImpl) Send(ctx context.Context, to []string, subject, body string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(to) == 0 {
		return ErrNoRecipient
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	scope.SetAttribute("subject", subject)

	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to...)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	if err = m.sender.DialAndSend(message); err != nil {
		log.Error().Err(err).Strs("to", to).Str("subject", subject).Msg("failed to send mail")

		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
