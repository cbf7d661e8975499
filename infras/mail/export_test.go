package mail

import (
	"cheapticket/infras/otel"

	"gopkg.in/gomail.v2"
)

type SenderFunc func(m ...*gomail.Message) error

func (f SenderFunc) DialAndSend(m ...*gomail.Message) error {
	return f(m...)
}

func NewWithSender(from string, send SenderFunc, otl otel.Otel) Mailer {
	return &mailImpl{from: from, sender: send, otel: otl}
}
