package mail

import (
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends a plain-text message and reports the delivery outcome of the
// underlying transport.
type Mailer interface {
	Send(subject, body, from string, to ...string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(host, port, user, pass string) *SMTPMailer {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	return &SMTPMailer{dialer: gomail.NewDialer(host, p, user, pass)}
}

func (m *SMTPMailer) Send(subject, body, from string, to ...string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
