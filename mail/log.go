package mail

import "log"

// LogMailer writes messages to the process log instead of sending them. Used
// when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(subject, body, from string, to ...string) error {
	log.Printf("mail (not sent, SMTP disabled): from=%s to=%v subject=%q\n%s", from, to, subject, body)
	return nil
}
