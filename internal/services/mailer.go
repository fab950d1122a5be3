package services

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers outbound notifications. Sending is best effort
// everywhere it is used: failures are logged by the caller and never fail
// the surrounding operation.
type Mailer interface {
	Send(recipient string, subject string, body string) error
}

type SMTPMailer struct {
	host     string
	port     int
	from     string
	username string
	password string
}

func NewSMTPMailer(host string, port int, from string, username string, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
	}
}

func (mailer *SMTPMailer) Send(recipient string, subject string, body string) error {
	message := strings.Join([]string{
		"From: " + mailer.from,
		"To: " + recipient,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	address := fmt.Sprintf("%s:%d", mailer.host, mailer.port)
	var auth smtp.Auth
	if mailer.username != "" {
		auth = smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)
	}
	return smtp.SendMail(address, auth, mailer.from, []string{recipient}, []byte(message))
}

// NoopMailer is used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) Send(string, string, string) error {
	return nil
}
