package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// OutgoingMail is a fully-rendered message ready for the transport.
type OutgoingMail struct {
	To           []string
	Subject      string
	HTML         string
	HighPriority bool
}

// MailSender dispatches a rendered email. Implementations perform the
// network call; failures surface as errors for the handler to map.
type MailSender interface {
	Send(mail OutgoingMail) error
}

// mailDialer is the slice of gomail.Dialer the mailer needs; tests stub it.
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends HTML mail through a single SMTP account. One instance is
// shared per process.
type SMTPMailer struct {
	dialer    mailDialer
	fromName  string
	fromEmail string
}

func NewSMTPMailer(host string, port int, username, password, fromName, fromEmail string) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(host, port, username, password),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (m *SMTPMailer) Send(mail OutgoingMail) error {
	if len(mail.To) == 0 {
		return fmt.Errorf("no recipients provided")
	}
	for _, addr := range mail.To {
		if !IsValidEmail(addr) {
			return fmt.Errorf("invalid recipient address: %s", addr)
		}
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	if mail.HighPriority {
		msg.SetHeader("X-Priority", "1 (Highest)")
		msg.SetHeader("X-MSMail-Priority", "High")
		msg.SetHeader("Importance", "High")
	}
	msg.SetBody("text/html", mail.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
