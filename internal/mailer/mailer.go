package mailer

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/jordan-wright/email"
)

// Mailer sends transactional mail over SMTP. A nil Mailer is valid and
// drops every message, so callers need no guard when SMTP is not
// configured.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// FromEnv builds a Mailer from SMTP_* environment variables. It returns
// nil when SMTP_HOST is unset.
func FromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		Sender:   os.Getenv("SMTP_SENDER"),
	}
}

var sendEmail = func(e *email.Email, addr string, auth smtp.Auth) error {
	return e.Send(addr, auth)
}

func (m *Mailer) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.Sender
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := sendEmail(e, addr, auth); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// SendWelcome greets a freshly registered user. No-op on a nil Mailer.
func (m *Mailer) SendWelcome(to, name string) error {
	if m == nil {
		return nil
	}
	body := fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now sign in and start tracking your tasks.\n", name)
	return m.send(to, "Welcome to Taskboard", body)
}
