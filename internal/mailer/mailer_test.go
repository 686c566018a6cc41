package mailer

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/require"
)

func restore() {
	sendEmail = func(e *email.Email, addr string, auth smtp.Auth) error {
		return e.Send(addr, auth)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	require.Nil(t, FromEnv())

	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "pw")
	t.Setenv("SMTP_SENDER", "noreply@example.com")
	m := FromEnv()
	require.NotNil(t, m)
	require.Equal(t, "smtp.example.com", m.Host)
	require.Equal(t, "587", m.Port)
	require.Equal(t, "noreply@example.com", m.Sender)
}

func TestSendWelcome(t *testing.T) {
	t.Cleanup(restore)

	// nil receiver drops the message
	var none *Mailer
	require.NoError(t, none.SendWelcome("a@b.c", "A"))

	var sent *email.Email
	var sentAddr string
	sendEmail = func(e *email.Email, addr string, _ smtp.Auth) error {
		sent = e
		sentAddr = addr
		return nil
	}
	m := &Mailer{Host: "smtp.example.com", Port: "587", Sender: "noreply@example.com"}
	require.NoError(t, m.SendWelcome("alice@example.com", "Alice"))
	require.Equal(t, "smtp.example.com:587", sentAddr)
	require.Equal(t, []string{"alice@example.com"}, sent.To)
	require.Contains(t, string(sent.Text), "Alice")

	sendEmail = func(*email.Email, string, smtp.Auth) error { return errors.New("smtp down") }
	require.Error(t, m.SendWelcome("alice@example.com", "Alice"))
}
