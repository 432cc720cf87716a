package jobs

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Mailer sends transactional mail.
type Mailer interface {
	SendWelcome(to, fullName string) error
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<html><body>
<p>Hi {{.FullName}},</p>
<p>Welcome aboard! Your account is ready to use.</p>
<p>— The Storefront team</p>
</body></html>`))

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer builds a Mailer that delivers over plain SMTP with
// PLAIN auth when a username is configured.
func NewSMTPMailer(host string, port int, username, password, from string) Mailer {
	return &smtpMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *smtpMailer) SendWelcome(to, fullName string) error {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, struct{ FullName string }{fullName}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Welcome!\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, body.String()))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send welcome email to %s: %w", to, err)
	}
	return nil
}

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs. Used when SMTP is not
// configured, so local setups still exercise the email queue.
func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) SendWelcome(to, fullName string) error {
	log.Printf("SMTP not configured, skipping welcome email to %s (%s)", to, fullName)
	return nil
}
