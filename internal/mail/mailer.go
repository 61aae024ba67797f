// Package mail sends transactional email over SMTP. When no SMTP host is
// configured the mailer degrades to logging the message, which keeps local
// development working without a relay.
package mail

import (
	"fmt"
	"log"

	gomail "github.com/wneessen/go-mail"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

// SendResetLink emails a password reset / account setup link to the given
// address.
func (m *Mailer) SendResetLink(to, resetURL string) error {
	subject := "Set your Trailporter password"
	body := fmt.Sprintf(
		"Hello,\n\nUse the link below to set your password. The link is valid for 24 hours.\n\n%s\n\nIf you did not request this, you can ignore this email.\n",
		resetURL,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.Host == "" {
		log.Printf("[MAIL] smtp not configured, would send to=%s subject=%q body=%q", to, subject, body)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.Host,
		gomail.WithPort(m.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.Username),
		gomail.WithPassword(m.Password),
	)
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
