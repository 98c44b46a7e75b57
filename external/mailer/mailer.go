package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("smtp mailer is not configured")

// Message is a plain text email
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender delivers an email message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender sends messages through an SMTP relay with PLAIN auth
type SMTPSender struct {
	cfg Config

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		cfg:      cfg,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" {
		return ErrNotConfigured
	}

	if len(msg.To) == 0 {
		return errors.New("email message has no recipient")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, msg.From, msg.To, compose(msg, time.Now())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func compose(msg Message, date time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.Replace(msg.Body, "\n", "\r\n", -1))
	b.WriteString("\r\n")

	return []byte(b.String())
}
