package providers

import (
	"fmt"
	"net/smtp"
	"strings"
)

const mimeBoundary = "leaderboard-report"

// SMTPSender delivers run reports via SMTP
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates a new SMTP sender. An empty username skips
// authentication (local relay).
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a multipart (plain + HTML) email
func (s *SMTPSender) Send(to, subject, htmlBody, plainBody string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	msg := buildMIME(s.from, to, subject, htmlBody, plainBody)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMIME(from, to, subject, htmlBody, plainBody string) []byte {
	var msg strings.Builder

	writeHeader := func(k, v string) {
		msg.WriteString(k)
		msg.WriteString(": ")
		msg.WriteString(v)
		msg.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", to)
	writeHeader("Subject", subject)
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mimeBoundary))
	msg.WriteString("\r\n")

	part := func(contentType, body string) {
		msg.WriteString("--" + mimeBoundary + "\r\n")
		writeHeader("Content-Type", contentType)
		msg.WriteString("\r\n")
		msg.WriteString(body)
		msg.WriteString("\r\n")
	}

	part(`text/plain; charset="utf-8"`, plainBody)
	part(`text/html; charset="utf-8"`, htmlBody)
	msg.WriteString("--" + mimeBoundary + "--\r\n")

	return []byte(msg.String())
}
