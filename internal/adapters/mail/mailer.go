// Package mail sends HTML mail over SMTP with STARTTLS
package mail

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	perr "assistant/internal/platform/errors"
	"assistant/internal/platform/logger"
)

const (
	defaultHost = "smtp.gmail.com"
	defaultPort = 587
)

// Options configures the Mailer. From and Password empty means sending
// is disabled and every Send fails fast
type Options struct {
	Host     string
	Port     int
	From     string
	Password string
}

// Mailer is a minimal SMTP sender
type Mailer struct {
	opts Options
	log  logger.Logger

	// send is swapped in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a Mailer with sane defaults
func New(o Options) *Mailer {
	if o.Host == "" {
		o.Host = defaultHost
	}
	if o.Port <= 0 {
		o.Port = defaultPort
	}
	return &Mailer{
		opts: o,
		log:  *logger.Named("mail"),
		send: smtp.SendMail,
	}
}

// Configured reports whether sender credentials are present
func (m *Mailer) Configured() bool {
	return m.opts.From != "" && m.opts.Password != ""
}

// Send delivers one HTML message. The context is accepted for interface
// symmetry, net/smtp has no cancellation hook
func (m *Mailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if !m.Configured() {
		return perr.Unavailablef("mail sender not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.opts.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.opts.Host, m.opts.Port)
	auth := smtp.PlainAuth("", m.opts.From, m.opts.Password, m.opts.Host)
	if err := m.send(addr, auth, m.opts.From, []string{to}, []byte(b.String())); err != nil {
		m.log.Warn().Err(err).Str("to", to).Msg("smtp send failed")
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "smtp send to %s failed", to)
	}
	m.log.Info().Str("to", to).Msg("mail sent")
	return nil
}
