package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"NewsDigest/internal/config"
	"NewsDigest/internal/ports"
)

// Notifier sends HTML digest mail over SMTP with STARTTLS.
type Notifier struct {
	host string
	port int
	user string
	pass string
	to   string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the SMTP account and recipient.
func NewNotifier(cfg config.EmailConfig) *Notifier {
	return &Notifier{
		host: cfg.Host,
		port: cfg.Port,
		user: cfg.User,
		pass: cfg.Pass,
		to:   cfg.To,
	}
}

// Configured reports whether enough settings are present to send mail.
func (n *Notifier) Configured() bool {
	return n.host != "" && n.port != 0 && n.user != "" && n.pass != "" && n.to != ""
}

// PublishDigest delivers the rendered HTML digest to the recipient.
func (n *Notifier) PublishDigest(ctx context.Context, subject, htmlBody string) error {
	if !n.Configured() {
		return fmt.Errorf("email notifier misconfigured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(n.host, strconv.Itoa(n.port))
	auth := smtp.PlainAuth("", n.user, n.pass, n.host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.user)
	fmt.Fprintf(&msg, "To: %s\r\n", n.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, n.user, []string{n.to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send digest mail: %w", err)
	}

	return nil
}
