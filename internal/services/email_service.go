package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
)

// EmailSender delivers password reset codes.
type EmailSender interface {
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	live     bool
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		fromName: cfg.SMTPFromName,
		live:     cfg.SendRealEmails,
	}
}

// SendPasswordResetCode mails code to to. With real sending disabled the code
// is only logged.
func (s *SMTPSender) SendPasswordResetCode(ctx context.Context, to, code string) error {
	if !s.live {
		slog.Info("email delivery disabled, reset code logged instead", "to", to, "code", code)
		return nil
	}

	msg := buildResetMessage(s.fromName, s.from, to, code, time.Now())
	if err := s.send(ctx, to, msg); err != nil {
		return fmt.Errorf("smtp delivery to %s: %w", to, err)
	}
	slog.Info("password reset email sent", "to", to)
	return nil
}

func (s *SMTPSender) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	tlsConfig := &tls.Config{ServerName: s.host}

	var conn net.Conn
	var err error
	// Implicit TLS for port 465, STARTTLS otherwise.
	if s.port == 465 {
		d := &tls.Dialer{Config: tlsConfig}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if s.port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}

	if s.username != "" {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return err
		}
	}
	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const resetBoundary = "dentalcare-reset-boundary"

func buildResetMessage(fromName, from, to, code string, now time.Time) []byte {
	text := fmt.Sprintf("Your password reset code is %s.\r\nThe code is valid for 1 hour.\r\n"+
		"If you did not request a password reset, you can ignore this email.\r\n", code)
	html := fmt.Sprintf(`<p>Your password reset code is:</p>`+
		`<h2 style="letter-spacing:4px">%s</h2>`+
		`<p>The code is valid for 1 hour.</p>`+
		`<p>If you did not request a password reset, you can ignore this email.</p>`, code)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Password Reset Code\r\n")
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", resetBoundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n", resetBoundary, text)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=\"utf-8\"\r\n\r\n%s\r\n", resetBoundary, html)
	fmt.Fprintf(&b, "--%s--\r\n", resetBoundary)
	return []byte(b.String())
}
