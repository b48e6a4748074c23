package clients

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPClient delivers composed messages over an SMTP relay. It is the only
// email transport in the system; delivery retries are the caller's concern.
type SMTPClient struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPClient(host, port, from, password string) *SMTPClient {
	return &SMTPClient{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

func (c *SMTPClient) Send(ctx context.Context, to, subject, html string) error {
	if to == "" {
		return fmt.Errorf("missing recipient")
	}
	if c.host == "" || c.from == "" {
		return fmt.Errorf("email transport not configured")
	}

	headers := []string{
		fmt.Sprintf("From: Sharebnb <%s>", c.from),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + html

	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", c.from, c.password, c.host)
	if err := smtp.SendMail(c.host+":"+c.port, auth, c.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}
