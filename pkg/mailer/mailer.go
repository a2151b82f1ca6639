package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// Attachment is an in-memory file attached to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a fully assembled outgoing email.
type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Credentials carry the SMTP account used for dispatch.
type Credentials struct {
	Service  string
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer sends assembled messages over some transport.
type Mailer interface {
	Send(ctx context.Context, creds Credentials, msg Message) error
}

// Known provider hosts, keyed by the service name stored in settings.
var serviceHosts = map[string]string{
	"gmail":   "smtp.gmail.com",
	"outlook": "smtp-mail.outlook.com",
	"yahoo":   "smtp.mail.yahoo.com",
}

const defaultSMTPPort = 587

// SMTPMailer delivers messages through an SMTP server resolved from the
// credentials' service name or explicit host/port.
type SMTPMailer struct {
	dial func(host string, port int, username, password string) sender
}

type sender interface {
	DialAndSend(...*gomail.Message) error
}

// NewSMTPMailer returns a mailer backed by gomail.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		dial: func(host string, port int, username, password string) sender {
			return gomail.NewDialer(host, port, username, password)
		},
	}
}

// Send assembles and delivers the message. It fails fast when the
// credentials cannot be resolved to a host.
func (m *SMTPMailer) Send(ctx context.Context, creds Credentials, msg Message) error {
	host, port, err := resolveHost(creds)
	if err != nil {
		return err
	}
	built := buildMessage(msg)
	done := make(chan error, 1)
	go func() {
		done <- m.dial(host, port, creds.Username, creds.Password).DialAndSend(built)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending mail via %s: %w", host, err)
		}
		return nil
	}
}

func resolveHost(creds Credentials) (string, int, error) {
	port := creds.Port
	if port == 0 {
		port = defaultSMTPPort
	}
	if creds.Host != "" {
		return creds.Host, port, nil
	}
	service := strings.ToLower(strings.TrimSpace(creds.Service))
	if host, ok := serviceHosts[service]; ok {
		return host, port, nil
	}
	return "", 0, fmt.Errorf("unknown mail service %q and no smtp host configured", creds.Service)
}

func buildMessage(msg Message) *gomail.Message {
	built := gomail.NewMessage()
	built.SetHeader("From", msg.From)
	built.SetHeader("To", msg.To...)
	built.SetHeader("Subject", msg.Subject)
	built.SetBody("text/plain", msg.Body)
	for _, att := range msg.Attachments {
		data := att.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		built.Attach(att.Filename, settings...)
	}
	return built
}
