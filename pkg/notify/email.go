package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// mailSender is the part of *mail.Client the relay needs
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailConfig holds configuration for the SMTP relay
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       []string
}

// EmailRelay mails lead summaries to the operations inbox
type EmailRelay struct {
	sender   mailSender
	from     string
	fromName string
	to       []string
}

// NewEmailRelay creates an SMTP relay. An empty host yields a relay that
// reports ErrNotConfigured.
func NewEmailRelay(config EmailConfig) (*EmailRelay, error) {
	relay := &EmailRelay{from: config.From, fromName: config.FromName, to: config.To}
	if config.Host == "" {
		return relay, nil
	}

	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if config.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}

	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	relay.sender = client
	return relay, nil
}

// Name implements Notifier
func (e *EmailRelay) Name() string {
	return "email"
}

// Notify mails msg to every configured recipient
func (e *EmailRelay) Notify(ctx context.Context, msg Message) error {
	if e.sender == nil || e.from == "" || len(e.to) == 0 {
		return ErrNotConfigured
	}

	m := mail.NewMsg()
	if err := m.FromFormat(e.fromName, e.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(e.to...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody(msg.HTML))
	m.AddAlternativeString(mail.TypeTextPlain, plainBody(msg.HTML))

	if err := e.sender.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// htmlBody turns chat-style HTML (newline separated) into an email body
func htmlBody(s string) string {
	return "<div style=\"font-family:sans-serif\">" + strings.ReplaceAll(s, "\n", "<br>\n") + "</div>"
}

var tagStripper = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "",
	"&lt;", "<", "&gt;", ">", "&quot;", "\"", "&#34;", "\"", "&#39;", "'", "&amp;", "&")

// plainBody strips the small tag set used by the formatters
func plainBody(s string) string {
	return tagStripper.Replace(s)
}
