package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Message is a rendered email addressed to its recipients.
type Message struct {
	To []string
	Email
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ResendMailer delivers through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mail: %s has no recipients", msg.Template)
	}

	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Tags:    []resend.Tag{{Name: "template", Value: msg.Template}},
	})
	if err != nil {
		return fmt.Errorf("mail: resend %s: %w", msg.Template, err)
	}

	slog.Debug("email sent", "template", msg.Template, "resend_id", resp.Id)
	return nil
}

// LogMailer logs messages instead of sending them. Used when no provider is
// configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(ctx context.Context, msg Message) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "email not sent: no provider configured",
		"template", msg.Template,
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
	)
	return nil
}
