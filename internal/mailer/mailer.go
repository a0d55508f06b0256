// Package mailer sends the post-approval client email over SMTP.
package mailer

import (
	"bytes"
	"context"

	"github.com/rotisserie/eris"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/richards-law/intake-cli/internal/config"
	"github.com/richards-law/intake-cli/internal/model"
)

const defaultAttachmentName = "Retainer_Agreement.pdf"

// Mailer delivers a composed client email.
type Mailer interface {
	SendClientEmail(ctx context.Context, data model.EmailData) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewMailer builds an SMTP-backed Mailer. Callers are expected to check
// cfg.Configured() before sending.
func NewMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendClientEmail(ctx context.Context, data model.EmailData) error {
	text, html, err := Compose(data)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.FromEmail); err != nil {
		return eris.Wrap(err, "mailer: invalid from address")
	}
	if err := msg.To(data.ToEmail); err != nil {
		return eris.Wrap(err, "mailer: invalid recipient address")
	}
	msg.Subject(emailSubject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)

	if len(data.AttachmentBytes) > 0 {
		name := data.AttachmentName
		if name == "" {
			name = defaultAttachmentName
		}
		if err := msg.AttachReader(name, bytes.NewReader(data.AttachmentBytes)); err != nil {
			return eris.Wrap(err, "mailer: attach retainer")
		}
	}

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.User),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return eris.Wrap(err, "mailer: smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return eris.Wrap(err, "mailer: send")
	}

	zap.L().Info("client email sent",
		zap.String("to", data.ToEmail),
		zap.String("booking_type", data.BookingType),
		zap.Bool("attachment", len(data.AttachmentBytes) > 0),
	)
	return nil
}
