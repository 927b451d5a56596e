package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-auth/pkg/helpers"
	"github.com/oksasatya/go-lms-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/go-lms-auth/pkg/mailer/templates"
)

// ErrMalformedEvent marks a queue message that can never be processed; the consumer drops it.
var ErrMalformedEvent = errors.New("malformed account event")

// WelcomeMailer turns account.registered events into welcome emails.
type WelcomeMailer struct {
	Sender mailer.Sender
	Brand  mailtpl.Brand
	Logger *logrus.Logger
}

func NewWelcomeMailer(sender mailer.Sender, brand mailtpl.Brand, logger *logrus.Logger) *WelcomeMailer {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &WelcomeMailer{Sender: sender, Brand: brand, Logger: logger}
}

// HandleMessage decodes one queue body and sends the welcome email.
// Events of other types are ignored. Undecodable or unrenderable bodies wrap ErrMalformedEvent;
// send failures are returned as-is so the caller can requeue.
func (w *WelcomeMailer) HandleMessage(ctx context.Context, body []byte) error {
	var ev AccountEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if ev.Type != EventAccountRegistered {
		w.Logger.WithField("type", ev.Type).Debug("skipping account event")
		return nil
	}
	if ev.Email == "" {
		return fmt.Errorf("%w: missing email", ErrMalformedEvent)
	}

	data := mailtpl.NewWelcomeData(w.Brand, ev.Name, ev.Email,
		mailtpl.WithRole(ev.Role.String()),
		mailtpl.WithJoinedAt(ev.OccurredAt),
	)
	subject, text, html, err := mailtpl.Render(mailtpl.Welcome, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	if err := w.Sender.Send(ctx, mailer.Message{To: ev.Email, Subject: subject, Text: text, HTML: html}); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	w.Logger.WithField("account_id", ev.AccountID).Info("welcome email sent")
	return nil
}
