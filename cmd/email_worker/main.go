package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-lms-auth/config"
	"github.com/oksasatya/go-lms-auth/internal/application"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
	"github.com/oksasatya/go-lms-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/go-lms-auth/pkg/mailer/templates"
)

// email_worker consumes account events and sends welcome emails through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		logger.WithError(err).Fatal("amqp consumer")
	}
	defer consumer.Close()

	welcome := application.NewWelcomeMailer(
		mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		mailtpl.Brand{
			CompanyName: cfg.CompanyName,
			AppName:     cfg.AppName,
			LogoURL:     cfg.LogoURL,
			SupportURL:  cfg.SupportURL,
			LoginURL:    cfg.LoginURL,
		},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	err = consumer.Consume(ctx, func(ctx context.Context, body []byte) error {
		err := welcome.HandleMessage(ctx, body)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, application.ErrMalformedEvent):
			logger.WithError(err).Warn("dropping account event")
			return fmt.Errorf("%w: %w", helpers.ErrDropMessage, err)
		default:
			logger.WithError(err).Error("welcome email failed; requeueing")
			return err
		}
	})
	if err != nil {
		logger.WithError(err).Error("consumer stopped")
	}
	logger.Info("email worker exited")
}
