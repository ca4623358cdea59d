// Package sender собирает сервис отправки писем: подключение к RabbitMQ,
// SMTP транспорт и потребители очередей уведомлений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vendor-directory/internal/config"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/vendor-directory/internal/services/sender"
)

// App — сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New собирает зависимости сервиса отправки писем.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителей очередей уведомлений и ждет остановки.
func (a *App) Run(ctx context.Context) error {
	reminderQueues := []string{
		"notification.reminder.first",
		"notification.reminder.second",
		"notification.reminder.final",
	}
	for _, queue := range reminderQueues {
		if err := rabbitmq.ConsumerMessage(ctx, a.ch, queue, a.senderService.SendReminder); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", queue), slog.Any("err", err))
			return err
		}
	}

	if err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.premium.expired", a.senderService.SendPremiumExpired); err != nil {
		a.logger.Error("failed to start consumer",
			slog.String("queue", "notification.premium.expired"), slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
