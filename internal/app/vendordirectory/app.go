// Package vendordirectory собирает основной сервис каталога: HTTP API,
// хранилище, кэш, брокер сообщений и ночные задачи жизненного цикла.
package vendordirectory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/robfig/cron/v3"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vendor-directory/internal/addressnormalizer"
	"github.com/magabrotheeeer/vendor-directory/internal/cache"
	"github.com/magabrotheeeer/vendor-directory/internal/config"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/jwt"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/smtp"
	"github.com/magabrotheeeer/vendor-directory/internal/migrations"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
	"github.com/magabrotheeeer/vendor-directory/internal/paymentprovider"
	accountservice "github.com/magabrotheeeer/vendor-directory/internal/services/account"
	expirationservice "github.com/magabrotheeeer/vendor-directory/internal/services/expiration"
	paymentservice "github.com/magabrotheeeer/vendor-directory/internal/services/payment"
	reminderservice "github.com/magabrotheeeer/vendor-directory/internal/services/reminder"
	senderservice "github.com/magabrotheeeer/vendor-directory/internal/services/sender"
	"github.com/magabrotheeeer/vendor-directory/internal/storage/repository"
)

// Расписание ночных задач жизненного цикла, UTC.
const (
	expirationSpec  = "0 1 * * *"
	firstAlertSpec  = "15 1 * * *"
	secondAlertSpec = "30 1 * * *"
	finalAlertSpec  = "45 1 * * *"
)

// App — основной сервис каталога.
type App struct {
	server *http.Server
	cron   *cron.Cron
	conn   *amqp.Connection
	ch     *amqp.Channel
	db     *repository.Storage
	logger *slog.Logger
}

// New собирает все зависимости основного сервиса.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeBroker(nil, conn, logger)
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	mailer := senderservice.New(transport, logger)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	normalizer := addressnormalizer.NewClient(cfg.NormalizerAuthID, cfg.NormalizerAuthToken)
	providerClient := paymentprovider.NewClient(cfg.ProviderSecretKey)

	accountService := accountservice.New(db, mailer, normalizer, jwtMaker, accountservice.Options{
		ConfirmationLimit: cfg.ConfirmationLimit,
		ConfirmationTTL:   cfg.ConfirmationTTL,
		SiteURL:           cfg.SiteURL,
	}, logger)
	paymentService := paymentservice.New(db, providerClient, paymentservice.Options{
		DurationMonths: cfg.PremiumDurationMonths,
		CostInDollars:  cfg.UpgradeCostInDollars,
		SiteURL:        cfg.SiteURL,
	}, logger)
	expirationService := expirationservice.New(db, logger)
	reminderService := reminderservice.New(db, reminderservice.Thresholds{
		First:  cfg.FirstAlertBeforeExpiration,
		Second: cfg.SecondAlertBeforeExpiration,
		Final:  cfg.FinalAlertBeforeExpiration,
	}, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, cacheRedis, jwtMaker,
		accountService, paymentService)

	jobs, err := scheduleJobs(logger, ch, expirationService, reminderService)
	if err != nil {
		closeBroker(ch, conn, logger)
		return nil, err
	}

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		cron:   jobs,
		conn:   conn,
		ch:     ch,
		db:     db,
		logger: logger,
	}, nil
}

// scheduleJobs регистрирует ночные задачи жизненного цикла.
func scheduleJobs(logger *slog.Logger, ch *amqp.Channel,
	expiration *expirationservice.Service, reminder *reminderservice.Service) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	jobs := []struct {
		spec string
		run  func()
	}{
		{expirationSpec, func() {
			expiration.ExpireOldPremiumAccounts(context.Background(), ch)
		}},
		{firstAlertSpec, func() {
			reminder.RunAlert(context.Background(), ch, models.AlertTierFirst)
		}},
		{secondAlertSpec, func() {
			reminder.RunAlert(context.Background(), ch, models.AlertTierSecond)
		}},
		{finalAlertSpec, func() {
			reminder.RunAlert(context.Background(), ch, models.AlertTierFinal)
		}},
	}
	for _, job := range jobs {
		if _, err := c.AddFunc(job.spec, job.run); err != nil {
			return nil, err
		}
		logger.Info("lifecycle job scheduled", slog.String("spec", job.spec))
	}
	return c, nil
}

func closeBroker(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", slog.Any("err", err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", slog.Any("err", err))
		}
	}
}

// Run запускает HTTP сервер и планировщик ночных задач.
func (a *App) Run(ctx context.Context) error {
	a.cron.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		<-a.cron.Stop().Done()
		err := a.server.Shutdown(timeoutCtx)
		closeBroker(a.ch, a.conn, a.logger)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
