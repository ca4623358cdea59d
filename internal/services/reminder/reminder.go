// Package reminder содержит ночные задачи отправки напоминаний об
// окончании платного размещения: первое, второе и последнее.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// Repository описывает контракт хранилища для задач напоминаний.
type Repository interface {
	FindReminderCandidates(ctx context.Context, tier models.AlertTier, thresholdDays int) ([]*models.Account, error)
	MarkReminderSent(ctx context.Context, uid string, tier models.AlertTier) error
}

// Thresholds — пороги ступеней напоминаний в календарных днях.
type Thresholds struct {
	First  int
	Second int
	Final  int
}

// Service — задачи рассылки напоминаний.
type Service struct {
	repo       Repository
	thresholds Thresholds
	log        *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, thresholds Thresholds, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		thresholds: thresholds,
		log:        log,
	}
}

func (s *Service) threshold(tier models.AlertTier) int {
	switch tier {
	case models.AlertTierSecond:
		return s.thresholds.Second
	case models.AlertTierFinal:
		return s.thresholds.Final
	default:
		return s.thresholds.First
	}
}

// RunAlert выполняет один проход ступени: находит платные учетные записи в
// окне напоминания без установленного флага, публикует уведомление и
// отмечает флаг. Неудачная публикация оставляет флаг снятым — запись
// попадет в следующий запуск. Ошибка на одной записи не прерывает обход.
func (s *Service) RunAlert(ctx context.Context, channel rabbitmq.Channel, tier models.AlertTier) {
	log := s.log.With(slog.String("tier", string(tier)))
	log.Info("starting job to send expiration reminders")

	thresholdDays := s.threshold(tier)
	accounts, err := s.repo.FindReminderCandidates(ctx, tier, thresholdDays)
	if err != nil {
		log.Error("failed to find reminder candidates", sl.Err(err))
		return
	}
	if len(accounts) == 0 {
		log.Info("no reminder candidates found")
		return
	}
	log.Info("found reminder candidates", "count", len(accounts))

	now := time.Now().UTC()
	for _, account := range accounts {
		daysRemaining := account.DaysUntilPremiumExpiration(now)
		if !checks.IsUpgradeExpirationSoon(daysRemaining, thresholdDays) {
			continue
		}

		info := models.ReminderInfo{
			Email:          account.Email,
			CompanyName:    account.CompanyName,
			ExpirationDate: account.PremiumExpires.Format("2006-01-02"),
			DaysRemaining:  daysRemaining,
			Tier:           tier,
		}
		routingKey := routingKeyForTier(tier)
		if err := rabbitmq.PublishMessage(channel, "notifications", routingKey, info); err != nil {
			log.Error("failed to publish reminder", "uid", account.UID, sl.Err(err))
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, account.UID, tier); err != nil {
			log.Error("failed to mark reminder sent", "uid", account.UID, sl.Err(err))
		}
	}
}

func routingKeyForTier(tier models.AlertTier) string {
	switch tier {
	case models.AlertTierSecond:
		return rabbitmq.RoutingKeySecondAlert
	case models.AlertTierFinal:
		return rabbitmq.RoutingKeyFinalAlert
	default:
		return rabbitmq.RoutingKeyFirstAlert
	}
}
