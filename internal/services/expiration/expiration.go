// Package expiration содержит ночную задачу сброса истекших платных
// размещений.
package expiration

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/vendor-directory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// Repository описывает контракт хранилища для задачи сброса.
type Repository interface {
	FindExpiredPremiumAccounts(ctx context.Context) ([]*models.Account, error)
	ResetPremium(ctx context.Context, uid string) (int, error)
}

// Service — задача сброса истекших платных размещений.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ExpireOldPremiumAccounts находит учетные записи с прошедшей датой
// окончания платного размещения, сбрасывает флаг и флаги напоминаний.
// Задача идемпотентна: повторный запуск не находит кандидатов. Ошибка на
// одной записи логируется и не прерывает обход остальных.
func (s *Service) ExpireOldPremiumAccounts(ctx context.Context, channel rabbitmq.Channel) {
	s.log.Info("starting job to expire old premium accounts")
	accounts, err := s.repo.FindExpiredPremiumAccounts(ctx)
	if err != nil {
		s.log.Error("failed to find expired premium accounts", sl.Err(err))
		return
	}
	if len(accounts) == 0 {
		s.log.Info("no expired premium accounts found")
		return
	}
	s.log.Info("found expired premium accounts", "count", len(accounts))

	for _, account := range accounts {
		if _, err := s.repo.ResetPremium(ctx, account.UID); err != nil {
			s.log.Error("failed to reset premium", "uid", account.UID, sl.Err(err))
			continue
		}
		if channel == nil {
			continue
		}
		info := models.ReminderInfo{
			Email:       account.Email,
			CompanyName: account.CompanyName,
		}
		if err := rabbitmq.PublishMessage(channel, "notifications", rabbitmq.RoutingKeyExpired, info); err != nil {
			s.log.Error("failed to publish expired notification", "uid", account.UID, sl.Err(err))
		}
	}
}
