package expiration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/vendor-directory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindExpiredPremiumAccounts(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockRepository) ResetPremium(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestExpireOldPremiumAccounts_ResetsEveryCandidate(t *testing.T) {
	repo := new(MockRepository)
	channel := new(MockChannel)
	service := New(repo, newNoopLogger())

	accounts := []*models.Account{
		{UID: "uid-1", Email: "one@example.com", CompanyName: "One"},
		{UID: "uid-2", Email: "two@example.com", CompanyName: "Two"},
	}
	repo.On("FindExpiredPremiumAccounts", mock.Anything).Return(accounts, nil).Once()
	repo.On("ResetPremium", mock.Anything, "uid-1").Return(1, nil).Once()
	repo.On("ResetPremium", mock.Anything, "uid-2").Return(1, nil).Once()
	channel.On("Publish", "notifications", rabbitmq.RoutingKeyExpired, false, false, mock.Anything).
		Return(nil).Twice()

	service.ExpireOldPremiumAccounts(context.Background(), channel)

	repo.AssertExpectations(t)
	channel.AssertExpectations(t)
}

func TestExpireOldPremiumAccounts_FailedRowDoesNotStopOthers(t *testing.T) {
	repo := new(MockRepository)
	channel := new(MockChannel)
	service := New(repo, newNoopLogger())

	accounts := []*models.Account{
		{UID: "uid-1", Email: "one@example.com"},
		{UID: "uid-2", Email: "two@example.com"},
	}
	repo.On("FindExpiredPremiumAccounts", mock.Anything).Return(accounts, nil).Once()
	repo.On("ResetPremium", mock.Anything, "uid-1").Return(0, errors.New("db error")).Once()
	repo.On("ResetPremium", mock.Anything, "uid-2").Return(1, nil).Once()
	// Сообщение уходит только по успешно сброшенной записи.
	channel.On("Publish", "notifications", rabbitmq.RoutingKeyExpired, false, false, mock.Anything).
		Return(nil).Once()

	service.ExpireOldPremiumAccounts(context.Background(), channel)

	repo.AssertExpectations(t)
	channel.AssertExpectations(t)
}

func TestExpireOldPremiumAccounts_SecondRunFindsNothing(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, newNoopLogger())

	repo.On("FindExpiredPremiumAccounts", mock.Anything).Return([]*models.Account{}, nil).Once()

	service.ExpireOldPremiumAccounts(context.Background(), nil)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "ResetPremium", mock.Anything, mock.Anything)
}

func TestExpireOldPremiumAccounts_FindError(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, newNoopLogger())

	repo.On("FindExpiredPremiumAccounts", mock.Anything).Return(nil, errors.New("db down")).Once()

	service.ExpireOldPremiumAccounts(context.Background(), nil)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "ResetPremium", mock.Anything, mock.Anything)
}
