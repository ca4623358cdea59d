package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vendor-directory/internal/lib/jwt"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/password"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateAccount(ctx context.Context, account models.Account) (string, error) {
	args := m.Called(ctx, account)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockRepository) GetAccountByConfirmationToken(ctx context.Context, token string) (*models.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockRepository) MarkEmailVerified(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) IncrementConfirmationAttempts(ctx context.Context, uid string, expires time.Time) error {
	args := m.Called(ctx, uid, expires)
	return args.Error(0)
}

func (m *MockRepository) UpdateCompanyAddress(ctx context.Context, uid, street, streetTwo, city, state, zip, latitude, longitude string) (int, error) {
	args := m.Called(ctx, uid, street, streetTwo, city, state, zip, latitude, longitude)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateCompanyPhone(ctx context.Context, uid, phone string) (int, error) {
	args := m.Called(ctx, uid, phone)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateCompanyWebsite(ctx context.Context, uid, website string) (int, error) {
	args := m.Called(ctx, uid, website)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateCompanyName(ctx context.Context, uid, name string) (int, error) {
	args := m.Called(ctx, uid, name)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateCompanyDescription(ctx context.Context, uid, description string) (int, error) {
	args := m.Called(ctx, uid, description)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateCompanyServices(ctx context.Context, uid string, services models.ServiceFlags) (int, error) {
	args := m.Called(ctx, uid, services)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateEmail(ctx context.Context, uid, email string) (int, error) {
	args := m.Called(ctx, uid, email)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdatePasswordHash(ctx context.Context, uid, passwordHash string) (int, error) {
	args := m.Called(ctx, uid, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveAccount(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type MockNormalizer struct {
	mock.Mock
}

func (m *MockNormalizer) Normalize(ctx context.Context, street, streetTwo, city, state, zip string) (*models.NormalizedAddress, error) {
	args := m.Called(ctx, street, streetTwo, city, state, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NormalizedAddress), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(repo *MockRepository, mailer *MockMailer, normalizer *MockNormalizer) *Service {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	opts := Options{
		ConfirmationLimit: 5,
		ConfirmationTTL:   24 * time.Hour,
		SiteURL:           "http://localhost:8080",
	}
	return New(repo, mailer, normalizer, maker, opts, newNoopLogger())
}

func TestRegister_NewAccount(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer, new(MockNormalizer))

	repo.On("GetAccountByEmail", mock.Anything, "new@example.com").Return(nil, errors.New("no rows")).Once()
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.Email == "new@example.com" && a.ConfirmationToken != "" && !a.EmailVerified
	})).Return("uid-new", nil).Once()
	mailer.On("Send", "new@example.com", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("IncrementConfirmationAttempts", mock.Anything, "uid-new", mock.Anything).Return(nil).Once()

	result, err := service.Register(context.Background(), "new@example.com", "Str0ng!pass")

	require.NoError(t, err)
	assert.Equal(t, "uid-new", result.AccountUID)
	assert.True(t, result.IsNewRegister)
	assert.False(t, result.IsUnverifiedMultipleRegisters)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestRegister_VerifiedEmailConflict(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer, new(MockNormalizer))

	existing := &models.Account{UID: "uid-1", Email: "taken@example.com", EmailVerified: true}
	repo.On("GetAccountByEmail", mock.Anything, "taken@example.com").Return(existing, nil).Once()

	result, err := service.Register(context.Background(), "taken@example.com", "Str0ng!pass")

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_UnverifiedResendsConfirmation(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer, new(MockNormalizer))

	existing := &models.Account{
		UID:                  "uid-1",
		Email:                "pending@example.com",
		ConfirmationToken:    "token-1",
		ConfirmationAttempts: 2,
	}
	repo.On("GetAccountByEmail", mock.Anything, "pending@example.com").Return(existing, nil).Once()
	mailer.On("Send", "pending@example.com", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("IncrementConfirmationAttempts", mock.Anything, "uid-1", mock.Anything).Return(nil).Once()

	result, err := service.Register(context.Background(), "pending@example.com", "Str0ng!pass")

	require.NoError(t, err)
	assert.False(t, result.IsNewRegister)
	assert.True(t, result.IsUnverifiedMultipleRegisters)
	repo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	mailer.AssertExpectations(t)
}

func TestRegister_ConfirmationLimitReached(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	service := newTestService(repo, mailer, new(MockNormalizer))

	existing := &models.Account{
		UID:                  "uid-1",
		Email:                "pending@example.com",
		ConfirmationAttempts: 5,
	}
	repo.On("GetAccountByEmail", mock.Anything, "pending@example.com").Return(existing, nil).Once()

	_, err := service.Register(context.Background(), "pending@example.com", "Str0ng!pass")

	assert.ErrorIs(t, err, ErrConfirmationLimit)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendConfirmation(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		repo.On("GetAccountByEmail", mock.Anything, "nobody@example.com").Return(nil, errors.New("no rows")).Once()

		err := service.ResendConfirmation(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("already verified is a no-op", func(t *testing.T) {
		repo := new(MockRepository)
		mailer := new(MockMailer)
		service := newTestService(repo, mailer, new(MockNormalizer))

		existing := &models.Account{UID: "uid-1", Email: "done@example.com", EmailVerified: true}
		repo.On("GetAccountByEmail", mock.Anything, "done@example.com").Return(existing, nil).Once()

		err := service.ResendConfirmation(context.Background(), "done@example.com")
		require.NoError(t, err)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sends and counts the email", func(t *testing.T) {
		repo := new(MockRepository)
		mailer := new(MockMailer)
		service := newTestService(repo, mailer, new(MockNormalizer))

		existing := &models.Account{
			UID:                  "uid-1",
			Email:                "pending@example.com",
			ConfirmationToken:    "token-1",
			ConfirmationAttempts: 1,
		}
		repo.On("GetAccountByEmail", mock.Anything, "pending@example.com").Return(existing, nil).Once()
		mailer.On("Send", "pending@example.com", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("IncrementConfirmationAttempts", mock.Anything, "uid-1", mock.Anything).Return(nil).Once()

		err := service.ResendConfirmation(context.Background(), "pending@example.com")
		require.NoError(t, err)
		mailer.AssertExpectations(t)
		repo.AssertExpectations(t)
	})
}

func TestConfirmEmail(t *testing.T) {
	t.Run("marks email verified", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		expires := time.Now().UTC().Add(time.Hour)
		account := &models.Account{UID: "uid-1", ConfirmationExpires: &expires}
		repo.On("GetAccountByConfirmationToken", mock.Anything, "token-1").Return(account, nil).Once()
		repo.On("MarkEmailVerified", mock.Anything, "uid-1").Return(1, nil).Once()

		err := service.ConfirmEmail(context.Background(), "token-1")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repeat confirmation is idempotent", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		account := &models.Account{UID: "uid-1", EmailVerified: true}
		repo.On("GetAccountByConfirmationToken", mock.Anything, "token-1").Return(account, nil).Once()

		err := service.ConfirmEmail(context.Background(), "token-1")
		require.NoError(t, err)
		repo.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		expires := time.Now().UTC().Add(-time.Hour)
		account := &models.Account{UID: "uid-1", ConfirmationExpires: &expires}
		repo.On("GetAccountByConfirmationToken", mock.Anything, "token-1").Return(account, nil).Once()

		err := service.ConfirmEmail(context.Background(), "token-1")
		assert.ErrorIs(t, err, ErrConfirmationExpired)
	})

	t.Run("unknown token", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		repo.On("GetAccountByConfirmationToken", mock.Anything, "bogus").Return(nil, errors.New("no rows")).Once()

		err := service.ConfirmEmail(context.Background(), "bogus")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("Str0ng!pass")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		account := &models.Account{UID: "uid-1", Email: "user@example.com", PasswordHash: hash}
		repo.On("GetAccountByEmail", mock.Anything, "user@example.com").Return(account, nil).Once()

		token, got, err := service.Login(context.Background(), "user@example.com", "Str0ng!pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "uid-1", got.UID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		account := &models.Account{UID: "uid-1", Email: "user@example.com", PasswordHash: hash}
		repo.On("GetAccountByEmail", mock.Anything, "user@example.com").Return(account, nil).Once()

		_, _, err := service.Login(context.Background(), "user@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		repo.On("GetAccountByEmail", mock.Anything, "nobody@example.com").Return(nil, errors.New("no rows")).Once()

		_, _, err := service.Login(context.Background(), "nobody@example.com", "Str0ng!pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateAddress(t *testing.T) {
	normalized := &models.NormalizedAddress{
		Street1:   "3373 SE Academy St",
		City:      "Dallas",
		State:     "OR",
		Zip5:      "97338",
		Latitude:  "44.9072",
		Longitude: "-123.3200",
	}

	t.Run("saves address matching normalized form", func(t *testing.T) {
		repo := new(MockRepository)
		normalizer := new(MockNormalizer)
		service := newTestService(repo, new(MockMailer), normalizer)

		normalizer.On("Normalize", mock.Anything, "3373 SE Academy St", "", "Dallas", "OR", "97338").
			Return(normalized, nil).Once()
		repo.On("UpdateCompanyAddress", mock.Anything, "uid-1",
			"3373 SE Academy St", "", "Dallas", "OR", "97338", "44.9072", "-123.3200").
			Return(1, nil).Once()

		result, err := service.UpdateAddress(context.Background(), "uid-1",
			"3373 SE Academy St", "", "Dallas", "OR", "97338")
		require.NoError(t, err)
		assert.True(t, result.Saved)
		repo.AssertExpectations(t)
	})

	t.Run("returns normalized variant instead of saving", func(t *testing.T) {
		repo := new(MockRepository)
		normalizer := new(MockNormalizer)
		service := newTestService(repo, new(MockMailer), normalizer)

		normalizer.On("Normalize", mock.Anything, "3373 se academy street", "", "Dallas", "OR", "97338").
			Return(normalized, nil).Once()

		result, err := service.UpdateAddress(context.Background(), "uid-1",
			"3373 se academy street", "", "Dallas", "OR", "97338")
		require.NoError(t, err)
		assert.False(t, result.Saved)
		assert.Equal(t, "3373 SE Academy St", result.Normalized.Street1)
		repo.AssertNotCalled(t, "UpdateCompanyAddress",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("normalizer failure", func(t *testing.T) {
		repo := new(MockRepository)
		normalizer := new(MockNormalizer)
		service := newTestService(repo, new(MockMailer), normalizer)

		normalizer.On("Normalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("service unavailable")).Once()

		_, err := service.UpdateAddress(context.Background(), "uid-1", "street", "", "Dallas", "OR", "97338")
		assert.Error(t, err)
	})
}

func TestUpdatePassword(t *testing.T) {
	hash, err := password.GetHash("Current!pass1")
	require.NoError(t, err)

	t.Run("stores new hash", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		account := &models.Account{UID: "uid-1", PasswordHash: hash}
		repo.On("GetAccount", mock.Anything, "uid-1").Return(account, nil).Once()
		repo.On("UpdatePasswordHash", mock.Anything, "uid-1", mock.MatchedBy(func(h string) bool {
			return password.CompareHash(h, "Newpass!234") == nil
		})).Return(1, nil).Once()

		err := service.UpdatePassword(context.Background(), "uid-1", "Current!pass1", "Newpass!234")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		account := &models.Account{UID: "uid-1", PasswordHash: hash}
		repo.On("GetAccount", mock.Anything, "uid-1").Return(account, nil).Once()

		err := service.UpdatePassword(context.Background(), "uid-1", "wrong", "Newpass!234")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateEmail_RequiresCurrentPassword(t *testing.T) {
	hash, err := password.GetHash("Current!pass1")
	require.NoError(t, err)

	repo := new(MockRepository)
	service := newTestService(repo, new(MockMailer), new(MockNormalizer))

	account := &models.Account{UID: "uid-1", Email: "old@example.com", PasswordHash: hash}
	repo.On("GetAccount", mock.Anything, "uid-1").Return(account, nil).Twice()
	repo.On("UpdateEmail", mock.Anything, "uid-1", "new@example.com").Return(1, nil).Once()

	require.NoError(t, service.UpdateEmail(context.Background(), "uid-1", "new@example.com", "Current!pass1"))
	assert.ErrorIs(t, service.UpdateEmail(context.Background(), "uid-1", "new@example.com", "wrong"),
		ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestRemove(t *testing.T) {
	t.Run("removes existing account", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		repo.On("RemoveAccount", mock.Anything, "uid-1").Return(1, nil).Once()

		require.NoError(t, service.Remove(context.Background(), "uid-1"))
	})

	t.Run("missing account", func(t *testing.T) {
		repo := new(MockRepository)
		service := newTestService(repo, new(MockMailer), new(MockNormalizer))

		repo.On("RemoveAccount", mock.Anything, "uid-1").Return(0, nil).Once()

		assert.ErrorIs(t, service.Remove(context.Background(), "uid-1"), ErrAccountNotFound)
	})
}
