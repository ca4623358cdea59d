// Package account содержит бизнес-логику учетных записей компаний:
// регистрацию, подтверждение почты, вход и изменение профиля.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/jwt"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/password"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// Ошибки бизнес-логики учетных записей. Обработчики переводят их в
// сообщения для пользователя.
var (
	ErrEmailExists         = errors.New("account with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotFound     = errors.New("account not found")
	ErrConfirmationLimit   = errors.New("confirmation email limit reached")
	ErrConfirmationExpired = errors.New("confirmation token expired")
)

// Repository описывает контракт для работы с учетными записями в базе данных.
type Repository interface {
	CreateAccount(ctx context.Context, account models.Account) (string, error)
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByConfirmationToken(ctx context.Context, token string) (*models.Account, error)
	MarkEmailVerified(ctx context.Context, uid string) (int, error)
	IncrementConfirmationAttempts(ctx context.Context, uid string, expires time.Time) error
	UpdateCompanyAddress(ctx context.Context, uid, street, streetTwo, city, state, zip, latitude, longitude string) (int, error)
	UpdateCompanyPhone(ctx context.Context, uid, phone string) (int, error)
	UpdateCompanyWebsite(ctx context.Context, uid, website string) (int, error)
	UpdateCompanyName(ctx context.Context, uid, name string) (int, error)
	UpdateCompanyDescription(ctx context.Context, uid, description string) (int, error)
	UpdateCompanyServices(ctx context.Context, uid string, services models.ServiceFlags) (int, error)
	UpdateEmail(ctx context.Context, uid, email string) (int, error)
	UpdatePasswordHash(ctx context.Context, uid, passwordHash string) (int, error)
	RemoveAccount(ctx context.Context, uid string) (int, error)
}

// Mailer описывает контракт отправки транзакционных писем.
type Mailer interface {
	Send(to, subject, body string) error
}

// Normalizer описывает контракт сервиса нормализации адресов.
type Normalizer interface {
	Normalize(ctx context.Context, street, streetTwo, city, state, zip string) (*models.NormalizedAddress, error)
}

// Options — пороги жизненного цикла учетной записи.
type Options struct {
	ConfirmationLimit int
	ConfirmationTTL   time.Duration
	SiteURL           string
}

// Service отвечает за регистрацию, подтверждение почты, вход и изменение
// профиля компании.
type Service struct {
	repo       Repository
	mailer     Mailer
	normalizer Normalizer
	jwtMaker   jwt.Maker
	opts       Options
	log        *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, mailer Mailer, normalizer Normalizer, jwtMaker jwt.Maker, opts Options, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		mailer:     mailer,
		normalizer: normalizer,
		jwtMaker:   jwtMaker,
		opts:       opts,
		log:        log,
	}
}

// RegisterResult описывает исход регистрации: какие флаги определяют
// заголовок сообщения о письме подтверждения.
type RegisterResult struct {
	AccountUID                    string
	IsNewRegister                 bool
	IsUnverifiedMultipleRegisters bool
}

// Register создает новую учетную запись с неподтвержденной почтой и
// отправляет письмо подтверждения. Повторная регистрация неподтвержденной
// почты отправляет дополнительное письмо, пока не исчерпан лимит.
func (s *Service) Register(ctx context.Context, email, rawPassword string) (*RegisterResult, error) {
	existing, err := s.repo.GetAccountByEmail(ctx, email)
	if err == nil && existing != nil {
		if existing.EmailVerified {
			return nil, ErrEmailExists
		}
		if existing.ConfirmationAttempts >= s.opts.ConfirmationLimit {
			return nil, ErrConfirmationLimit
		}
		if err := s.sendConfirmation(ctx, existing); err != nil {
			return nil, err
		}
		return &RegisterResult{
			AccountUID:                    existing.UID,
			IsUnverifiedMultipleRegisters: true,
		}, nil
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	expires := time.Now().UTC().Add(s.opts.ConfirmationTTL)
	account := models.Account{
		Email:               email,
		PasswordHash:        hashed,
		ConfirmationToken:   uuid.New().String(),
		ConfirmationExpires: &expires,
		Services:            models.ServiceFlags{},
	}
	uid, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	// Отправка письма не должна ронять регистрацию: учетная запись уже
	// создана, письмо можно запросить повторно.
	body := messages.ConfirmationEmailBody(email, s.confirmationURL(account.ConfirmationToken))
	if err := s.mailer.Send(email, messages.ConfirmationEmailSubject, body); err != nil {
		s.log.Error("failed to send confirmation email", sl.Err(err))
	}
	if err := s.repo.IncrementConfirmationAttempts(ctx, uid, expires); err != nil {
		s.log.Error("failed to count confirmation email", sl.Err(err))
	}

	return &RegisterResult{AccountUID: uid, IsNewRegister: true}, nil
}

// ResendConfirmation отправляет дополнительное письмо подтверждения.
// Возвращает ErrConfirmationLimit, когда лимит писем исчерпан.
func (s *Service) ResendConfirmation(ctx context.Context, email string) error {
	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil || account == nil {
		return ErrAccountNotFound
	}
	if account.EmailVerified {
		// Подтверждать больше нечего, письмо не нужно.
		return nil
	}
	if account.ConfirmationAttempts >= s.opts.ConfirmationLimit {
		return ErrConfirmationLimit
	}
	return s.sendConfirmation(ctx, account)
}

func (s *Service) sendConfirmation(ctx context.Context, account *models.Account) error {
	body := messages.ConfirmationEmailBody(account.Email, s.confirmationURL(account.ConfirmationToken))
	if err := s.mailer.Send(account.Email, messages.ConfirmationEmailSubject, body); err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.opts.ConfirmationTTL)
	return s.repo.IncrementConfirmationAttempts(ctx, account.UID, expires)
}

func (s *Service) confirmationURL(token string) string {
	return s.opts.SiteURL + "/api/v1/confirmation?token=" + token
}

// ConfirmEmail подтверждает почту по токену. Операция идемпотентна:
// повторное подтверждение уже подтвержденной почты ничего не меняет.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	account, err := s.repo.GetAccountByConfirmationToken(ctx, token)
	if err != nil || account == nil {
		return ErrAccountNotFound
	}
	if account.EmailVerified {
		return nil
	}
	if account.ConfirmationExpires != nil && account.ConfirmationExpires.Before(time.Now().UTC()) {
		return ErrConfirmationExpired
	}
	_, err = s.repo.MarkEmailVerified(ctx, account.UID)
	return err
}

// Login проверяет пароль и возвращает JWT для учетной записи.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.Account, error) {
	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil || account == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(account.Email, account.UID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// AddressUpdateResult описывает исход изменения адреса: либо адрес сохранен,
// либо возвращен нормализованный вариант для подтверждения пользователем.
type AddressUpdateResult struct {
	Saved      bool
	Normalized models.NormalizedAddress
}

// UpdateAddress нормализует введенный адрес и сохраняет его, если он
// совпадает с нормализованным вариантом. Иначе нормализованный адрес
// возвращается пользователю для подтверждения.
func (s *Service) UpdateAddress(ctx context.Context, uid, street, streetTwo, city, state, zip string) (*AddressUpdateResult, error) {
	normalized, err := s.normalizer.Normalize(ctx, street, streetTwo, city, state, zip)
	if err != nil {
		return nil, err
	}

	if !checks.IsAddressNormalized(street, streetTwo, city, state, zip, *normalized) {
		return &AddressUpdateResult{Saved: false, Normalized: *normalized}, nil
	}

	if _, err := s.repo.UpdateCompanyAddress(ctx, uid, street, streetTwo, city, state, zip,
		normalized.Latitude, normalized.Longitude); err != nil {
		return nil, err
	}
	return &AddressUpdateResult{Saved: true, Normalized: *normalized}, nil
}

// ClearAddress очищает адресные поля компании.
func (s *Service) ClearAddress(ctx context.Context, uid string) error {
	_, err := s.repo.UpdateCompanyAddress(ctx, uid, "", "", "", "", "", "", "")
	return err
}

// UpdatePassword меняет пароль после проверки текущего.
func (s *Service) UpdatePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	account, err := s.repo.GetAccount(ctx, uid)
	if err != nil || account == nil {
		return ErrAccountNotFound
	}
	if err := password.CompareHash(account.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	_, err = s.repo.UpdatePasswordHash(ctx, uid, hashed)
	return err
}

// GetAccount возвращает учетную запись по uid.
func (s *Service) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	account, err := s.repo.GetAccount(ctx, uid)
	if err != nil || account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// Remove удаляет учетную запись вместе с профилем компании.
func (s *Service) Remove(ctx context.Context, uid string) error {
	rowsAffected, err := s.repo.RemoveAccount(ctx, uid)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// UpdatePhone сохраняет телефон компании. Пустая строка очищает поле.
func (s *Service) UpdatePhone(ctx context.Context, uid, phone string) error {
	_, err := s.repo.UpdateCompanyPhone(ctx, uid, phone)
	return err
}

// UpdateWebsite сохраняет сайт компании. Пустая строка очищает поле.
func (s *Service) UpdateWebsite(ctx context.Context, uid, website string) error {
	_, err := s.repo.UpdateCompanyWebsite(ctx, uid, website)
	return err
}

// UpdateName сохраняет название компании. Пустая строка очищает поле.
func (s *Service) UpdateName(ctx context.Context, uid, name string) error {
	_, err := s.repo.UpdateCompanyName(ctx, uid, name)
	return err
}

// UpdateDescription сохраняет описание компании. Пустая строка очищает поле.
func (s *Service) UpdateDescription(ctx context.Context, uid, description string) error {
	_, err := s.repo.UpdateCompanyDescription(ctx, uid, description)
	return err
}

// UpdateServices сохраняет набор услуг компании.
func (s *Service) UpdateServices(ctx context.Context, uid string, services models.ServiceFlags) error {
	_, err := s.repo.UpdateCompanyServices(ctx, uid, services)
	return err
}

// UpdateEmail меняет электронную почту после проверки текущего пароля.
func (s *Service) UpdateEmail(ctx context.Context, uid, newEmail, currentPassword string) error {
	account, err := s.repo.GetAccount(ctx, uid)
	if err != nil || account == nil {
		return ErrAccountNotFound
	}
	if err := password.CompareHash(account.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	_, err = s.repo.UpdateEmail(ctx, uid, newEmail)
	return err
}
