// Package payment содержит бизнес-логику оплаты платного размещения:
// создание checkout-сессии у провайдера и обработку веб-хука об оплате.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/vendor-directory/internal/paymentprovider"
)

// ErrUnknownAccount возвращается, когда веб-хук ссылается на несуществующую
// учетную запись.
var ErrUnknownAccount = errors.New("webhook references unknown account")

// Repository описывает контракт хранилища для операций оплаты.
type Repository interface {
	ActivatePremium(ctx context.Context, uid string, expires time.Time) (int, error)
}

// Provider описывает контракт клиента платежного провайдера.
type Provider interface {
	CreateCheckoutSession(reqParams paymentprovider.CreateCheckoutSessionRequest) (*paymentprovider.CreateCheckoutSessionResponse, error)
}

// Options — параметры платного размещения.
type Options struct {
	DurationMonths int
	CostInDollars  string
	SiteURL        string
}

// Service отвечает за создание checkout-сессий и активацию платного
// размещения по веб-хуку.
type Service struct {
	repo     Repository
	provider Provider
	opts     Options
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, provider Provider, opts Options, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		opts:     opts,
		log:      log,
	}
}

// CreateCheckout создает checkout-сессию для покупки платного размещения и
// возвращает адрес страницы оплаты.
func (s *Service) CreateCheckout(accountUID string) (string, error) {
	req := paymentprovider.CreateCheckoutSessionRequest{
		Description: "Premium directory listing, 12 months",
		SuccessURL:  s.opts.SiteURL + "/my-account?upgrade=success",
		CancelURL:   s.opts.SiteURL + "/my-account?upgrade=canceled",
		Metadata:    map[string]string{"account_uid": accountUID},
	}
	// CostInDollars хранится в отображаемом виде, например "$36".
	req.Amount.Value = strings.TrimPrefix(s.opts.CostInDollars, "$")
	req.Amount.Currency = "USD"

	resp, err := s.provider.CreateCheckoutSession(req)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// WebhookPayload — полезная нагрузка веб-хука платежного провайдера.
type WebhookPayload struct {
	Event  string `json:"event"`
	Object struct {
		ID       string            `json:"id"`
		Status   string            `json:"status"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}

// ProcessWebhookEvent обрабатывает событие об успешной оплате: включает
// платное размещение на настроенный срок и сбрасывает флаги напоминаний
// нового оплаченного периода.
func (s *Service) ProcessWebhookEvent(ctx context.Context, payload *WebhookPayload) error {
	accountUID := payload.Object.Metadata["account_uid"]
	if accountUID == "" {
		return ErrUnknownAccount
	}

	expires := time.Now().UTC().AddDate(0, s.opts.DurationMonths, 0)
	rowsAffected, err := s.repo.ActivatePremium(ctx, accountUID, expires)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUnknownAccount
	}

	s.log.Info("premium listing activated",
		slog.String("account_uid", accountUID),
		slog.Time("expires", expires))
	return nil
}
