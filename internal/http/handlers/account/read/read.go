// Package read реализует HTTP-обработчик страницы учетной записи: профиль
// компании, набор услуг и состояние платного размещения.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения учетной записи.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
}

// Handler обрабатывает HTTP-запросы на чтение учетной записи.
type Handler struct {
	log           *slog.Logger
	service       Service
	costInDollars string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, costInDollars string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		costInDollars: costInDollars,
	}
}

// ServeHTTP godoc
// @Summary Страница учетной записи
// @Description Возвращает профиль компании, набор услуг и состояние платного размещения.
// @Tags Account
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Данные учетной записи"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.AccountUID).(string)
	if !ok || uid == "" {
		log.Error("account uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	acc, err := h.service.GetAccount(r.Context(), uid)
	if err != nil {
		log.Error("failed to get account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get account"))
		return
	}

	now := time.Now().UTC()
	data := map[string]any{
		"email":           acc.Email,
		"email_verified":  acc.EmailVerified,
		"lifecycle_state": string(acc.LifecycleState(now)),
		"profile":         profileFields(acc),
		"services":        acc.Services,
		"is_premium":      acc.IsPremium,
	}
	if acc.IsPremium {
		data["days_until_expiration"] = acc.DaysUntilPremiumExpiration(now)
		if acc.PremiumExpires != nil {
			data["premium_expires"] = acc.PremiumExpires.Format("2006-01-02")
		}
	} else {
		data["upgrade_offer"] = messages.UpgradeSalesPitch(h.costInDollars)
	}

	log.Info("account read", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithData(data))
}

// profileFields подставляет подпись незаполненного поля вместо пустых значений.
func profileFields(acc *models.Account) map[string]string {
	fields := map[string]string{
		models.FieldCompanyName:        acc.CompanyName,
		models.FieldCompanyDescription: acc.CompanyDescription,
		models.FieldCompanyPhone:       acc.CompanyPhone,
		models.FieldCompanyWebsite:     acc.CompanyWebsite,
		models.FieldCompanyStreet:      acc.CompanyStreet,
		models.FieldCompanyStreetTwo:   acc.CompanyStreetTwo,
		models.FieldCompanyCity:        acc.CompanyCity,
		models.FieldCompanyState:       acc.CompanyState,
		models.FieldCompanyZip:         acc.CompanyZip,
	}
	for name, value := range fields {
		if value == "" {
			fields[name] = messages.MyAccountInformationEmpty
		}
	}
	return fields
}
