// Package checkoutcreate реализует HTTP-обработчик создания checkout-сессии
// для покупки платного размещения.
package checkoutcreate

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
)

// Service описывает интерфейс бизнес-логики оплаты.
type Service interface {
	CreateCheckout(accountUID string) (string, error)
}

// Handler обрабатывает HTTP-запросы на создание checkout-сессии.
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
// @Summary Создание checkout-сессии
// @Description Создает сессию оплаты платного размещения и возвращает адрес страницы оплаты.
// @Tags Payment
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Адрес страницы оплаты"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payments/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkoutcreate"

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

	checkoutURL, err := h.service.CreateCheckout(uid)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create checkout session"))
		return
	}

	log.Info("checkout session created", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"checkout_url": checkoutURL,
		"offer":        messages.UpgradeSalesPitch(h.costInDollars),
	}))
}
