// Package confirmation реализует HTTP-обработчик подтверждения почты по
// токену из письма. Операция идемпотентна.
package confirmation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Service описывает интерфейс бизнес-логики подтверждения почты.
type Service interface {
	ConfirmEmail(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы на подтверждение почты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтверждение почты по токену
// @Description Подтверждает почту учетной записи по токену из письма. Повторное подтверждение безопасно.
// @Tags Auth
// @Produce  json
// @Param token query string true "Токен подтверждения"
// @Success 200 {object} response.Response "Почта подтверждена"
// @Failure 400 {object} response.ErrorResponse "Токен отсутствует"
// @Failure 404 {object} response.ErrorResponse "Токен не найден"
// @Failure 410 {object} response.ErrorResponse "Срок действия токена истек"
// @Router /confirmation [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirmation"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")
	if token == "" {
		log.Error("missing confirmation token")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing confirmation token"))
		return
	}

	if err := h.service.ConfirmEmail(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			log.Error("confirmation token not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("confirmation token not found"))
		case errors.Is(err, account.ErrConfirmationExpired):
			log.Error("confirmation token expired")
			w.WriteHeader(http.StatusGone)
			render.JSON(w, r, response.Error("confirmation token expired"))
		default:
			log.Error("failed to confirm email", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to confirm email"))
		}
		return
	}

	log.Info("email confirmed")
	render.JSON(w, r, response.StatusOKWithMessage("Your email address has been confirmed. You may now log in."))
}
