// Package remove реализует HTTP-обработчик удаления учетной записи.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Service описывает интерфейс бизнес-логики удаления учетной записи.
type Service interface {
	Remove(ctx context.Context, uid string) error
}

// Handler обрабатывает HTTP-запросы на удаление учетной записи.
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
// @Summary Удаление учетной записи
// @Description Удаляет учетную запись вместе с профилем компании и размещением в каталоге.
// @Tags Account
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Учетная запись удалена"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Учетная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.remove"

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

	if err := h.service.Remove(r.Context(), uid); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			log.Error("account not found", slog.String("account_uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to remove account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove account"))
		return
	}

	log.Info("account removed", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithMessage("Your account has been deleted."))
}
