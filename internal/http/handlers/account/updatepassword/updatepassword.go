// Package updatepassword реализует HTTP-обработчик смены пароля.
// Новый пароль проверяется на стойкость, смена требует текущего пароля.
package updatepassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	UpdatePassword(ctx context.Context, uid, currentPassword, newPassword string) error
}

// Handler обрабатывает HTTP-запросы на смену пароля.
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
// @Summary Смена пароля
// @Description Меняет пароль учетной записи после проверки текущего пароля.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы смены пароля"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы или слабый пароль"
// @Failure 401 {object} response.ErrorResponse "Не авторизован или неверный пароль"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updatepassword"

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

	var submission map[string]string
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if !checks.IsAllContentGenuine(models.ChangePasswordFields, submission) ||
		!checks.IsAllContentSubmitted(models.ChangePasswordFields, submission) {
		log.Error("form submission rejected")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form submission"))
		return
	}

	newPassword := submission["newPassword"]
	if newPassword != submission["newPasswordConfirmation"] {
		log.Error("password confirmation mismatch")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("passwords do not match"))
		return
	}
	if !checks.DoesPasswordMeetRequirements(newPassword) {
		log.Error("password too weak")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("password does not meet requirements"))
		return
	}

	if err := h.service.UpdatePassword(r.Context(), uid, submission["currentPassword"], newPassword); err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			log.Error("invalid current password")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid current password"))
			return
		}
		log.Error("failed to update password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update password"))
		return
	}

	log.Info("password updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("password", messages.ChangeVerbUpdated)))
}
