// Package updateemail реализует HTTP-обработчик смены электронной почты.
// Смена требует подтверждения текущим паролем.
package updateemail

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Service описывает интерфейс бизнес-логики смены почты.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdateEmail(ctx context.Context, uid, newEmail, currentPassword string) error
}

// Handler обрабатывает HTTP-запросы на смену почты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена электронной почты
// @Description Меняет почту учетной записи после проверки текущего пароля.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы смены почты"
// @Success 200 {object} response.Response "Почта изменена"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы"
// @Failure 401 {object} response.ErrorResponse "Не авторизован или неверный пароль"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/email [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updateemail"

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

	if !checks.IsAllContentGenuine(models.ChangeEmailFields, submission) ||
		!checks.IsAllContentSubmitted(models.ChangeEmailFields, submission) {
		log.Error("form submission rejected")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form submission"))
		return
	}

	newEmail := submission[models.FieldEmail]
	if err := h.validate.Var(newEmail, "required,email"); err != nil {
		log.Error("email validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("field email must be a valid email address"))
		return
	}
	if newEmail != submission["emailConfirmation"] {
		log.Error("email confirmation mismatch")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("email addresses do not match"))
		return
	}

	acc, err := h.service.GetAccount(r.Context(), uid)
	if err != nil {
		log.Error("failed to get account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get account"))
		return
	}
	if acc.Email == newEmail {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("email")))
		return
	}

	if err := h.service.UpdateEmail(r.Context(), uid, newEmail, submission["currentPassword"]); err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			log.Error("invalid current password")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid current password"))
			return
		}
		log.Error("failed to update email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update email"))
		return
	}

	log.Info("email updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("email", messages.ChangeVerbUpdated)))
}
