// Package resend реализует HTTP-обработчик повторной отправки письма
// подтверждения. Количество писем ограничено настройкой.
package resend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Request — структура входных данных для повторной отправки письма.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики повторной отправки.
type Service interface {
	ResendConfirmation(ctx context.Context, email string) error
}

// Handler обрабатывает HTTP-запросы на повторную отправку письма.
type Handler struct {
	log             *slog.Logger
	service         Service
	validate        *validator.Validate
	confirmationTTL time.Duration
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, confirmationTTL time.Duration) *Handler {
	return &Handler{
		log:             log,
		service:         service,
		validate:        validator.New(),
		confirmationTTL: confirmationTTL,
	}
}

// ServeHTTP godoc
// @Summary Повторная отправка письма подтверждения
// @Description Отправляет дополнительное письмо подтверждения, пока не исчерпан лимит.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта учетной записи"
// @Success 200 {object} response.Response "Письмо отправлено или лимит исчерпан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Учетная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /confirmation/resend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ResendConfirmation(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			log.Error("account not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
		case errors.Is(err, account.ErrConfirmationLimit):
			log.Error("confirmation email limit reached", slog.String("email", req.Email))
			expiration := fmt.Sprintf("%.0f hours", h.confirmationTTL.Hours())
			render.JSON(w, r, response.StatusOKWithMessage(messages.ConfirmationLimitReachedBody(
				req.Email, messages.ConfirmationEmailSubject, expiration, false)))
		default:
			log.Error("failed to resend confirmation email", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to resend confirmation email"))
		}
		return
	}

	log.Info("confirmation email resent", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithMessage(messages.ConfirmationSentBody(
		req.Email, messages.ConfirmationEmailSubject, false, false, true, false)))
}
