// Package register реализует HTTP-обработчик регистрации учетной записи компании.
//
// Форма регистрации принимается как набор полей, проверяется на подлинность
// (лишние или отсутствующие поля отклоняют всю отправку), после чего
// создается учетная запись и отправляется письмо подтверждения.
package register

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

	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, rawPassword string) (*account.RegisterResult, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
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
// @Summary Регистрация учетной записи компании
// @Description Создает учетную запись с неподтвержденной почтой и отправляет письмо подтверждения.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body map[string]string true "Поля формы регистрации"
// @Success 200 {object} response.Response "Письмо подтверждения отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или поля формы"
// @Failure 409 {object} response.ErrorResponse "Почта уже зарегистрирована"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var submission map[string]string
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if !checks.IsAllContentGenuine(models.RegisterFields, submission) ||
		!checks.IsAllContentSubmitted(models.RegisterFields, submission) {
		log.Error("form submission rejected")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form submission"))
		return
	}

	email := submission[models.FieldEmail]
	if err := h.validate.Var(email, "required,email"); err != nil {
		log.Error("email validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("field email must be a valid email address"))
		return
	}

	if submission["password"] != submission["passwordConfirmation"] {
		log.Error("password confirmation mismatch")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("passwords do not match"))
		return
	}

	if !checks.DoesPasswordMeetRequirements(submission["password"]) {
		log.Error("password too weak")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("password does not meet requirements"))
		return
	}
	log.Info("all fields are validated")

	result, err := h.service.Register(r.Context(), email, submission["password"])
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailExists):
			log.Error("email already registered", slog.String("email", email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("account with this email already exists"))
		case errors.Is(err, account.ErrConfirmationLimit):
			log.Error("confirmation email limit reached", slog.String("email", email))
			render.JSON(w, r, response.StatusOKWithMessage(messages.ConfirmationLimitReachedBody(
				email, messages.ConfirmationEmailSubject, h.expirationTime(), false)))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register account"))
		}
		return
	}

	log.Info("account registered", slog.String("email", email),
		slog.Bool("new_register", result.IsNewRegister))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"email": email,
		"message": messages.ConfirmationSentBody(email, messages.ConfirmationEmailSubject,
			result.IsNewRegister, result.IsUnverifiedMultipleRegisters, false, false),
	}))
}

func (h *Handler) expirationTime() string {
	return fmt.Sprintf("%.0f hours", h.confirmationTTL.Hours())
}
