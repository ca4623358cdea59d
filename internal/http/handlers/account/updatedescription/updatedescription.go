// Package updatedescription реализует HTTP-обработчик изменения описания
// компании. Поле необязательное и доступно только с платным размещением.
package updatedescription

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// Service описывает интерфейс бизнес-логики изменения описания компании.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdateDescription(ctx context.Context, uid, description string) error
}

// Handler обрабатывает HTTP-запросы на изменение описания компании.
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
// @Summary Изменение описания компании
// @Description Сохраняет или удаляет описание компании. Доступно только с платным размещением.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы описания"
// @Success 200 {object} response.Response "Описание сохранено"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется платное размещение"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/description [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updatedescription"

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

	if !checks.IsAllContentGenuine(models.AddChangeCompanyDescriptionFields, submission) ||
		!checks.IsAllContentSubmitted(models.AddChangeCompanyDescriptionFields, submission) ||
		!checks.IsDeletePropertyCorrectlySet(submission) {
		log.Error("form submission rejected")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form submission"))
		return
	}

	acc, err := h.service.GetAccount(r.Context(), uid)
	if err != nil {
		log.Error("failed to get account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get account"))
		return
	}

	if acc.LifecycleState(time.Now().UTC()) != models.StatePremium {
		log.Error("premium listing required", slog.String("account_uid", uid))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("premium listing required"))
		return
	}

	if submission[models.FieldDeleteProperty] == "true" {
		if acc.CompanyDescription == "" {
			render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("description")))
			return
		}
		if err := h.service.UpdateDescription(r.Context(), uid, ""); err != nil {
			log.Error("failed to delete description", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete description"))
			return
		}
		log.Info("description deleted", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("description", messages.ChangeVerbDeleted)))
		return
	}

	description := submission[models.FieldCompanyDescription]
	if description == "" {
		log.Error("empty description")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("description is required"))
		return
	}

	if acc.CompanyDescription == description {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("description")))
		return
	}

	if err := h.service.UpdateDescription(r.Context(), uid, description); err != nil {
		log.Error("failed to update description", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update description"))
		return
	}

	verb := messages.ChangeVerbUpdated
	if acc.CompanyDescription == "" {
		verb = messages.ChangeVerbAdded
	}

	log.Info("description updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("description", verb)))
}
