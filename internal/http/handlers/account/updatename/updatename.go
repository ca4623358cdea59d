// Package updatename реализует HTTP-обработчик изменения названия компании.
package updatename

import (
	"context"
	"encoding/json"
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
)

// Service описывает интерфейс бизнес-логики изменения названия компании.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdateName(ctx context.Context, uid, name string) error
}

// Handler обрабатывает HTTP-запросы на изменение названия компании.
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
// @Summary Изменение названия компании
// @Description Сохраняет или удаляет название компании.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы названия"
// @Success 200 {object} response.Response "Название сохранено"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/name [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updatename"

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

	if !checks.IsAllContentGenuine(models.AddChangeCompanyNameFields, submission) ||
		!checks.IsAllContentSubmitted(models.AddChangeCompanyNameFields, submission) ||
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

	if submission[models.FieldDeleteProperty] == "true" {
		if acc.CompanyName == "" {
			render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("name")))
			return
		}
		if err := h.service.UpdateName(r.Context(), uid, ""); err != nil {
			log.Error("failed to delete company name", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete company name"))
			return
		}
		log.Info("company name deleted", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("name", messages.ChangeVerbDeleted)))
		return
	}

	name := submission[models.FieldCompanyName]
	if name == "" {
		log.Error("empty company name")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("company name is required"))
		return
	}

	if acc.CompanyName == name {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("name")))
		return
	}

	if err := h.service.UpdateName(r.Context(), uid, name); err != nil {
		log.Error("failed to update company name", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update company name"))
		return
	}

	verb := messages.ChangeVerbUpdated
	if acc.CompanyName == "" {
		verb = messages.ChangeVerbAdded
	}

	draft := models.DraftFromAccount(acc)
	draft.CompanyName = name

	log.Info("company name updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":          messages.SuccessfulChange("name", verb),
		"profile_complete": checks.AreAllAccountPropertiesFilled(draft, models.FieldCompanyName),
	}))
}
