// Package updateservices реализует HTTP-обработчик изменения перечня услуг
// компании. Форма присылает все услуги сразу, значения строго "true" или
// "false".
package updateservices

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

// Service описывает интерфейс бизнес-логики изменения услуг.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdateServices(ctx context.Context, uid string, services models.ServiceFlags) error
}

// Handler обрабатывает HTTP-запросы на изменение перечня услуг.
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
// @Summary Изменение перечня услуг компании
// @Description Сохраняет или очищает перечень услуг компании.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы услуг"
// @Success 200 {object} response.Response "Перечень услуг сохранен"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/services [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updateservices"

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

	if !checks.IsAllContentGenuine(models.AddChangeCompanyServicesFields, submission) ||
		!checks.IsAllContentSubmitted(models.AddChangeCompanyServicesFields, submission) ||
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
		if !acc.Services.Any() {
			render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("services")))
			return
		}
		if err := h.service.UpdateServices(r.Context(), uid, models.ServiceFlags{}); err != nil {
			log.Error("failed to delete services", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete services"))
			return
		}
		log.Info("services deleted", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("services", messages.ChangeVerbDeleted)))
		return
	}

	// Форма присылает строки, значения приводятся к строгим булевым:
	// все прочее остается как есть и отклоняется проверкой значений.
	cleaned := make(map[string]any, len(submission))
	for key, value := range submission {
		switch value {
		case "true":
			cleaned[key] = true
		case "false":
			cleaned[key] = false
		default:
			cleaned[key] = value
		}
	}

	if !checks.AreServiceValuesValid(cleaned) {
		log.Error("invalid service values")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid service values"))
		return
	}
	if !checks.IsAtLeastOneServiceFilled(cleaned) {
		log.Error("no services selected")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("at least one service is required"))
		return
	}

	submitted := make(models.ServiceFlags, len(models.ListOfServices()))
	var enabled []models.Service
	for _, service := range models.ListOfServices() {
		value := cleaned[string(service)] == true
		submitted[service] = value
		if value {
			enabled = append(enabled, service)
		}
	}

	if checks.AreServicesUnchanged(acc.Services, submitted) {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("services")))
		return
	}

	if err := h.service.UpdateServices(r.Context(), uid, submitted); err != nil {
		log.Error("failed to update services", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update services"))
		return
	}

	verb := messages.ChangeVerbUpdated
	if checks.WereServicesAdded(enabled, acc.Services) {
		verb = messages.ChangeVerbAdded
	}

	draft := models.DraftFromAccount(acc)
	draft.Services = submitted

	log.Info("services updated", slog.String("account_uid", uid), slog.Int("enabled", len(enabled)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":          messages.SuccessfulChange("services", verb),
		"profile_complete": checks.AreAllAccountPropertiesFilled(draft, models.FieldCompanyServices),
	}))
}
