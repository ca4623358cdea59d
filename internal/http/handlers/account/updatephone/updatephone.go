// Package updatephone реализует HTTP-обработчик изменения телефона компании.
package updatephone

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

// Service описывает интерфейс бизнес-логики изменения телефона.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdatePhone(ctx context.Context, uid, phone string) error
}

// Handler обрабатывает HTTP-запросы на изменение телефона компании.
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
// @Summary Изменение телефона компании
// @Description Сохраняет или удаляет телефон компании после проверки номера.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы телефона"
// @Success 200 {object} response.Response "Телефон сохранен"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы или номер"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/phone [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updatephone"

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

	if !checks.IsAllContentGenuine(models.AddChangeCompanyPhoneFields, submission) ||
		!checks.IsAllContentSubmitted(models.AddChangeCompanyPhoneFields, submission) ||
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
		if acc.CompanyPhone == "" {
			render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("phone number")))
			return
		}
		if err := h.service.UpdatePhone(r.Context(), uid, ""); err != nil {
			log.Error("failed to delete phone", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete phone"))
			return
		}
		log.Info("phone deleted", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("phone number", messages.ChangeVerbDeleted)))
		return
	}

	phone := submission[models.FieldCompanyPhone]
	if !checks.IsPhoneValid(phone) {
		log.Error("invalid phone number")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid phone number"))
		return
	}

	if acc.CompanyPhone == phone {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("phone number")))
		return
	}

	if err := h.service.UpdatePhone(r.Context(), uid, phone); err != nil {
		log.Error("failed to update phone", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update phone"))
		return
	}

	verb := messages.ChangeVerbUpdated
	if acc.CompanyPhone == "" {
		verb = messages.ChangeVerbAdded
	}

	draft := models.DraftFromAccount(acc)
	draft.CompanyPhone = phone

	log.Info("phone updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":          messages.SuccessfulChange("phone number", verb),
		"profile_complete": checks.AreAllAccountPropertiesFilled(draft, models.FieldCompanyPhone),
	}))
}
