// Package updateaddress реализует HTTP-обработчик изменения адреса компании.
//
// Введенный адрес нормализуется внешним сервисом: если нормализованный
// вариант совпадает с введенным, адрес сохраняется, иначе он возвращается
// пользователю для подтверждения.
package updateaddress

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
	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

// Service описывает интерфейс бизнес-логики изменения адреса.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdateAddress(ctx context.Context, uid, street, streetTwo, city, state, zip string) (*account.AddressUpdateResult, error)
	ClearAddress(ctx context.Context, uid string) error
}

// Handler обрабатывает HTTP-запросы на изменение адреса компании.
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
// @Summary Изменение адреса компании
// @Description Нормализует и сохраняет адрес либо возвращает нормализованный вариант для подтверждения.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы адреса"
// @Success 200 {object} response.Response "Адрес сохранен или предложен нормализованный вариант"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/address [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updateaddress"

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

	if !checks.IsAllContentGenuine(models.AddChangeCompanyAddressFields, submission) ||
		!checks.IsAllContentSubmitted(models.AddChangeCompanyAddressFields, submission) ||
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
		if acc.CompanyStreet == "" {
			render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("address")))
			return
		}
		if err := h.service.ClearAddress(r.Context(), uid); err != nil {
			log.Error("failed to clear address", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete address"))
			return
		}
		log.Info("address deleted", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("address", messages.ChangeVerbDeleted)))
		return
	}

	street := submission[models.FieldCompanyStreet]
	streetTwo := submission[models.FieldCompanyStreetTwo]
	city := submission[models.FieldCompanyCity]
	state := submission[models.FieldCompanyState]
	zip := submission[models.FieldCompanyZip]

	if street == "" || city == "" || state == "" || zip == "" {
		log.Error("required address fields are empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("street, city, state and zip are required"))
		return
	}
	if !checks.IsStateValid(state) {
		log.Error("invalid state", slog.String("state", state))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid state"))
		return
	}

	if acc.CompanyStreet == street && acc.CompanyStreetTwo == streetTwo &&
		acc.CompanyCity == city && acc.CompanyState == state && acc.CompanyZip == zip {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("address")))
		return
	}

	result, err := h.service.UpdateAddress(r.Context(), uid, street, streetTwo, city, state, zip)
	if err != nil {
		log.Error("failed to update address", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update address"))
		return
	}

	if !result.Saved {
		log.Info("normalized address differs, confirmation required", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"saved":      false,
			"normalized": result.Normalized,
			"message":    "We found a standardized version of your address. Please confirm it and submit again.",
		}))
		return
	}

	verb := messages.ChangeVerbUpdated
	if acc.CompanyStreet == "" {
		verb = messages.ChangeVerbAdded
	}

	draft := models.DraftFromAccount(acc)
	draft.CompanyStreet = street
	draft.CompanyStreetTwo = streetTwo
	draft.CompanyCity = city
	draft.CompanyState = state
	draft.CompanyZip = zip

	log.Info("address updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"saved":            true,
		"message":          messages.SuccessfulChange("address", verb),
		"profile_complete": checks.AreAllAccountPropertiesFilled(draft, models.FieldCompanyAddress),
	}))
}
