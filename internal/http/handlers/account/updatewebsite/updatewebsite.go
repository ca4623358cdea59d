// Package updatewebsite реализует HTTP-обработчик изменения сайта компании.
// Поле необязательное и доступно только с платным размещением. Перед
// сохранением сайт проверяется на доступность.
package updatewebsite

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
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

// Service описывает интерфейс бизнес-логики изменения сайта компании.
type Service interface {
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	UpdateWebsite(ctx context.Context, uid, website string) error
}

// Handler обрабатывает HTTP-запросы на изменение сайта компании.
type Handler struct {
	log        *slog.Logger
	service    Service
	httpClient *http.Client
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ServeHTTP godoc
// @Summary Изменение сайта компании
// @Description Проверяет доступность сайта и сохраняет его. Доступно только с платным размещением.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body map[string]string true "Поля формы сайта"
// @Success 200 {object} response.Response "Сайт сохранен или признан недоступным"
// @Failure 400 {object} response.ErrorResponse "Некорректные поля формы"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется платное размещение"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account/website [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.updatewebsite"

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

	if !checks.IsAllContentGenuine(models.AddChangeCompanyWebsiteFields, submission) ||
		!checks.IsAllContentSubmitted(models.AddChangeCompanyWebsiteFields, submission) ||
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
		if acc.CompanyWebsite == "" {
			render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("website")))
			return
		}
		if err := h.service.UpdateWebsite(r.Context(), uid, ""); err != nil {
			log.Error("failed to delete website", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete website"))
			return
		}
		log.Info("website deleted", slog.String("account_uid", uid))
		render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("website", messages.ChangeVerbDeleted)))
		return
	}

	website := submission[models.FieldCompanyWebsite]
	if website == "" {
		log.Error("empty website")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("website is required"))
		return
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "http://" + website
	}

	if acc.CompanyWebsite == website {
		render.JSON(w, r, response.StatusOKWithMessage(messages.NoChange("website")))
		return
	}

	if !h.isWebsiteActive(r.Context(), website) {
		log.Info("website appears inactive", slog.String("website", website))
		render.JSON(w, r, response.StatusOKWithMessage(messages.URLNotActiveMessage))
		return
	}

	if err := h.service.UpdateWebsite(r.Context(), uid, website); err != nil {
		log.Error("failed to update website", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update website"))
		return
	}

	verb := messages.ChangeVerbUpdated
	if acc.CompanyWebsite == "" {
		verb = messages.ChangeVerbAdded
	}

	log.Info("website updated", slog.String("account_uid", uid))
	render.JSON(w, r, response.StatusOKWithMessage(messages.SuccessfulChange("website", verb)))
}

// isWebsiteActive выполняет пробный запрос к сайту компании.
func (h *Handler) isWebsiteActive(ctx context.Context, website string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, website, nil)
	if err != nil {
		return false
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode < http.StatusInternalServerError
}
