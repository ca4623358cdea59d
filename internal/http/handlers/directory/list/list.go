// Package list реализует публичный HTTP-обработчик каталога компаний.
//
// В каталог попадают только подтвержденные учетные записи с полностью
// заполненным профилем. Ответ кэшируется в Redis. У компаний с платным
// размещением дополнительно показываются сайт и описание.
package list

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vendor-directory/internal/cache"
	"github.com/magabrotheeeer/vendor-directory/internal/checks"
	"github.com/magabrotheeeer/vendor-directory/internal/http/response"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

const cacheTTL = 5 * time.Minute

// Repository описывает контракт выборки компаний для каталога.
type Repository interface {
	ListVendors(ctx context.Context, state string, limit, offset int) ([]*models.Account, error)
}

// Entry — одна компания в публичном каталоге.
type Entry struct {
	CompanyName        string              `json:"companyName"`
	CompanyPhone       string              `json:"companyPhone"`
	CompanyCity        string              `json:"companyCity"`
	CompanyState       string              `json:"companyState"`
	CompanyZip         string              `json:"companyZip"`
	Services           models.ServiceFlags `json:"services"`
	IsPremium          bool                `json:"isPremium"`
	CompanyWebsite     string              `json:"companyWebsite,omitempty"`
	CompanyDescription string              `json:"companyDescription,omitempty"`
}

// Handler обрабатывает HTTP-запросы к публичному каталогу.
type Handler struct {
	log   *slog.Logger
	repo  Repository
	cache *cache.Cache
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, repo Repository, cache *cache.Cache) *Handler {
	return &Handler{
		log:   log,
		repo:  repo,
		cache: cache,
	}
}

// ServeHTTP godoc
// @Summary Публичный каталог компаний
// @Description Возвращает список компаний с заполненным профилем, с фильтром по штату.
// @Tags Directory
// @Produce  json
// @Param state query string false "Фильтр по штату, например CA"
// @Param limit query int false "Количество записей, по умолчанию 25"
// @Param offset query int false "Смещение, по умолчанию 0"
// @Success 200 {object} response.Response "Список компаний"
// @Failure 400 {object} response.ErrorResponse "Некорректный штат"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /vendors [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.directory.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := r.URL.Query().Get("state")
	if !checks.IsStateValid(state) {
		log.Error("invalid state filter", slog.String("state", state))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid state"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 25
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	cacheKey := fmt.Sprintf("vendors:%s:%d:%d", state, limit, offset)
	var entries []Entry
	if h.cache != nil {
		found, err := h.cache.Get(cacheKey, &entries)
		if err != nil {
			log.Error("failed to read listing cache", sl.Err(err))
		}
		if found {
			log.Info("listing served from cache", slog.String("key", cacheKey))
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"count":   len(entries),
				"vendors": entries,
			}))
			return
		}
	}

	accounts, err := h.repo.ListVendors(r.Context(), state, limit, offset)
	if err != nil {
		log.Error("failed to list vendors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list vendors"))
		return
	}

	now := time.Now().UTC()
	entries = make([]Entry, 0, len(accounts))
	for _, acc := range accounts {
		entry := Entry{
			CompanyName:  acc.CompanyName,
			CompanyPhone: acc.CompanyPhone,
			CompanyCity:  acc.CompanyCity,
			CompanyState: acc.CompanyState,
			CompanyZip:   acc.CompanyZip,
			Services:     acc.Services,
		}
		// Сайт и описание показываются только при действующем платном
		// размещении.
		if acc.LifecycleState(now) == models.StatePremium {
			entry.IsPremium = true
			entry.CompanyWebsite = acc.CompanyWebsite
			entry.CompanyDescription = acc.CompanyDescription
		}
		entries = append(entries, entry)
	}

	if h.cache != nil {
		if err := h.cache.Set(cacheKey, entries, cacheTTL); err != nil {
			log.Error("failed to write listing cache", sl.Err(err))
		}
	}

	log.Info("listing served", slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(entries),
		"vendors": entries,
	}))
}
