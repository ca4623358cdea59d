package vendordirectory

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/vendor-directory/internal/cache"
	"github.com/magabrotheeeer/vendor-directory/internal/config"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/read"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/remove"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updateaddress"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updatedescription"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updateemail"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updatename"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updatepassword"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updatephone"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updateservices"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/account/updatewebsite"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/auth/confirmation"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/auth/resend"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/directory/list"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/health"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/payment/checkoutcreate"
	"github.com/magabrotheeeer/vendor-directory/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/vendor-directory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/jwt"
	accountservice "github.com/magabrotheeeer/vendor-directory/internal/services/account"
	paymentservice "github.com/magabrotheeeer/vendor-directory/internal/services/payment"
	"github.com/magabrotheeeer/vendor-directory/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage, cacheRedis *cache.Cache, jwtMaker jwt.Maker,
	accountService *accountservice.Service, paymentService *paymentservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, accountService, cfg.ConfirmationTTL).ServeHTTP)
		r.Post("/login", login.New(logger, accountService).ServeHTTP)
		r.Get("/confirmation", confirmation.New(logger, accountService).ServeHTTP)
		r.Post("/confirmation/resend", resend.New(logger, accountService, cfg.ConfirmationTTL).ServeHTTP)
		r.Get("/vendors", list.New(logger, db, cacheRedis).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/account", read.New(logger, accountService, cfg.UpgradeCostInDollars).ServeHTTP)
			r.Delete("/account", remove.New(logger, accountService).ServeHTTP)
			r.Post("/account/address", updateaddress.New(logger, accountService).ServeHTTP)
			r.Post("/account/name", updatename.New(logger, accountService).ServeHTTP)
			r.Post("/account/description", updatedescription.New(logger, accountService).ServeHTTP)
			r.Post("/account/phone", updatephone.New(logger, accountService).ServeHTTP)
			r.Post("/account/services", updateservices.New(logger, accountService).ServeHTTP)
			r.Post("/account/website", updatewebsite.New(logger, accountService).ServeHTTP)
			r.Post("/account/email", updateemail.New(logger, accountService).ServeHTTP)
			r.Post("/account/password", updatepassword.New(logger, accountService).ServeHTTP)
			r.Post("/payments/checkout", checkoutcreate.New(logger, paymentService, cfg.UpgradeCostInDollars).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/payments/webhook", paymentwebhook.New(logger, paymentService, cfg.ProviderWebhookKey).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
