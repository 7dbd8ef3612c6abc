package profilefunctions

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/profile-functions/internal/http/handlers/health"
	"github.com/magabrotheeeer/profile-functions/internal/http/handlers/profile/read"
	"github.com/magabrotheeeer/profile-functions/internal/http/handlers/profile/write"
	"github.com/magabrotheeeer/profile-functions/internal/http/handlers/signup/admintoken"
	"github.com/magabrotheeeer/profile-functions/internal/http/handlers/signup/submission"
	"github.com/magabrotheeeer/profile-functions/internal/http/middlewarectx"
)

// ProfileService объединяет чтение и сверку профиля.
type ProfileService interface {
	read.Service
	write.Service
}

// SignupService объединяет обработку форм и проверку токена администратора.
type SignupService interface {
	submission.Service
	admintoken.Service
}

// Deps: зависимости маршрутов.
type Deps struct {
	Logger   *slog.Logger
	Parser   middlewarectx.Parser // nil: токены личности не принимаются
	Limiter  *rate.Limiter
	Profiles ProfileService
	Signup   SignupService
	Store    health.Pinger
	Registry *prometheus.Registry
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/.netlify/functions", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(d.Logger, d.Limiter))
		if d.Parser != nil {
			r.Use(middlewarectx.IdentityMiddleware(d.Parser, d.Logger))
		}

		// Метод проверяют сами обработчики, поэтому маршруты принимают любой метод.
		r.Handle("/get-user-data", read.New(d.Logger, d.Profiles))
		r.Handle("/set-user-data", write.New(d.Logger, d.Profiles))

		r.Post("/submission-created", submission.New(d.Logger, d.Signup).ServeHTTP)
		r.Get("/test-admin-token", admintoken.New(d.Logger, d.Signup).ServeHTTP)
	})

	r.Get("/healthz", health.New(d.Logger, d.Store).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
