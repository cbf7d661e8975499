package router

import (
	"net/http"

	"cheapticket/config"
	_ "cheapticket/docs"
	"cheapticket/infras/metrics"
	"cheapticket/internal/handlers/auth"
	"cheapticket/internal/handlers/booking"
	"cheapticket/internal/handlers/otplog"
	"cheapticket/internal/handlers/support"
	"cheapticket/internal/handlers/user"
	"cheapticket/shared/constant"
	"cheapticket/transport/http/middleware"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Support support.Handler
	Booking booking.Handler
	User    user.Handler
	OTPLog  otplog.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.AuthRole
	Config         *config.Config
	Metrics        *metrics.Metrics
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		chiMiddleware.StripSlashes,
	)

	if r.Config.App.CORS.Enable {
		router.Use(r.cors())
	}

	router.Use(r.App.Tracing, r.App.RequestLogger, r.App.Metrics)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})

	if r.Config.Metrics.Enable {
		router.Handle(r.Config.Metrics.Path, r.Metrics.Handler())
	}

	if r.Config.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		if r.Config.App.RateLimiter.Enable {
			routerGroup.Use(r.App.RateLimit())
		}

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Support.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			adminGroup.Use(r.Auth.APIKey, r.Auth.Auth, r.Auth.RBAC)

			r.DomainHandlers.User.Router(adminGroup)
			r.DomainHandlers.OTPLog.Router(adminGroup)
			r.DomainHandlers.Booking.AdminRouter(adminGroup)
		})
	})
}

func (r *Router) cors() func(http.Handler) http.Handler {
	corsConfig := r.Config.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	auth middleware.AuthRole,
	cfg *config.Config,
	metrics *metrics.Metrics,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
		Config:         cfg,
		Metrics:        metrics,
	}
}
