//go:build wireinject
// +build wireinject

package di

import (
	"cheapticket/config"
	"cheapticket/infras/jwt"
	"cheapticket/infras/kafka"
	"cheapticket/infras/mail"
	"cheapticket/infras/metrics"
	"cheapticket/infras/otel"
	"cheapticket/infras/postgres"
	"cheapticket/infras/redis"
	"cheapticket/infras/s3"
	authService "cheapticket/internal/domains/auth/service"
	bookingRepository "cheapticket/internal/domains/booking/repository"
	bookingService "cheapticket/internal/domains/booking/service"
	otpLogRepository "cheapticket/internal/domains/otplog/repository"
	otpLogService "cheapticket/internal/domains/otplog/service"
	supportService "cheapticket/internal/domains/support/service"
	userRepository "cheapticket/internal/domains/user/repository"
	userService "cheapticket/internal/domains/user/service"
	authHandler "cheapticket/internal/handlers/auth"
	bookingHandler "cheapticket/internal/handlers/booking"
	otpLogHandler "cheapticket/internal/handlers/otplog"
	supportHandler "cheapticket/internal/handlers/support"
	userHandler "cheapticket/internal/handlers/user"
	"cheapticket/permissions"
	"cheapticket/shared/cache"
	"cheapticket/transport/http"
	"cheapticket/transport/http/middleware"
	"cheapticket/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	mail.New,
	kafka.New,
	s3.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var otpLogDomain = wire.NewSet(
	otpLogRepository.New,
	otpLogService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var supportDomain = wire.NewSet(
	supportService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.NewRepositories,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	otpLogDomain,
	authDomain,
	supportDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	supportHandler.New,
	bookingHandler.New,
	userHandler.New,
	otpLogHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
