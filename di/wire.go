//go:build wireinject
// +build wireinject

package di

import (
	"casitas/config"
	"casitas/infras/jwt"
	"casitas/infras/kafka"
	"casitas/infras/otel"
	"casitas/infras/places"
	"casitas/infras/postgres"
	"casitas/infras/redis"
	"casitas/infras/s3"
	"casitas/permissions"
	"casitas/shared/cache"
	"casitas/transport/http"
	"casitas/transport/http/middleware"
	"casitas/transport/http/router"

	"github.com/google/wire"

	authService "casitas/internal/domains/auth/service"
	bookingRepository "casitas/internal/domains/booking/repository"
	bookingService "casitas/internal/domains/booking/service"
	inquiryRepository "casitas/internal/domains/inquiry/repository"
	inquiryService "casitas/internal/domains/inquiry/service"
	propertyRepository "casitas/internal/domains/property/repository"
	propertyService "casitas/internal/domains/property/service"
	reviewService "casitas/internal/domains/review/service"
	roomRepository "casitas/internal/domains/room/repository"
	roomService "casitas/internal/domains/room/service"
	userRepository "casitas/internal/domains/user/repository"
	userService "casitas/internal/domains/user/service"

	authHandler "casitas/internal/handlers/auth"
	bookingHandler "casitas/internal/handlers/booking"
	healthHandler "casitas/internal/handlers/health"
	inquiryHandler "casitas/internal/handlers/inquiry"
	profileHandler "casitas/internal/handlers/profile"
	propertyHandler "casitas/internal/handlers/property"
	reviewHandler "casitas/internal/handlers/review"
	roomHandler "casitas/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	places.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var reviewDomain = wire.NewSet(
	reviewService.New,
)

var accountDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	propertyDomain,
	roomDomain,
	bookingDomain,
	inquiryDomain,
	reviewDomain,
	accountDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	propertyHandler.New,
	roomHandler.New,
	bookingHandler.New,
	inquiryHandler.New,
	reviewHandler.New,
	profileHandler.New,
	healthHandler.New,
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
