package router

import (
	"casitas/internal/handlers/auth"
	"casitas/internal/handlers/booking"
	"casitas/internal/handlers/health"
	"casitas/internal/handlers/inquiry"
	"casitas/internal/handlers/profile"
	"casitas/internal/handlers/property"
	"casitas/internal/handlers/review"
	"casitas/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Property property.Handler
	Room     room.Handler
	Booking  booking.Handler
	Inquiry  inquiry.Handler
	Review   review.Handler
	Profile  profile.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
		r.DomainHandlers.Health.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
