package review

import (
	"net/http"

	"casitas/infras/otel"
	"casitas/internal/domains/review/service"
	"casitas/shared/constant"
	"casitas/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Get("/{place_id}", handler.GetReviews)
	})
}

// GetReviews retrieves reviews for a place from the external provider.
// @Summary Get place reviews
// @Description Retrieve ratings and reviews for a place, served from cache when possible.
// @Tags Review
// @Accept json
// @Produce json
// @Param place_id path string true "External place ID"
// @Success 200 {object} response.Data[places.PlaceReviews] "Place reviews"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/reviews/{place_id} [get]
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	placeID := chi.URLParam(r, constant.RequestParamPlaceID)

	reviews, err := handler.service.GetReviews(ctx, placeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get place reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}
