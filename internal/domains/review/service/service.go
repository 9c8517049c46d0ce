package service

import (
	"context"

	"casitas/config"
	"casitas/infras/otel"
	"casitas/infras/places"
	"casitas/shared"
	"casitas/shared/cache"
	"casitas/shared/constant"
	"casitas/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReviews = "review:get"
)

type Review interface {
	GetReviews(ctx context.Context, placeID string) (places.PlaceReviews, error)
}

type serviceImpl struct {
	places places.Client
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(placesClient places.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		places: placesClient,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

// GetReviews serves place reviews from cache, falling back to the external
// provider. Provider responses are cached so a provider outage degrades to
// stale data instead of errors.
func (s *serviceImpl) GetReviews(ctx context.Context, placeID string) (res places.PlaceReviews, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReviews")
	defer scope.End()
	defer scope.TraceIfError(err)

	if placeID == constant.Empty {
		return res, failure.BadRequestFromString("place_id is required") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetReviews, placeID)
	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.places.GetReviews(ctx, placeID)
	if err != nil {
		log.Error().Err(err).Str("place_id", placeID).Msg("failed to get place reviews")

		return res, failure.Upstream("review provider unavailable") // nolint:wrapcheck
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache place reviews")
	}

	return res, nil
}
