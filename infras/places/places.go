package places

//go:generate go run go.uber.org/mock/mockgen -source=./places.go -destination=./mocks/places_mock.go -package=mocks

import (
	"casitas/config"
	"casitas/infras/otel"
	"casitas/shared/constant"
	"casitas/shared/failure"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"context"
)

const (
	defaultTimeoutSeconds = 10

	otelAttrPlaceID = "place_id"
)

// Review is a single review entry as returned by the external place-review provider.
type Review struct {
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Time   int64   `json:"time"`
}

// PlaceReviews is the aggregate review payload for one place.
type PlaceReviews struct {
	PlaceID     string   `json:"place_id"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Reviews     []Review `json:"reviews"`
}

// Client fetches ratings and reviews for a place from the external review provider.
// The provider is treated as an opaque read-only data source.
type Client interface {
	GetReviews(ctx context.Context, placeID string) (PlaceReviews, error)
}

type clientImpl struct {
	config *config.Config
	otel   otel.Otel
	http   *http.Client
}

func New(cfg *config.Config, otl otel.Otel) Client {
	timeout := cfg.External.Places.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &clientImpl{
		config: cfg,
		otel:   otl,
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

func (c *clientImpl) GetReviews(ctx context.Context, placeID string) (res PlaceReviews, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".places.GetReviews")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrPlaceID, placeID)

	endpoint, err := url.Parse(c.config.External.Places.BaseURL)
	if err != nil {
		log.Error().Err(err).Msg("invalid places base URL")

		return res, fmt.Errorf("invalid places base URL: %w", err)
	}

	endpoint = endpoint.JoinPath("places", placeID, "reviews")

	query := endpoint.Query()
	query.Set("key", c.config.External.Places.APIKey)
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return res, fmt.Errorf("failed to build places request: %w", err)
	}

	response, err := c.http.Do(request)
	if err != nil {
		log.Error().Err(err).Str("placeID", placeID).Msg("failed to call review provider")

		return res, failure.Upstream("review provider unavailable") //nolint:wrapcheck
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return res, failure.NotFound("place not found") //nolint:wrapcheck
	}

	if response.StatusCode != http.StatusOK {
		log.Error().Int("status", response.StatusCode).Str("placeID", placeID).Msg("review provider returned an error")

		return res, failure.Upstream("review provider returned an error") //nolint:wrapcheck
	}

	if err = json.NewDecoder(response.Body).Decode(&res); err != nil {
		log.Error().Err(err).Str("placeID", placeID).Msg("failed to decode review provider response")

		return res, failure.Upstream("invalid review provider response") //nolint:wrapcheck
	}

	res.PlaceID = placeID

	return res, nil
}
