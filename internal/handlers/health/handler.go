package health

import (
	"net/http"

	"casitas/infras/otel"
	"casitas/infras/postgres"
	"casitas/shared/constant"
	"casitas/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"

	"github.com/rs/zerolog/log"
)

type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
	otel  otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		redis: redis,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.GetHealth)
}

// GetHealth reports liveness of the service and its backing stores.
// @Summary Health check
// @Description Report the health of the service, database and cache.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status] "Service is healthy"
// @Failure 503 {object} response.Message "Service is unhealthy"
// @Router /v1/health [get]
func (handler *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHealth")
	defer scope.End()

	status := Status{
		Status:   "ok",
		Database: "ok",
		Cache:    "ok",
	}

	if err := handler.db.Write.PingContext(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("database ping failed")

		status.Database = "unreachable"
	}

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("redis ping failed")

		status.Cache = "unreachable"
	}

	if status.Database != "ok" || status.Cache != "ok" {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
