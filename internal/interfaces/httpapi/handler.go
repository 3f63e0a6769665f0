package httpapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matchscreener/matchscreener/internal/platform/cache"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
	"github.com/matchscreener/matchscreener/internal/usecase"
)

const defaultInsightTTL = 5 * time.Minute

type Handler struct {
	insightService *usecase.InsightService
	statsService   *usecase.StatsService
	refreshService *usecase.RefreshService
	insightCache   *cache.Store
	insightTTL     time.Duration
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	insightService *usecase.InsightService,
	statsService *usecase.StatsService,
	refreshService *usecase.RefreshService,
	insightTTL time.Duration,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if insightTTL <= 0 {
		insightTTL = defaultInsightTTL
	}

	return &Handler{
		insightService: insightService,
		statsService:   statsService,
		refreshService: refreshService,
		insightCache:   cache.NewStore(insightTTL),
		insightTTL:     insightTTL,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
