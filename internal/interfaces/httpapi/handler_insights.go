package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matchscreener/matchscreener/internal/usecase"
)

// cachedInsights carries the computation time so cache hits can report a
// correct Age header.
type cachedInsights struct {
	Fixtures   []usecase.FixtureInsight
	ComputedAt time.Time
}

func (h *Handler) GetMatchInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchInsights")
	defer span.End()

	ids := splitCSVParam(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: ids parameter is required, e.g. ids=1,2", usecase.ErrInvalidInput))
		return
	}
	debug := parseBoolParam(r.URL.Query().Get("debug"))

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	key := fmt.Sprintf("insights:ids=%s:debug=%t", strings.Join(sorted, ","), debug)

	value, hit, err := h.insightCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		fixtures, err := h.insightService.GetMatchInsights(ctx, ids, debug)
		if err != nil {
			return nil, err
		}
		return cachedInsights{Fixtures: fixtures, ComputedAt: time.Now()}, nil
	})
	if err != nil {
		h.logger.WarnContext(ctx, "match insights failed", "ids", len(ids), "error", err)
		writeError(ctx, w, err)
		return
	}

	cached, ok := value.(cachedInsights)
	if !ok {
		writeInternalError(ctx, w)
		return
	}

	setCacheHeaders(w, h.insightTTL, hit, cached.ComputedAt)
	writeSuccess(ctx, w, http.StatusOK, cached.Fixtures)
}

func setCacheHeaders(w http.ResponseWriter, ttl time.Duration, hit bool, computedAt time.Time) {
	ttlSecs := int(ttl / time.Second)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", ttlSecs))
	w.Header().Set("X-Cache-TTL", strconv.Itoa(ttlSecs))
	if hit {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Age", strconv.Itoa(int(time.Since(computedAt)/time.Second)))
	} else {
		w.Header().Set("X-Cache", "MISS")
		w.Header().Set("Age", "0")
	}
}

func splitCSVParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolParam(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
