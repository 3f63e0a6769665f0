package httpapi

import (
	"net/http"
	"strings"

	"github.com/matchscreener/matchscreener/internal/infrastructure/dataset"
)

func (h *Handler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportDataset")
	defer span.End()

	division := strings.TrimSpace(r.URL.Query().Get("div"))

	records, err := h.statsService.Export(ctx, division)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="matches.csv"`)
	w.WriteHeader(http.StatusOK)

	if err := dataset.Encode(w, records); err != nil {
		// Headers are already flushed; the truncated body is all we can
		// report to the client.
		h.logger.ErrorContext(ctx, "dataset export failed mid-stream", "rows", len(records), "error", err)
	}
}

func (h *Handler) RefreshDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshDataset")
	defer span.End()

	result, err := h.refreshService.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dataset refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.insightCache.Flush(ctx)
	h.logger.InfoContext(ctx, "dataset refreshed", "rows", result.Records, "season", result.SeasonCode)

	writeSuccess(ctx, w, http.StatusOK, result)
}
