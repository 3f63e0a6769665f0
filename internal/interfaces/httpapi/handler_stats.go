package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matchscreener/matchscreener/internal/domain/stats"
	"github.com/matchscreener/matchscreener/internal/usecase"
)

type headToHeadResponse struct {
	Stats   stats.H2HStats       `json:"stats"`
	Matches []stats.MatchSummary `json:"matches"`
}

type teamStatsQuery struct {
	Team   string `validate:"required,min=2,max=80"`
	League string `validate:"omitempty,max=8"`
	Window int    `validate:"gte=-1,lte=500"`
}

type headToHeadQuery struct {
	TeamA  string `validate:"required,min=2,max=80"`
	TeamB  string `validate:"required,min=2,max=80,nefield=TeamA"`
	League string `validate:"omitempty,max=8"`
	Window int    `validate:"gte=-1,lte=500"`
}

type leagueOverviewQuery struct {
	Code   string `validate:"required,min=1,max=8"`
	Window int    `validate:"gte=-1,lte=500"`
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	window, err := parseWindowParam(r.URL.Query().Get("window"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := teamStatsQuery{
		Team:   strings.TrimSpace(r.PathValue("team")),
		League: strings.TrimSpace(r.URL.Query().Get("league")),
		Window: window,
	}
	if err := h.validator.StructCtx(ctx, q); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	includeExamples := parseBoolParam(r.URL.Query().Get("examples"))

	result, err := h.statsService.TeamStats(ctx, q.Team, q.League, q.Window, includeExamples)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	window, err := parseWindowParam(r.URL.Query().Get("window"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := headToHeadQuery{
		TeamA:  strings.TrimSpace(r.URL.Query().Get("team_a")),
		TeamB:  strings.TrimSpace(r.URL.Query().Get("team_b")),
		League: strings.TrimSpace(r.URL.Query().Get("league")),
		Window: window,
	}
	if err := h.validator.StructCtx(ctx, q); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	agg, matches, err := h.statsService.HeadToHead(ctx, q.TeamA, q.TeamB, q.League, q.Window)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, headToHeadResponse{
		Stats:   agg,
		Matches: matches,
	})
}

func (h *Handler) GetLeagueOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueOverview")
	defer span.End()

	window, err := parseWindowParam(r.URL.Query().Get("window"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := leagueOverviewQuery{
		Code:   strings.TrimSpace(r.PathValue("code")),
		Window: window,
	}
	if err := h.validator.StructCtx(ctx, q); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.statsService.LeagueOverview(ctx, q.Code, q.Window)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

// parseWindowParam accepts an empty value (default window), "all" for an
// unbounded window, or a non-negative match count.
func parseWindowParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return 0, nil
	case "all":
		return -1, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: window must be a non-negative integer or \"all\"", usecase.ErrInvalidInput)
	}
	return n, nil
}
