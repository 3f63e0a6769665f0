// Package smarkets fetches the day's football events from the Smarkets
// exchange. It supplies the fixture slugs and competitor names the insight
// composer keys on.
package smarkets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/matchscreener/matchscreener/internal/platform/logging"
	"github.com/matchscreener/matchscreener/internal/platform/resilience"
	"github.com/matchscreener/matchscreener/internal/usecase"
)

const (
	defaultBaseURL       = "https://api.smarkets.com/v3"
	defaultEventLimit    = 300
	competitorsChunkSize = 300
	eventURLPrefix       = "https://smarkets.com/event/"
)

var errTransient = crerr.New("smarkets transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type rawEvent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StartDatetime string `json:"start_datetime"`
	State         string `json:"state"`
	FullSlug      string `json:"full_slug"`
}

type eventsEnvelope struct {
	Events []rawEvent `json:"events"`
}

type eventDetailEnvelope struct {
	Event *rawEvent `json:"event"`
	rawEvent
}

type rawCompetitor struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
}

type competitorsEnvelope struct {
	Competitors []rawCompetitor `json:"competitors"`
}

// FetchEvents lists the day's football events. day is "YYYY-MM-DD" in UTC;
// empty means today.
func (c *Client) FetchEvents(ctx context.Context, day string, limit int) ([]usecase.MarketEvent, error) {
	start, end, err := dayBounds(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	if limit <= 0 {
		limit = defaultEventLimit
	}

	query := url.Values{}
	query.Set("inplay_enabled", "true")
	query.Add("state", "new")
	query.Add("state", "upcoming")
	query.Add("state", "live")
	query.Set("type", "football_match")
	query.Set("type_domain", "football")
	query.Set("type_scope", "single_event")
	query.Set("with_new_type", "true")
	query.Set("start_datetime_min", start)
	query.Set("start_datetime_max", end)
	query.Set("sort", "start_datetime,id")
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("include_hidden", "false")

	var envelope eventsEnvelope
	if err := c.doJSON(ctx, "/events/", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch events day=%s: %w", day, err)
	}

	events := make([]usecase.MarketEvent, 0, len(envelope.Events))
	for _, e := range envelope.Events {
		events = append(events, normalizeEvent(e))
	}
	return events, nil
}

// FetchEventDetail returns one event by id.
func (c *Client) FetchEventDetail(ctx context.Context, eventID string) (usecase.MarketEvent, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return usecase.MarketEvent{}, fmt.Errorf("%w: event id is required", usecase.ErrInvalidInput)
	}

	// The detail endpoint returns either {"event": {...}} or a flat object.
	var envelope eventDetailEnvelope
	if err := c.doJSON(ctx, "/events/"+url.PathEscape(eventID)+"/", nil, &envelope); err != nil {
		return usecase.MarketEvent{}, fmt.Errorf("fetch event %s: %w", eventID, err)
	}

	raw := envelope.rawEvent
	if envelope.Event != nil {
		raw = *envelope.Event
	}
	if raw.ID == "" {
		return usecase.MarketEvent{}, fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
	}
	return normalizeEvent(raw), nil
}

// EnrichCompetitors overlays exchange competitor names onto events, batching
// lookups. Enrichment is best effort; events whose lookup fails keep their
// name-derived teams.
func (c *Client) EnrichCompetitors(ctx context.Context, events []usecase.MarketEvent) []usecase.MarketEvent {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		if e.ID != "" {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return events
	}

	type pair struct{ home, away string }
	byEvent := make(map[string]pair, len(ids))

	for start := 0; start < len(ids); start += competitorsChunkSize {
		end := min(start+competitorsChunkSize, len(ids))
		chunk := ids[start:end]

		var envelope competitorsEnvelope
		path := "/events/" + strings.Join(chunk, ",") + "/competitors/"
		if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
			c.logger.WarnContext(ctx, "smarkets competitor lookup failed", "events", len(chunk), "error", err)
			continue
		}

		for _, comp := range envelope.Competitors {
			if comp.EventID == "" {
				continue
			}
			entry := byEvent[comp.EventID]
			switch comp.Type {
			case "home":
				entry.home = comp.Name
			case "away":
				entry.away = comp.Name
			}
			byEvent[comp.EventID] = entry
		}
	}

	out := make([]usecase.MarketEvent, len(events))
	for i, e := range events {
		if entry, ok := byEvent[e.ID]; ok {
			if entry.home != "" {
				e.Home = entry.home
			}
			if entry.away != "" {
				e.Away = entry.away
			}
		}
		out[i] = e
	}
	return out
}

func normalizeEvent(raw rawEvent) usecase.MarketEvent {
	e := usecase.MarketEvent{
		ID:       raw.ID,
		Name:     raw.Name,
		Start:    raw.StartDatetime,
		State:    raw.State,
		FullSlug: raw.FullSlug,
	}
	if home, away, ok := strings.Cut(raw.Name, " vs "); ok {
		e.Home = home
		e.Away = away
	}
	if raw.ID != "" && raw.FullSlug != "" {
		// full_slug starts with /sport/... so it appends directly.
		e.EventURL = eventURLPrefix + raw.ID + raw.FullSlug
	}
	return e
}

func dayBounds(day string) (string, string, error) {
	var d time.Time
	if day == "" {
		d = time.Now().UTC()
	} else {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			return "", "", fmt.Errorf("parse day %q: %v", day, err)
		}
		d = parsed
	}
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	const layout = "2006-01-02T15:04:05"
	return start.Format(layout), end.Format(layout), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "smarkets circuit breaker rejected request", "path", path)
			return fmt.Errorf("%w: live market provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "smarkets request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
