// Package footballdata downloads historical results feeds from
// football-data.co.uk as CSV frames: per-division europe season files, the
// cross-division latest-results file, and the world-leagues extra files.
package footballdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/matchscreener/matchscreener/internal/ingest"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
	"github.com/matchscreener/matchscreener/internal/usecase"
)

const defaultBaseURL = "https://www.football-data.co.uk"

// ErrFeedUnavailable marks a feed that could not be fetched; callers decide
// whether to fall back (previous season) or skip the feed.
var ErrFeedUnavailable = crerr.New("feed unavailable")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
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
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{httpClient: httpClient, baseURL: baseURL, logger: logger}
}

// FetchDivision downloads one division's season file, e.g. mmz4281/2526/E0.csv.
// seasonCode is the two-digit year pair used in feed paths ("2526").
func (c *Client) FetchDivision(ctx context.Context, seasonCode, division string) (ingest.Frame, error) {
	seasonCode = strings.TrimSpace(seasonCode)
	division = strings.TrimSpace(division)
	if seasonCode == "" {
		return ingest.Frame{}, fmt.Errorf("%w: season code is required", usecase.ErrInvalidInput)
	}
	if division == "" {
		return ingest.Frame{}, fmt.Errorf("%w: division is required", usecase.ErrInvalidInput)
	}
	return c.fetchFrame(ctx, fmt.Sprintf("/mmz4281/%s/%s.csv", seasonCode, division))
}

// FetchLatestResults downloads the cross-division latest results file for a
// season.
func (c *Client) FetchLatestResults(ctx context.Context, seasonCode string) (ingest.Frame, error) {
	seasonCode = strings.TrimSpace(seasonCode)
	if seasonCode == "" {
		return ingest.Frame{}, fmt.Errorf("%w: season code is required", usecase.ErrInvalidInput)
	}
	return c.fetchFrame(ctx, fmt.Sprintf("/mmz4281/%s/Latest_Results.csv", seasonCode))
}

// FetchWorldSeason downloads the world-leagues multi-season file.
func (c *Client) FetchWorldSeason(ctx context.Context) (ingest.Frame, error) {
	return c.fetchFrame(ctx, "/new/new_leagues_data.csv")
}

// FetchWorldLatest downloads the world-leagues latest results file.
func (c *Client) FetchWorldLatest(ctx context.Context) (ingest.Frame, error) {
	return c.fetchFrame(ctx, "/new/Latest_Results.csv")
}

func (c *Client) fetchFrame(ctx context.Context, path string) (ingest.Frame, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return ingest.Frame{}, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "text/csv, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ingest.Frame{}, crerr.Wrapf(ErrFeedUnavailable, "send request %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ingest.Frame{}, crerr.Wrapf(ErrFeedUnavailable, "%s status=%d", path, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); strings.Contains(strings.ToLower(ct), "html") {
		// The host serves an HTML error page with status 200 for some
		// unknown paths.
		return ingest.Frame{}, crerr.Wrapf(ErrFeedUnavailable, "%s returned html", path)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, 64<<20)); err != nil {
		return ingest.Frame{}, crerr.Wrapf(ErrFeedUnavailable, "read %s: %v", path, err)
	}

	frame, err := ingest.ReadFrame(bytes.NewReader(buf.B))
	if err != nil {
		return ingest.Frame{}, crerr.Wrapf(err, "parse %s", path)
	}

	c.logger.DebugContext(ctx, "feed fetched", "path", path, "rows", len(frame.Rows))
	return frame, nil
}
