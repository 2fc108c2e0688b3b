package snaps

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/logging"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
)

const (
	maxBodyBytes   = 1 << 20
	maxDetailBytes = 2048
)

// Client reads lane volumes from the SNAPS stats.xml data service.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(cfg *config.SnapsConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // the SNAPS host serves an untrusted chain
	}

	return &Client{
		baseURL:  cfg.URL,
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// FetchCounts returns per-lane volumes for the location group stationID over
// window. A response without statistics is reported as ErrDataUnavailable
// carrying the response text.
func (c *Client) FetchCounts(ctx context.Context, stationID string, window domain.MeasurementWindow) (domain.LaneCounts, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	q := u.Query()
	q.Set("userName", c.username)
	q.Set("password", c.password)
	q.Set("startTime", strconv.FormatInt(window.StartEpochUTC, 10))
	q.Set("period", strconv.FormatInt(window.DurationSeconds, 10))
	q.Set("locationGroup", stationID)
	u.RawQuery = q.Encode()

	logURL := redact(u)

	ctx, span := tracing.StartExternalAPISpan(ctx, "snaps.stats", logURL)
	defer span.End()

	slog.DebugContext(ctx, "fetching counts from SNAPS",
		slog.String("url", logURL),
		slog.String("station_id", stationID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: status %d: %s", domain.ErrDataUnavailable, resp.StatusCode, detail(body))
		tracing.RecordResult(span, err)
		return nil, err
	}

	counts, err := parseStatistics(body)
	tracing.RecordResult(span, err)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "fetched counts from SNAPS",
		slog.String("station_id", stationID),
		slog.Int64("start_epoch_utc", window.StartEpochUTC),
		slog.Int64("duration_seconds", window.DurationSeconds),
		slog.Any("counts", counts),
	)

	return counts, nil
}

func parseStatistics(body []byte) (domain.LaneCounts, error) {
	var doc statistics
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDataUnavailable, detail(body))
	}

	counts := domain.LaneCounts{}
	for _, a := range doc.Approaches {
		for _, l := range a.Lanes {
			volume, err := strconv.Atoi(strings.TrimSpace(l.Stat.Volume))
			if err != nil {
				return nil, fmt.Errorf("%w: lane %q volume %q", domain.ErrDataUnavailable, l.Name, l.Stat.Volume)
			}
			counts[l.Name] = volume
		}
	}

	return counts, nil
}

func detail(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxDetailBytes {
		s = s[:maxDetailBytes] + "..."
	}
	if s == "" {
		s = "empty response"
	}
	return s
}

func redact(u *url.URL) string {
	r := *u
	q := r.Query()
	if q.Has("password") {
		q.Set("password", "REDACTED")
	}
	r.RawQuery = q.Encode()
	return r.String()
}
