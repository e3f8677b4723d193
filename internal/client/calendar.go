package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/classdeck/classdeck-api/pkg/config"
)

// CalendarClient reads the public school calendar feed. Only event titles
// are consumed downstream.
type CalendarClient struct {
	baseURL    string
	calendarID string
	apiKey     string
	httpClient *http.Client
}

// NewCalendarClient constructs a calendar feed client.
func NewCalendarClient(cfg config.CalendarConfig) *CalendarClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CalendarClient{
		baseURL:    cfg.BaseURL,
		calendarID: cfg.CalendarID,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type calendarEventsResponse struct {
	Items []struct {
		Summary string `json:"summary"`
	} `json:"items"`
}

// EventTitles lists the event titles for the UTC day window of the given
// ISO date (YYYY-MM-DD).
func (c *CalendarClient) EventTitles(ctx context.Context, date string) ([]string, error) {
	if c.calendarID == "" || c.apiKey == "" {
		return nil, fmt.Errorf("calendar feed not configured")
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("timeMin", date+"T00:00:00Z")
	params.Set("timeMax", date+"T23:59:59Z")
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(c.calendarID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}

	var payload calendarEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode calendar events: %w", err)
	}

	titles := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		titles = append(titles, item.Summary)
	}
	return titles, nil
}
