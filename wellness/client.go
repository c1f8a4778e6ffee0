// Package wellness is the typed client for daily wellness tracking:
// water, sleep and calorie logging plus history, streaks and
// backend-generated recommendations.
package wellness

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/apicall"
	"github.com/pitchside/pitchside-go/transport"
)

// Entry is one day's wellness log.
type Entry struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	WaterML  int     `json:"water_ml"`
	SleepHrs float64 `json:"sleep_hours"`
	Calories int     `json:"calories"`
}

// LogParams record a day's values. A zero Date means today; the
// backend upserts per user and date.
type LogParams struct {
	Date     string  `json:"date,omitempty"`
	WaterML  int     `json:"water_ml"`
	SleepHrs float64 `json:"sleep_hours"`
	Calories int     `json:"calories"`
}

// WeeklyProgress aggregates the last seven days against targets.
type WeeklyProgress struct {
	WaterPct    float64 `json:"water_pct"`
	SleepPct    float64 `json:"sleep_pct"`
	CaloriesPct float64 `json:"calories_pct"`
	DaysLogged  int     `json:"days_logged"`
}

// Client performs wellness calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[wellness.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Log upserts a day's entry.
func (c *Client) Log(ctx context.Context, params LogParams) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/wellness/log",
		Body:         params,
		RequiresAuth: true,
	})
	return err
}

// Today returns today's entry; a day with no log comes back zeroed.
func (c *Client) Today(ctx context.Context) (Entry, error) {
	res, err := apicall.JSON[struct {
		Entry Entry `json:"entry"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/wellness/today",
		RequiresAuth: true,
	})
	if err != nil {
		return Entry{}, err
	}
	return res.Entry, nil
}

// History returns the last n days of entries, newest first.
func (c *Client) History(ctx context.Context, days int) ([]Entry, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	res, err := apicall.JSON[struct {
		Entries []Entry `json:"entries"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/wellness/history",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Entries, nil
}

// Recommendations returns the backend's free-form guidance. The shape
// varies by user state, so callers get the raw document.
func (c *Client) Recommendations(ctx context.Context) (json.RawMessage, error) {
	return apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/wellness/recommendations",
		RequiresAuth: true,
	})
}

// Weekly returns the seven-day progress summary.
func (c *Client) Weekly(ctx context.Context) (WeeklyProgress, error) {
	res, err := apicall.JSON[struct {
		Progress WeeklyProgress `json:"progress"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/wellness/weekly-progress",
		RequiresAuth: true,
	})
	if err != nil {
		return WeeklyProgress{}, err
	}
	return res.Progress, nil
}

// Streak returns the current consecutive-days-logged count.
func (c *Client) Streak(ctx context.Context) (int, error) {
	res, err := apicall.JSON[struct {
		Streak int `json:"streak"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/wellness/streak",
		RequiresAuth: true,
	})
	if err != nil {
		return 0, err
	}
	return res.Streak, nil
}
