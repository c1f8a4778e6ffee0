// Package coaching is the typed client for AI coaching advice derived
// from a player's analysis history.
package coaching

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/apicall"
	"github.com/pitchside/pitchside-go/transport"
)

// Session is one scheduled drill block of a weekly training plan.
type Session struct {
	Day       string `json:"day"`
	Duration  string `json:"duration"`
	Focus     string `json:"focus"`
	Intensity string `json:"intensity"` // Low | Medium | High
}

// TrainingPlan is a week of position-tailored sessions.
type TrainingPlan struct {
	Week     int       `json:"week"`
	Position string    `json:"position"`
	Sessions []Session `json:"sessions"`
}

// Achievement is a coaching insight pinned to the user's profile.
type Achievement struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	CreatedAt   string `json:"created_at"`
}

// Client performs coaching calls over the primary dispatcher. Every
// method takes an optional userID; empty means the current user.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[coaching.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Plan returns the personalized training plan. The document shape is
// pipeline-defined, so callers get it raw.
func (c *Client) Plan(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.fetch(ctx, "/coaching/plan", userID)
}

// Position returns position-specific drills and guidance.
func (c *Client) Position(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.fetch(ctx, "/coaching/position", userID)
}

// Strengths returns the pipeline's view of what the player does well.
func (c *Client) Strengths(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.fetch(ctx, "/coaching/strengths", userID)
}

// Weaknesses returns the areas the pipeline flags for improvement.
func (c *Client) Weaknesses(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.fetch(ctx, "/coaching/weaknesses", userID)
}

// Weekly returns a week of training sessions. Position is optional;
// the backend defaults it when empty.
func (c *Client) Weekly(ctx context.Context, position string) (TrainingPlan, error) {
	var query url.Values
	if position != "" {
		query = url.Values{}
		query.Set("position", position)
	}
	return apicall.JSON[TrainingPlan](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/coaching/training-plan",
		Query:        query,
		RequiresAuth: true,
	})
}

// Motivation returns the pipeline's motivational insight as text.
func (c *Client) Motivation(ctx context.Context, userID string) (string, error) {
	var query url.Values
	if userID != "" {
		query = url.Values{}
		query.Set("user_id", userID)
	}
	res, err := apicall.JSON[struct {
		Motivation string `json:"motivation"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/coaching/motivation",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return "", err
	}
	return res.Motivation, nil
}

// SaveAchievement pins a coaching insight to the user's profile and
// returns the stored record.
func (c *Client) SaveAchievement(ctx context.Context, title, description, icon string) (Achievement, error) {
	res, err := apicall.JSON[struct {
		Achievement Achievement `json:"achievement"`
	}](ctx, c.d, transport.Request{
		Method: http.MethodPost,
		Path:   "/coaching/save-achievement",
		Body: map[string]string{
			"title":       title,
			"description": description,
			"icon":        icon,
		},
		RequiresAuth: true,
	})
	if err != nil {
		return Achievement{}, err
	}
	return res.Achievement, nil
}

// History returns the user's past coaching records, newest first. The
// record shape is pipeline-defined, so callers get them raw.
func (c *Client) History(ctx context.Context) ([]json.RawMessage, error) {
	res, err := apicall.JSON[struct {
		Records []json.RawMessage `json:"coaching_history"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/coaching/history",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

func (c *Client) fetch(ctx context.Context, path, userID string) (json.RawMessage, error) {
	var query url.Values
	if userID != "" {
		query = url.Values{}
		query.Set("user_id", userID)
	}
	return apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         path,
		Query:        query,
		RequiresAuth: true,
	})
}
