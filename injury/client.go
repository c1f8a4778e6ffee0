// Package injury is the typed client for injury reporting, recovery
// planning and progress tracking.
package injury

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/apicall"
	"github.com/pitchside/pitchside-go/transport"
)

// LogParams describe a new injury report. PainLevel runs 1-10.
type LogParams struct {
	InjuryType    string `json:"injury_type"` // e.g. hamstring, ankle_sprain, acl
	BodyPart      string `json:"body_part"`
	PainLevel     int    `json:"pain_level"`
	RecoveryStage string `json:"recovery_stage,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Date          string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

// Record is a logged injury with its recovery status.
type Record struct {
	ID            string `json:"_id"`
	UserID        string `json:"user_id"`
	InjuryType    string `json:"injury_type"`
	BodyPart      string `json:"body_part"`
	PainLevel     int    `json:"pain_level"`
	RecoveryStage string `json:"recovery_stage"`
	Notes         string `json:"notes"`
	DateInjured   string `json:"date_injured"`
	Status        string `json:"status"` // active | resolved
}

// PlanPhase is one stage of a recovery plan.
type PlanPhase struct {
	Phase      string   `json:"phase"`
	Days       string   `json:"days"`
	Activities []string `json:"activities"`
}

// RecoveryPlan is the backend's phased plan for an injury.
type RecoveryPlan struct {
	InjuryType string      `json:"injury_type"`
	Timeline   string      `json:"timeline"` // e.g. "2-3 weeks"
	Dos        []string    `json:"dos"`
	Donts      []string    `json:"donts"`
	Exercises  []PlanPhase `json:"exercises"`
}

// Exercise is one rehabilitation exercise suggestion.
type Exercise struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Sets     int    `json:"sets"`
	Rest     string `json:"rest"`
}

// Milestone is one step on an injury's recovery timeline.
type Milestone struct {
	Day       int    `json:"day"`
	Milestone string `json:"milestone"`
	Status    string `json:"status"` // pending | in_progress | done
}

// Timeline tracks one injury from the date it happened to expected
// full recovery.
type Timeline struct {
	InjuryID          string      `json:"injury_id"`
	DateInjured       string      `json:"date_injured"`
	EstimatedRecovery string      `json:"estimated_recovery"`
	DaysElapsed       int         `json:"days_elapsed"`
	ExpectedDuration  string      `json:"expected_duration"`
	Milestones        []Milestone `json:"milestones"`
}

// ProgressUpdate carries a recovery check-in. Nil pointers mean
// "leave as is".
type ProgressUpdate struct {
	PainLevel          *int     `json:"pain_level,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	CompletedExercises []string `json:"completed_exercises,omitempty"`
}

// Client performs injury calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[injury.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Log reports a new injury and returns its id.
func (c *Client) Log(ctx context.Context, params LogParams) (string, error) {
	res, err := apicall.JSON[struct {
		InjuryID string `json:"injury_id"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/injury/log",
		Body:         params,
		RequiresAuth: true,
	})
	if err != nil {
		return "", err
	}
	return res.InjuryID, nil
}

// Plan returns the phased recovery plan for a logged injury. The
// answer is the plan itself, not wrapped in an envelope key.
func (c *Client) Plan(ctx context.Context, injuryID string) (RecoveryPlan, error) {
	return apicall.JSON[RecoveryPlan](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/injury/recovery-plan/" + injuryID,
		RequiresAuth: true,
	})
}

// Exercises returns rehabilitation exercises for an injury type.
func (c *Client) Exercises(ctx context.Context, injuryType string) ([]Exercise, error) {
	query := url.Values{}
	query.Set("injury_type", injuryType)

	res, err := apicall.JSON[struct {
		Exercises []Exercise `json:"exercises"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/injury/exercises",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Exercises, nil
}

// Timeline returns one injury's recovery timeline.
func (c *Client) Timeline(ctx context.Context, injuryID string) (Timeline, error) {
	return apicall.JSON[Timeline](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/injury/timeline/" + injuryID,
		RequiresAuth: true,
	})
}

// UpdateProgress records a recovery check-in for an injury.
func (c *Client) UpdateProgress(ctx context.Context, injuryID string, update ProgressUpdate) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPut,
		Path:         "/injury/progress/" + injuryID,
		Body:         update,
		RequiresAuth: true,
	})
	return err
}

// History returns all of the user's injuries, newest first.
func (c *Client) History(ctx context.Context) ([]Record, error) {
	res, err := apicall.JSON[struct {
		Injuries []Record `json:"injuries"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/injury/history",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Injuries, nil
}

// Active returns injuries still in recovery.
func (c *Client) Active(ctx context.Context) ([]Record, error) {
	res, err := apicall.JSON[struct {
		Injuries []Record `json:"active_injuries"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/injury/active",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Injuries, nil
}

// Resolve marks an injury recovered.
func (c *Client) Resolve(ctx context.Context, injuryID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPut,
		Path:         "/injury/resolve/" + injuryID,
		RequiresAuth: true,
	})
	return err
}
