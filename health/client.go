// Package health is the typed client for the ML-backed health
// calculators, plus a dashboard aggregator that estimates locally when
// the ML upstream is down.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/apicall"
	"github.com/pitchside/pitchside-go/internal/fieldmap"
	"github.com/pitchside/pitchside-go/transport"
)

// ActivityLevel grades day-to-day training volume.
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// Goal is the player's weight goal.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// CalorieParams feed the daily calorie calculator.
type CalorieParams struct {
	Age      int           `json:"age"`
	Gender   string        `json:"gender"`
	HeightCM float64       `json:"height_cm"`
	WeightKG float64       `json:"weight_kg"`
	Activity ActivityLevel `json:"activity_level"`
	Goal     Goal          `json:"goal"`
}

// BMIParams feed the BMI calculator.
type BMIParams struct {
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
}

// WaterParams feed the daily water intake calculator.
type WaterParams struct {
	WeightKG float64       `json:"weight_kg"`
	Activity ActivityLevel `json:"activity_level"`
}

// IdealWeightParams feed the ideal weight calculator.
type IdealWeightParams struct {
	HeightCM float64 `json:"height_cm"`
	Gender   string  `json:"gender"`
}

// RecoveryParams feed the post-training recovery advisor.
type RecoveryParams struct {
	Intensity string  `json:"training_intensity"` // low | moderate | high
	SleepHrs  float64 `json:"sleep_hours"`
	Soreness  string  `json:"muscle_soreness"` // low | moderate | high
}

// SleepParams feed the sleep recommendation calculator.
type SleepParams struct {
	Age       int    `json:"age"`
	Intensity string `json:"training_intensity"`
}

// MatchFitnessParams feed the match fitness estimator.
type MatchFitnessParams struct {
	DistanceKM float64 `json:"distance_km"`
	Sprints    int     `json:"sprints"`
	Fatigue    string  `json:"fatigue_level"` // low | moderate | high
}

// TrainingLoadParams feed the session load calculator.
type TrainingLoadParams struct {
	DurationMin int    `json:"session_duration_min"`
	Intensity   string `json:"intensity"`
	RPE         int    `json:"rpe"` // rating of perceived exertion, 1-10
}

// DietParams feed the diet plan generator.
type DietParams struct {
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	HeightCM  float64 `json:"height_cm"`
	WeightKG  float64 `json:"weight_kg"`
	Intensity string  `json:"intensity"`
	Goal      Goal    `json:"goal"`
	Day       string  `json:"day"` // training | rest
	Position  string  `json:"position"`
}

// Client performs health calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[health.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Calories returns the recommended daily calories. The ML upstream
// answers under several field names depending on which route variant
// served it, so the value is read tolerantly.
func (c *Client) Calories(ctx context.Context, params CalorieParams) (float64, error) {
	return c.number(ctx, "/health/calorie", params, "calories", "daily_calories", "tdee")
}

// BMI returns the body mass index.
func (c *Client) BMI(ctx context.Context, params BMIParams) (float64, error) {
	return c.number(ctx, "/health/bmi", params, "bmi", "bmi_value")
}

// Water returns the recommended daily water intake in liters.
func (c *Client) Water(ctx context.Context, params WaterParams) (float64, error) {
	return c.number(ctx, "/health/water", params, "water_liters", "liters", "water")
}

// IdealWeight returns the ideal weight in kilograms.
func (c *Client) IdealWeight(ctx context.Context, params IdealWeightParams) (float64, error) {
	return c.number(ctx, "/health/ideal_weight", params, "ideal_weight", "ideal_weight_kg")
}

// Recovery returns the post-training recovery advice document.
func (c *Client) Recovery(ctx context.Context, params RecoveryParams) (json.RawMessage, error) {
	return c.document(ctx, "/health/recovery", params)
}

// Sleep returns the sleep recommendation document.
func (c *Client) Sleep(ctx context.Context, params SleepParams) (json.RawMessage, error) {
	return c.document(ctx, "/health/sleep", params)
}

// MatchFitness returns the match fitness assessment document.
func (c *Client) MatchFitness(ctx context.Context, params MatchFitnessParams) (json.RawMessage, error) {
	return c.document(ctx, "/health/match_fitness", params)
}

// TrainingLoad returns the session load assessment document.
func (c *Client) TrainingLoad(ctx context.Context, params TrainingLoadParams) (json.RawMessage, error) {
	return c.document(ctx, "/health/training_load", params)
}

// Diet returns the generated diet plan document.
func (c *Client) Diet(ctx context.Context, params DietParams) (json.RawMessage, error) {
	return c.document(ctx, "/health/diet", params)
}

func (c *Client) number(ctx context.Context, path string, body any, aliases ...string) (float64, error) {
	raw, err := c.document(ctx, path, body)
	if err != nil {
		return 0, err
	}
	obj := fieldmap.Decode(raw)
	if nested := fieldmap.Object(obj, "result", "data"); nested != nil {
		obj = nested
	}
	value, ok := fieldmap.Float(obj, aliases...)
	if !ok {
		return 0, errors.Errorf("[health] %s answer has no %s field", path, strings.Join(aliases, "/"))
	}
	return value, nil
}

func (c *Client) document(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         path,
		Body:         body,
		RequiresAuth: true,
	})
}
