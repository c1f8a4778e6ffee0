package health_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/health"
	"github.com/pitchside/pitchside-go/transport"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }
func (staticToken) Invalidate()     {}

func newClient(t *testing.T, handler http.HandlerFunc) *health.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d, err := transport.New(srv.URL)
	require.NoError(t, err)
	d.Bind(staticToken("tok"))

	c, err := health.New(d)
	require.NoError(t, err)
	return c
}

func TestCaloriesReadsAliasedFields(t *testing.T) {
	bodies := []string{
		`{"status":"success","calories":2840}`,
		`{"status":"success","daily_calories":2840}`,
		`{"status":"success","result":{"tdee":2840}}`,
	}
	for _, body := range bodies {
		answer := body
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/health/calorie", r.URL.Path)
			w.Write([]byte(answer))
		})

		got, err := c.Calories(context.Background(), health.CalorieParams{
			Age: 24, Gender: "male", HeightCM: 180, WeightKG: 75,
			Activity: health.ActivityModerate, Goal: health.GoalMaintain,
		})
		require.NoError(t, err, body)
		require.Equal(t, float64(2840), got, body)
	}
}

func TestBMISendsMetricFields(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, float64(180), body["height_cm"])
		require.Equal(t, float64(75), body["weight_kg"])
		w.Write([]byte(`{"status":"success","bmi":23.1}`))
	})

	got, err := c.BMI(context.Background(), health.BMIParams{HeightCM: 180, WeightKG: 75})
	require.NoError(t, err)
	require.Equal(t, 23.1, got)
}

func TestNumberMissingFieldFails(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","unrelated":true}`))
	})

	_, err := c.Water(context.Background(), health.WaterParams{WeightKG: 75})
	require.Error(t, err)
}

func TestRecoveryReturnsRawDocument(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health/recovery", r.URL.Path)
		w.Write([]byte(`{"status":"success","recovery_score":71,"advice":["light jog","stretch"]}`))
	})

	raw, err := c.Recovery(context.Background(), health.RecoveryParams{
		Intensity: "high", SleepHrs: 6.5, Soreness: "moderate",
	})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Contains(t, doc, "recovery_score")
}
