package wellness_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/transport"
	"github.com/pitchside/pitchside-go/wellness"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }
func (staticToken) Invalidate()     {}

func newClient(t *testing.T, handler http.HandlerFunc) *wellness.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d, err := transport.New(srv.URL)
	require.NoError(t, err)
	d.Bind(staticToken("tok"))

	c, err := wellness.New(d)
	require.NoError(t, err)
	return c
}

func TestLogSendsJSONBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wellness/log", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, float64(2500), got["water_ml"])
		require.Equal(t, 7.5, got["sleep_hours"])
		w.Write([]byte(`{"status":"success","message":"Logged"}`))
	})

	err := c.Log(context.Background(), wellness.LogParams{
		WaterML: 2500, SleepHrs: 7.5, Calories: 2200,
	})
	require.NoError(t, err)
}

func TestTodayZeroWhenUnlogged(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","entry":{"date":"2026-08-31","water_ml":0,"sleep_hours":0,"calories":0}}`))
	})

	got, err := c.Today(context.Background())
	require.NoError(t, err)
	require.Zero(t, got.WaterML)
	require.Equal(t, "2026-08-31", got.Date)
}

func TestHistorySendsDays(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.URL.Query().Get("days"))
		w.Write([]byte(`{"status":"success","entries":[
			{"date":"2026-08-31","water_ml":2000,"sleep_hours":8,"calories":2100},
			{"date":"2026-08-30","water_ml":1500,"sleep_hours":6.5,"calories":1900}]}`))
	})

	got, err := c.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 6.5, got[1].SleepHrs)
}

func TestStreak(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wellness/streak", r.URL.Path)
		w.Write([]byte(`{"status":"success","streak":12}`))
	})

	got, err := c.Streak(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, got)
}

func TestRecommendationsReturnsRawDocument(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","recommendations":{"water":"drink more","sleep":["wind down earlier"]}}`))
	})

	raw, err := c.Recommendations(context.Background())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Contains(t, doc, "recommendations")
}
