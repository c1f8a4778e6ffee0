package coaching_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/coaching"
	"github.com/pitchside/pitchside-go/transport"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }
func (staticToken) Invalidate()     {}

func newClient(t *testing.T, handler http.HandlerFunc) *coaching.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d, err := transport.New(srv.URL)
	require.NoError(t, err)
	d.Bind(staticToken("tok"))

	c, err := coaching.New(d)
	require.NoError(t, err)
	return c
}

func TestPlanForCurrentUserOmitsQuery(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coaching/plan", r.URL.Path)
		require.Empty(t, r.URL.Query().Get("user_id"))
		w.Write([]byte(`{"status":"success","plan":{"week":1,"focus":"finishing"}}`))
	})

	raw, err := c.Plan(context.Background(), "")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Contains(t, doc, "plan")
}

func TestStrengthsForOtherUserSendsQuery(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coaching/strengths", r.URL.Path)
		require.Equal(t, "u2", r.URL.Query().Get("user_id"))
		w.Write([]byte(`{"status":"success","strengths":["pace","positioning"]}`))
	})

	_, err := c.Strengths(context.Background(), "u2")
	require.NoError(t, err)
}

func TestWeeklySendsPositionAndDecodesSessions(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coaching/training-plan", r.URL.Path)
		require.Equal(t, "striker", r.URL.Query().Get("position"))
		w.Write([]byte(`{"status":"success","week":1,"position":"striker","sessions":[
			{"day":"Monday","duration":"90 mins","focus":"Finishing Drills","intensity":"High"},
			{"day":"Tuesday","duration":"60 mins","focus":"Recovery & Flexibility","intensity":"Low"}]}`))
	})

	plan, err := c.Weekly(context.Background(), "striker")
	require.NoError(t, err)
	require.Equal(t, 1, plan.Week)
	require.Len(t, plan.Sessions, 2)
	require.Equal(t, "Finishing Drills", plan.Sessions[0].Focus)
	require.Equal(t, "Low", plan.Sessions[1].Intensity)
}

func TestMotivation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coaching/motivation", r.URL.Path)
		w.Write([]byte(`{"status":"success","motivation":"Keep pushing on finishing drills."}`))
	})

	got, err := c.Motivation(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "Keep pushing on finishing drills.", got)
}

func TestSaveAchievementReturnsStoredRecord(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/coaching/save-achievement", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Hat-trick Hero", body["title"])
		require.Equal(t, "trophy", body["icon"])
		w.Write([]byte(`{"status":"success","message":"Achievement saved","achievement":{
			"user_id":"u1","title":"Hat-trick Hero","description":"Three goals in one match","icon":"trophy"}}`))
	})

	got, err := c.SaveAchievement(context.Background(), "Hat-trick Hero", "Three goals in one match", "trophy")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, "Hat-trick Hero", got.Title)
}

func TestHistoryKeepsRecordsRaw(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coaching/history", r.URL.Path)
		w.Write([]byte(`{"status":"success","count":1,"coaching_history":[
			{"_id":"c1","type":"plan","created_at":"2026-08-01"}]}`))
	})

	got, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(got[0], &record))
	require.Equal(t, "plan", record["type"])
}

func TestWeaknessesSurfacesEnvelopeError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"No analysis history"}`))
	})

	_, err := c.Weaknesses(context.Background(), "")
	rejected, ok := transport.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "No analysis history", rejected.Message)
}
