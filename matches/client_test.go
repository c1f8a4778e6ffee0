package matches_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/matches"
	"github.com/pitchside/pitchside-go/transport"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }
func (staticToken) Invalidate()     {}

func newClient(t *testing.T, handler http.HandlerFunc) *matches.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d, err := transport.New(srv.URL)
	require.NoError(t, err)
	d.Bind(staticToken("tok"))

	c, err := matches.New(d)
	require.NoError(t, err)
	return c
}

func TestCreateReturnsMatchID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/create", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","match_id":"m1"}`))
	})

	id, err := c.Create(context.Background(), matches.CreateParams{
		Opponent: "Rovers", Date: "2026-09-12", Time: "18:30",
		Location: "City Park", MatchType: "league",
	})
	require.NoError(t, err)
	require.Equal(t, "m1", id)
}

func TestListSendsFilterAndPaging(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "upcoming", r.URL.Query().Get("filter"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"status":"success","matches":[{"_id":"m1","opponent":"Rovers","status":"upcoming","participant_count":7}]}`))
	})

	got, err := c.List(context.Background(), matches.FilterUpcoming, 10, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Rovers", got[0].Opponent)
	require.Equal(t, 7, got[0].ParticipantCount)
}

func TestJoinSurfacesDuplicateRejection(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/m1/join", r.URL.Path)
		w.Write([]byte(`{"status":"error","message":"Already joined this match"}`))
	})

	err := c.Join(context.Background(), "m1")
	rejected, ok := transport.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Already joined this match", rejected.Message)
}

func TestParticipants(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/m1/participants", r.URL.Path)
		w.Write([]byte(`{"status":"success","participants":[{"_id":"u1","username":"alex","position":"midfielder"}]}`))
	})

	got, err := c.Participants(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "alex", got[0].Username)
}

func TestAddParticipantSendsUserID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/m1/participants/add", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "u2", body["user_id"])
		w.Write([]byte(`{"status":"success","message":"Participant added successfully"}`))
	})

	require.NoError(t, c.AddParticipant(context.Background(), "m1", "u2"))
}

func TestRemoveParticipantRejectedForNonOrganizer(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/m1/participants/remove", r.URL.Path)
		w.Write([]byte(`{"status":"error","message":"Only organizer can remove participants"}`))
	})

	err := c.RemoveParticipant(context.Background(), "m1", "u2")
	rejected, ok := transport.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Only organizer can remove participants", rejected.Message)
}

func TestUploadVideoIsMultipart(t *testing.T) {
	video := []byte("mp4-bytes")
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/m1/video", r.URL.Path)
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)

		form, err := multipart.NewReader(r.Body, params["boundary"]).ReadForm(1 << 20)
		require.NoError(t, err)
		files := form.File["video"]
		require.Len(t, files, 1)
		require.Equal(t, "match_video.mp4", files[0].Filename)
		w.Write([]byte(`{"status":"success"}`))
	})

	err := c.UploadVideo(context.Background(), "m1", "match_video.mp4", bytes.NewReader(video))
	require.NoError(t, err)
}

func TestUpdateScore(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/matches/m1/score", r.URL.Path)
		w.Write([]byte(`{"status":"success","message":"Score updated"}`))
	})

	err := c.UpdateScore(context.Background(), "m1", matches.ScoreUpdate{
		HomeGoals: 2, AwayGoals: 1, Status: "completed",
	})
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/matches/m1", r.URL.Path)
		w.Write([]byte(`{"status":"success","message":"Match deleted"}`))
	})

	require.NoError(t, c.Delete(context.Background(), "m1"))
}
