package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/auth"
	"github.com/pitchside/pitchside-go/transport"
)

func newClient(t *testing.T, handler http.HandlerFunc) *auth.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d, err := transport.New(srv.URL)
	require.NoError(t, err)
	c, err := auth.New(d)
	require.NoError(t, err)
	return c
}

func TestLoginParsesTokenAndIdentity(t *testing.T) {
	var gotBody map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		payload, _ := io.ReadAll(r.Body)
		json.Unmarshal(payload, &gotBody)
		w.Write([]byte(`{"status":"success","access_token":"abc","token_type":"bearer","user_id":"u1","username":"alex","name":"Alex Iwobi"}`))
	})

	token, user, err := c.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "abc", token)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "alex", user.Username)
	require.Equal(t, "Alex Iwobi", user.FullName)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, "secret123", gotBody["password"])
}

func TestLoginToleratesLegacyTokenField(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","token":"legacy-tok","user_id":"u1"}`))
	})

	token, _, err := c.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "legacy-tok", token)
}

func TestLoginSurfacesBackendRejection(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Incorrect password"}`))
	})

	_, _, err := c.Login(context.Background(), "a@b.com", "nope")
	rejected, ok := transport.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Incorrect password", rejected.Message)
}

func TestLoginRejectsStatusErrorEnvelope(t *testing.T) {
	// Some backend deployments report failures with HTTP 200.
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"User not found"}`))
	})

	_, _, err := c.Login(context.Background(), "ghost@b.com", "secret123")
	rejected, ok := transport.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "User not found", rejected.Message)
}

func TestLoginRequiresToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	})

	_, _, err := c.Login(context.Background(), "a@b.com", "secret123")
	require.Error(t, err)
}

func TestSignupReturnsLiveSession(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		w.Write([]byte(`{"status":"success","message":"User created","access_token":"fresh","user_id":"u2","name":"Sam Kerr"}`))
	})

	res, err := c.Signup(context.Background(), auth.SignupParams{
		Email:    "sam@b.com",
		Password: "secret123",
		Username: "samk",
		FullName: "Sam Kerr",
	})
	require.NoError(t, err)
	require.Equal(t, "fresh", res.Token)
	require.Equal(t, "u2", res.User.ID)
	require.Equal(t, "samk", res.User.Username)
	require.Equal(t, "sam@b.com", res.User.Email)
}

func TestCurrentUserUnwrapsEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		w.Write([]byte(`{"status":"success","user":{"_id":"u1","email":"a@b.com","username":"alex","full_name":"Alex Iwobi"}}`))
	})

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "Alex Iwobi", user.FullName)
}

func TestCurrentUserRequiresID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","user":{}}`))
	})

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		payload, _ := io.ReadAll(r.Body)
		json.Unmarshal(payload, &body)
		if body["token"] == "good" {
			w.Write([]byte(`{"status":"success"}`))
			return
		}
		http.Error(w, `{"detail":"Invalid token"}`, http.StatusUnauthorized)
	})

	ok, err := c.Verify(context.Background(), "good")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Verify(context.Background(), "bad")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRefreshAcceptsEitherTokenField(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","token":"rotated"}`))
	})

	token, err := c.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "rotated", token)
}
