// Package auth is the typed client for the backend's authentication
// endpoints. It implements session.Backend, so the session manager
// drives login and identity resolution through it.
//
// The backend historically answered with both "access_token" and
// "token" field names across endpoints; this client standardizes on
// access_token and merely tolerates the legacy name on reads.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/fieldmap"
	"github.com/pitchside/pitchside-go/session"
	"github.com/pitchside/pitchside-go/transport"
)

// Client performs auth calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

// New creates an auth client.
func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[auth.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// SignupParams mirrors the backend's signup payload. Zero-valued
// optional fields are omitted.
type SignupParams struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Bio           string `json:"bio,omitempty"`
	ProfilePic    string `json:"profile_pic,omitempty"`
	Position      string `json:"position,omitempty"`
	PreferredFoot string `json:"preferred_foot,omitempty"`
	JerseyNumber  int    `json:"jersey_number,omitempty"`
}

// LoginResult is the token plus whatever identity fields the auth
// endpoint itself returned. The session manager keeps these as the
// fallback identity when the follow-up /users/me call fails.
type LoginResult struct {
	Token string
	User  session.UserSummary
}

type tokenEnvelope struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
}

// Login implements session.Backend.
func (c *Client) Login(ctx context.Context, email, password string) (string, session.UserSummary, error) {
	res, err := c.exchange(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", session.UserSummary{}, err
	}
	res.User.Email = email
	return res.Token, res.User, nil
}

// Signup registers a new account. The backend auto-logs-in on signup,
// so the result carries a live token ready for Manager.Establish.
func (c *Client) Signup(ctx context.Context, params SignupParams) (LoginResult, error) {
	res, err := c.exchange(ctx, "/auth/signup", params)
	if err != nil {
		return LoginResult{}, err
	}
	res.User.Email = params.Email
	if res.User.Username == "" {
		res.User.Username = params.Username
	}
	if res.User.FullName == "" {
		res.User.FullName = params.FullName
	}
	return res, nil
}

func (c *Client) exchange(ctx context.Context, path string, body any) (LoginResult, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return LoginResult{}, err
	}
	if ok, msg := fieldmap.Status(raw); !ok {
		return LoginResult{}, &transport.RejectedError{Status: http.StatusOK, Message: msg}
	}

	var envelope tokenEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return LoginResult{}, errors.Wrap(err, "[auth.Client] decode token response")
	}
	if envelope.AccessToken == "" {
		// Tolerate the legacy field name on read only.
		envelope.AccessToken = fieldmap.String(fieldmap.Decode(raw), "token")
	}
	if envelope.AccessToken == "" {
		return LoginResult{}, errors.New("[auth.Client] response carried no access token")
	}

	return LoginResult{
		Token: envelope.AccessToken,
		User: session.UserSummary{
			ID:       envelope.UserID,
			Username: envelope.Username,
			FullName: envelope.Name,
		},
	}, nil
}

// CurrentUser implements session.Backend via GET /users/me.
func (c *Client) CurrentUser(ctx context.Context) (session.UserSummary, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method:       http.MethodGet,
		Path:         "/users/me",
		RequiresAuth: true,
	})
	if err != nil {
		return session.UserSummary{}, err
	}

	obj := fieldmap.Decode(raw)
	user := fieldmap.Object(obj, "user", "data")
	if user == nil {
		user = obj
	}
	summary := session.UserSummary{
		ID:       fieldmap.String(user, "_id", "id", "user_id"),
		Email:    fieldmap.String(user, "email"),
		Username: fieldmap.String(user, "username"),
		FullName: fieldmap.String(user, "full_name", "name"),
	}
	if summary.ID == "" {
		return session.UserSummary{}, errors.New("[auth.Client] current-user response carried no id")
	}
	return summary, nil
}

// Verify asks the backend whether a token is still accepted.
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/verify",
		Body:   map[string]string{"token": token},
	})
	if errors.Is(err, transport.ErrUnauthorized) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ok, _ := fieldmap.Status(raw)
	return ok, nil
}

// Refresh exchanges the current session token for a fresh one. Not
// every deployment exposes this endpoint, which is exactly why the
// dispatcher never refreshes silently; callers opt in.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method:       http.MethodPost,
		Path:         "/auth/refresh",
		RequiresAuth: true,
	})
	if err != nil {
		return "", err
	}

	token := fieldmap.String(fieldmap.Decode(raw), "access_token", "token")
	if token == "" {
		return "", errors.New("[auth.Client] refresh response carried no token")
	}
	return token, nil
}
