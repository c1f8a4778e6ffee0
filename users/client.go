// Package users is the typed client for profile and follow endpoints.
package users

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/apicall"
	"github.com/pitchside/pitchside-go/transport"
)

// Profile is the full user document including football stats.
type Profile struct {
	ID            string   `json:"_id"`
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	FullName      string   `json:"full_name"`
	Bio           string   `json:"bio"`
	ProfilePic    string   `json:"profile_pic"`
	Followers     []string `json:"followers"`
	Following     []string `json:"following"`
	MatchesPlayed int      `json:"matches_played"`
	Goals         int      `json:"goals"`
	Assists       int      `json:"assists"`
	YellowCards   int      `json:"yellow_cards"`
	RedCards      int      `json:"red_cards"`
	Position      string   `json:"position"`
	PreferredFoot string   `json:"preferred_foot"`
	JerseyNumber  int      `json:"jersey_number"`
}

// UpdateParams carry profile edits. Nil pointers mean "leave as is";
// the update goes up as multipart form fields, with the profile
// picture as an optional attachment.
type UpdateParams struct {
	Username      *string
	FullName      *string
	Bio           *string
	Position      *string
	PreferredFoot *string
	JerseyNumber  *int

	PicFilename string
	Pic         io.Reader
}

// Summary is the trimmed profile the listing endpoints return.
type Summary struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	ProfilePic string `json:"profile_pic"`
	Goals      int    `json:"goals"`
	Matches    int    `json:"matches_played"`
	Rating     int    `json:"rating"`
}

// LeaderboardSort orders the leaderboard.
type LeaderboardSort string

const (
	SortByRating  LeaderboardSort = "rating"
	SortByGoals   LeaderboardSort = "goals"
	SortByMatches LeaderboardSort = "matches"
)

// StatsUpdate carries football stat edits. Nil pointers mean "leave
// as is"; the update goes up as multipart form fields like Update.
type StatsUpdate struct {
	MatchesPlayed *int
	Goals         *int
	Assists       *int
	YellowCards   *int
	RedCards      *int
	Position      *string
	PreferredFoot *string
	JerseyNumber  *int
}

// Client performs user calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[users.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Me returns the current user's full profile.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	return c.fetch(ctx, "/users/me")
}

// Get returns another user's profile.
func (c *Client) Get(ctx context.Context, userID string) (Profile, error) {
	return c.fetch(ctx, "/users/"+userID)
}

func (c *Client) fetch(ctx context.Context, path string) (Profile, error) {
	res, err := apicall.JSON[struct {
		User Profile `json:"user"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         path,
		RequiresAuth: true,
	})
	if err != nil {
		return Profile{}, err
	}
	return res.User, nil
}

// Posts returns a user's recent posts, capped at limit.
func (c *Client) Posts(ctx context.Context, userID string, limit int) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	res, err := apicall.JSON[struct {
		Posts []map[string]any `json:"posts"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/users/" + userID + "/posts",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

// Update edits the current user's profile.
func (c *Client) Update(ctx context.Context, params UpdateParams) error {
	var parts []transport.Part
	appendText := func(field string, value *string) {
		if value != nil {
			parts = append(parts, transport.TextPart(field, *value))
		}
	}
	appendText("username", params.Username)
	appendText("full_name", params.FullName)
	appendText("bio", params.Bio)
	appendText("position", params.Position)
	appendText("preferred_foot", params.PreferredFoot)
	if params.JerseyNumber != nil {
		parts = append(parts, transport.TextPart("jersey_number", strconv.Itoa(*params.JerseyNumber)))
	}
	if params.Pic != nil {
		filename := params.PicFilename
		if filename == "" {
			filename = "profile_pic.jpg"
		}
		parts = append(parts, transport.FilePart("profile_pic", filename, "image/jpeg", params.Pic))
	}
	if len(parts) == 0 {
		return errors.New("[users.Update] nothing to update")
	}

	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPut,
		Path:         "/users/me",
		Parts:        parts,
		RequiresAuth: true,
	})
	return err
}

// UpdateStats edits the current user's football stats.
func (c *Client) UpdateStats(ctx context.Context, update StatsUpdate) error {
	var parts []transport.Part
	appendInt := func(field string, value *int) {
		if value != nil {
			parts = append(parts, transport.TextPart(field, strconv.Itoa(*value)))
		}
	}
	appendInt("matches_played", update.MatchesPlayed)
	appendInt("goals", update.Goals)
	appendInt("assists", update.Assists)
	appendInt("yellow_cards", update.YellowCards)
	appendInt("red_cards", update.RedCards)
	if update.Position != nil {
		parts = append(parts, transport.TextPart("position", *update.Position))
	}
	if update.PreferredFoot != nil {
		parts = append(parts, transport.TextPart("preferred_foot", *update.PreferredFoot))
	}
	appendInt("jersey_number", update.JerseyNumber)
	if len(parts) == 0 {
		return errors.New("[users.UpdateStats] nothing to update")
	}

	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPut,
		Path:         "/users/me/stats",
		Parts:        parts,
		RequiresAuth: true,
	})
	return err
}

// Followers lists the users following userID.
func (c *Client) Followers(ctx context.Context, userID string) ([]Summary, error) {
	res, err := apicall.JSON[struct {
		Followers []Summary `json:"followers"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/users/" + userID + "/followers",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Followers, nil
}

// Following lists the users userID follows.
func (c *Client) Following(ctx context.Context, userID string) ([]Summary, error) {
	res, err := apicall.JSON[struct {
		Following []Summary `json:"following"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/users/" + userID + "/following",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Following, nil
}

// Search finds users by username or full name.
func (c *Client) Search(ctx context.Context, q string) ([]Summary, error) {
	query := url.Values{}
	query.Set("q", q)

	res, err := apicall.JSON[struct {
		Users []Summary `json:"users"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/users/search",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}

// Leaderboard returns the top players under the given ordering.
func (c *Client) Leaderboard(ctx context.Context, sort LeaderboardSort, limit int) ([]Summary, error) {
	query := url.Values{}
	query.Set("sort", string(sort))
	query.Set("limit", strconv.Itoa(limit))

	res, err := apicall.JSON[struct {
		Leaderboard []Summary `json:"leaderboard"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/users/leaderboard",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Leaderboard, nil
}

// Follow subscribes the current user to userID's posts.
func (c *Client) Follow(ctx context.Context, userID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/users/" + userID + "/follow",
		RequiresAuth: true,
	})
	return err
}

// Unfollow reverses Follow.
func (c *Client) Unfollow(ctx context.Context, userID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/users/" + userID + "/unfollow",
		RequiresAuth: true,
	})
	return err
}
