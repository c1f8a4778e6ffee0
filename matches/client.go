// Package matches is the typed client for the /matches endpoints:
// organizing matches, joining and leaving them, participants, scores
// and match video upload.
package matches

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

// Filter narrows the match listing.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterCompleted Filter = "completed"
	FilterMine      Filter = "mine"
)

// Match mirrors the backend's serialized match document.
type Match struct {
	ID               string   `json:"_id"`
	Opponent         string   `json:"opponent"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	Location         string   `json:"location"`
	MatchType        string   `json:"match_type"`
	Description      string   `json:"description"`
	Status           string   `json:"status"`
	HomeGoals        int      `json:"home_goals"`
	AwayGoals        int      `json:"away_goals"`
	MaxPlayers       int      `json:"max_players"`
	Participants     []string `json:"participants"`
	ParticipantCount int      `json:"participant_count"`
	OrganizerID      string   `json:"organizer_id"`
}

// Participant is the snapshot the backend builds per joined player.
type Participant struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	ProfilePic string `json:"profile_pic"`
}

// CreateParams are the fields of a new match. Date is YYYY-MM-DD and
// Time is HH:mm, as the backend expects.
type CreateParams struct {
	Opponent    string `json:"opponent"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	MatchType   string `json:"match_type"`
	Description string `json:"description,omitempty"`
	MaxPlayers  int    `json:"max_players,omitempty"`
}

// ScoreUpdate sets the current score and match status.
type ScoreUpdate struct {
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
	Status    string `json:"status"` // ongoing | completed
}

// Client performs match calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[matches.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Create organizes a new match and returns its id.
func (c *Client) Create(ctx context.Context, params CreateParams) (string, error) {
	res, err := apicall.JSON[struct {
		MatchID string `json:"match_id"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/matches/create",
		Body:         params,
		RequiresAuth: true,
	})
	if err != nil {
		return "", err
	}
	return res.MatchID, nil
}

// List returns matches under the given filter, paged.
func (c *Client) List(ctx context.Context, filter Filter, limit, page int) ([]Match, error) {
	query := url.Values{}
	query.Set("filter", string(filter))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))

	res, err := apicall.JSON[struct {
		Matches []Match `json:"matches"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/matches/all",
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// Get returns one match by id.
func (c *Client) Get(ctx context.Context, matchID string) (Match, error) {
	res, err := apicall.JSON[struct {
		Match Match `json:"match"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/matches/" + matchID,
		RequiresAuth: true,
	})
	if err != nil {
		return Match{}, err
	}
	return res.Match, nil
}

// Join adds the current user to the match roster. Duplicate joins come
// back as rejections with the server's message; the client does not
// pre-check.
func (c *Client) Join(ctx context.Context, matchID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/matches/" + matchID + "/join",
		RequiresAuth: true,
	})
	return err
}

// Leave removes the current user from the roster.
func (c *Client) Leave(ctx context.Context, matchID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/matches/" + matchID + "/leave",
		RequiresAuth: true,
	})
	return err
}

// Participants lists the joined players with their profile snapshots.
func (c *Client) Participants(ctx context.Context, matchID string) ([]Participant, error) {
	res, err := apicall.JSON[struct {
		Participants []Participant `json:"participants"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/matches/" + matchID + "/participants",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Participants, nil
}

// AddParticipant puts another player on the roster; organizer only.
// The backend enforces capacity and duplicates and answers with a
// rejection message when either rule trips.
func (c *Client) AddParticipant(ctx context.Context, matchID, userID string) error {
	return c.participantChange(ctx, matchID, "add", userID)
}

// RemoveParticipant takes a player off the roster; organizer only.
// The organizer cannot remove themselves.
func (c *Client) RemoveParticipant(ctx context.Context, matchID, userID string) error {
	return c.participantChange(ctx, matchID, "remove", userID)
}

func (c *Client) participantChange(ctx context.Context, matchID, action, userID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method: http.MethodPost,
		Path:   "/matches/" + matchID + "/participants/" + action,
		Body: map[string]string{
			"user_id": userID,
		},
		RequiresAuth: true,
	})
	return err
}

// UploadVideo attaches match footage as a multipart upload.
func (c *Client) UploadVideo(ctx context.Context, matchID, filename string, video io.Reader) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/matches/" + matchID + "/video",
		Upload:       true,
		RequiresAuth: true,
		Parts: []transport.Part{
			transport.FilePart("video", filename, "video/mp4", video),
		},
	})
	return err
}

// UpdateScore records the score; only the organizer may call it.
func (c *Client) UpdateScore(ctx context.Context, matchID string, update ScoreUpdate) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPut,
		Path:         "/matches/" + matchID + "/score",
		Body:         update,
		RequiresAuth: true,
	})
	return err
}

// History returns the current user's past and upcoming matches.
func (c *Client) History(ctx context.Context) ([]Match, error) {
	res, err := apicall.JSON[struct {
		Matches []Match `json:"matches"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/matches/history/user",
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// Delete removes a match; organizer only.
func (c *Client) Delete(ctx context.Context, matchID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodDelete,
		Path:         "/matches/" + matchID,
		RequiresAuth: true,
	})
	return err
}
