// Package posts is the typed client for the social feed endpoints.
package posts

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

// Owner is the author snapshot attached to every feed post.
type Owner struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
}

// Post mirrors the backend's serialized post document.
type Post struct {
	ID        string   `json:"_id"`
	Content   string   `json:"content"`
	PostType  string   `json:"post_type"` // post | achievement | playercard
	ImageURL  string   `json:"image_url"`
	VideoID   string   `json:"video_id"`
	Owner     Owner    `json:"owner"`
	Likes     []string `json:"likes"`
	CreatedAt string   `json:"created_at"`
}

// CreateParams describe a new post. Image is optional; when set the
// post goes up as a multipart upload with the image attached.
type CreateParams struct {
	Content       string
	PostType      string // defaults to "post" server-side
	VideoID       string // set for player cards generated from analysis
	ImageFilename string
	Image         io.Reader
}

// Client performs post calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[posts.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Create publishes a post and returns its id. The endpoint is always
// multipart even for text-only posts, matching the backend's form
// parameter contract.
func (c *Client) Create(ctx context.Context, params CreateParams) (string, error) {
	parts := []transport.Part{transport.TextPart("content", params.Content)}
	if params.PostType != "" {
		parts = append(parts, transport.TextPart("post_type", params.PostType))
	}
	if params.VideoID != "" {
		parts = append(parts, transport.TextPart("video_id", params.VideoID))
	}
	if params.Image != nil {
		filename := params.ImageFilename
		if filename == "" {
			filename = "post_image.jpg"
		}
		parts = append(parts, transport.FilePart("image", filename, "image/jpeg", params.Image))
	}

	res, err := apicall.JSON[struct {
		PostID string `json:"post_id"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/posts/create",
		Parts:        parts,
		RequiresAuth: true,
	})
	if err != nil {
		return "", err
	}
	return res.PostID, nil
}

// Feed returns the public feed, paged.
func (c *Client) Feed(ctx context.Context, limit, page int) ([]Post, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))
	return c.list(ctx, "/posts/feed", query)
}

// Mine returns the current user's posts.
func (c *Client) Mine(ctx context.Context) ([]Post, error) {
	return c.list(ctx, "/posts/my-posts", nil)
}

// ByUser returns another user's posts.
func (c *Client) ByUser(ctx context.Context, userID string) ([]Post, error) {
	return c.list(ctx, "/posts/user/"+userID, nil)
}

func (c *Client) list(ctx context.Context, path string, query url.Values) ([]Post, error) {
	res, err := apicall.JSON[struct {
		Posts []Post `json:"posts"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         path,
		Query:        query,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

// Get returns a single post.
func (c *Client) Get(ctx context.Context, postID string) (Post, error) {
	res, err := apicall.JSON[struct {
		Post Post `json:"post"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/posts/post/" + postID,
		RequiresAuth: true,
	})
	if err != nil {
		return Post{}, err
	}
	return res.Post, nil
}

// Update edits the content of an existing post; author only.
func (c *Client) Update(ctx context.Context, postID, content string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPut,
		Path:         "/posts/post/" + postID,
		Parts:        []transport.Part{transport.TextPart("content", content)},
		RequiresAuth: true,
	})
	return err
}

// Delete removes a post; author only.
func (c *Client) Delete(ctx context.Context, postID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodDelete,
		Path:         "/posts/post/" + postID,
		RequiresAuth: true,
	})
	return err
}

// Like marks the post liked by the current user.
func (c *Client) Like(ctx context.Context, postID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/posts/like/" + postID,
		RequiresAuth: true,
	})
	return err
}

// Unlike removes the current user's like.
func (c *Client) Unlike(ctx context.Context, postID string) error {
	_, err := apicall.Raw(ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/posts/unlike/" + postID,
		RequiresAuth: true,
	})
	return err
}
