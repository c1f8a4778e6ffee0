// Package analyzer talks to the standalone video analysis service.
//
// The analyzer runs independently of the main backend and has no
// notion of Pitchside sessions, so its dispatcher is never bound to
// credentials and its calls never carry an Authorization header.
package analyzer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/transport"
)

// Job is the analyzer's handle for an uploaded video.
type Job struct {
	ID     string `json:"job_id"`
	Status string `json:"status"` // queued | processing | done | failed
}

// PlayerCard is the analyzer's standalone rating card. Shape differs
// from the backend's card, so the two are separate types.
type PlayerCard struct {
	JobID   string             `json:"job_id"`
	Rating  float64            `json:"rating"`
	Metrics map[string]float64 `json:"metrics"`
}

// Client performs analyzer calls over an unauthenticated dispatcher.
type Client struct {
	d *transport.Dispatcher
}

// New creates an analyzer client. The dispatcher must stay unbound;
// binding it would leak the backend session token to a third party.
func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[analyzer.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Upload submits footage for analysis and returns the job handle.
func (c *Client) Upload(ctx context.Context, filename string, video io.Reader) (Job, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Upload: true,
		Parts: []transport.Part{
			transport.FilePart("video", filename, "video/mp4", video),
		},
	})
	if err != nil {
		return Job{}, err
	}

	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return Job{}, errors.Wrap(err, "[analyzer.Upload] decode answer")
	}
	if job.ID == "" {
		return Job{}, errors.New("[analyzer.Upload] answer has no job_id")
	}
	return job, nil
}

// Status polls a job.
func (c *Client) Status(ctx context.Context, jobID string) (Job, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/status/" + jobID,
	})
	if err != nil {
		return Job{}, err
	}

	job := Job{ID: jobID}
	if err := json.Unmarshal(raw, &job); err != nil {
		return Job{}, errors.Wrap(err, "[analyzer.Status] decode answer")
	}
	return job, nil
}

// Heatmap returns the rendered position heatmap for a finished job as
// raw image bytes.
func (c *Client) Heatmap(ctx context.Context, jobID string) ([]byte, error) {
	return c.d.DoBytes(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/heatmap/" + jobID,
	})
}

// Card returns the analyzer's player card for a finished job.
func (c *Client) Card(ctx context.Context, jobID string) (PlayerCard, error) {
	raw, err := c.d.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/player-card/" + jobID,
	})
	if err != nil {
		return PlayerCard{}, err
	}

	card := PlayerCard{JobID: jobID}
	if err := json.Unmarshal(raw, &card); err != nil {
		return PlayerCard{}, errors.Wrap(err, "[analyzer.Card] decode answer")
	}
	return card, nil
}
