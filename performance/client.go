// Package performance is the typed client for video analysis: upload
// footage, poll analysis results, generate player cards, and drive the
// external ML pipeline.
package performance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/apicall"
	"github.com/pitchside/pitchside-go/transport"
)

// UploadParams describe a footage upload for analysis.
type UploadParams struct {
	Filename  string
	Video     io.Reader
	MatchType string // league | friendly | training
	Position  string
	MatchDate string // YYYY-MM-DD
}

// UploadResult carries the new record's id and where the footage was
// stored; the hosted URL is what the ML pipeline submit takes.
type UploadResult struct {
	PerformanceID string `json:"performance_id"`
	VideoURL      string `json:"video_url"`
}

// Analysis is the computed result for one uploaded video. Results is
// left raw because the set of computed stats grows with the pipeline.
type Analysis struct {
	PerformanceID string          `json:"performance_id"`
	VideoURL      string          `json:"video_url"`
	MatchType     string          `json:"match_type"`
	Status        string          `json:"analysis_status"` // pending | processing | completed
	Results       json.RawMessage `json:"results"`
}

// Record is one stored analysis in a user's history.
type Record struct {
	ID        string          `json:"_id"`
	UserID    string          `json:"user_id"`
	VideoURL  string          `json:"video_url"`
	MatchType string          `json:"match_type"`
	Position  string          `json:"position"`
	MatchDate string          `json:"match_date"`
	Status    string          `json:"status"`
	Results   json.RawMessage `json:"analysis_results"`
}

// PlayerCard is the shareable rating card built from a completed
// analysis.
type PlayerCard struct {
	UserID     string          `json:"user_id"`
	AnalysisID string          `json:"analysis_id"`
	Title      string          `json:"title"`
	Stats      json.RawMessage `json:"stats"`
	Shared     bool            `json:"shared"`
}

// MLJob is the state of an ML pipeline job.
type MLJob struct {
	JobID    string          `json:"job_id"`
	Status   string          `json:"processing_status"` // processing | completed | failed
	Progress int             `json:"progress"`
	Results  json.RawMessage `json:"results"`
}

// Client performs performance calls over the primary dispatcher.
type Client struct {
	d *transport.Dispatcher
}

func New(d *transport.Dispatcher) (*Client, error) {
	if d == nil {
		return nil, errors.New("[performance.New] dispatcher is required")
	}
	return &Client{d: d}, nil
}

// Upload submits footage for analysis. Uploads are large; the
// dispatcher's upload timeout applies.
func (c *Client) Upload(ctx context.Context, params UploadParams) (UploadResult, error) {
	if params.Video == nil {
		return UploadResult{}, errors.New("[performance.Upload] video is required")
	}
	parts := []transport.Part{
		transport.FilePart("video", params.Filename, "video/mp4", params.Video),
		transport.TextPart("match_type", params.MatchType),
		transport.TextPart("position", params.Position),
	}
	if params.MatchDate != "" {
		parts = append(parts, transport.TextPart("match_date", params.MatchDate))
	}

	return apicall.JSON[UploadResult](ctx, c.d, transport.Request{
		Method:       http.MethodPost,
		Path:         "/performance/upload",
		Parts:        parts,
		Upload:       true,
		RequiresAuth: true,
	})
}

// Get returns the analysis for an uploaded video. The answer is the
// record itself, not wrapped in an envelope key.
func (c *Client) Get(ctx context.Context, videoID string) (Analysis, error) {
	return apicall.JSON[Analysis](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/performance/analysis/" + videoID,
		RequiresAuth: true,
	})
}

// Card generates a player card from a completed analysis.
func (c *Client) Card(ctx context.Context, analysisID string) (PlayerCard, error) {
	res, err := apicall.JSON[struct {
		Card PlayerCard `json:"player_card"`
	}](ctx, c.d, transport.Request{
		Method: http.MethodPost,
		Path:   "/performance/player-card",
		Body: map[string]string{
			"analysis_id": analysisID,
		},
		RequiresAuth: true,
	})
	if err != nil {
		return PlayerCard{}, err
	}
	return res.Card, nil
}

// History lists a user's past analyses, newest first.
func (c *Client) History(ctx context.Context, userID string) ([]Record, error) {
	res, err := apicall.JSON[struct {
		Performances []Record `json:"performances"`
	}](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/performance/user/" + userID,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Performances, nil
}

// SubmitML hands an already-hosted video URL to the ML pipeline and
// returns the job id.
func (c *Client) SubmitML(ctx context.Context, videoURL string) (string, error) {
	res, err := apicall.JSON[struct {
		JobID string `json:"job_id"`
	}](ctx, c.d, transport.Request{
		Method: http.MethodPost,
		Path:   "/performance/ml-process",
		Body: map[string]string{
			"video_url": videoURL,
		},
		RequiresAuth: true,
	})
	if err != nil {
		return "", err
	}
	return res.JobID, nil
}

// MLStatus reports the pipeline job state and, once finished, its raw
// result document.
func (c *Client) MLStatus(ctx context.Context, jobID string) (MLJob, error) {
	return apicall.JSON[MLJob](ctx, c.d, transport.Request{
		Method:       http.MethodGet,
		Path:         "/performance/ml-status/" + jobID,
		RequiresAuth: true,
	})
}
