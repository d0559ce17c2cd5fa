// Package api is the client side of the jobstash tracking backend.
// One attempt per call, no retries: a transport error and a non-2xx
// response both collapse into the same generic failure so callers show
// a single "could not save" message. The duplicate case is the only
// one kept distinguishable, so the UI can say "already saved" instead.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobstash/internal/models"
)

// DefaultBaseURL is the fixed local backend address.
const DefaultBaseURL = "http://localhost:8000/api"

var (
	// ErrSaveFailed covers every save failure the user cannot act on.
	ErrSaveFailed = errors.New("could not save job")
	// ErrDuplicate means the backend already holds this URL.
	ErrDuplicate = errors.New("job already saved")
)

// Client talks to the backend REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SaveJob merges the posting with the user's status and notes, stamps
// date_saved, and issues a single POST. There is no client-side dedup
// lookup; the backend is the source of truth.
func (c *Client) SaveJob(ctx context.Context, posting *models.JobPosting, status models.Status, notes string) (*models.SavedJob, error) {
	if posting.IsEmpty() {
		return nil, ErrSaveFailed
	}

	job := models.NewSavedJob(posting, status, notes, time.Now())

	body, err := json.Marshal(job)
	if err != nil {
		log.Printf("save: encode job: %v", err)
		return nil, ErrSaveFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs/", bytes.NewReader(body))
	if err != nil {
		log.Printf("save: build request: %v", err)
		return nil, ErrSaveFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("save: %v", err)
		return nil, ErrSaveFailed
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var saved models.SavedJob
		if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
			// The save itself went through; return what we sent.
			return &job, nil
		}
		return &saved, nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusConflict:
		if isDuplicate(resp.Body) {
			return nil, ErrDuplicate
		}
		log.Printf("save: backend returned %d", resp.StatusCode)
		return nil, ErrSaveFailed
	default:
		log.Printf("save: backend returned %d", resp.StatusCode)
		return nil, ErrSaveFailed
	}
}

func isDuplicate(body io.Reader) bool {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(payload.Detail), "already exists")
}

// ListOptions narrows a jobs listing. Zero values mean "no filter";
// Limit 0 leaves paging to the backend default.
type ListOptions struct {
	Status   models.Status
	Platform models.Platform
	Limit    int
	Skip     int
}

// ListJobs fetches previously saved jobs, newest first.
func (c *Client) ListJobs(ctx context.Context, opts ListOptions) ([]models.SavedJob, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Set("status", string(opts.Status))
	}
	if opts.Platform != "" {
		params.Set("platform", string(opts.Platform))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Skip > 0 {
		params.Set("skip", strconv.Itoa(opts.Skip))
	}

	endpoint := c.baseURL + "/jobs/"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var jobs []models.SavedJob
	if err := c.getJSON(ctx, endpoint, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches one saved job by id.
func (c *Client) GetJob(ctx context.Context, id string) (*models.SavedJob, error) {
	var job models.SavedJob
	if err := c.getJSON(ctx, c.baseURL+"/jobs/"+url.PathEscape(id), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// JobUpdate carries the fields a PUT may change. Nil means "leave as is".
type JobUpdate struct {
	Title    *string        `json:"title,omitempty"`
	Company  *string        `json:"company,omitempty"`
	Location *string        `json:"location,omitempty"`
	Status   *models.Status `json:"status,omitempty"`
	Notes    *string        `json:"notes,omitempty"`
}

// UpdateJob applies a partial update to a saved job.
func (c *Client) UpdateJob(ctx context.Context, id string, update JobUpdate) (*models.SavedJob, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("encode update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/jobs/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update job: backend returned %d", resp.StatusCode)
	}

	var job models.SavedJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}

// DeleteJob removes a saved job.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete job: backend returned %d", resp.StatusCode)
	}
	return nil
}

// Stats summarizes the saved-jobs collection.
type Stats struct {
	TotalJobs       int                     `json:"total_jobs"`
	StatusBreakdown map[models.Status]int   `json:"status_breakdown"`
	Platforms       map[models.Platform]int `json:"platforms"`
}

// GetStats fetches the backend's summary counts.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.getJSON(ctx, c.baseURL+"/jobs/stats/summary", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Search finds saved jobs whose title or company matches the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SavedJob, error) {
	endpoint := c.baseURL + "/jobs/search/" + url.PathEscape(query)
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	var jobs []models.SavedJob
	if err := c.getJSON(ctx, endpoint, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: backend returned %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
