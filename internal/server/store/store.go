// Package store persists saved jobs for the tracking backend. The
// Mongo implementation is the production store; MemoryStore backs
// handler tests.
package store

import (
	"context"
	"errors"

	"jobstash/internal/models"
)

var (
	// ErrDuplicateURL means a job with the same URL is already stored.
	ErrDuplicateURL = errors.New("job already exists")
	// ErrNotFound means no job matches the given id.
	ErrNotFound = errors.New("job not found")
	// ErrBadID means the id is not a valid identifier for this store.
	ErrBadID = errors.New("invalid job id")
)

// ListFilter narrows a listing. Empty fields match everything.
type ListFilter struct {
	Status   models.Status
	Platform models.Platform
	Limit    int
	Skip     int
}

// UpdateFields carries a partial update; nil pointers are left as is.
type UpdateFields struct {
	Title    *string
	Company  *string
	Location *string
	Status   *models.Status
	Notes    *string
}

// IsEmpty reports whether the update would change nothing.
func (u UpdateFields) IsEmpty() bool {
	return u.Title == nil && u.Company == nil && u.Location == nil && u.Status == nil && u.Notes == nil
}

// Summary holds the aggregate counts for the stats endpoint.
type Summary struct {
	TotalJobs       int                     `json:"total_jobs"`
	StatusBreakdown map[models.Status]int   `json:"status_breakdown"`
	Platforms       map[models.Platform]int `json:"platforms"`
}

// JobStore is the persistence surface the handlers depend on.
type JobStore interface {
	Insert(ctx context.Context, job models.SavedJob) (models.SavedJob, error)
	List(ctx context.Context, filter ListFilter) ([]models.SavedJob, error)
	Get(ctx context.Context, id string) (models.SavedJob, error)
	Update(ctx context.Context, id string, fields UpdateFields) (models.SavedJob, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Summary, error)
	Search(ctx context.Context, query string, limit int) ([]models.SavedJob, error)
}
