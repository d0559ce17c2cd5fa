package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"jobstash/internal/models"
)

// MemoryStore is an in-process JobStore. It mirrors the Mongo store's
// behavior (URL dedup, newest-first ordering, paging) closely enough
// for handler tests and for running the server without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]models.SavedJob
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]models.SavedJob)}
}

func (m *MemoryStore) Insert(_ context.Context, job models.SavedJob) (models.SavedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.jobs {
		if existing.URL == job.URL {
			return models.SavedJob{}, ErrDuplicateURL
		}
	}

	job.ID = uuid.New().String()
	m.jobs[job.ID] = job
	return job, nil
}

func (m *MemoryStore) List(_ context.Context, filter ListFilter) ([]models.SavedJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var jobs []models.SavedJob
	for _, job := range m.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Platform != "" && job.Platform != filter.Platform {
			continue
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].DateSaved.After(jobs[j].DateSaved)
	})

	if filter.Skip > 0 {
		if filter.Skip >= len(jobs) {
			return []models.SavedJob{}, nil
		}
		jobs = jobs[filter.Skip:]
	}
	if filter.Limit > 0 && len(jobs) > filter.Limit {
		jobs = jobs[:filter.Limit]
	}
	if jobs == nil {
		jobs = []models.SavedJob{}
	}
	return jobs, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (models.SavedJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return models.SavedJob{}, ErrNotFound
	}
	return job, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fields UpdateFields) (models.SavedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return models.SavedJob{}, ErrNotFound
	}

	if fields.Title != nil {
		job.Title = *fields.Title
	}
	if fields.Company != nil {
		job.Company = *fields.Company
	}
	if fields.Location != nil {
		job.Location = *fields.Location
	}
	if fields.Status != nil {
		job.Status = *fields.Status
	}
	if fields.Notes != nil {
		job.Notes = *fields.Notes
	}

	m.jobs[id] = job
	return job, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *MemoryStore) Stats(_ context.Context) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := Summary{
		StatusBreakdown: make(map[models.Status]int),
		Platforms:       make(map[models.Platform]int),
	}
	for _, job := range m.jobs {
		summary.TotalJobs++
		summary.StatusBreakdown[job.Status]++
		summary.Platforms[job.Platform]++
	}
	return summary, nil
}

func (m *MemoryStore) Search(_ context.Context, query string, limit int) ([]models.SavedJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(query)
	var jobs []models.SavedJob
	for _, job := range m.jobs {
		if strings.Contains(strings.ToLower(job.Title), query) ||
			strings.Contains(strings.ToLower(job.Company), query) {
			jobs = append(jobs, job)
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].DateSaved.After(jobs[j].DateSaved)
	})

	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	if jobs == nil {
		jobs = []models.SavedJob{}
	}
	return jobs, nil
}
