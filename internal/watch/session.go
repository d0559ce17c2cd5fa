// Package watch keeps one save affordance alive per watched page. A
// Session reconciles its state against fresh extractions instead of
// mutating ambient state: every navigation drops the old affordance
// and rebuilds it from scratch.
package watch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"jobstash/internal/api"
	"jobstash/internal/models"
)

// AffordanceState is the visible state of the page's save control.
type AffordanceState string

const (
	// StateNone: no job detected, no control shown.
	StateNone AffordanceState = "none"
	// StateAvailable: job detected, save enabled.
	StateAvailable AffordanceState = "available"
	// StateSaving: a save is in flight; further triggers are no-ops.
	StateSaving AffordanceState = "saving"
	// StateSaved: saved, control disabled.
	StateSaved AffordanceState = "saved"
)

const noticeTTL = 3 * time.Second

// Saver is the slice of the backend client a session needs.
type Saver interface {
	SaveJob(ctx context.Context, posting *models.JobPosting, status models.Status, notes string) (*models.SavedJob, error)
}

// Notice is a transient toast-style message, expiring after ~3 s.
type Notice struct {
	Message   string
	ExpiresAt time.Time
}

// Session tracks the extraction and save state of a single page.
type Session struct {
	ID string

	mu      sync.Mutex
	url     string
	posting *models.JobPosting
	state   AffordanceState
	notice  *Notice
	saver   Saver
	now     func() time.Time
}

// NewSession creates a session bound to a save client.
func NewSession(saver Saver) *Session {
	return &Session{
		ID:    uuid.New().String(),
		state: StateNone,
		saver: saver,
		now:   time.Now,
	}
}

// Reconcile rebuilds the affordance from a fresh extraction of the
// page. It is idempotent: the previous posting and control state are
// discarded first, so stale "Saved" labels never survive navigation.
func (s *Session) Reconcile(doc *goquery.Document, pageURL string, extract func(*goquery.Document, string) *models.JobPosting) {
	posting := extract(doc, pageURL)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.url = pageURL
	s.posting = nil
	s.state = StateNone

	if posting.IsEmpty() {
		return
	}
	s.posting = posting
	s.state = StateAvailable
}

// Posting answers the getJobData request: the current extraction
// result, or nil, with no side effects.
func (s *Session) Posting() *models.JobPosting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posting
}

// State returns the current affordance state.
func (s *Session) State() AffordanceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Notice returns the active transient notice, if it has not expired.
func (s *Session) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice != nil && s.now().After(s.notice.ExpiresAt) {
		s.notice = nil
	}
	return s.notice
}

// ErrNoJob means the session has nothing to save.
var ErrNoJob = errors.New("no job detected on this page")

// TriggerSave saves the current posting. Concurrent triggers are
// deduped: while one save is in flight every other trigger returns
// immediately without issuing a second POST. Saving an already-saved
// page is also a no-op.
func (s *Session) TriggerSave(ctx context.Context, status models.Status, notes string) (*models.SavedJob, error) {
	s.mu.Lock()
	switch s.state {
	case StateNone:
		s.mu.Unlock()
		return nil, ErrNoJob
	case StateSaving, StateSaved:
		s.mu.Unlock()
		return nil, nil
	}
	posting := s.posting
	s.state = StateSaving
	s.mu.Unlock()

	saved, err := s.saver.SaveJob(ctx, posting, status, notes)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, api.ErrDuplicate) {
			// Already on the backend: treat as saved, tell the user why.
			s.state = StateSaved
			s.setNotice("Job already saved")
			return nil, err
		}
		log.Printf("session %s: save failed: %v", s.ID, err)
		s.state = StateAvailable
		s.setNotice("Could not save job")
		return nil, err
	}

	s.state = StateSaved
	return saved, nil
}

func (s *Session) setNotice(message string) {
	s.notice = &Notice{Message: message, ExpiresAt: s.now().Add(noticeTTL)}
}
