package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobstash/internal/models"
	"jobstash/internal/server/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := store.NewMemoryStore()
	return NewRouter(s), s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedJob(t *testing.T, s *store.MemoryStore, title, url string, status models.Status, platform models.Platform) models.SavedJob {
	t.Helper()
	job, err := s.Insert(context.Background(), models.SavedJob{
		Title:     title,
		Company:   "Acme",
		URL:       url,
		Platform:  platform,
		Status:    status,
		DateSaved: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

// ── Create ─────────────────────────────────────────────────────────────────

func TestCreateJob(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/jobs/", models.SavedJob{
		Title:    "Engineer",
		Company:  "Acme",
		URL:      "https://www.linkedin.com/jobs/view/1",
		Platform: models.PlatformLinkedIn,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var created models.SavedJob
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("created job has no id")
	}
	if created.Status != models.StatusSaved {
		t.Errorf("status = %q, want default %q", created.Status, models.StatusSaved)
	}
	if created.DateSaved.IsZero() {
		t.Error("date_saved was not stamped by the server")
	}
}

func TestCreateJob_DuplicateURL(t *testing.T) {
	r, s := newTestRouter(t)
	seedJob(t, s, "Engineer", "https://www.linkedin.com/jobs/view/1", models.StatusSaved, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodPost, "/api/jobs/", models.SavedJob{
		Title: "Engineer",
		URL:   "https://www.linkedin.com/jobs/view/1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("already exists")) {
		t.Errorf("body = %s, want duplicate detail", w.Body.String())
	}
}

func TestCreateJob_MissingTitle(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/jobs/", models.SavedJob{Company: "Acme"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateJob_InvalidStatus(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/jobs/", models.SavedJob{
		Title:  "Engineer",
		URL:    "https://example.com/1",
		Status: "hired",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ── List ───────────────────────────────────────────────────────────────────

func TestListJobs_Empty(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/jobs/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestListJobs_Filtered(t *testing.T) {
	r, s := newTestRouter(t)
	seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)
	seedJob(t, s, "Analyst", "https://b.example/2", models.StatusApplied, models.PlatformNaukri)
	seedJob(t, s, "Manager", "https://c.example/3", models.StatusApplied, models.PlatformIndeed)

	w := doJSON(t, r, http.MethodGet, "/api/jobs/?status=applied", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var jobs []models.SavedJob
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("decode jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("len(jobs) = %d, want 2", len(jobs))
	}
	for _, job := range jobs {
		if job.Status != models.StatusApplied {
			t.Errorf("job %q status = %q, want applied", job.Title, job.Status)
		}
	}

	w = doJSON(t, r, http.MethodGet, "/api/jobs/?platform=Naukri", nil)
	jobs = nil
	json.Unmarshal(w.Body.Bytes(), &jobs)
	if len(jobs) != 1 || jobs[0].Title != "Analyst" {
		t.Errorf("platform filter returned %+v", jobs)
	}
}

// ── Get / Update / Delete ──────────────────────────────────────────────────

func TestGetJob(t *testing.T) {
	r, s := newTestRouter(t)
	job := seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodGet, "/api/jobs/"+job.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/jobs/nonexistent", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateJob(t *testing.T) {
	r, s := newTestRouter(t)
	job := seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]string{
		"status": "applied",
		"notes":  "sent CV",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var updated models.SavedJob
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Status != models.StatusApplied || updated.Notes != "sent CV" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Title != "Engineer" {
		t.Errorf("untouched field changed: title = %q", updated.Title)
	}
}

func TestUpdateJob_InvalidStatus(t *testing.T) {
	r, s := newTestRouter(t)
	job := seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]string{"status": "HIRED"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateJob_NoFields(t *testing.T) {
	r, s := newTestRouter(t)
	job := seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteJob(t *testing.T) {
	r, s := newTestRouter(t)
	job := seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodDelete, "/api/jobs/"+job.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/jobs/"+job.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

// ── Stats and search ───────────────────────────────────────────────────────

func TestStatsSummary(t *testing.T) {
	r, s := newTestRouter(t)
	seedJob(t, s, "Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)
	seedJob(t, s, "Analyst", "https://b.example/2", models.StatusSaved, models.PlatformNaukri)
	seedJob(t, s, "Manager", "https://c.example/3", models.StatusApplied, models.PlatformLinkedIn)

	w := doJSON(t, r, http.MethodGet, "/api/jobs/stats/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var summary store.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalJobs != 3 {
		t.Errorf("total = %d, want 3", summary.TotalJobs)
	}
	if summary.StatusBreakdown[models.StatusSaved] != 2 {
		t.Errorf("saved count = %d, want 2", summary.StatusBreakdown[models.StatusSaved])
	}
	if summary.Platforms[models.PlatformLinkedIn] != 2 {
		t.Errorf("linkedin count = %d, want 2", summary.Platforms[models.PlatformLinkedIn])
	}
}

func TestSearchJobs(t *testing.T) {
	r, s := newTestRouter(t)
	seedJob(t, s, "Platform Engineer", "https://a.example/1", models.StatusSaved, models.PlatformLinkedIn)
	seedJob(t, s, "Data Analyst", "https://b.example/2", models.StatusSaved, models.PlatformNaukri)

	w := doJSON(t, r, http.MethodGet, "/api/jobs/search/engineer", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var jobs []models.SavedJob
	json.Unmarshal(w.Body.Bytes(), &jobs)
	if len(jobs) != 1 || jobs[0].Title != "Platform Engineer" {
		t.Errorf("search returned %+v", jobs)
	}
}

// ── Health ─────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
