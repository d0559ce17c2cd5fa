package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobstash/internal/models"
	"jobstash/internal/server/store"
)

// JobHandler serves the saved-jobs REST surface over a JobStore.
type JobHandler struct {
	Store store.JobStore
}

// NewJobHandler creates the handler with its store dependency.
func NewJobHandler(s store.JobStore) *JobHandler {
	return &JobHandler{Store: s}
}

// CreateJob is POST /api/jobs/. Duplicate URLs are rejected here,
// the system's only dedup point; clients never pre-check.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var job models.SavedJob
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON format: " + err.Error()})
		return
	}

	if job.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "title is required"})
		return
	}
	if job.Status == "" {
		job.Status = models.DefaultStatus
	} else if _, err := models.ParseStatus(string(job.Status)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	job.DateSaved = time.Now()

	saved, err := h.Store.Insert(c.Request.Context(), job)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateURL) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Job already exists"})
			return
		}
		log.Printf("create job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListJobs is GET /api/jobs/ with optional status/platform filters and
// limit/skip paging.
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter := store.ListFilter{
		Status:   models.Status(c.Query("status")),
		Platform: models.Platform(c.Query("platform")),
		Limit:    intQuery(c, "limit", 50),
		Skip:     intQuery(c, "skip", 0),
	}

	jobs, err := h.Store.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("list jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob is GET /api/jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Failed to get job")
		return
	}
	c.JSON(http.StatusOK, job)
}

type updateRequest struct {
	Title    *string `json:"title"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

// UpdateJob is PUT /api/jobs/:id with a partial body.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON format: " + err.Error()})
		return
	}

	fields := store.UpdateFields{
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		status, err := models.ParseStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		fields.Status = &status
	}

	if fields.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No valid fields to update"})
		return
	}

	job, err := h.Store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondStoreError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /api/jobs/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// StatsSummary is GET /api/jobs/stats/summary.
func (h *JobHandler) StatsSummary(c *gin.Context) {
	summary, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		log.Printf("stats summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SearchJobs is GET /api/jobs/search/:query, a case-insensitive match
// on title or company.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	jobs, err := h.Store.Search(c.Request.Context(), c.Param("query"), intQuery(c, "limit", 20))
	if err != nil {
		log.Printf("search jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to search jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Job Tracker API is running!"})
}

func respondStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrBadID):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid job ID format"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Job not found"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fallback})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
