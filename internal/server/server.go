// Package server implements the job-tracking REST backend: a gin
// router over a JobStore. CORS stays permissive so save clients on any
// origin can post to it.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobstash/internal/server/store"
)

// NewRouter wires the REST surface over the given store.
func NewRouter(s store.JobStore) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	handler := NewJobHandler(s)

	r.GET("/health", HealthCheck)

	api := r.Group("/api")
	{
		// Fixed paths are registered on the same tree as /:id; gin
		// resolves statics first, so order here is just for reading.
		api.GET("/jobs/stats/summary", handler.StatsSummary)
		api.GET("/jobs/search/:query", handler.SearchJobs)

		api.POST("/jobs/", handler.CreateJob)
		api.GET("/jobs/", handler.ListJobs)
		api.GET("/jobs/:id", handler.GetJob)
		api.PUT("/jobs/:id", handler.UpdateJob)
		api.DELETE("/jobs/:id", handler.DeleteJob)
	}

	return r
}
