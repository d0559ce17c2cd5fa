package models

import (
	"net/url"
	"strings"
	"time"
)

// DescriptionLimit is the maximum number of characters kept from a job
// description during extraction.
const DescriptionLimit = 500

// Platform identifies the job board a posting was captured from.
type Platform string

const (
	PlatformLinkedIn Platform = "Linkedin"
	PlatformNaukri   Platform = "Naukri"
	PlatformIndeed   Platform = "Indeed"
	PlatformUnknown  Platform = "Unknown"
)

// Platforms lists the job boards that have selector tables and save
// triggers. PlatformUnknown is deliberately excluded.
var Platforms = []Platform{PlatformLinkedIn, PlatformNaukri, PlatformIndeed}

var platformHosts = map[Platform][]string{
	PlatformLinkedIn: {"linkedin.com"},
	PlatformNaukri:   {"naukri.com"},
	PlatformIndeed:   {"indeed.com"},
}

// DetectPlatform maps a page URL to a supported platform by host suffix.
// Unrecognized or unparseable URLs yield PlatformUnknown.
func DetectPlatform(rawURL string) Platform {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return PlatformUnknown
	}
	host := strings.ToLower(u.Hostname())
	for platform, suffixes := range platformHosts {
		for _, s := range suffixes {
			if host == s || strings.HasSuffix(host, "."+s) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// JobPosting is the record produced by a single extraction pass. It is
// rebuilt on every page view and never cached across navigations.
type JobPosting struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Platform    Platform `json:"platform"`
}

// IsEmpty reports whether the posting counts as "no job detected".
// A posting without a title is discarded before display or save.
func (p *JobPosting) IsEmpty() bool {
	return p == nil || strings.TrimSpace(p.Title) == ""
}

// SavedJob is the persisted record shape the backend stores.
type SavedJob struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Company     string    `json:"company" bson:"company"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description" bson:"description"`
	URL         string    `json:"url" bson:"url"`
	Platform    Platform  `json:"platform" bson:"platform"`
	Status      Status    `json:"status" bson:"status"`
	Notes       string    `json:"notes" bson:"notes"`
	DateSaved   time.Time `json:"date_saved" bson:"date_saved"`
}

// NewSavedJob merges an extracted posting with user-entered metadata.
// An empty status falls back to StatusSaved; savedAt stamps date_saved.
func NewSavedJob(p *JobPosting, status Status, notes string, savedAt time.Time) SavedJob {
	if status == "" {
		status = StatusSaved
	}
	return SavedJob{
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Description: p.Description,
		URL:         p.URL,
		Platform:    p.Platform,
		Status:      status,
		Notes:       notes,
		DateSaved:   savedAt,
	}
}
