package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobstash/internal/models"
)

const jobPostingType = "JobPosting"

// jsonldJob mirrors the schema.org JobPosting fields we care about.
// Loosely typed because job boards are inconsistent about whether
// nested values are objects, arrays, or missing entirely.
type jsonldJob struct {
	Type               any             `json:"@type"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	HiringOrganization json.RawMessage `json:"hiringOrganization"`
	JobLocation        json.RawMessage `json:"jobLocation"`
	Graph              []jsonldJob     `json:"@graph"`
}

type jsonldOrganization struct {
	Name string `json:"name"`
}

type jsonldLocation struct {
	Address struct {
		AddressLocality string `json:"addressLocality"`
	} `json:"address"`
}

// fromJSONLD scans every ld+json script block for an embedded
// JobPosting record. Blocks are searched in document order until one
// matches; malformed blocks are skipped, never fatal.
func fromJSONLD(doc *goquery.Document, _ models.Platform) *models.JobPosting {
	var posting *models.JobPosting

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		job, ok := decodeJobPosting(s.Text())
		if !ok {
			return true // keep scanning
		}
		posting = &models.JobPosting{
			Title:       strings.TrimSpace(job.Title),
			Company:     organizationName(job.HiringOrganization),
			Location:    firstLocality(job.JobLocation),
			Description: stripTags(job.Description),
		}
		return false
	})

	return posting
}

// decodeJobPosting parses one script block. The block may be a single
// object, an ordered collection, or a container with a @graph; the
// first entry whose declared type is JobPosting wins.
func decodeJobPosting(raw string) (jsonldJob, bool) {
	raw = strings.TrimSpace(raw)

	var single jsonldJob
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if isJobPosting(single.Type) {
			return single, true
		}
		for _, g := range single.Graph {
			if isJobPosting(g.Type) {
				return g, true
			}
		}
	}

	var list []jsonldJob
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		for _, entry := range list {
			if isJobPosting(entry.Type) {
				return entry, true
			}
		}
	}

	return jsonldJob{}, false
}

// isJobPosting handles @type declared as a string or a list of strings.
func isJobPosting(t any) bool {
	switch v := t.(type) {
	case string:
		return v == jobPostingType
	case []any:
		for _, entry := range v {
			if s, ok := entry.(string); ok && s == jobPostingType {
				return true
			}
		}
	}
	return false
}

func organizationName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var org jsonldOrganization
	if err := json.Unmarshal(raw, &org); err != nil {
		return ""
	}
	return strings.TrimSpace(org.Name)
}

// firstLocality returns the first listed job location's locality.
// jobLocation appears both as a bare object and as an array.
func firstLocality(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var loc jsonldLocation
	if err := json.Unmarshal(raw, &loc); err == nil && loc.Address.AddressLocality != "" {
		return strings.TrimSpace(loc.Address.AddressLocality)
	}

	var locs []jsonldLocation
	if err := json.Unmarshal(raw, &locs); err == nil && len(locs) > 0 {
		return strings.TrimSpace(locs[0].Address.AddressLocality)
	}

	return ""
}
