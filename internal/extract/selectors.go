package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobstash/internal/models"
)

// selectorSet locates the posting fields on one job board's DOM.
// Selectors are comma-separated alternates; the first non-empty match
// wins, so a layout change on one variant does not break the others.
type selectorSet struct {
	Title       string
	Company     string
	Location    string
	Description string
}

var platformSelectors = map[models.Platform]selectorSet{
	models.PlatformLinkedIn: {
		Title:       "h1.top-card-layout__title, h1.t-24, .job-details-jobs-unified-top-card__job-title h1",
		Company:     "a.topcard__org-name-link, .job-details-jobs-unified-top-card__company-name a",
		Location:    "span.topcard__flavor--bullet, .job-details-jobs-unified-top-card__primary-description-container span",
		Description: "div.description__text, div.jobs-description__content",
	},
	models.PlatformNaukri: {
		Title:       "h1[class*='jd-header-title'], section[class*='jd-header'] h1",
		Company:     "div[class*='jd-header-comp-name'] a, a[class*='comp-name']",
		Location:    "span[class*='jhc__location'] a, div[class*='loc'] a",
		Description: "section[class*='job-desc'], div[class*='dang-inner-html']",
	},
	models.PlatformIndeed: {
		Title:       "h1.jobsearch-JobInfoHeader-title, h1[class*='jobsearch-JobInfoHeader']",
		Company:     "div[data-company-name] a, div[data-testid='inline-companyName'], a[data-testid='company-name']",
		Location:    "div[data-testid='inline-companyLocation'], div[data-testid='job-location']",
		Description: "div#jobDescriptionText",
	},
}

// fromSelectors reads the posting out of the platform's documented DOM
// shape. Unrecognized platforms have no selector table and yield nil.
func fromSelectors(doc *goquery.Document, platform models.Platform) *models.JobPosting {
	sel, ok := platformSelectors[platform]
	if !ok {
		return nil
	}
	return &models.JobPosting{
		Title:       textOf(doc, sel.Title),
		Company:     textOf(doc, sel.Company),
		Location:    textOf(doc, sel.Location),
		Description: textOf(doc, sel.Description),
	}
}

func textOf(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
