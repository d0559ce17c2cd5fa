package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"jobstash/internal/models"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture HTML: %v", err)
	}
	return doc
}

// ── JSON-LD strategy ───────────────────────────────────────────────────────

const linkedinJobURL = "https://www.linkedin.com/jobs/view/123456"

func TestExtract_JSONLD(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{"@context":"https://schema.org","@type":"JobPosting","title":"Engineer",
	 "hiringOrganization":{"@type":"Organization","name":"Acme"},
	 "jobLocation":[{"@type":"Place","address":{"addressLocality":"Remote"}}],
	 "description":"<p>Build things</p>"}
	</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil {
		t.Fatal("Extract returned nil for a well-formed JSON-LD posting")
	}
	want := models.JobPosting{
		Title:       "Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Description: "Build things",
		URL:         linkedinJobURL,
		Platform:    models.PlatformLinkedIn,
	}
	if *got != want {
		t.Errorf("Extract = %+v, want %+v", *got, want)
	}
}

func TestExtract_JSONLD_ListBlock(t *testing.T) {
	// An ordered collection: the first JobPosting entry wins, the
	// leading BreadcrumbList is skipped.
	html := `<html><head>
	<script type="application/ld+json">
	[{"@type":"BreadcrumbList"},
	 {"@type":"JobPosting","title":"Backend Developer",
	  "hiringOrganization":{"name":"Initech"},"description":"Go services"}]
	</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil {
		t.Fatal("Extract returned nil for a list-shaped JSON-LD block")
	}
	if got.Title != "Backend Developer" || got.Company != "Initech" {
		t.Errorf("got title=%q company=%q, want Backend Developer at Initech", got.Title, got.Company)
	}
}

func TestExtract_JSONLD_Graph(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{"@context":"https://schema.org","@graph":[
	  {"@type":"WebPage"},
	  {"@type":"JobPosting","title":"SRE","hiringOrganization":{"name":"Hooli"}}]}
	</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil || got.Title != "SRE" || got.Company != "Hooli" {
		t.Fatalf("Extract = %+v, want SRE at Hooli", got)
	}
}

func TestExtract_JSONLD_TypeList(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{"@type":["JobPosting","Thing"],"title":"Data Engineer"}
	</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil || got.Title != "Data Engineer" {
		t.Fatalf("Extract = %+v, want Data Engineer", got)
	}
}

func TestExtract_JSONLD_SkipsMalformedBlocks(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type":"JobPosting","title":"Platform Engineer"}</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil || got.Title != "Platform Engineer" {
		t.Fatalf("Extract = %+v, want Platform Engineer from the second block", got)
	}
}

func TestExtract_JSONLD_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("x", 2*models.DescriptionLimit)
	html := `<html><head>
	<script type="application/ld+json">
	{"@type":"JobPosting","title":"Engineer","description":"` + long + `"}
	</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil {
		t.Fatal("Extract returned nil")
	}
	if len([]rune(got.Description)) != models.DescriptionLimit {
		t.Errorf("description length = %d, want %d", len([]rune(got.Description)), models.DescriptionLimit)
	}
}

func TestExtract_JSONLD_PlatformAgnostic(t *testing.T) {
	// Structured data wins even on an unrecognized site.
	html := `<html><head>
	<script type="application/ld+json">
	{"@type":"JobPosting","title":"Engineer","hiringOrganization":{"name":"Acme"}}
	</script>
	</head><body></body></html>`

	got := Extract(mustDoc(t, html), "https://careers.example.com/jobs/1")
	if got == nil {
		t.Fatal("Extract returned nil on an unknown platform with JSON-LD present")
	}
	if got.Platform != models.PlatformUnknown {
		t.Errorf("platform = %q, want %q", got.Platform, models.PlatformUnknown)
	}
}

func TestExtract_JSONLD_EmptyTitleDiscarded(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{"@type":"JobPosting","title":"","hiringOrganization":{"name":"Acme"}}
	</script>
	</head><body></body></html>`

	if got := Extract(mustDoc(t, html), "https://careers.example.com/jobs/1"); got != nil {
		t.Errorf("Extract = %+v, want nil for an empty title", got)
	}
}

// ── Selector fallback ──────────────────────────────────────────────────────

func TestExtract_LinkedInSelectors(t *testing.T) {
	html := `<html><body>
	<h1 class="top-card-layout__title">Staff Engineer</h1>
	<a class="topcard__org-name-link" href="#"> Acme Corp </a>
	<span class="topcard__flavor--bullet">Berlin</span>
	<div class="description__text">Design and run distributed systems.</div>
	</body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil {
		t.Fatal("Extract returned nil for LinkedIn DOM fixture")
	}
	if got.Title != "Staff Engineer" || got.Company != "Acme Corp" || got.Location != "Berlin" {
		t.Errorf("got %+v, want Staff Engineer / Acme Corp / Berlin", got)
	}
	if got.Platform != models.PlatformLinkedIn {
		t.Errorf("platform = %q, want %q", got.Platform, models.PlatformLinkedIn)
	}
}

func TestExtract_NaukriSelectors(t *testing.T) {
	html := `<html><body>
	<section class="styles_jd-header__qzmvg"><h1 class="styles_jd-header-title__rZwM1">QA Lead</h1></section>
	<div class="styles_jd-header-comp-name__MvqAI"><a href="#">Infosys</a></div>
	<span class="styles_jhc__location__W_pVs"><a href="#">Bengaluru</a></span>
	<section class="styles_job-desc-container__txpYf">Own the QA process.</section>
	</body></html>`

	got := Extract(mustDoc(t, html), "https://www.naukri.com/job-listings-qa-lead")
	if got == nil {
		t.Fatal("Extract returned nil for Naukri DOM fixture")
	}
	if got.Title != "QA Lead" || got.Company != "Infosys" || got.Location != "Bengaluru" {
		t.Errorf("got %+v, want QA Lead / Infosys / Bengaluru", got)
	}
}

func TestExtract_IndeedSelectors(t *testing.T) {
	html := `<html><body>
	<h1 class="jobsearch-JobInfoHeader-title">DevOps Engineer</h1>
	<div data-company-name="true"><a href="#">Globex</a></div>
	<div data-testid="inline-companyLocation">Austin, TX</div>
	<div id="jobDescriptionText">Keep the pipelines green.</div>
	</body></html>`

	got := Extract(mustDoc(t, html), "https://www.indeed.com/viewjob?jk=abc")
	if got == nil {
		t.Fatal("Extract returned nil for Indeed DOM fixture")
	}
	if got.Title != "DevOps Engineer" || got.Company != "Globex" || got.Location != "Austin, TX" {
		t.Errorf("got %+v, want DevOps Engineer / Globex / Austin, TX", got)
	}
}

func TestExtract_UnknownPlatformNoStructuredData(t *testing.T) {
	html := `<html><body><h1>Some Job</h1></body></html>`
	if got := Extract(mustDoc(t, html), "https://jobs.example.org/1"); got != nil {
		t.Errorf("Extract = %+v, want nil for unknown platform without JSON-LD", got)
	}
}

func TestExtract_KnownPlatformMissingNodes(t *testing.T) {
	// Recognized platform but none of the selectors match: no title,
	// so no job detected.
	html := `<html><body><div class="unrelated">nothing here</div></body></html>`
	if got := Extract(mustDoc(t, html), linkedinJobURL); got != nil {
		t.Errorf("Extract = %+v, want nil when selector nodes are absent", got)
	}
}

func TestExtract_SelectorDescriptionTruncated(t *testing.T) {
	long := strings.Repeat("y", 3*models.DescriptionLimit)
	html := `<html><body>
	<h1 class="top-card-layout__title">Engineer</h1>
	<div class="description__text">` + long + `</div>
	</body></html>`

	got := Extract(mustDoc(t, html), linkedinJobURL)
	if got == nil {
		t.Fatal("Extract returned nil")
	}
	if len([]rune(got.Description)) > models.DescriptionLimit {
		t.Errorf("description length = %d, want at most %d", len([]rune(got.Description)), models.DescriptionLimit)
	}
}

// ── stripTags ──────────────────────────────────────────────────────────────

func TestStripTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Build things</p>", "Build things"},
		{"plain text", "plain text"},
		{"<div><b>Go</b> engineer</div>", "Go engineer"},
		{"", ""},
	}
	for _, c := range cases {
		if got := stripTags(c.in); got != c.want {
			t.Errorf("stripTags(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
