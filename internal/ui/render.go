// Terminal rendering for the two views: the current-job panel shown
// after an extraction, and the dashboard listing everything the
// backend holds.
package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"jobstash/internal/api"
	"jobstash/internal/models"
)

// EmptyDashboardMessage is the exact empty-state line for a dashboard
// with no saved jobs.
const EmptyDashboardMessage = "No saved jobs yet. Save a job to see it here."

// StatusBadge colors a status the way the dashboard badge does.
func StatusBadge(status models.Status) string {
	switch status {
	case models.StatusSaved:
		return pterm.Cyan(string(status))
	case models.StatusApplied:
		return pterm.Yellow(string(status))
	case models.StatusInterview:
		return pterm.LightMagenta(string(status))
	case models.StatusOffer:
		return pterm.Green(string(status))
	case models.StatusRejected:
		return pterm.Red(string(status))
	default:
		return pterm.Gray(string(status))
	}
}

// PrintCurrentJob renders the extraction result for the active page.
// A nil or empty posting shows the "no job detected" message.
func PrintCurrentJob(posting *models.JobPosting) {
	if posting.IsEmpty() {
		pterm.Println(pterm.Gray("No job detected on this page."))
		return
	}

	pterm.DefaultSection.Println("Current Job")
	fmt.Printf("Title:    %s\n", posting.Title)
	fmt.Printf("Company:  %s\n", posting.Company)
	if posting.Location != "" {
		fmt.Printf("Location: %s\n", posting.Location)
	}
	fmt.Printf("Platform: %s\n", posting.Platform)
	if posting.Description != "" {
		fmt.Printf("\n%s\n", posting.Description)
	}
}

// PrintDashboard renders one summary row per saved job, newest first,
// or the empty-state message.
func PrintDashboard(jobs []models.SavedJob, badge int) {
	title := "Saved Jobs"
	if badge > 0 {
		title = fmt.Sprintf("Saved Jobs (badge: %d)", badge)
	}
	pterm.DefaultSection.Println(title)

	if len(jobs) == 0 {
		pterm.Println(pterm.Gray(EmptyDashboardMessage))
		return
	}

	rows := pterm.TableData{{"Title", "Company", "Platform", "Status", "Saved"}}
	for _, job := range jobs {
		rows = append(rows, DashboardRow(job))
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	fmt.Printf("\n%d saved job(s)\n", len(jobs))
}

// DashboardRow builds the summary cells for one saved job.
func DashboardRow(job models.SavedJob) []string {
	return []string{
		truncateString(job.Title, 40),
		truncateString(job.Company, 24),
		string(job.Platform),
		StatusBadge(job.Status),
		humanize.Time(job.DateSaved),
	}
}

// PrintSavedJob renders the full detail view for one saved job.
func PrintSavedJob(job *models.SavedJob) {
	pterm.DefaultSection.Println("Saved Job")
	fmt.Printf("ID:       %s\n", job.ID)
	fmt.Printf("Title:    %s\n", job.Title)
	fmt.Printf("Company:  %s\n", job.Company)
	if job.Location != "" {
		fmt.Printf("Location: %s\n", job.Location)
	}
	fmt.Printf("Platform: %s\n", job.Platform)
	fmt.Printf("Status:   %s\n", StatusBadge(job.Status))
	fmt.Printf("Saved:    %s\n", humanize.Time(job.DateSaved))
	if job.Notes != "" {
		fmt.Printf("Notes:    %s\n", job.Notes)
	}
	if job.URL != "" {
		fmt.Printf("URL:      %s\n", job.URL)
	}
	if job.Description != "" {
		fmt.Printf("\n%s\n", job.Description)
	}
}

// PrintDashboardError renders the inline error panel shown in place of
// the jobs list when the fetch fails.
func PrintDashboardError(err error) {
	pterm.Error.Printfln("Could not load saved jobs: %v", err)
}

// PrintStats renders the backend's summary counts. Non-terminal
// statuses get a hint naming the usual next steps.
func PrintStats(stats *api.Stats) {
	pterm.DefaultSection.Println("Job Stats")
	fmt.Printf("Total saved jobs: %d\n\n", stats.TotalJobs)

	for _, status := range models.Statuses {
		count := stats.StatusBreakdown[status]
		if count == 0 {
			continue
		}
		line := fmt.Sprintf("  %-12s %d", StatusBadge(status), count)
		if hint := StatusHint(status); hint != "" {
			line += "   " + pterm.Gray(hint)
		}
		fmt.Println(line)
	}
	if len(stats.Platforms) > 0 {
		fmt.Println()
		for platform, count := range stats.Platforms {
			fmt.Printf("  %-12s %d\n", platform, count)
		}
	}
}

// StatusHint names the usual next steps from a status, or "" for a
// terminal one.
func StatusHint(status models.Status) string {
	var next []string
	for _, candidate := range models.Statuses {
		if models.IsForwardTransition(status, candidate) {
			next = append(next, string(candidate))
		}
	}
	if len(next) == 0 {
		return ""
	}
	return "next: " + strings.Join(next, " or ")
}

// PrintNotice shows a transient toast-style message.
func PrintNotice(message string) {
	pterm.Warning.Println(message)
}

// truncateString truncates a string and adds "..." if necessary.
func truncateString(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
