package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"

	"jobstash/internal/api"
	"jobstash/internal/bus"
	"jobstash/internal/client"
	"jobstash/internal/config"
	"jobstash/internal/coordinator"
	"jobstash/internal/extract"
	"jobstash/internal/models"
	"jobstash/internal/server"
	"jobstash/internal/server/store"
	"jobstash/internal/ui"
	"jobstash/internal/watch"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 jobstash Usage Examples 📋")

	fmt.Println("\n1. Capture a job posting and save it to the backend:")
	fmt.Println("   jobstash -url \"https://www.linkedin.com/jobs/view/123456\"")

	fmt.Println("\n2. Capture with a status and a note:")
	fmt.Println("   jobstash -url \"https://www.naukri.com/job-listings-...\" -status applied -notes \"referred by Sam\"")

	fmt.Println("\n3. Preview the extraction without saving:")
	fmt.Println("   jobstash -url \"https://www.indeed.com/viewjob?jk=abc\" -dry-run")

	fmt.Println("\n4. Bulk-capture a list of job URLs from a file:")
	fmt.Println("   jobstash -from-file urls.txt")

	fmt.Println("\n5. Watch a posting page and auto-save when a job appears:")
	fmt.Println("   jobstash -watch \"https://www.linkedin.com/jobs/view/123456\" -autosave")

	fmt.Println("\n6. Show the saved-jobs dashboard, or search it:")
	fmt.Println("   jobstash -dashboard")
	fmt.Println("   jobstash -search \"platform engineer\"")

	fmt.Println("\n7. Inspect, update, or delete one saved job by its ID:")
	fmt.Println("   jobstash -show 68a1f0c2e4b0a1b2c3d4e5f6")
	fmt.Println("   jobstash -update 68a1f0c2e4b0a1b2c3d4e5f6 -status interview -notes \"onsite booked\"")
	fmt.Println("   jobstash -delete 68a1f0c2e4b0a1b2c3d4e5f6")

	fmt.Println("\n8. Run the tracking backend (MongoDB at MONGODB_URL):")
	fmt.Println("   jobstash -serve")

	os.Exit(0)
}

func main() {
	pageURL := flag.String("url", "", "Job posting URL to capture and save")
	fromFile := flag.String("from-file", "", "File with one job posting URL per line to bulk-capture")
	watchURL := flag.String("watch", "", "Job posting URL to watch for changes")
	autosave := flag.Bool("autosave", false, "With -watch: save automatically when a job is detected")
	dashboard := flag.Bool("dashboard", false, "Show the saved-jobs dashboard")
	stats := flag.Bool("stats", false, "Show saved-job stats")
	search := flag.String("search", "", "Search saved jobs by title or company")
	show := flag.String("show", "", "Saved job ID to display")
	update := flag.String("update", "", "Saved job ID to update (use with -status and/or -notes)")
	remove := flag.String("delete", "", "Saved job ID to delete")
	serve := flag.Bool("serve", false, "Run the tracking backend")

	status := flag.String("status", "", "Status to save with (saved, applied, interview, offer, rejected)")
	notes := flag.String("notes", "", "Notes to save with the job")
	dryRun := flag.Bool("dry-run", false, "Extract and display without saving")

	backend := flag.String("backend", "", "Backend base URL (default http://localhost:8000/api)")
	configPath := flag.String("config", "", "Path to a jobstash YAML config file")
	proxyURL := flag.String("proxy", "", "Proxy URL to use for page fetches")
	debug := flag.Bool("debug", false, "Enable debug mode")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *backend != "" {
		cfg.BackendURL = *backend
	}
	if *proxyURL != "" {
		cfg.ProxyURL = *proxyURL
	}

	var saveStatus models.Status
	if *status != "" {
		saveStatus, err = models.ParseStatus(*status)
		if err != nil {
			log.Fatalf("Invalid status: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *serve:
		runServer(ctx)
	case *pageURL != "":
		runCapture(ctx, cfg, *pageURL, saveStatus, *notes, *dryRun, *debug)
	case *fromFile != "":
		runBulkCapture(ctx, cfg, *fromFile, saveStatus, *notes, *debug)
	case *watchURL != "":
		runWatch(ctx, cfg, *watchURL, *autosave, saveStatus, *notes, *debug)
	case *dashboard:
		runDashboard(ctx, cfg)
	case *stats:
		runStats(ctx, cfg)
	case *search != "":
		runSearch(ctx, cfg, *search)
	case *show != "":
		runShow(ctx, cfg, *show)
	case *update != "":
		runUpdate(ctx, cfg, *update, saveStatus, *notes)
	case *remove != "":
		runDelete(ctx, cfg, *remove)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// runCapture fetches one page, shows the extraction, and saves it.
func runCapture(ctx context.Context, cfg *config.ClientConfig, pageURL string, status models.Status, notes string, dryRun, debug bool) {
	fetcher := client.NewPageFetcher(cfg.ProxyURL, debug)
	doc, err := fetcher.FetchDocument(ctx, pageURL)
	if err != nil {
		log.Fatalf("Error fetching page: %v", err)
	}

	posting := extract.Extract(doc, pageURL)
	ui.PrintCurrentJob(posting)
	if posting.IsEmpty() || dryRun {
		return
	}

	saver := api.New(cfg.BackendURL, nil)
	session := watch.NewSession(saver)
	session.Reconcile(doc, pageURL, extract.Extract)

	saved, err := session.TriggerSave(ctx, status, notes)
	if err != nil {
		reportSaveError(err, cfg)
		return
	}

	counter, cerr := coordinator.NewCounter(cfg.DataDir)
	if cerr == nil {
		counter.Increment()
	}
	fmt.Printf("\n✅ Saved %q (%s)\n", saved.Title, saved.Status)
}

// runBulkCapture reads one URL per line and captures each.
func runBulkCapture(ctx context.Context, cfg *config.ClientConfig, path string, status models.Status, notes string, debug bool) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error opening URL file: %v", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading URL file: %v", err)
	}
	if len(urls) == 0 {
		log.Fatal("No URLs found in file")
	}

	fetcher := client.NewPageFetcher(cfg.ProxyURL, debug)
	saver := api.New(cfg.BackendURL, nil)
	counter, _ := coordinator.NewCounter(cfg.DataDir)

	var saved, skipped, failed int
	bar := pb.StartNew(len(urls))
	for _, pageURL := range urls {
		func() {
			defer bar.Increment()

			doc, err := fetcher.FetchDocument(ctx, pageURL)
			if err != nil {
				if debug {
					log.Printf("fetch %s: %v", pageURL, err)
				}
				failed++
				return
			}

			posting := extract.Extract(doc, pageURL)
			if posting.IsEmpty() {
				skipped++
				return
			}

			if _, err := saver.SaveJob(ctx, posting, status, notes); err != nil {
				if errors.Is(err, api.ErrDuplicate) {
					skipped++
				} else {
					failed++
				}
				return
			}
			saved++
			if counter != nil {
				counter.Increment()
			}
		}()
	}
	bar.Finish()

	fmt.Printf("\nSaved %d job(s), skipped %d, failed %d\n", saved, skipped, failed)
}

// runWatch keeps re-extracting a page; with autosave it relays every
// fresh detection through the coordinator.
func runWatch(ctx context.Context, cfg *config.ClientConfig, pageURL string, autosave bool, status models.Status, notes string, debug bool) {
	fetcher := client.NewPageFetcher(cfg.ProxyURL, debug)
	saver := api.New(cfg.BackendURL, nil)
	session := watch.NewSession(saver)

	counter, err := coordinator.NewCounter(cfg.DataDir)
	if err != nil {
		log.Fatalf("Error opening data directory: %v", err)
	}

	b := bus.New()
	b.Handle(bus.ActionGetJobData, func(ctx context.Context, _ bus.Request) (bus.Response, error) {
		return bus.Response{Job: session.Posting()}, nil
	})
	b.Handle(bus.ActionSaveJob, func(ctx context.Context, _ bus.Request) (bus.Response, error) {
		saved, err := session.TriggerSave(ctx, status, notes)
		if err != nil && !errors.Is(err, api.ErrDuplicate) {
			return bus.Response{}, err
		}
		return bus.Response{Saved: saved}, nil
	})
	coord := coordinator.New(b, counter, func(ctx context.Context) error {
		return showDashboard(ctx, api.New(cfg.BackendURL, nil), counter.Value())
	})

	if autosave && !watch.SupportedURL(pageURL) {
		log.Fatalf("Cannot autosave: %s is not a supported job board", pageURL)
	}

	watcher := watch.NewWatcher(session, fetcher, pageURL, cfg.WatchInterval(), debug)
	log.Printf("Watching %s (every %s, Ctrl-C to stop)", pageURL, cfg.WatchInterval())

	go func() {
		watcher.Run(ctx)
	}()

	lastState := watch.StateNone
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Printf("\nBadge count: %d saved job(s)\n", coord.Badge())
			return
		case <-ticker.C:
			state := session.State()
			if state == lastState {
				continue
			}
			lastState = state

			switch state {
			case watch.StateAvailable:
				ui.PrintCurrentJob(session.Posting())
				if autosave {
					if _, err := coord.TriggerSave(ctx, pageURL); err != nil {
						reportSaveError(err, cfg)
					}
				}
			case watch.StateSaved:
				fmt.Println("✅ Saved")
			}
			if notice := session.Notice(); notice != nil {
				ui.PrintNotice(notice.Message)
			}
		}
	}
}

func runDashboard(ctx context.Context, cfg *config.ClientConfig) {
	counter, _ := coordinator.NewCounter(cfg.DataDir)
	badge := 0
	if counter != nil {
		badge = counter.Value()
	}
	if err := showDashboard(ctx, api.New(cfg.BackendURL, nil), badge); err != nil {
		os.Exit(1)
	}
}

func showDashboard(ctx context.Context, backendClient *api.Client, badge int) error {
	jobs, err := backendClient.ListJobs(ctx, api.ListOptions{})
	if err != nil {
		ui.PrintDashboardError(err)
		return err
	}
	ui.PrintDashboard(jobs, badge)
	return nil
}

func runStats(ctx context.Context, cfg *config.ClientConfig) {
	stats, err := api.New(cfg.BackendURL, nil).GetStats(ctx)
	if err != nil {
		ui.PrintDashboardError(err)
		os.Exit(1)
	}
	ui.PrintStats(stats)
}

func runSearch(ctx context.Context, cfg *config.ClientConfig, query string) {
	jobs, err := api.New(cfg.BackendURL, nil).Search(ctx, query, 0)
	if err != nil {
		ui.PrintDashboardError(err)
		os.Exit(1)
	}
	ui.PrintDashboard(jobs, 0)
}

func runShow(ctx context.Context, cfg *config.ClientConfig, id string) {
	job, err := api.New(cfg.BackendURL, nil).GetJob(ctx, id)
	if err != nil {
		ui.PrintDashboardError(err)
		os.Exit(1)
	}
	ui.PrintSavedJob(job)
}

func runUpdate(ctx context.Context, cfg *config.ClientConfig, id string, status models.Status, notes string) {
	var change api.JobUpdate
	if status != "" {
		change.Status = &status
	}
	if notes != "" {
		change.Notes = &notes
	}
	if change.Status == nil && change.Notes == nil {
		log.Fatal("Nothing to update: pass -status and/or -notes with -update")
	}

	job, err := api.New(cfg.BackendURL, nil).UpdateJob(ctx, id, change)
	if err != nil {
		log.Fatalf("Error updating job: %v", err)
	}
	fmt.Printf("✅ Updated %q (%s)\n", job.Title, job.Status)
}

func runDelete(ctx context.Context, cfg *config.ClientConfig, id string) {
	if err := api.New(cfg.BackendURL, nil).DeleteJob(ctx, id); err != nil {
		log.Fatalf("Error deleting job: %v", err)
	}
	fmt.Printf("Deleted job %s\n", id)
}

func runServer(ctx context.Context) {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Error loading server config: %v", err)
	}

	var jobStore store.JobStore
	if cfg.UseMemoryStore {
		log.Println("Using in-memory job store")
		jobStore = store.NewMemoryStore()
	} else {
		mongoStore, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			log.Fatalf("Error connecting to MongoDB: %v", err)
		}
		defer mongoStore.Close(context.Background())
		jobStore = mongoStore
	}

	router := server.NewRouter(jobStore)
	log.Printf("🚀 Job tracker backend listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func reportSaveError(err error, cfg *config.ClientConfig) {
	switch {
	case errors.Is(err, api.ErrDuplicate):
		ui.PrintNotice("Job already saved")
	case errors.Is(err, watch.ErrNoJob):
		ui.PrintNotice("No job detected on this page")
	default:
		ui.PrintNotice(fmt.Sprintf("Could not save job (is the backend running at %s?)", cfg.BackendURL))
	}
}
