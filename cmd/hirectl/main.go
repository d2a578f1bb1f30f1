// hirectl is a command-line client for the candidate store. It drives the
// session cache the same way the browser UI does: load once, then read
// derived views or issue mutations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hiredesk/hiredesk/internal/candidate"
	"github.com/hiredesk/hiredesk/internal/client"
	"github.com/hiredesk/hiredesk/internal/config"
	"github.com/hiredesk/hiredesk/internal/export"
	"github.com/hiredesk/hiredesk/internal/logger"
	"github.com/hiredesk/hiredesk/internal/store"
	"github.com/hiredesk/hiredesk/internal/view"
)

const usage = `usage: hirectl [-delay <duration>] <command> [flags]

commands:
  list     show a page of candidates (filter, search, paginate)
  get      show one candidate by id
  add      create a candidate
  update   change fields of a candidate
  delete   remove a candidate
  search   server-side text search
  stats    aggregate dashboard numbers
  export   write the full list as CSV
`

func main() {
	global := flag.NewFlagSet("hirectl", flag.ExitOnError)
	delay := global.Duration("delay", 0, "artificial delay before each store request (overrides config)")
	global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		fatal(err)
	}
	if *delay > 0 {
		client.SetDelay(*delay)
	} else {
		client.SetDelay(time.Duration(cfg.Client.DelayMS) * time.Millisecond)
	}

	api := client.New(cfg.Client.BaseURL, cfg.Client.Timeout)
	cache := store.New(api)
	ctx := context.Background()

	switch args[0] {
	case "list":
		err = runList(ctx, api, cache, args[1:])
	case "get":
		err = runGet(ctx, cache, args[1:])
	case "add":
		err = runAdd(ctx, cache, args[1:])
	case "update":
		err = runUpdate(ctx, cache, args[1:])
	case "delete":
		err = runDelete(ctx, cache, args[1:])
	case "search":
		err = runSearch(ctx, api, args[1:])
	case "stats":
		err = runStats(ctx, cache, args[1:])
	case "export":
		err = runExport(ctx, cache, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "hirectl:", err)
	os.Exit(1)
}

// load fills the cache and surfaces the recorded error, if any. The store
// itself never returns one for a bulk load.
func load(ctx context.Context, cache *store.Store) error {
	cache.Load(ctx)
	if msg := cache.LastError(); msg != "" {
		return fmt.Errorf("load candidates: %s", msg)
	}
	return nil
}

func runList(ctx context.Context, api *client.Client, cache *store.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", string(candidate.StatusAll), "status filter (pending|approved|rejected|on-hold|all)")
	term := fs.String("search", "", "text filter on name, email or position")
	page := fs.Int("page", 1, "page number")
	remote := fs.Bool("remote", false, "let the server do the status filtering")
	fs.Parse(args)

	var cands []candidate.Candidate
	if *remote {
		fetched, err := api.FetchByStatus(ctx, candidate.Status(*status))
		if err != nil {
			return err
		}
		cands = view.Filter(fetched, candidate.StatusAll, *term)
	} else {
		if err := load(ctx, cache); err != nil {
			return err
		}
		cands = view.Filter(cache.Snapshot(), candidate.Status(*status), *term)
	}

	p := view.Paginate(cands, *page)
	if len(p.Items) == 0 {
		fmt.Println("No candidates found.")
		return nil
	}
	printCandidates(p.Items)
	fmt.Printf("\npage %d of %d (%d candidates) %s\n", p.Number, p.TotalPages, p.Total, pageStrip(p.Number, p.TotalPages))
	return nil
}

func runGet(ctx context.Context, cache *store.Store, args []string) error {
	id, err := parseIDArg("get", args)
	if err != nil {
		return err
	}
	if err := load(ctx, cache); err != nil {
		logger.WithComponent("hirectl").Debugf("bulk load failed, relying on point lookup: %v", err)
	}
	c, err := cache.Resolve(ctx, id)
	if err != nil {
		return fmt.Errorf("candidate %d not found; run 'hirectl list' to see the current directory", id)
	}
	printDetail(c)
	return nil
}

func runAdd(ctx context.Context, cache *store.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	var c candidate.Candidate
	var skills, interview, status string
	fs.StringVar(&c.Name, "name", "", "full name (required)")
	fs.StringVar(&c.Email, "email", "", "email address (required)")
	fs.StringVar(&c.Phone, "phone", "", "phone number")
	fs.StringVar(&c.Position, "position", "", "position applied for (required)")
	fs.StringVar(&status, "status", string(candidate.StatusPending), "pipeline status")
	fs.StringVar(&skills, "skills", "", "comma-separated skills")
	fs.Float64Var(&c.Experience, "experience", 0, "years of experience")
	fs.Float64Var(&c.Rating, "rating", 0, "rating 0-5")
	fs.StringVar(&c.AppliedDate, "applied", time.Now().Format("2006-01-02"), "application date (YYYY-MM-DD)")
	fs.StringVar(&interview, "interview", "", "interview date (YYYY-MM-DD), empty = not scheduled")
	fs.StringVar(&c.Notes, "notes", "", "free-form notes")
	fs.Float64Var(&c.YearlySalary, "salary", 0, "yearly salary")
	fs.StringVar(&c.Location, "location", "", "location")
	fs.StringVar(&c.Education, "education", "", "education")
	fs.Parse(args)

	parsed, err := candidate.ParseStatus(status)
	if err != nil {
		return err
	}
	c.Status = parsed
	c.Skills = splitSkills(skills)
	if interview != "" {
		c.InterviewDate = &interview
	}

	if err := load(ctx, cache); err != nil {
		return err
	}
	created, err := cache.Add(ctx, c)
	if err != nil {
		return err
	}
	fmt.Printf("created candidate %d (%s)\n", created.ID, created.Name)
	return nil
}

func runUpdate(ctx context.Context, cache *store.Store, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "candidate id (required)")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	position := fs.String("position", "", "position")
	status := fs.String("status", "", "pipeline status")
	skills := fs.String("skills", "", "comma-separated skills")
	experience := fs.Float64("experience", 0, "years of experience")
	rating := fs.Float64("rating", 0, "rating 0-5")
	applied := fs.String("applied", "", "application date")
	interview := fs.String("interview", "", "interview date")
	notes := fs.String("notes", "", "free-form notes")
	salary := fs.Float64("salary", 0, "yearly salary")
	location := fs.String("location", "", "location")
	education := fs.String("education", "", "education")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("update: -id is required")
	}

	// Only flags the user actually set become part of the patch.
	var patch candidate.Patch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "email":
			patch.Email = email
		case "phone":
			patch.Phone = phone
		case "position":
			patch.Position = position
		case "status":
			s := candidate.Status(*status)
			patch.Status = &s
		case "skills":
			list := splitSkills(*skills)
			patch.Skills = &list
		case "experience":
			patch.Experience = experience
		case "rating":
			patch.Rating = rating
		case "applied":
			patch.AppliedDate = applied
		case "interview":
			patch.InterviewDate = interview
		case "notes":
			patch.Notes = notes
		case "salary":
			patch.YearlySalary = salary
		case "location":
			patch.Location = location
		case "education":
			patch.Education = education
		}
	})
	if patch.IsZero() {
		return fmt.Errorf("update: no fields to change")
	}

	if err := load(ctx, cache); err != nil {
		return err
	}
	updated, err := cache.Update(ctx, *id, patch)
	if err != nil {
		return fmt.Errorf("could not save changes: %w", err)
	}
	fmt.Printf("updated candidate %d (%s)\n", updated.ID, updated.Name)
	return nil
}

func runDelete(ctx context.Context, cache *store.Store, args []string) error {
	id, err := parseIDArg("delete", args)
	if err != nil {
		return err
	}
	if err := load(ctx, cache); err != nil {
		return err
	}
	if err := cache.Remove(ctx, id); err != nil {
		return fmt.Errorf("could not delete candidate %d: %w", id, err)
	}
	fmt.Printf("deleted candidate %d\n", id)
	return nil
}

func runSearch(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("search: query argument is required")
	}

	results, err := api.SearchByText(ctx, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No candidates found.")
		return nil
	}
	printCandidates(results)
	return nil
}

func runStats(ctx context.Context, cache *store.Store, args []string) error {
	if err := load(ctx, cache); err != nil {
		return err
	}
	s := view.Summarize(cache.Snapshot())
	fmt.Printf("Total candidates: %d\n", s.Total)
	fmt.Printf("  pending:  %d\n", s.Pending)
	fmt.Printf("  approved: %d\n", s.Approved)
	fmt.Printf("  rejected: %d\n", s.Rejected)
	fmt.Printf("  on-hold:  %d\n", s.OnHold)
	fmt.Printf("Average salary:     %d per year\n", s.AvgSalary)
	fmt.Printf("Average experience: %.1f years\n", s.AvgExperience)
	return nil
}

func runExport(ctx context.Context, cache *store.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory to write the CSV into")
	stdout := fs.Bool("stdout", false, "write CSV to stdout instead of a file")
	fs.Parse(args)

	if err := load(ctx, cache); err != nil {
		return err
	}
	cands := cache.Snapshot()

	if *stdout {
		return export.Render(os.Stdout, cands)
	}
	path, err := export.WriteFile(*dir, cands, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("exported %d candidates to %s\n", len(cands), path)
	return nil
}

func parseIDArg(cmd string, args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%s: candidate id argument is required", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid candidate id %q", cmd, args[0])
	}
	return id, nil
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printCandidates(cands []candidate.Candidate) {
	fmt.Printf("%-4s %-22s %-28s %-22s %-9s %5s %10s\n", "ID", "NAME", "EMAIL", "POSITION", "STATUS", "EXP", "SALARY")
	for _, c := range cands {
		fmt.Printf("%-4d %-22s %-28s %-22s %-9s %5.1f %10.0f\n",
			c.ID, c.Name, c.Email, c.Position, c.Status, c.Experience, c.YearlySalary)
	}
}

func printDetail(c candidate.Candidate) {
	interview := "not scheduled"
	if c.InterviewDate != nil {
		interview = *c.InterviewDate
	}
	fmt.Printf("Candidate %d\n", c.ID)
	fmt.Printf("  Name:       %s\n", c.Name)
	fmt.Printf("  Email:      %s\n", c.Email)
	fmt.Printf("  Phone:      %s\n", c.Phone)
	fmt.Printf("  Position:   %s\n", c.Position)
	fmt.Printf("  Status:     %s\n", c.Status)
	fmt.Printf("  Skills:     %s\n", strings.Join(c.Skills, "; "))
	fmt.Printf("  Experience: %.1f years\n", c.Experience)
	fmt.Printf("  Rating:     %.1f / 5\n", c.Rating)
	fmt.Printf("  Applied:    %s\n", c.AppliedDate)
	fmt.Printf("  Interview:  %s\n", interview)
	fmt.Printf("  Salary:     %.0f\n", c.YearlySalary)
	fmt.Printf("  Location:   %s\n", c.Location)
	fmt.Printf("  Education:  %s\n", c.Education)
	if c.Notes != "" {
		fmt.Printf("  Notes:      %s\n", c.Notes)
	}
}

func pageStrip(current, total int) string {
	var b strings.Builder
	for i, p := range view.PageNumbers(current, total) {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case p == view.Ellipsis:
			b.WriteString("...")
		case p == current:
			fmt.Fprintf(&b, "[%d]", p)
		default:
			fmt.Fprintf(&b, "%d", p)
		}
	}
	return b.String()
}
