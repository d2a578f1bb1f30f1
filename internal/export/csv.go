// Package export renders the full candidate list as a delimited text file.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// Columns is the fixed export column order.
var Columns = []string{
	"name", "email", "phone", "position", "status", "skills",
	"experience", "rating", "appliedDate", "interviewDate",
	"yearlySalary", "location", "education", "notes",
}

// Filename stamps the export name with the given calendar date,
// e.g. candidates_2026-08-31.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("candidates_%s.csv", now.Format("2006-01-02"))
}

// Render writes a header row plus one row per candidate. Every field is
// quoted, with embedded quotes doubled; skills are joined by "; ", an
// unscheduled interview date is written as empty.
func Render(w io.Writer, cands []candidate.Candidate) error {
	if err := writeRow(w, Columns); err != nil {
		return err
	}
	for _, c := range cands {
		interview := ""
		if c.InterviewDate != nil {
			interview = *c.InterviewDate
		}
		row := []string{
			c.Name,
			c.Email,
			c.Phone,
			c.Position,
			string(c.Status),
			strings.Join(c.Skills, "; "),
			formatNumber(c.Experience),
			formatNumber(c.Rating),
			c.AppliedDate,
			interview,
			formatNumber(c.YearlySalary),
			c.Location,
			c.Education,
			c.Notes,
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile renders the list into a date-stamped file in dir and returns the
// full path.
func WriteFile(dir string, cands []candidate.Candidate, now time.Time) (string, error) {
	path := filepath.Join(dir, Filename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Render(f, cands); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

// writeRow quotes every field unconditionally. encoding/csv only quotes when
// it has to, so the row is assembled by hand.
func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

// formatNumber trims trailing zeros so whole values print without a decimal
// point (5 rather than 5.0).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
