package view

import (
	"math"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// Stats is the aggregate dashboard over a candidate list.
type Stats struct {
	Total         int
	Pending       int
	Approved      int
	Rejected      int
	OnHold        int
	AvgSalary     int     // yearly, rounded to the nearest whole unit
	AvgExperience float64 // years, rounded to one decimal place
}

// Summarize computes the aggregate statistics for a snapshot. Both averages
// are exactly 0 for an empty list.
func Summarize(cands []candidate.Candidate) Stats {
	stats := Stats{Total: len(cands)}

	var salarySum, expSum float64
	for _, c := range cands {
		switch c.Status {
		case candidate.StatusPending:
			stats.Pending++
		case candidate.StatusApproved:
			stats.Approved++
		case candidate.StatusRejected:
			stats.Rejected++
		case candidate.StatusOnHold:
			stats.OnHold++
		}
		salarySum += c.YearlySalary
		expSum += c.Experience
	}

	if stats.Total > 0 {
		stats.AvgSalary = int(math.Round(salarySum / float64(stats.Total)))
		stats.AvgExperience = math.Round(expSum/float64(stats.Total)*10) / 10
	}
	return stats
}
