// Package view holds the pure computations the UI derives from a cache
// snapshot: filtering, pagination and aggregate statistics. Nothing here
// mutates the snapshot.
package view

import (
	"strings"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// Filter narrows a snapshot by status first, then by a case-insensitive
// substring match on name, email or position. StatusAll skips the status
// step; a blank or whitespace-only term skips the text step. Relative order
// is preserved.
func Filter(cands []candidate.Candidate, status candidate.Status, term string) []candidate.Candidate {
	out := cands
	if status != candidate.StatusAll {
		filtered := make([]candidate.Candidate, 0, len(out))
		for _, c := range out {
			if c.Status == status {
				filtered = append(filtered, c)
			}
		}
		out = filtered
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return out
	}
	filtered := make([]candidate.Candidate, 0, len(out))
	for _, c := range out {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(strings.ToLower(c.Position), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
