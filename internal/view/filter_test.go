package view

import (
	"reflect"
	"testing"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

func filterFixture() []candidate.Candidate {
	return []candidate.Candidate{
		{ID: 1, Name: "Alice Chen", Email: "alice@example.com", Position: "Backend Engineer", Status: candidate.StatusApproved},
		{ID: 2, Name: "Bob Novak", Email: "bob@example.com", Position: "Data Analyst", Status: candidate.StatusPending},
		{ID: 3, Name: "Cara Diaz", Email: "cara@example.com", Position: "Frontend Engineer", Status: candidate.StatusPending},
		{ID: 4, Name: "Dana Kim", Email: "dana@example.com", Position: "SRE", Status: candidate.StatusOnHold},
	}
}

func TestFilter(t *testing.T) {
	cands := filterFixture()

	tests := []struct {
		name   string
		status candidate.Status
		term   string
		want   []int64
	}{
		{"no filters", candidate.StatusAll, "", []int64{1, 2, 3, 4}},
		{"status only", candidate.StatusPending, "", []int64{2, 3}},
		{"term only", candidate.StatusAll, "engineer", []int64{1, 3}},
		{"term is case-insensitive", candidate.StatusAll, "ENGINEER", []int64{1, 3}},
		{"term matches email", candidate.StatusAll, "bob@", []int64{2}},
		{"status and term combined", candidate.StatusPending, "engineer", []int64{3}},
		{"whitespace-only term skips text step", candidate.StatusAll, "   ", []int64{1, 2, 3, 4}},
		{"term with surrounding spaces", candidate.StatusAll, "  alice  ", []int64{1}},
		{"no matches", candidate.StatusRejected, "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(cands, tc.status, tc.term))
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Filter(%q, %q) = %v, want %v", tc.status, tc.term, got, tc.want)
			}
		})
	}
}

func TestFilter_PreservesInput(t *testing.T) {
	cands := filterFixture()
	Filter(cands, candidate.StatusPending, "cara")
	if !reflect.DeepEqual(ids(cands), []int64{1, 2, 3, 4}) {
		t.Error("filter must not reorder or mutate its input")
	}
}
