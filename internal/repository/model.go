package repository

import (
	"encoding/json"
	"reflect"

	"github.com/hiredesk/hiredesk/internal/candidate"
)

// Metadata holds versioning info for the data file.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// Document represents the persisted JSON structure.
type Document struct {
	Metadata   Metadata              `json:"metadata"`
	Candidates []candidate.Candidate `json:"candidates" validate:"dive"`
}

// ApplyDefaults sets fallback values after decode.
func (d *Document) ApplyDefaults() {
	if d.Candidates == nil {
		d.Candidates = []candidate.Candidate{}
	}
	for i := range d.Candidates {
		if d.Candidates[i].Skills == nil {
			d.Candidates[i].Skills = []string{}
		}
	}
}

// NextID returns the id the next inserted candidate should get (max + 1,
// starting at 1 for an empty document).
func (d *Document) NextID() int64 {
	var maxID int64
	for _, c := range d.Candidates {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

// AreDocumentsEqual compares two Documents ignoring Metadata.
// Uses JSON serialization for flexible comparison.
func AreDocumentsEqual(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var aMap, bMap map[string]interface{}
	if err := json.Unmarshal(aBytes, &aMap); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bMap); err != nil {
		return false
	}

	delete(aMap, "metadata")
	delete(bMap, "metadata")

	return reflect.DeepEqual(aMap, bMap)
}
