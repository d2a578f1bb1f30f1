package candidate

import (
	"encoding/json"
	"fmt"
)

// Status is the hiring-pipeline state of a candidate.
// Only the four constants below are ever stored.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusOnHold   Status = "on-hold"
)

// StatusAll is the reserved filter sentinel meaning "no status restriction".
// It is valid only as a filter parameter and is never stored on a record.
const StatusAll Status = "all"

// Statuses lists the storable status values in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusOnHold}

// ParseStatus converts a raw string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusOnHold:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether the status is one of the four storable values.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Candidate is a single hiring-pipeline record.
// JSON field names match the store's wire format.
type Candidate struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone"`
	Position      string   `json:"position" validate:"required"`
	Status        Status   `json:"status" validate:"required,oneof=pending approved rejected on-hold"`
	Skills        []string `json:"skills" validate:"dive,required"`
	Experience    float64  `json:"experience" validate:"gte=0"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	AppliedDate   string   `json:"appliedDate" validate:"required"`
	InterviewDate *string  `json:"interviewDate"`
	Notes         string   `json:"notes"`
	YearlySalary  float64  `json:"yearlySalary" validate:"gte=0"`
	Location      string   `json:"location"`
	Education     string   `json:"education"`
}

// Clone deep-copies the candidate so callers never share slices or pointers
// with a cached record.
func (c Candidate) Clone() Candidate {
	out := c
	if c.Skills != nil {
		out.Skills = append([]string(nil), c.Skills...)
	}
	if c.InterviewDate != nil {
		v := *c.InterviewDate
		out.InterviewDate = &v
	}
	return out
}

// Patch carries a partial update. Nil fields are left untouched by the store;
// omitempty keeps them off the wire entirely.
type Patch struct {
	Name          *string   `json:"name,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Position      *string   `json:"position,omitempty"`
	Status        *Status   `json:"status,omitempty"`
	Skills        *[]string `json:"skills,omitempty"`
	Experience    *float64  `json:"experience,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	AppliedDate   *string   `json:"appliedDate,omitempty"`
	InterviewDate *string   `json:"interviewDate,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	YearlySalary  *float64  `json:"yearlySalary,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Education     *string   `json:"education,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p Patch) IsZero() bool {
	raw, err := json.Marshal(p)
	if err != nil {
		return false
	}
	return string(raw) == "{}"
}

// Apply merges the patch onto a copy of the given candidate and returns it.
// Used by the fixture server; the client-side cache never merges locally and
// always trusts the server's returned record instead.
func (p Patch) Apply(c Candidate) Candidate {
	out := c.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Skills != nil {
		out.Skills = append([]string(nil), (*p.Skills)...)
	}
	if p.Experience != nil {
		out.Experience = *p.Experience
	}
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	if p.AppliedDate != nil {
		out.AppliedDate = *p.AppliedDate
	}
	if p.InterviewDate != nil {
		v := *p.InterviewDate
		out.InterviewDate = &v
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.YearlySalary != nil {
		out.YearlySalary = *p.YearlySalary
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Education != nil {
		out.Education = *p.Education
	}
	return out
}
