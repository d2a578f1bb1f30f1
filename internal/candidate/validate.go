package candidate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateNew checks a candidate submitted for creation. The ID is ignored;
// the store assigns it.
func ValidateNew(c Candidate) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid candidate: %w", err)
	}
	return nil
}

// ValidatePatch checks only the fields a partial update actually carries.
// Range and shape rules mirror the struct tags on Candidate.
func ValidatePatch(p Patch) error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("invalid patch: name must not be empty")
	}
	if p.Position != nil && *p.Position == "" {
		return fmt.Errorf("invalid patch: position must not be empty")
	}
	if p.AppliedDate != nil && *p.AppliedDate == "" {
		return fmt.Errorf("invalid patch: appliedDate must not be empty")
	}
	if p.Email != nil {
		if err := validate.Var(*p.Email, "required,email"); err != nil {
			return fmt.Errorf("invalid patch: email: %w", err)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid patch: unknown status %q", *p.Status)
	}
	if p.Experience != nil && *p.Experience < 0 {
		return fmt.Errorf("invalid patch: experience must not be negative")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("invalid patch: rating must be between 0 and 5")
	}
	if p.YearlySalary != nil && *p.YearlySalary < 0 {
		return fmt.Errorf("invalid patch: yearlySalary must not be negative")
	}
	if p.Skills != nil {
		for _, s := range *p.Skills {
			if s == "" {
				return fmt.Errorf("invalid patch: skills must not contain empty entries")
			}
		}
	}
	return nil
}
