package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/config"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validator checks report drafts against the configured rules. It is pure:
// every rule is evaluated, nothing is mutated, and the result maps field
// names to messages. An empty map means the draft is valid.
type Validator struct {
	rules config.Rules
}

func NewValidator(rules config.Rules) *Validator {
	return &Validator{rules: rules}
}

func (v *Validator) Validate(d internal.ReportDraft) map[string]string {
	errs := make(map[string]string)

	if d.Technician == "" || !slices.Contains(v.rules.Technicians, d.Technician) {
		errs["technician"] = "select a known technician"
	}
	if d.Plant == "" || !slices.Contains(v.rules.Plants, d.Plant) {
		errs["plant"] = "select a known plant"
	}

	if err := validate.Var(strings.TrimSpace(d.WorkOrder), "min=3"); err != nil {
		errs["workOrder"] = "work order must be at least 3 characters"
	}

	if err := validate.Var(strings.TrimSpace(d.Description), "min=10"); err != nil {
		errs["description"] = "description must be at least 10 characters"
	} else if err := validate.Var(d.Description, "max=250"); err != nil {
		errs["description"] = "description cannot exceed 250 characters"
	}

	switch {
	case d.Hours < 0 || d.Hours > v.rules.MaxHours || !slices.Contains(v.rules.AllowedMinutes, d.Minutes):
		errs["time"] = fmt.Sprintf("hours must be between 0 and %d and minutes one of %s",
			v.rules.MaxHours, minuteList(v.rules.AllowedMinutes))
	case d.Hours == 0 && d.Minutes == 0:
		errs["time"] = "time must be greater than zero"
	}

	return errs
}

func minuteList(minutes []int) string {
	parts := make([]string, len(minutes))
	for i, m := range minutes {
		parts[i] = fmt.Sprintf("%02d", m)
	}
	return strings.Join(parts, ", ")
}
