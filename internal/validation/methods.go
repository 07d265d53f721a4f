package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Validator collects field errors
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator. The first error per field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// IntRange checks if an integer is between min and max, both inclusive
func (v *Validator) IntRange(field string, value, min, max int) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %d and %d", min, max))
}

// In checks that value is one of the allowed values
func (v *Validator) In(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}

// Err returns the collected errors, or nil when valid.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &Errors{Fields: v.Errors}
}

// Errors is returned when one or more fields are invalid.
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
