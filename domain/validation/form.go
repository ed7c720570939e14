// Package validation holds the checkout form field rules.
//
// An empty field is "not yet validated": it produces no error message, but
// the derivation engine still refuses checkout until both fields are filled.
package validation

import (
	"regexp"
	"strings"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
)

// Messages shown next to the form fields when a rule fails.
const (
	NameMessage  = "Name cannot contain numbers or special characters"
	PhoneMessage = "Phone can only contain numbers"
)

// Result is the outcome of validating a single form field
type Result struct {
	Valid   bool
	Message string
}

// Name validates the customer name: letters and whitespace only.
func Name(value string) Result {
	if strings.TrimSpace(value) == "" {
		return Result{Valid: true}
	}
	if !namePattern.MatchString(value) {
		return Result{Valid: false, Message: NameMessage}
	}
	return Result{Valid: true}
}

// Phone validates the customer phone: digits only.
func Phone(value string) Result {
	if strings.TrimSpace(value) == "" {
		return Result{Valid: true}
	}
	if !phonePattern.MatchString(value) {
		return Result{Valid: false, Message: PhoneMessage}
	}
	return Result{Valid: true}
}
