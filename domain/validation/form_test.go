package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		message string
	}{
		{name: "empty is not yet validated", input: "", valid: true},
		{name: "whitespace only is not yet validated", input: "   ", valid: true},
		{name: "letters", input: "Jo", valid: true},
		{name: "letters with space", input: "Jo Smith", valid: true},
		{name: "digit rejected", input: "Jo3", valid: false, message: NameMessage},
		{name: "special character rejected", input: "Jo!", valid: false, message: NameMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Name(tt.input)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		message string
	}{
		{name: "empty is not yet validated", input: "", valid: true},
		{name: "whitespace only is not yet validated", input: "  ", valid: true},
		{name: "digits", input: "1234", valid: true},
		{name: "letters rejected", input: "12a4", valid: false, message: PhoneMessage},
		{name: "dash rejected", input: "12-34", valid: false, message: PhoneMessage},
		{name: "inner space rejected", input: "12 34", valid: false, message: PhoneMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Phone(tt.input)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}
