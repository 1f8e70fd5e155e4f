package validation

import (
	"fmt"
	"testing"
)

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		valid bool
	}{
		{name: "plain", input: "10", want: 10, valid: true},
		{name: "surrounding spaces", input: " 7 ", want: 7, valid: true},
		{name: "zero", input: "0", valid: false},
		{name: "negative", input: "-3", valid: false},
		{name: "fraction", input: "2.5", valid: false},
		{name: "letters", input: "12a", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePositiveInt(tt.input)
			if ok != tt.valid {
				t.Fatalf("ParsePositiveInt(%q) ok = %v, want %v", tt.input, ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Fatalf("ParsePositiveInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		valid bool
	}{
		{input: "50", want: 50, valid: true},
		{input: "25 kg", want: 25, valid: true},
		{input: "10.5", want: 10, valid: true},
		{input: "kg", valid: false},
		{input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LeadingInt(tt.input)
			if ok != tt.valid {
				t.Fatalf("LeadingInt(%q) ok = %v, want %v", tt.input, ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Fatalf("LeadingInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidationErrorDetection(t *testing.T) {
	err := fmt.Errorf("add item: %w", Errorf("select a feed"))

	if !IsValidationError(err) {
		t.Fatalf("wrapped validation error not detected")
	}
	if Message(err) != "select a feed" {
		t.Fatalf("Message = %q, want %q", Message(err), "select a feed")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Fatalf("plain error detected as validation error")
	}
}

func TestLeadingDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{input: "6.5", want: "6.5", valid: true},
		{input: "6.5%", want: "6.5", valid: true},
		{input: " 1200.50 Tk", want: "1200.5", valid: true},
		{input: "7.", want: "7", valid: true},
		{input: "-3", want: "-3", valid: true},
		{input: "Tk 100", valid: false},
		{input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LeadingDecimal(tt.input)
			if ok != tt.valid {
				t.Fatalf("LeadingDecimal(%q) ok = %v, want %v", tt.input, ok, tt.valid)
			}
			if ok && got.String() != tt.want {
				t.Fatalf("LeadingDecimal(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
