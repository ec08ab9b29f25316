package validation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JaimeStill/promptvault/pkg/validation"
)

type command struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	Internal string `json:"-"`
}

func TestStructValid(t *testing.T) {
	tests := []struct {
		name string
		cmd  command
	}{
		{"required only", command{Title: "T1", Content: "C1"}},
		{"with color", command{Title: "T1", Content: "C1", Color: "#10b981"}},
		{"short color", command{Title: "T1", Content: "C1", Color: "#fff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validation.Struct(tt.cmd); err != nil {
				t.Errorf("Struct() = %v, want nil", err)
			}
		})
	}
}

func TestStructAggregatesFailures(t *testing.T) {
	err := validation.Struct(command{Color: "blue"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	want := "title is required; content is required; color must be a hex color"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	fields := validation.Fields(err)
	if len(fields) != 3 {
		t.Fatalf("Fields() = %v, want 3 entries", fields)
	}
}

func TestHasFieldThroughWrap(t *testing.T) {
	errInvalid := errors.New("invalid")
	err := fmt.Errorf("%w: %w", errInvalid, validation.Struct(command{Content: "C1"}))

	if !errors.Is(err, errInvalid) {
		t.Error("wrapped error should match sentinel")
	}
	if !validation.HasField(err, "title") {
		t.Error("HasField(title) = false, want true")
	}
	if validation.HasField(err, "content") {
		t.Error("HasField(content) = true, want false")
	}
}

func TestNotBlank(t *testing.T) {
	type body struct {
		Content string `json:"content" validate:"notblank"`
	}

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"text", "C1", false},
		{"surrounding whitespace kept", "  C1\n", false},
		{"empty", "", true},
		{"spaces only", " \t\n ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(body{Content: tt.content})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Struct() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err.Error() != "content is required" {
				t.Errorf("Error() = %q, want content is required", err.Error())
			}
		})
	}
}

func TestFieldsNonValidationError(t *testing.T) {
	if got := validation.Fields(errors.New("boom")); got != nil {
		t.Errorf("Fields() = %v, want nil", got)
	}
}
