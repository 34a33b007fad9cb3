package diag

import (
	"errors"
	"testing"

	"caret/internal/source"
)

func TestNew_Validation(t *testing.T) {
	loc := source.Span{Buffer: 1, Start: 0, End: 3}

	tests := []struct {
		name     string
		sev      Severity
		location source.Span
		wantErr  error
	}{
		{name: "note is valid", sev: SevNote, location: loc},
		{name: "warning is valid", sev: SevWarning, location: loc},
		{name: "error is valid", sev: SevError, location: loc},
		{name: "fatal is valid", sev: SevFatal, location: loc},
		{name: "first value past fatal", sev: SevFatal + 1, location: loc, wantErr: ErrInvalidSeverity},
		{name: "arbitrary junk severity", sev: Severity(42), location: loc, wantErr: ErrInvalidSeverity},
		{name: "max severity", sev: Severity(255), location: loc, wantErr: ErrInvalidSeverity},
		{name: "zero location", sev: SevError, location: source.Span{}, wantErr: ErrMissingLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.sev, "some_reason", nil, tt.location)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if d.Severity() != tt.sev {
				t.Errorf("Severity() = %v, want %v", d.Severity(), tt.sev)
			}
			if d.Location() != tt.location {
				t.Errorf("Location() = %+v, want %+v", d.Location(), tt.location)
			}
		})
	}
}

func TestNew_DefensiveCopies(t *testing.T) {
	loc := source.Span{Buffer: 1, Start: 0, End: 3}
	args := map[string]any{"token": "$end"}
	highlights := []source.Span{{Buffer: 1, Start: 4, End: 7}}

	d, err := New(SevError, "r", args, loc, highlights...)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's originals must not leak in.
	args["token"] = "changed"
	highlights[0] = source.Span{Buffer: 9, Start: 0, End: 1}

	if got := d.Arguments()["token"]; got != "$end" {
		t.Errorf("caller mutation leaked into arguments: %v", got)
	}
	if got := d.Highlights()[0]; got != (source.Span{Buffer: 1, Start: 4, End: 7}) {
		t.Errorf("caller mutation leaked into highlights: %+v", got)
	}

	// Mutating the accessor results must not affect the diagnostic either.
	d.Arguments()["token"] = "mutated"
	d.Highlights()[0] = source.Span{}

	if got := d.Arguments()["token"]; got != "$end" {
		t.Errorf("accessor result mutation leaked into arguments: %v", got)
	}
	if got := d.Highlights()[0]; got != (source.Span{Buffer: 1, Start: 4, End: 7}) {
		t.Errorf("accessor result mutation leaked into highlights: %+v", got)
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev      Severity
		expected string
	}{
		{SevNote, "note"},
		{SevWarning, "warning"},
		{SevError, "error"},
		{SevFatal, "fatal"},
		{Severity(7), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.expected {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.expected)
		}
	}
}

func TestSeverity_Valid(t *testing.T) {
	for s := SevNote; s <= SevFatal; s++ {
		if !s.Valid() {
			t.Errorf("Severity(%d) should be valid", s)
		}
	}
	if (SevFatal + 1).Valid() {
		t.Error("severity past fatal should be invalid")
	}
}
