package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"caret/internal/catalog"
	"caret/internal/diag"
)

func TestCatalog_Format(t *testing.T) {
	cat, err := catalog.FromMap(map[string]string{
		"unexpected_token": "unexpected token {{ token }}",
		"no_placeholders":  "unexpected end of input",
		"two_placeholders": "cannot assign {{ value }} to {{ target }}",
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		reason   diag.Reason
		args     map[string]any
		expected string
		wantErr  error
	}{
		{
			name:     "single placeholder",
			reason:   "unexpected_token",
			args:     map[string]any{"token": "$end"},
			expected: "unexpected token $end",
		},
		{
			name:     "no placeholders with nil args",
			reason:   "no_placeholders",
			expected: "unexpected end of input",
		},
		{
			name:     "two placeholders",
			reason:   "two_placeholders",
			args:     map[string]any{"value": "3", "target": "nil"},
			expected: "cannot assign 3 to nil",
		},
		{
			name:     "extra arguments are ignored",
			reason:   "unexpected_token",
			args:     map[string]any{"token": "if", "unused": "x"},
			expected: "unexpected token if",
		},
		{
			name:    "unknown reason",
			reason:  "not_registered",
			wantErr: diag.ErrUnknownReason,
		},
		{
			name:    "missing argument",
			reason:  "unexpected_token",
			args:    map[string]any{"wrong_key": "x"},
			wantErr: diag.ErrMissingArgument,
		},
		{
			name:    "missing argument with nil args",
			reason:  "unexpected_token",
			wantErr: diag.ErrMissingArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cat.Format(tt.reason, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Format() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCatalog_RegisterValidatesSyntax(t *testing.T) {
	cat := catalog.New()

	if err := cat.Register("ok", "fine message"); err != nil {
		t.Fatalf("Register(valid): %v", err)
	}
	if err := cat.Register("broken", "unclosed {{ token"); err == nil {
		t.Error("Register should reject template syntax errors at load time")
	}
	if err := cat.Register("", "message"); err == nil {
		t.Error("Register should reject an empty reason key")
	}

	if !cat.Has("ok") {
		t.Error("registered reason should be present")
	}
	if cat.Has("broken") {
		t.Error("rejected reason should not be present")
	}
}

func TestCatalog_Reasons(t *testing.T) {
	cat, err := catalog.FromMap(map[string]string{
		"b_second": "two",
		"a_first":  "one",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := cat.Reasons()
	want := []diag.Reason{"a_first", "b_second"}
	if len(got) != len(want) {
		t.Fatalf("Reasons() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Reasons() = %v, want %v (sorted)", got, want)
		}
	}
}

func TestCatalog_Check(t *testing.T) {
	cat, err := catalog.FromMap(map[string]string{
		"unexpected_token": "unexpected token {{ token }}",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := cat.Check("unexpected_token", map[string]any{"token": "x"}); err != nil {
		t.Errorf("Check with complete args should pass: %v", err)
	}
	if err := cat.Check("unexpected_token", nil); !errors.Is(err, diag.ErrMissingArgument) {
		t.Errorf("Check without args = %v, want ErrMissingArgument", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid catalog", func(t *testing.T) {
		path := filepath.Join(dir, "messages.toml")
		content := `[messages]
unexpected_token = "unexpected token {{ token }}"
unexpected_eof = "unexpected end of input"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cat, err := catalog.LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		got, err := cat.Format("unexpected_token", map[string]any{"token": "$end"})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}
		if got != "unexpected token $end" {
			t.Errorf("Format() = %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := catalog.LoadFile(filepath.Join(dir, "nope.toml")); err == nil {
			t.Error("LoadFile of a missing file should fail")
		}
	})

	t.Run("no messages table", func(t *testing.T) {
		path := filepath.Join(dir, "empty.toml")
		if err := os.WriteFile(path, []byte("[other]\nx = \"y\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := catalog.LoadFile(path); err == nil {
			t.Error("LoadFile without [messages] should fail")
		}
	})

	t.Run("bad template in file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("[messages]\nbad = \"{{ unclosed\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := catalog.LoadFile(path); err == nil {
			t.Error("LoadFile with a broken template should fail")
		}
	})
}
