// Package catalog implements the message-template catalog consumed by
// internal/diag. Templates use minijinja syntax with named placeholders
// ({{ token }}); interpolation runs in strict mode, so a placeholder
// without a matching argument is an error rather than silent emptiness.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/mitsuhiko/minijinja/minijinja-go/v2"

	"caret/internal/diag"
)

// Catalog maps reason keys to parse-validated message templates. Build it
// fully (New+Register, FromMap, or LoadFile) before sharing; once built it
// is read-only and safe for concurrent Format calls.
type Catalog struct {
	env     *minijinja.Environment
	reasons map[diag.Reason]string
}

// New returns an empty catalog.
func New() *Catalog {
	env := minijinja.NewEnvironment()
	env.SetUndefinedBehavior(minijinja.UndefinedStrict)
	return &Catalog{
		env:     env,
		reasons: make(map[diag.Reason]string),
	}
}

// Register adds a template under reason. The template is parsed
// immediately; syntax errors fail registration, so every registered
// reason is renderable. Re-registering a reason replaces its template.
func (c *Catalog) Register(reason diag.Reason, template string) error {
	if reason == "" {
		return errors.New("empty reason key")
	}
	if err := c.env.AddTemplate(string(reason), template); err != nil {
		return fmt.Errorf("template for reason %q: %w", reason, err)
	}
	c.reasons[reason] = template
	return nil
}

// FromMap builds a catalog from a reason -> template mapping. Reasons are
// registered in sorted order so a syntax error is reported for the same
// key regardless of map iteration order.
func FromMap(templates map[string]string) (*Catalog, error) {
	c := New()
	for _, reason := range slices.Sorted(maps.Keys(templates)) {
		if err := c.Register(diag.Reason(reason), templates[reason]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// catalogFile is the on-disk TOML shape:
//
//	[messages]
//	unexpected_token = "unexpected token {{ token }}"
type catalogFile struct {
	Messages map[string]string `toml:"messages"`
}

// LoadFile reads a TOML catalog from disk and validates every template.
func LoadFile(path string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if len(file.Messages) == 0 {
		return nil, fmt.Errorf("catalog %s: no [messages] table", path)
	}
	c, err := FromMap(file.Messages)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Has reports whether reason is registered.
func (c *Catalog) Has(reason diag.Reason) bool {
	_, ok := c.reasons[reason]
	return ok
}

// Reasons returns the registered reason keys, sorted.
func (c *Catalog) Reasons() []diag.Reason {
	out := make([]diag.Reason, 0, len(c.reasons))
	for r := range c.reasons {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Format implements diag.Catalog.
func (c *Catalog) Format(reason diag.Reason, args map[string]any) (string, error) {
	if _, ok := c.reasons[reason]; !ok {
		return "", fmt.Errorf("%w: %q", diag.ErrUnknownReason, reason)
	}
	tmpl, err := c.env.GetTemplate(string(reason))
	if err != nil {
		return "", fmt.Errorf("%w: %q", diag.ErrUnknownReason, reason)
	}
	if args == nil {
		args = map[string]any{}
	}
	out, err := tmpl.Render(args)
	if err != nil {
		var mjErr *minijinja.Error
		if errors.As(err, &mjErr) && mjErr.Kind == minijinja.ErrUndefinedVar {
			return "", fmt.Errorf("%w: reason %q: %s", diag.ErrMissingArgument, reason, mjErr.Message)
		}
		return "", fmt.Errorf("render template for reason %q: %w", reason, err)
	}
	return out, nil
}

// Check probes a reason against a sample argument set without keeping the
// output. Useful for validating a catalog against known argument shapes
// ahead of first use.
func (c *Catalog) Check(reason diag.Reason, args map[string]any) error {
	_, err := c.Format(reason, args)
	return err
}
