package diag

import (
	"fmt"
	"maps"
	"slices"

	"caret/internal/source"
)

// Reason is a symbolic key into a message-template catalog.
type Reason string

// Catalog resolves reason keys to message templates and interpolates
// named arguments into them. Implementations report unknown reasons with
// ErrUnknownReason and unresolved placeholders with ErrMissingArgument.
type Catalog interface {
	Format(reason Reason, args map[string]any) (string, error)
}

// Diagnostic is an immutable, source-anchored finding. Values are produced
// only by New; after construction no field ever changes, so a Diagnostic is
// safe to share across goroutines without synchronization.
type Diagnostic struct {
	severity   Severity
	reason     Reason
	arguments  map[string]any
	location   source.Span
	highlights []source.Span
}

// New validates and builds a Diagnostic. The arguments map and highlight
// slice are cloned, so later mutation of the caller's originals cannot
// leak in. A zero location span counts as absent.
func New(sev Severity, reason Reason, args map[string]any, location source.Span, highlights ...source.Span) (Diagnostic, error) {
	if !sev.Valid() {
		return Diagnostic{}, fmt.Errorf("%w: %d", ErrInvalidSeverity, sev)
	}
	if location.IsZero() {
		return Diagnostic{}, ErrMissingLocation
	}
	return Diagnostic{
		severity:   sev,
		reason:     reason,
		arguments:  maps.Clone(args),
		location:   location,
		highlights: slices.Clone(highlights),
	}, nil
}

func (d Diagnostic) Severity() Severity { return d.severity }

func (d Diagnostic) Reason() Reason { return d.reason }

// Location returns the primary source range.
func (d Diagnostic) Location() source.Span { return d.location }

// Arguments returns a copy of the interpolation arguments.
func (d Diagnostic) Arguments() map[string]any {
	return maps.Clone(d.arguments)
}

// Highlights returns a copy of the secondary ranges, in application order.
func (d Diagnostic) Highlights() []source.Span {
	return slices.Clone(d.highlights)
}

// Message resolves the reason in the catalog and interpolates the
// arguments. The result carries no trailing newline.
func (d Diagnostic) Message(cat Catalog) (string, error) {
	return cat.Format(d.reason, d.arguments)
}
