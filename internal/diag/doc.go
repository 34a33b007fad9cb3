// Package diag defines the source-anchored diagnostic value and its
// clang-style renderer.
//
// # Data model
//
// Diagnostic is the central record. It carries:
//
//   - Severity – note, warning, error, or fatal (severity.go).
//   - Reason – symbolic key into an external message-template catalog.
//   - Arguments – named values interpolated into the template.
//   - Location – the primary source.Span; a diagnostic without one
//     cannot be constructed.
//   - Highlights – optional secondary spans underlined with '~' next to
//     the primary '^' run.
//
// Values are immutable once New returns: the arguments map and highlight
// slice are cloned at construction and again on access, so aliasing with
// caller-held structures cannot violate invariants, and concurrent
// Message/Render calls need no synchronization.
//
// # Collaborators
//
// The package performs no IO and owns no text. Source content lives in a
// source.BufferSet handed to Render; message templates live behind the
// Catalog interface (see internal/catalog for the TOML-backed
// implementation). Failures are classified by the sentinel errors in
// errors.go and matched with errors.Is.
//
// Presentation concerns beyond the raw display lines (writers, batching,
// width clipping) live in internal/diagfmt and the CLI.
package diag
