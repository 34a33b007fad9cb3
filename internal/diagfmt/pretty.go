// Package diagfmt adapts rendered diagnostics to writers and batches.
// It adds nothing to the rendering semantics in internal/diag.
package diagfmt

import (
	"fmt"
	"io"

	"caret/internal/diag"
	"caret/internal/source"
)

// Pretty renders one diagnostic in human-readable form and writes its
// lines to w, newline-terminated:
//
//	<path>:<line>:<col>: <severity>: <message>
//	<source line>
//	<marker line with ^/~ underlining>
func Pretty(w io.Writer, d diag.Diagnostic, set *source.BufferSet, cat diag.Catalog) error {
	lines, err := d.Render(set, cat)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
