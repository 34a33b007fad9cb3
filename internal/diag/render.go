package diag

import (
	"bytes"
	"fmt"
	"strings"

	"caret/internal/source"
)

// Render produces the display lines for the diagnostic: a header followed
// by source-line excerpts annotated with ^/~ markers. It is a pure function
// of the diagnostic's fields and the referenced buffer's content; repeated
// calls yield identical output.
//
// A location confined to one physical line renders as
//
//	<name>:<line>:<col>: <severity>: <message>
//	<source line>
//	<marker line>
//
// A location spanning several physical lines renders its first and last
// line portions, each prefixed with "<name>:<line>: ", with "..." appended
// to the first portion's marker line to signal the cut.
func (d Diagnostic) Render(set *source.BufferSet, cat Catalog) ([]string, error) {
	msg, err := d.Message(cat)
	if err != nil {
		return nil, err
	}
	buf, err := set.Get(d.location.Buffer)
	if err != nil {
		return nil, resolveErr(err)
	}
	start, err := buf.Decompose(d.location.Start)
	if err != nil {
		return nil, resolveErr(err)
	}
	end, err := buf.Decompose(d.location.End)
	if err != nil {
		return nil, resolveErr(err)
	}

	if start.Line == end.Line {
		header := fmt.Sprintf("%s:%d:%d: %s: %s", buf.Name, start.Line, start.Col, d.severity, msg)
		content, err := d.renderSpanLine(buf, d.location)
		if err != nil {
			return nil, err
		}
		return append([]string{header}, content...), nil
	}

	header := fmt.Sprintf("%s:%d:%d-%d:%d: %s: %s",
		buf.Name, start.Line, start.Col, end.Line, end.Col, d.severity, msg)

	covered, err := buf.Text(d.location)
	if err != nil {
		return nil, resolveErr(err)
	}
	firstNL := strings.IndexByte(covered, '\n')
	lastNL := strings.LastIndexByte(covered, '\n')
	if firstNL < 0 {
		return nil, fmt.Errorf("%w: span %s crosses lines but covers no newline", ErrBufferResolution, d.location)
	}

	head := d.location.Resize(uint32(firstNL))
	tail := d.location.WithStart(d.location.Start + uint32(lastNL) + 1)

	out := []string{header}

	headLines, err := d.renderSpanLine(buf, head)
	if err != nil {
		return nil, err
	}
	prefixLines(headLines, buf.Name, start.Line)
	headLines[len(headLines)-1] += "..."
	out = append(out, headLines...)

	tailLines, err := d.renderSpanLine(buf, tail)
	if err != nil {
		return nil, err
	}
	prefixLines(tailLines, buf.Name, end.Line)
	return append(out, tailLines...), nil
}

// renderSpanLine renders a span confined to a single physical line as the
// verbatim source line plus a marker line. Highlights are clipped against
// the full-line range of the line being rendered, not against their own
// line; the span itself is painted last and always wins.
func (d Diagnostic) renderSpanLine(buf *source.Buffer, sp source.Span) ([]string, error) {
	lc, err := buf.Decompose(sp.Start)
	if err != nil {
		return nil, resolveErr(err)
	}
	lineRange, err := buf.LineRange(lc.Line)
	if err != nil {
		return nil, resolveErr(err)
	}
	srcLine, err := buf.Text(lineRange)
	if err != nil {
		return nil, resolveErr(err)
	}

	marker := bytes.Repeat([]byte{' '}, len(srcLine))
	for _, h := range d.highlights {
		isect, ok := h.Intersect(lineRange)
		if !ok {
			continue
		}
		marker = overlay(marker, int(isect.Start-lineRange.Start), int(isect.Len()), '~')
	}
	marker = overlay(marker, int(sp.Start-lineRange.Start), int(sp.Len()), '^')

	return []string{srcLine, string(marker)}, nil
}

// overlay paints width copies of ch starting at col, extending the marker
// with spaces when the target lands past its end. A zero-width span still
// paints one character.
func overlay(marker []byte, col, width int, ch byte) []byte {
	if width < 1 {
		width = 1
	}
	for len(marker) < col+width {
		marker = append(marker, ' ')
	}
	for i := col; i < col+width; i++ {
		marker[i] = ch
	}
	return marker
}

func prefixLines(lines []string, name string, line uint32) {
	prefix := fmt.Sprintf("%s:%d: ", name, line)
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
}

func resolveErr(err error) error {
	return fmt.Errorf("%w: %w", ErrBufferResolution, err)
}
