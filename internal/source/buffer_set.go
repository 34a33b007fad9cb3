package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// BufferSet manages a collection of source buffers and resolves spans
// against them. IDs start at 1; ID 0 never resolves.
type BufferSet struct {
	buffers []Buffer
	index   map[string]BufferID // name -> latest id
}

// NewBufferSet creates an empty BufferSet.
func NewBufferSet() *BufferSet {
	return &BufferSet{
		buffers: make([]Buffer, 0),
		index:   make(map[string]BufferID),
	}
}

// Add stores a buffer from normalized bytes, computes the line index, and
// returns a fresh BufferID. A name may be added more than once; every Add
// gets its own ID and the name index points at the latest one.
func (set *BufferSet) Add(name string, content []byte, flags BufferFlags) BufferID {
	lineIdx := buildLineIndex(content)
	normalized := normalizePath(name)

	lenBuffers, err := safecast.Conv[uint32](len(set.buffers))
	if err != nil {
		panic(fmt.Errorf("buffer count overflow: %w", err))
	}
	id := BufferID(lenBuffers + 1)
	set.buffers = append(set.buffers, Buffer{
		ID:      id,
		Name:    normalized,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	set.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a BOM, normalizes CRLF, and calls Add.
func (set *BufferSet) Load(path string) (BufferID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := BufferFlags(0)
	if hadBOM {
		flags |= BufferHadBOM
	}
	if hadCRLF {
		flags |= BufferNormalizedCRLF
	}
	return set.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory buffer (stdin, test, generated).
func (set *BufferSet) AddVirtual(name string, content []byte) BufferID {
	return set.Add(name, content, BufferVirtual)
}

// Get returns the buffer for the given ID.
func (set *BufferSet) Get(id BufferID) (*Buffer, error) {
	if id == 0 || int(id) > len(set.buffers) {
		return nil, fmt.Errorf("buffer %d not present in set", id)
	}
	return &set.buffers[id-1], nil
}

// GetByName returns the latest buffer added under name, if any.
func (set *BufferSet) GetByName(name string) (*Buffer, bool) {
	if id, ok := set.index[normalizePath(name)]; ok {
		return &set.buffers[id-1], true
	}
	return nil, false
}

// Len returns the number of buffers in the set.
func (set *BufferSet) Len() int {
	return len(set.buffers)
}

// Decompose converts a byte offset into a 1-based line/column position.
// Offsets up to and including len(Content) are valid; the end-of-buffer
// offset decomposes to one past the last column.
func (b *Buffer) Decompose(off uint32) (LineCol, error) {
	lenContent, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		return LineCol{}, fmt.Errorf("content length overflow: %w", err)
	}
	if off > lenContent {
		return LineCol{}, fmt.Errorf("offset %d beyond buffer %q (%d bytes)", off, b.Name, lenContent)
	}
	return toLineCol(b.LineIdx, off), nil
}

// LineCount returns the number of lines in the buffer. A trailing newline
// does not open a new line.
func (b *Buffer) LineCount() uint32 {
	n := uint32(len(b.LineIdx))
	if len(b.Content) > 0 && b.Content[len(b.Content)-1] != '\n' {
		n++
	}
	return n
}

// lineBounds returns the [start, end) offsets of the given 1-based line,
// excluding the terminator.
func (b *Buffer) lineBounds(line uint32) (start, end uint32, err error) {
	lenLineIdx, err := safecast.Conv[uint32](len(b.LineIdx))
	if err != nil {
		return 0, 0, fmt.Errorf("line index overflow: %w", err)
	}
	lenContent, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		return 0, 0, fmt.Errorf("content length overflow: %w", err)
	}

	switch {
	case line == 0:
		return 0, 0, fmt.Errorf("line numbers are 1-based, got 0 for buffer %q", b.Name)
	case line == 1:
		start = 0
	case line-2 < lenLineIdx:
		start = b.LineIdx[line-2] + 1
	default:
		return 0, 0, fmt.Errorf("line %d beyond buffer %q (%d lines)", line, b.Name, b.LineCount())
	}

	if line-1 < lenLineIdx {
		end = b.LineIdx[line-1]
	} else {
		end = lenContent
	}

	if start > lenContent {
		return 0, 0, fmt.Errorf("line %d beyond buffer %q (%d lines)", line, b.Name, b.LineCount())
	}
	return start, end, nil
}

// LineText returns the verbatim text of the given 1-based line, without
// the terminator.
func (b *Buffer) LineText(line uint32) (string, error) {
	start, end, err := b.lineBounds(line)
	if err != nil {
		return "", err
	}
	return string(b.Content[start:end]), nil
}

// LineRange returns the full-line span of the given 1-based line,
// terminator excluded. It is the boundary highlights are clipped against.
func (b *Buffer) LineRange(line uint32) (Span, error) {
	start, end, err := b.lineBounds(line)
	if err != nil {
		return Span{}, err
	}
	return Span{Buffer: b.ID, Start: start, End: end}, nil
}

// Text returns the verbatim text covered by the span.
func (b *Buffer) Text(sp Span) (string, error) {
	if sp.Buffer != b.ID {
		return "", fmt.Errorf("span %s does not belong to buffer %q", sp, b.Name)
	}
	lenContent, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		return "", fmt.Errorf("content length overflow: %w", err)
	}
	if sp.Start > sp.End || sp.End > lenContent {
		return "", fmt.Errorf("span %s out of bounds for buffer %q (%d bytes)", sp, b.Name, lenContent)
	}
	return string(b.Content[sp.Start:sp.End]), nil
}
