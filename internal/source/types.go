package source

type (
	// BufferID uniquely identifies a buffer within a BufferSet.
	// The zero value is reserved and never refers to a real buffer,
	// which lets the zero Span stand for "no location".
	BufferID uint32
	// BufferFlags encodes metadata about a source buffer.
	BufferFlags uint8
)

const (
	// BufferVirtual indicates the buffer was added from memory (test, stdin, etc.).
	BufferVirtual BufferFlags = 1 << iota
	BufferHadBOM
	BufferNormalizedCRLF
)

// Buffer owns the verbatim text of one source and a display name.
type Buffer struct {
	ID      BufferID
	Name    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Flags   BufferFlags
}

// LineCol is a human-readable position in a buffer.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
