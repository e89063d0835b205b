package rope

import (
	"io"
	"strings"
)

// Builder provides incremental construction of a rope.
// It buffers writes and builds a balanced tree when Build is called.
type Builder struct {
	buffer    strings.Builder
	chunkSize int
}

// NewBuilder creates a builder producing leaves of at most chunkSize characters.
func NewBuilder(chunkSize int) *Builder {
	return &Builder{chunkSize: chunkSize}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	return b.buffer.WriteString(s)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.buffer.Write(p)
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	return b.buffer.WriteRune(r)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.buffer.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Len returns the number of bytes written.
func (b *Builder) Len() int {
	return b.buffer.Len()
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.buffer.Reset()
}

// Build creates the rope from accumulated text.
// After calling Build, the builder is reset.
func (b *Builder) Build() Rope {
	r := Build(b.buffer.String(), b.chunkSize)
	b.Reset()
	return r
}

// FromReader creates a balanced rope from an io.Reader.
func FromReader(r io.Reader, chunkSize int) (Rope, error) {
	b := NewBuilder(chunkSize)
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}
