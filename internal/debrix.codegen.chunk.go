package internal

import (
	"strings"
)

// Mapping ties a byte offset in the template source to a zero-based
// line and byte column in the generated text.
type Mapping struct {
	Original  int
	GenLine   int
	GenColumn int
}

// Chunk is generated text plus the mappings recorded while writing it.
// Appending a chunk shifts its mappings by the current cursor.
type Chunk struct {
	sb       strings.Builder
	line     int
	column   int
	mappings []Mapping
}

// NewChunk creates an empty chunk
func NewChunk() *Chunk {
	return &Chunk{}
}

// Write appends text and advances the line/column cursor
func (c *Chunk) Write(text string) *Chunk {
	if text == "" {
		return c
	}
	c.sb.WriteString(text)
	if n := strings.Count(text, "\n"); n > 0 {
		c.line += n
		c.column = len(text) - strings.LastIndexByte(text, '\n') - 1
	} else {
		c.column += len(text)
	}
	return c
}

// Map records that the current output position corresponds to offset
func (c *Chunk) Map(offset int) *Chunk {
	c.mappings = append(c.mappings, Mapping{
		Original:  offset,
		GenLine:   c.line,
		GenColumn: c.column,
	})
	return c
}

// Append copies other's text and mappings, translating the mappings by
// the current cursor
func (c *Chunk) Append(other *Chunk) *Chunk {
	for _, m := range other.mappings {
		shifted := Mapping{Original: m.Original, GenLine: c.line + m.GenLine, GenColumn: m.GenColumn}
		if m.GenLine == 0 {
			shifted.GenColumn += c.column
		}
		c.mappings = append(c.mappings, shifted)
	}
	return c.Write(other.sb.String())
}

// Indent returns a copy with depth tabs in front of every non-empty line
func (c *Chunk) Indent(depth int) *Chunk {
	if depth <= 0 {
		return c.Clone()
	}
	prefix := strings.Repeat("\t", depth)

	lines := strings.Split(c.sb.String(), "\n")
	shifted := make([]bool, len(lines))
	out := NewChunk()
	for i, line := range lines {
		if i > 0 {
			out.Write("\n")
		}
		if line != "" {
			shifted[i] = true
			out.Write(prefix)
		}
		out.Write(line)
	}

	for _, m := range c.mappings {
		if m.GenLine < len(shifted) && shifted[m.GenLine] {
			m.GenColumn += len(prefix)
		}
		out.mappings = append(out.mappings, m)
	}
	return out
}

// Clone returns an independent copy
func (c *Chunk) Clone() *Chunk {
	out := NewChunk()
	return out.Append(c)
}

// Source returns the generated text
func (c *Chunk) Source() string {
	return c.sb.String()
}

// Mappings returns the recorded mappings in emission order
func (c *Chunk) Mappings() []Mapping {
	return c.mappings
}

// Len returns the byte length of the generated text
func (c *Chunk) Len() int {
	return c.sb.Len()
}

// IsEmpty reports whether no text has been written
func (c *Chunk) IsEmpty() bool {
	return c.sb.Len() == 0
}
