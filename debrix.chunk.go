package debrix

import (
	"sort"
	"strings"

	"github.com/debrix-lang/debrix-go/internal"
)

// Mapping links a generated position to a source position. All values
// are zero-based; columns count bytes.
type Mapping struct {
	OrigLine   int `json:"origLine" yaml:"origLine"`
	OrigColumn int `json:"origColumn" yaml:"origColumn"`
	GenLine    int `json:"genLine" yaml:"genLine"`
	GenColumn  int `json:"genColumn" yaml:"genColumn"`
}

// Chunk is the output of a build: the generated module and its mappings
// in generation order
type Chunk struct {
	Source   string    `json:"source" yaml:"source"`
	Mappings []Mapping `json:"mappings" yaml:"mappings"`
}

// Tuples returns the mappings as (origLine, origCol, genLine, genCol)
// quadruples, the shape the host bundler adapters consume
func (c *Chunk) Tuples() [][4]int {
	out := make([][4]int, len(c.Mappings))
	for i, m := range c.Mappings {
		out[i] = [4]int{m.OrigLine, m.OrigColumn, m.GenLine, m.GenColumn}
	}
	return out
}

func newChunk(chunk *internal.Chunk, lines *lineIndex) *Chunk {
	internalMappings := chunk.Mappings()
	mappings := make([]Mapping, len(internalMappings))
	for i, m := range internalMappings {
		line, column := lines.locate(m.Original)
		mappings[i] = Mapping{
			OrigLine:   line,
			OrigColumn: column,
			GenLine:    m.GenLine,
			GenColumn:  m.GenColumn,
		}
	}
	return &Chunk{Source: chunk.Source(), Mappings: mappings}
}

// lineIndex converts byte offsets of one input into line and column
type lineIndex struct {
	size   int
	starts []int
}

func newLineIndex(input string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{size: len(input), starts: starts}
}

// locate returns the zero-based line and byte column of offset. Offsets
// outside the input are clamped.
func (l *lineIndex) locate(offset int) (int, int) {
	offset = max(0, min(offset, l.size))
	line := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1
	return line, offset - l.starts[line]
}

// lineText returns the text of a zero-based line without its newline
func (l *lineIndex) lineText(input string, line int) string {
	if line < 0 || line >= len(l.starts) {
		return ""
	}
	end := l.size
	if line+1 < len(l.starts) {
		end = l.starts[line+1]
	}
	return strings.TrimRight(input[l.starts[line]:end], "\r\n")
}

// Location is a zero-based line and byte column in a source
type Location struct {
	Line   int
	Column int
	// Text is the full source line containing the location
	Text string
}

// Locate resolves a byte offset in source. The CLI uses it to print code
// frames under diagnostics.
func Locate(source string, offset int) Location {
	lines := newLineIndex(source)
	line, column := lines.locate(offset)
	return Location{Line: line, Column: column, Text: lines.lineText(source, line)}
}
