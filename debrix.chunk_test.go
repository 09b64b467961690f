package debrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex_Locate(t *testing.T) {
	input := "ab\ncd\n\nef"
	lines := newLineIndex(input)

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{offset: 0, line: 0, column: 0},
		{offset: 2, line: 0, column: 2},
		{offset: 3, line: 1, column: 0},
		{offset: 4, line: 1, column: 1},
		{offset: 6, line: 2, column: 0},
		{offset: 7, line: 3, column: 0},
		{offset: 9, line: 3, column: 2},
		{offset: 100, line: 3, column: 2},
		{offset: -4, line: 0, column: 0},
	}

	for _, tt := range tests {
		line, column := lines.locate(tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.column, column, "offset %d", tt.offset)
	}
}

func TestLineIndex_LineText(t *testing.T) {
	input := "first\r\nsecond\n"
	lines := newLineIndex(input)

	assert.Equal(t, "first", lines.lineText(input, 0))
	assert.Equal(t, "second", lines.lineText(input, 1))
	assert.Equal(t, "", lines.lineText(input, 2))
	assert.Equal(t, "", lines.lineText(input, 5))
}

func TestLocate(t *testing.T) {
	source := "<div>\n  <p class=></p>\n</div>"

	loc := Locate(source, 17)
	assert.Equal(t, Location{Line: 1, Column: 11, Text: "  <p class=></p>"}, loc)
}

func TestChunk_Tuples(t *testing.T) {
	chunk := &Chunk{Mappings: []Mapping{
		{OrigLine: 0, OrigColumn: 5, GenLine: 7, GenColumn: 1},
		{OrigLine: 2, OrigColumn: 0, GenLine: 9, GenColumn: 4},
	}}

	want := [][4]int{{0, 5, 7, 1}, {2, 0, 9, 4}}
	if diff := cmp.Diff(want, chunk.Tuples()); diff != "" {
		t.Errorf("Tuples() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_MappingsFollowLines(t *testing.T) {
	input := "<div>\n  <span class=\"a\"></span>\n</div>"

	chunk, err := Build(input, TargetClient)
	require.NoError(t, err)

	var attrMapping *Mapping
	for i, m := range chunk.Mappings {
		if m.OrigLine == 1 && m.OrigColumn == 8 {
			attrMapping = &chunk.Mappings[i]
			break
		}
	}
	require.NotNil(t, attrMapping, "the attribute on line 1 must be mapped")

	lines := splitLines(chunk.Source)
	assert.Equal(t, `attr(span_1, "class", "a");`, lines[attrMapping.GenLine][attrMapping.GenColumn:])
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
