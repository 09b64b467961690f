package debrix

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVLQ(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{value: 0, want: "A"},
		{value: 1, want: "C"},
		{value: -1, want: "D"},
		{value: 5, want: "K"},
		{value: -5, want: "L"},
		{value: 15, want: "e"},
		{value: 16, want: "gB"},
		{value: -16, want: "hB"},
		{value: 1000, want: "w+B"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		writeVLQ(&sb, tt.value)
		assert.Equal(t, tt.want, sb.String(), "value %d", tt.value)
	}
}

func TestEncodeMappings(t *testing.T) {
	mappings := []Mapping{
		{OrigLine: 0, OrigColumn: 0, GenLine: 0, GenColumn: 0},
		{OrigLine: 0, OrigColumn: 5, GenLine: 0, GenColumn: 4},
		{OrigLine: 1, OrigColumn: 0, GenLine: 2, GenColumn: 2},
	}

	assert.Equal(t, "AAAA,IAAK;;EACL", encodeMappings(mappings))
	assert.Equal(t, "", encodeMappings(nil))
}

func TestChunk_SourceMap(t *testing.T) {
	input := `<div class="x">{a + b}</div>`
	chunk, err := Build(input, TargetClient)
	require.NoError(t, err)

	data, err := chunk.MarshalSourceMap("card.js", "card.debrix", input)
	require.NoError(t, err)

	var sm SourceMap
	require.NoError(t, json.Unmarshal(data, &sm))
	assert.Equal(t, 3, sm.Version)
	assert.Equal(t, "card.js", sm.File)
	assert.Equal(t, []string{"card.debrix"}, sm.Sources)
	assert.Equal(t, []string{input}, sm.SourcesContent)
	assert.Equal(t, []string{}, sm.Names)
	assert.Equal(t, encodeMappings(chunk.Mappings), sm.Mappings)

	// one group per generated line, up to the last mapped line
	last := 0
	for _, m := range chunk.Mappings {
		last = max(last, m.GenLine)
	}
	assert.Equal(t, last, strings.Count(sm.Mappings, ";"))

	without := chunk.SourceMap("card.js", "card.debrix", "")
	assert.Nil(t, without.SourcesContent)
}

func TestSourceMapComments(t *testing.T) {
	assert.Equal(t, "//# sourceMappingURL=card.js.map\n", SourceMapURLComment("card.js.map"))

	inline := InlineSourceMapComment([]byte(`{"version":3}`))
	prefix := "//# sourceMappingURL=data:application/json;charset=utf-8;base64,"
	require.True(t, strings.HasPrefix(inline, prefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.TrimPrefix(inline, prefix), "\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"version":3}`, string(decoded))
}
