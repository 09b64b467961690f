package debrix

import (
	"encoding/base64"
	"encoding/json"
	"sort"
	"strings"
)

const (
	sourceMapVersion = 3
	sourceMapComment = "//# sourceMappingURL="
	sourceMapDataURL = "data:application/json;charset=utf-8;base64,"
	base64VLQDigits  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

// SourceMap is a Source Map revision 3 document
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// SourceMap builds the source map of c for a single source file.
// sourceContent may be empty to leave sourcesContent out.
func (c *Chunk) SourceMap(file, sourceName, sourceContent string) *SourceMap {
	sm := &SourceMap{
		Version:  sourceMapVersion,
		File:     file,
		Sources:  []string{sourceName},
		Names:    []string{},
		Mappings: encodeMappings(c.Mappings),
	}
	if sourceContent != "" {
		sm.SourcesContent = []string{sourceContent}
	}
	return sm
}

// MarshalSourceMap returns the JSON encoding of c's source map
func (c *Chunk) MarshalSourceMap(file, sourceName, sourceContent string) ([]byte, error) {
	data, err := json.Marshal(c.SourceMap(file, sourceName, sourceContent))
	if err != nil {
		return nil, NewIOError(ErrMsgEncodeSourceMap, file, err)
	}
	return data, nil
}

// SourceMapURLComment returns the trailing comment that links a module to
// its map file
func SourceMapURLComment(mapFile string) string {
	return sourceMapComment + mapFile + "\n"
}

// InlineSourceMapComment returns the trailing comment embedding the map
// as a data URL
func InlineSourceMapComment(data []byte) string {
	return sourceMapComment + sourceMapDataURL + base64.StdEncoding.EncodeToString(data) + "\n"
}

// encodeMappings renders mappings as the semicolon separated base64 VLQ
// string, ordered by generated position. Every segment points into
// source 0.
func encodeMappings(mappings []Mapping) string {
	sorted := make([]Mapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].GenLine != sorted[j].GenLine {
			return sorted[i].GenLine < sorted[j].GenLine
		}
		return sorted[i].GenColumn < sorted[j].GenColumn
	})

	var sb strings.Builder
	line := 0
	lastGenColumn := 0
	lastOrigLine := 0
	lastOrigColumn := 0
	first := true

	for _, m := range sorted {
		for line < m.GenLine {
			sb.WriteByte(';')
			line++
			lastGenColumn = 0
			first = true
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false

		writeVLQ(&sb, m.GenColumn-lastGenColumn)
		writeVLQ(&sb, 0)
		writeVLQ(&sb, m.OrigLine-lastOrigLine)
		writeVLQ(&sb, m.OrigColumn-lastOrigColumn)

		lastGenColumn = m.GenColumn
		lastOrigLine = m.OrigLine
		lastOrigColumn = m.OrigColumn
	}
	return sb.String()
}

// writeVLQ appends value as a base64 VLQ: sign in the lowest bit, five
// bits per digit, continuation in the sixth
func writeVLQ(sb *strings.Builder, value int) {
	if value < 0 {
		value = (-value << 1) | 1
	} else {
		value <<= 1
	}
	for {
		digit := value & 31
		value >>= 5
		if value > 0 {
			digit |= 32
		}
		sb.WriteByte(base64VLQDigits[digit])
		if value == 0 {
			return
		}
	}
}
