package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rfgrep/rfgrep/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleMatches() []types.Match {
	return []types.Match{
		{
			Path: "a.go", LineNumber: 3, Line: "found NEEDLE here",
			MatchedText: "NEEDLE", ColumnStart: 6, ColumnEnd: 12,
			ContextBefore: []types.ContextLine{{LineNumber: 2, Content: "prior line"}},
			ContextAfter:  []types.ContextLine{{LineNumber: 4, Content: "next line"}},
		},
		{
			Path: "b.go", LineNumber: 1, Line: "NEEDLE,with,commas\nand a newline",
			MatchedText: "NEEDLE", ColumnStart: 0, ColumnEnd: 6,
		},
	}
}

func TestRender_TextIncludesMetadataAndContext(t *testing.T) {
	f := New(FormatText)
	out := f.Render(sampleMatches(), "NEEDLE", "./src")
	require.Contains(t, out, "Query: NEEDLE")
	require.Contains(t, out, "Total matches: 2")
	require.Contains(t, out, "a.go:3:7: found NEEDLE here")
	require.Contains(t, out, "-- context --")
	require.Contains(t, out, "2 │ prior line")
}

func TestRender_TextNoMatchesReportsLiteralMessage(t *testing.T) {
	f := New(FormatText)
	out := f.Render(nil, "NEEDLE", "./src")
	require.Contains(t, out, "No matches found")
}

func TestRender_TextColorWrapsMatchInAnsi(t *testing.T) {
	f := New(FormatText)
	f.UseColor = true
	out := f.Render(sampleMatches(), "NEEDLE", "./src")
	require.Contains(t, out, "\x1b[33mNEEDLE\x1b[0m")
}

func TestRender_JSONMatchesSchema(t *testing.T) {
	f := New(FormatJSON)
	out := f.Render(sampleMatches(), "NEEDLE", "./src")

	var doc struct {
		Query        string `json:"query"`
		Path         string `json:"path"`
		TotalMatches int    `json:"total_matches"`
		Matches      []struct {
			Path        string `json:"path"`
			LineNumber  int    `json:"line_number"`
			MatchedText string `json:"matched_text"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "NEEDLE", doc.Query)
	require.Equal(t, 2, doc.TotalMatches)
	require.Len(t, doc.Matches, 2)
}

func TestRender_NDJSONOneObjectPerLineNoEnclosingArray(t *testing.T) {
	f := New(FormatNDJSON)
	out := f.Render(sampleMatches(), "NEEDLE", "./src")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var obj map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &obj))
	}
	require.False(t, strings.HasPrefix(strings.TrimSpace(out), "["))
}

func TestRender_XMLEscapesSpecialCharacters(t *testing.T) {
	matches := []types.Match{{Path: "a.go", LineNumber: 1, Line: `<a href="x">`, MatchedText: "<a>"}}
	out := New(FormatXML).Render(matches, "q", "p")
	require.Contains(t, out, "&lt;a href=&quot;x&quot;&gt;")
	require.Contains(t, out, "<search-results>")
}

func TestRender_CSVQuotesFieldsWithCommasOrNewlines(t *testing.T) {
	out := New(FormatCSV).Render(sampleMatches(), "q", "p")
	require.Contains(t, out, "file,line_number,column_start,column_end,matched_text,line_content")
	require.Contains(t, out, `"NEEDLE,with,commas`)
}

func TestRender_TSVEscapesTabsAndNewlines(t *testing.T) {
	out := New(FormatTSV).Render(sampleMatches(), "q", "p")
	require.Contains(t, out, "file\tline_number\tcolumn_start\tcolumn_end\tmatched_text\tline_content")
	require.Contains(t, out, `\n`)
}

func TestRender_MarkdownHasFencedCodeBlock(t *testing.T) {
	out := New(FormatMarkdown).Render(sampleMatches(), "NEEDLE", "./src")
	require.Contains(t, out, "# rfgrep Search Results")
	require.Contains(t, out, "```")
}

func TestRender_HTMLHighlightsMatchSpan(t *testing.T) {
	out := New(FormatHTML).Render(sampleMatches(), "NEEDLE", "./src")
	require.Contains(t, out, `<span class="matched-text">NEEDLE</span>`)
}
