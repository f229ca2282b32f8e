// Package output implements the output formatter (C9): eight renderings of
// a search's matches — text, JSON, NDJSON, XML, HTML, Markdown, CSV, TSV —
// over the same []types.Match, per spec section 4.9.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rfgrep/rfgrep/internal/types"
)

// Format selects which rendering Formatter.Render produces.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatNDJSON
	FormatXML
	FormatHTML
	FormatMarkdown
	FormatCSV
	FormatTSV
)

// Formatter renders a batch of matches for one query/path pair.
type Formatter struct {
	Format          Format
	IncludeMetadata bool
	IncludeContext  bool
	UseColor        bool
}

// New returns a Formatter with metadata and context included, matching the
// original tool's formatter defaults.
func New(format Format) Formatter {
	return Formatter{Format: format, IncludeMetadata: true, IncludeContext: true}
}

// Render produces the chosen format's textual output for matches found
// while searching query under path.
func (f Formatter) Render(matches []types.Match, query, path string) string {
	switch f.Format {
	case FormatJSON:
		return f.renderJSON(matches, query, path)
	case FormatNDJSON:
		return f.renderNDJSON(matches, query)
	case FormatXML:
		return f.renderXML(matches, query, path)
	case FormatHTML:
		return f.renderHTML(matches, query, path)
	case FormatMarkdown:
		return f.renderMarkdown(matches, query, path)
	case FormatCSV:
		return f.renderDelimited(matches, ',', escapeCSV)
	case FormatTSV:
		return f.renderDelimited(matches, '\t', escapeTSV)
	default:
		return f.renderText(matches, query, path)
	}
}

// contextLineJSON/matchJSON/documentJSON mirror the original's ad hoc
// serde_json::json! object shapes exactly, so json.Marshal produces the
// same field layout without any bespoke string building.
type contextLineJSON struct {
	LineNumber int    `json:"line_number"`
	Content    string `json:"content"`
}

type matchJSON struct {
	Query         string            `json:"query,omitempty"`
	Path          string            `json:"path"`
	LineNumber    int               `json:"line_number"`
	Line          string            `json:"line"`
	MatchedText   string            `json:"matched_text"`
	ColumnStart   int               `json:"column_start"`
	ColumnEnd     int               `json:"column_end"`
	ContextBefore []contextLineJSON `json:"context_before,omitempty"`
	ContextAfter  []contextLineJSON `json:"context_after,omitempty"`
}

type documentJSON struct {
	Query        string      `json:"query"`
	Path         string      `json:"path"`
	TotalMatches int         `json:"total_matches"`
	Matches      []matchJSON `json:"matches"`
}

func (f Formatter) toMatchJSON(m types.Match, withQuery, query string) matchJSON {
	mj := matchJSON{
		Query:       withQuery,
		Path:        m.Path,
		LineNumber:  m.LineNumber,
		Line:        m.Line,
		MatchedText: m.MatchedText,
		ColumnStart: m.ColumnStart,
		ColumnEnd:   m.ColumnEnd,
	}
	if f.IncludeContext {
		for _, c := range m.ContextBefore {
			mj.ContextBefore = append(mj.ContextBefore, contextLineJSON{LineNumber: c.LineNumber, Content: c.Content})
		}
		for _, c := range m.ContextAfter {
			mj.ContextAfter = append(mj.ContextAfter, contextLineJSON{LineNumber: c.LineNumber, Content: c.Content})
		}
	}
	return mj
}

func (f Formatter) renderJSON(matches []types.Match, query, path string) string {
	doc := documentJSON{Query: query, Path: path, TotalMatches: len(matches), Matches: []matchJSON{}}
	for _, m := range matches {
		doc.Matches = append(doc.Matches, f.toMatchJSON(m, "", query))
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Sprintf(`{"error":"json_serialization_failed","details":%q}`, err.Error())
	}
	return string(b)
}

// renderNDJSON emits one JSON object per match, newline-delimited, with no
// enclosing array or document — each line independently parseable, per
// spec section 4.9.
func (f Formatter) renderNDJSON(matches []types.Match, query string) string {
	var sb strings.Builder
	for _, m := range matches {
		mj := f.toMatchJSON(m, query, query)
		b, err := json.Marshal(mj)
		if err != nil {
			sb.WriteString(fmt.Sprintf(`{"error":"json_serialization_failed","details":%q}`, err.Error()))
		} else {
			sb.Write(b)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f Formatter) renderText(matches []types.Match, query, path string) string {
	var sb strings.Builder
	if f.IncludeMetadata {
		fmt.Fprintf(&sb, "Query: %s\n", query)
		fmt.Fprintf(&sb, "Path: %s\n", path)
		fmt.Fprintf(&sb, "Total matches: %d\n\n", len(matches))
	}

	if len(matches) == 0 {
		sb.WriteString("No matches found\n")
		return sb.String()
	}

	for _, m := range matches {
		before, after := splitAroundMatch(m)
		if f.UseColor {
			fmt.Fprintf(&sb, "%s:%d:%d: %s\x1b[33m%s\x1b[0m%s\n", m.Path, m.LineNumber, m.ColumnStart+1, before, m.MatchedText, after)
		} else {
			fmt.Fprintf(&sb, "%s:%d:%d: %s%s%s\n", m.Path, m.LineNumber, m.ColumnStart+1, before, m.MatchedText, after)
		}

		if f.IncludeContext && (len(m.ContextBefore) > 0 || len(m.ContextAfter) > 0) {
			sb.WriteString("-- context --\n")
			for _, c := range m.ContextBefore {
				fmt.Fprintf(&sb, "  %d │ %s\n", c.LineNumber, c.Content)
			}
			fmt.Fprintf(&sb, "→ %d │ %s%s%s\n", m.LineNumber, before, m.MatchedText, after)
			for _, c := range m.ContextAfter {
				fmt.Fprintf(&sb, "  %d │ %s\n", c.LineNumber, c.Content)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// splitAroundMatch recovers the line text before and after the matched
// span, clamping the column bounds to the line's length defensively.
func splitAroundMatch(m types.Match) (before, after string) {
	lineLen := len(m.Line)
	start := m.ColumnStart
	if start > lineLen {
		start = lineLen
	}
	end := m.ColumnEnd
	if end > lineLen {
		end = lineLen
	}
	if start < lineLen {
		before = m.Line[:start]
	}
	if end < lineLen {
		after = m.Line[end:]
	}
	return before, after
}

func (f Formatter) renderXML(matches []types.Match, query, path string) string {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	sb.WriteString("<search-results>\n")

	if f.IncludeMetadata {
		sb.WriteString("  <metadata>\n")
		fmt.Fprintf(&sb, "    <query>%s</query>\n", escapeXML(query))
		fmt.Fprintf(&sb, "    <path>%s</path>\n", escapeXML(path))
		fmt.Fprintf(&sb, "    <total-matches>%d</total-matches>\n", len(matches))
		sb.WriteString("  </metadata>\n")
	}

	sb.WriteString("  <matches>\n")
	for i, m := range matches {
		fmt.Fprintf(&sb, "    <match index=\"%d\">\n", i+1)
		fmt.Fprintf(&sb, "      <line-number>%d</line-number>\n", m.LineNumber)
		fmt.Fprintf(&sb, "      <line>%s</line>\n", escapeXML(m.Line))
		fmt.Fprintf(&sb, "      <matched-text>%s</matched-text>\n", escapeXML(m.MatchedText))
		fmt.Fprintf(&sb, "      <column-start>%d</column-start>\n", m.ColumnStart)
		fmt.Fprintf(&sb, "      <column-end>%d</column-end>\n", m.ColumnEnd)
		sb.WriteString("    </match>\n")
	}
	sb.WriteString("  </matches>\n</search-results>\n")
	return sb.String()
}

func (f Formatter) renderHTML(matches []types.Match, query, path string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	sb.WriteString("<title>rfgrep Search Results</title>\n<style>\n")
	sb.WriteString("body { font-family: monospace; margin: 20px; }\n")
	sb.WriteString(".match { margin: 10px 0; padding: 10px; border-left: 3px solid #007acc; }\n")
	sb.WriteString(".line-number { color: #666; }\n")
	sb.WriteString(".matched-text { background-color: #ffff00; font-weight: bold; }\n")
	sb.WriteString(".metadata { background-color: #f5f5f5; padding: 10px; margin-bottom: 20px; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")

	if f.IncludeMetadata {
		sb.WriteString("<div class=\"metadata\">\n<h2>Search Results</h2>\n")
		fmt.Fprintf(&sb, "<p><strong>Query:</strong> %s</p>\n", escapeHTML(query))
		fmt.Fprintf(&sb, "<p><strong>Path:</strong> %s</p>\n", escapeHTML(path))
		fmt.Fprintf(&sb, "<p><strong>Total Matches:</strong> %d</p>\n", len(matches))
		sb.WriteString("</div>\n")
	}

	for i, m := range matches {
		before, after := splitAroundMatch(m)
		fmt.Fprintf(&sb, "<div class=\"match\">\n<h3>Match %d</h3>\n<div>", i+1)
		fmt.Fprintf(&sb, "<span class=\"line-number\">→ %4d</span> │ %s<span class=\"matched-text\">%s</span>%s",
			m.LineNumber, escapeHTML(before), escapeHTML(m.MatchedText), escapeHTML(after))
		sb.WriteString("</div>\n</div>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

func (f Formatter) renderMarkdown(matches []types.Match, query, path string) string {
	var sb strings.Builder
	sb.WriteString("# rfgrep Search Results\n\n")

	if f.IncludeMetadata {
		fmt.Fprintf(&sb, "**Query:** `%s`\n", query)
		fmt.Fprintf(&sb, "**Path:** `%s`\n", path)
		fmt.Fprintf(&sb, "**Total Matches:** %d\n\n", len(matches))
	}

	for i, m := range matches {
		before, after := splitAroundMatch(m)
		fmt.Fprintf(&sb, "## Match %d\n\n**Match:**\n```\n", i+1)
		fmt.Fprintf(&sb, "→ %4d │ %s%s%s\n```\n\n", m.LineNumber, before, m.MatchedText, after)
	}
	return sb.String()
}

func (f Formatter) renderDelimited(matches []types.Match, delim byte, escape func(string) string) string {
	var sb strings.Builder
	sep := string(delim)
	sb.WriteString(strings.Join([]string{"file", "line_number", "column_start", "column_end", "matched_text", "line_content"}, sep))
	sb.WriteByte('\n')

	for _, m := range matches {
		fields := []string{
			escape(m.Path),
			strconv.Itoa(m.LineNumber),
			strconv.Itoa(m.ColumnStart),
			strconv.Itoa(m.ColumnEnd),
			escape(m.MatchedText),
			escape(m.Line),
		}
		sb.WriteString(strings.Join(fields, sep))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}
