// Package report renders relationship lists for people and tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/followdiff"
)

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatXML      Format = "xml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatCSV, FormatHTML, FormatMarkdown, FormatXML}
}

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", followdiff.Errorf(followdiff.EINVALID, "unknown format %q", s)
}

// KindNonFollowers labels the derived non-follower section.
const KindNonFollowers = "non_followers"

// Section is one titled collection in a report.
type Section struct {
	Title   string
	Kind    string
	Records []followdiff.Record
	// Err is set when the list could not be produced.
	Err error
}

// Sections lays out a run: non-followers first, then every list in
// ListKinds order. Lists the run did not attempt are skipped.
func Sections(res *followdiff.RunResult) []Section {
	sections := []Section{{
		Title:   "Non-followers",
		Kind:    KindNonFollowers,
		Records: res.NonFollowers,
	}}
	for _, kind := range followdiff.ListKinds() {
		l, ok := res.Lists[kind]
		if !ok {
			continue
		}
		sections = append(sections, Section{
			Title:   kind.Title(),
			Kind:    string(kind),
			Records: l.Records,
			Err:     l.Err,
		})
	}
	return sections
}

// Renderer writes sections in any supported format.
type Renderer struct {
	// Converter turns the HTML report into Markdown.
	Converter followdiff.Converter
	// Color enables ANSI colors in table output.
	Color bool
}

// Render writes sections to w in format.
func (r *Renderer) Render(w io.Writer, format Format, sections []Section) error {
	switch format {
	case FormatTable, "":
		return r.renderTable(w, sections)
	case FormatJSON:
		return renderJSON(w, sections)
	case FormatCSV:
		return renderCSV(w, sections)
	case FormatHTML:
		return renderHTML(w, sections)
	case FormatMarkdown:
		return r.renderMarkdown(w, sections)
	case FormatXML:
		return renderXML(w, sections)
	default:
		return followdiff.Errorf(followdiff.EINVALID, "unknown format %q", format)
	}
}

func heading(s Section) string {
	return fmt.Sprintf("%s (%d)", s.Title, len(s.Records))
}
