package report

import (
	"bytes"
	"html/template"
	"io"

	"github.com/fwojciec/followdiff"
)

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>followdiff report</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
.error { color: #b00; }
</style>
</head>
<body>
{{template "sections" .}}
</body>
</html>
`))

var sectionsTmpl = template.Must(pageTmpl.New("sections").Parse(`{{range .}}<h2>{{.Heading}}</h2>
{{if .Error}}<p class="error">{{.Error}}</p>
{{else if .Records}}<table>
<thead><tr><th>#</th><th>Username</th><th>Date</th></tr></thead>
<tbody>
{{range $i, $r := .Records}}<tr><td>{{inc $i}}</td><td><a href="{{$r.ProfileURL}}" target="_blank" rel="noopener">{{$r.Username}}</a></td><td>{{$r.Timestamp}}</td></tr>
{{end}}</tbody>
</table>
{{else}}<p>None.</p>
{{end}}{{end}}`))

type htmlSection struct {
	Heading string
	Records []followdiff.Record
	Error   string
}

func htmlSections(sections []Section) []htmlSection {
	out := make([]htmlSection, 0, len(sections))
	for _, s := range sections {
		hs := htmlSection{Heading: heading(s), Records: s.Records}
		if s.Err != nil {
			hs.Error = followdiff.ErrorMessage(s.Err)
		}
		out = append(out, hs)
	}
	return out
}

func renderHTML(w io.Writer, sections []Section) error {
	return pageTmpl.Execute(w, htmlSections(sections))
}

func (r *Renderer) renderMarkdown(w io.Writer, sections []Section) error {
	if r.Converter == nil {
		return followdiff.Errorf(followdiff.EINVALID, "markdown output requires a converter")
	}

	var buf bytes.Buffer
	if err := sectionsTmpl.Execute(&buf, htmlSections(sections)); err != nil {
		return err
	}
	md, err := r.Converter.Convert(buf.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}
