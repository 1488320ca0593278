package report

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/fwojciec/followdiff"
)

type jsonSection struct {
	Title   string              `json:"title"`
	Kind    string              `json:"kind"`
	Count   int                 `json:"count"`
	Records []followdiff.Record `json:"records"`
	Error   string              `json:"error,omitempty"`
}

func renderJSON(w io.Writer, sections []Section) error {
	out := struct {
		Sections []jsonSection `json:"sections"`
	}{Sections: make([]jsonSection, 0, len(sections))}

	for _, s := range sections {
		js := jsonSection{
			Title:   s.Title,
			Kind:    s.Kind,
			Count:   len(s.Records),
			Records: s.Records,
		}
		if js.Records == nil {
			js.Records = []followdiff.Record{}
		}
		if s.Err != nil {
			js.Error = followdiff.ErrorMessage(s.Err)
		}
		out.Sections = append(out.Sections, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, sections []Section) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"list", "username", "url", "timestamp"}); err != nil {
		return err
	}
	for _, s := range sections {
		for _, rec := range s.Records {
			if err := cw.Write([]string{s.Kind, rec.Username, rec.ProfileURL, rec.Timestamp}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
