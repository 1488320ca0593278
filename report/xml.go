package report

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/followdiff"
)

func renderXML(w io.Writer, sections []Section) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("followdiff")

	for _, s := range sections {
		list := root.CreateElement("list")
		list.CreateAttr("kind", s.Kind)
		list.CreateAttr("title", s.Title)
		list.CreateAttr("count", strconv.Itoa(len(s.Records)))
		if s.Err != nil {
			list.CreateElement("error").SetText(followdiff.ErrorMessage(s.Err))
			continue
		}
		for _, rec := range s.Records {
			el := list.CreateElement("record")
			el.CreateAttr("username", rec.Username)
			el.CreateAttr("url", rec.ProfileURL)
			if rec.Timestamp != "" {
				el.CreateAttr("timestamp", rec.Timestamp)
			}
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
