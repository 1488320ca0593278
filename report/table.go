package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/fwojciec/followdiff"
)

func (r *Renderer) renderTable(w io.Writer, sections []Section) error {
	title := color.New(color.Bold, color.FgCyan)
	failure := color.New(color.FgRed)
	for _, c := range []*color.Color{title, failure} {
		if r.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title.Fprintln(w, heading(s))
		if s.Err != nil {
			failure.Fprintf(w, "  error: %s\n", followdiff.ErrorMessage(s.Err))
			continue
		}
		if len(s.Records) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  #\tUSERNAME\tPROFILE\tDATE")
		for j, rec := range s.Records {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", j+1, rec.Username, rec.ProfileURL, rec.Timestamp)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
