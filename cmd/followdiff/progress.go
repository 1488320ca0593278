package main

import (
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// newProgressBar returns a bar on stderr, or a silent one when progress
// output is disabled.
func newProgressBar(deps *Dependencies, total int, description string) *progressbar.ProgressBar {
	if !deps.Progress {
		return progressbar.DefaultSilent(int64(total), description)
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(deps.Stderr),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = deps.Stderr.Write([]byte("\n"))
		}),
	)
}
