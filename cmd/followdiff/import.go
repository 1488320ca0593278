package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/report"
	"github.com/fwojciec/followdiff/zip"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	res, err := importArchive(deps, c.Archive, c.ExtractDir)
	if err != nil {
		return err
	}
	warnFailures(deps, res)
	printSummary(deps, res)

	sections := report.Sections(res)
	if !c.All {
		sections = sections[:1]
	}
	return writeReport(deps, sections)
}

// importArchive expands archive and extracts every list. extractDir falls
// back to the configured directory, then to one next to the archive.
func importArchive(deps *Dependencies, archive, extractDir string) (*followdiff.RunResult, error) {
	if extractDir == "" {
		extractDir = deps.Config.Import.ExtractDir
	}
	if extractDir == "" {
		extractDir = zip.DefaultTargetDir(archive)
	}
	return runImport(deps, followdiff.ImportRequest{
		ArchivePath: archive,
		ExtractDir:  extractDir,
	})
}

// runImport runs the pipeline in the background and mirrors its progress
// on a bar.
func runImport(deps *Dependencies, req followdiff.ImportRequest) (*followdiff.RunResult, error) {
	bar := newProgressBar(deps, 100, "Importing")
	task := deps.Importer.Start(deps.Ctx, req)
	for ev := range task.Events() {
		bar.Describe(color.BlueString(stageLabel(ev)))
		_ = bar.Set(int(ev.Percent))
	}

	res, err := task.Wait()
	if err != nil {
		_ = bar.Exit()
		return nil, err
	}
	_ = bar.Finish()
	return res, nil
}

func stageLabel(ev followdiff.Event) string {
	switch ev.Stage {
	case followdiff.StageExtracting:
		return "Extracting archive"
	case followdiff.StageParsing:
		return "Parsed " + ev.Kind.Title()
	case followdiff.StageComparing:
		return "Comparing lists"
	default:
		return "Done"
	}
}

// warnFailures reports lists that could not be read.
func warnFailures(deps *Dependencies, res *followdiff.RunResult) {
	for _, l := range res.Failed() {
		fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", l.Kind.Title(), followdiff.ErrorMessage(l.Err))
	}
	if l, ok := res.Lists[followdiff.ListFollowers]; ok && !l.OK() {
		fmt.Fprintln(deps.Stderr, "warning: followers list unavailable, every followed account is reported as a non-follower")
	}
}

func printSummary(deps *Dependencies, res *followdiff.RunResult) {
	fmt.Fprintf(deps.Stderr, "Followers: %d  Following: %d  Non-followers: %d\n",
		len(res.Followers()), len(res.Following()), len(res.NonFollowers))
}
