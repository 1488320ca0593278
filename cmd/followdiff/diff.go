package main

import (
	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/report"
)

// Run executes the diff command.
func (c *DiffCmd) Run(deps *Dependencies) error {
	res, err := runImport(deps, followdiff.ImportRequest{
		Paths: map[followdiff.ListKind]string{
			followdiff.ListFollowers: c.Followers,
			followdiff.ListFollowing: c.Following,
		},
	})
	if err != nil {
		return err
	}
	// Both inputs were named explicitly, so a missing one is fatal.
	if failed := res.Failed(); len(failed) > 0 {
		return failed[0].Err
	}
	printSummary(deps, res)

	sections := report.Sections(res)
	if !c.All {
		sections = sections[:1]
	}
	return writeReport(deps, sections)
}
