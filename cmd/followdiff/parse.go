package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/report"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	title := filepath.Base(c.File)
	kind := ""
	if c.Kind != "" {
		k, err := followdiff.ParseListKind(c.Kind)
		if err != nil {
			return err
		}
		title, kind = k.Title(), string(k)
	}

	records, err := parseFile(deps, c.File)
	if err != nil {
		return err
	}

	return writeReport(deps, []report.Section{{
		Title:   title,
		Kind:    kind,
		Records: records,
	}})
}

func parseFile(deps *Dependencies, path string) ([]followdiff.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, followdiff.Errorf(followdiff.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return deps.Extractor.Extract(f)
}
