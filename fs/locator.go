// Package fs handles the local files of an export: it stages expanded
// archives, locates relationship lists and writes reports.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/followdiff"
)

// ConnectionsDir is where the export keeps relationship lists, relative to its root.
var ConnectionsDir = filepath.Join("connections", "followers_and_following")

// Ensure Locator implements followdiff.ListLocator at compile time.
var _ followdiff.ListLocator = (*Locator)(nil)

// Locator finds list files by probing the expected location first and
// walking the whole export when the layout differs.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// errFound stops the directory walk once a match is found.
var errFound = errors.New("found")

// Locate returns the path of the file holding kind below root.
func (l *Locator) Locate(root string, kind followdiff.ListKind) (string, error) {
	name := kind.FileName()
	if name == "" {
		return "", followdiff.Errorf(followdiff.EINVALID, "unknown list kind %q", kind)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", followdiff.Errorf(followdiff.ENOTFOUND, "export directory %q not found", root)
	}

	expected := filepath.Join(root, ConnectionsDir, name)
	if isFile(expected) {
		return expected, nil
	}

	var found string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped rather than failing the search.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	if found == "" {
		return "", followdiff.Errorf(followdiff.ENOTFOUND, "%s not found in %q", name, root)
	}
	return found, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
