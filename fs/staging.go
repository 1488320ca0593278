package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/followdiff"
)

// MarkerName is the file that marks a directory as created by followdiff.
// Only marked or empty directories are ever replaced.
const MarkerName = ".followdiff"

// StagingDir gives a directory atomic replace semantics.
// Content is written below a hidden sibling of the final directory and
// moved into place on Commit. Abort discards the staged content.
//
// A final directory that holds anything but the output of an earlier run
// is never replaced: Prepare and Commit fail with ECONFLICT instead.
type StagingDir struct {
	baseDir string
	name    string
}

// NewStagingDir creates a StagingDir that finally lives at path.
func NewStagingDir(path string) *StagingDir {
	return &StagingDir{
		baseDir: filepath.Dir(path),
		name:    filepath.Base(path),
	}
}

// TempDir returns the directory content should be written to.
func (s *StagingDir) TempDir() string {
	return filepath.Join(s.baseDir, "."+s.name+".followdiff-tmp")
}

// FinalDir returns the directory content ends up in after Commit.
func (s *StagingDir) FinalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Prepare creates an empty, marked temp directory, discarding leftovers of
// an earlier aborted run.
func (s *StagingDir) Prepare() error {
	if err := replaceable(s.FinalDir()); err != nil {
		return err
	}
	if err := replaceable(s.TempDir()); err != nil {
		return err
	}
	if err := os.RemoveAll(s.TempDir()); err != nil {
		return err
	}
	if err := os.MkdirAll(s.TempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.TempDir(), MarkerName), nil, 0644)
}

// Commit replaces the final directory with the staged content.
func (s *StagingDir) Commit() error {
	if err := replaceable(s.FinalDir()); err != nil {
		return err
	}
	if err := os.RemoveAll(s.FinalDir()); err != nil {
		return err
	}
	return os.Rename(s.TempDir(), s.FinalDir())
}

// Abort discards the staged content.
func (s *StagingDir) Abort() error {
	return os.RemoveAll(s.TempDir())
}

// replaceable returns nil when path is missing, an empty directory or a
// directory carrying the marker.
func replaceable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return followdiff.Errorf(followdiff.ECONFLICT, "%s exists and is not a directory", path)
	}

	if _, err := os.Stat(filepath.Join(path, MarkerName)); err == nil {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return followdiff.Errorf(followdiff.ECONFLICT, "%s is not empty and was not created by followdiff; choose another extract directory", path)
	}
	return nil
}
