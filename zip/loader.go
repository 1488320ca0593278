// Package zip expands data export archives.
package zip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/fs"
	"github.com/klauspost/compress/zip"
)

// DefaultDirName is the directory an archive is expanded into when no
// target is given, placed next to the archive.
const DefaultDirName = "instagram_data_extracted"

// DefaultTargetDir returns the default extraction directory for an archive.
func DefaultTargetDir(archivePath string) string {
	return filepath.Join(filepath.Dir(archivePath), DefaultDirName)
}

// Ensure Loader implements followdiff.ArchiveLoader at compile time.
var _ followdiff.ArchiveLoader = (*Loader)(nil)

// Loader expands zip archives. The target directory is only replaced once
// the whole archive has been expanded successfully, and only when it is
// empty or holds an earlier extraction.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extract expands the archive at archivePath into targetDir.
func (l *Loader) Extract(ctx context.Context, archivePath, targetDir string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, statErr := os.Stat(archivePath); os.IsNotExist(statErr) {
		return followdiff.Errorf(followdiff.ENOTFOUND, "archive %q not found", archivePath)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return followdiff.Errorf(followdiff.EINVALID, "failed to open archive %q: %v", archivePath, err)
	}
	defer r.Close()

	staging := fs.NewStagingDir(targetDir)
	if err := staging.Prepare(); err != nil {
		return fmt.Errorf("preparing %s: %w", targetDir, err)
	}
	defer func() {
		if err != nil {
			_ = staging.Abort()
		}
	}()

	root := staging.TempDir()
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractFile(f, root); err != nil {
			return err
		}
	}

	if err := staging.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", targetDir, err)
	}
	return nil
}

// extractFile writes a single archive entry below root.
func extractFile(f *zip.File, root string) error {
	path, err := entryPath(root, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(path, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return followdiff.Errorf(followdiff.EINVALID, "failed to read %q: %v", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) {
			return followdiff.Errorf(followdiff.EINVALID, "corrupt entry %q: %v", f.Name, err)
		}
		return err
	}
	return out.Close()
}

// entryPath resolves an entry name below root, rejecting names that would
// escape it.
func entryPath(root, name string) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(name))
	if path != root && !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", followdiff.Errorf(followdiff.EINVALID, "archive entry %q escapes target directory", name)
	}
	return path, nil
}
