package followdiff

import "context"

// ArchiveLoader expands a compressed data export.
type ArchiveLoader interface {
	// Extract expands the archive at archivePath into targetDir, creating it
	// if needed. Returns ENOTFOUND if the archive does not exist and EINVALID
	// if it is not a readable archive.
	Extract(ctx context.Context, archivePath, targetDir string) error
}

// ListLocator finds the file holding a relationship list inside an expanded export.
type ListLocator interface {
	// Locate returns the path of the list file below root.
	// Returns ENOTFOUND if no such file exists.
	Locate(root string, kind ListKind) (string, error)
}
