package mock

import (
	"context"

	"github.com/fwojciec/followdiff"
)

// Compile-time interface verification.
var (
	_ followdiff.ArchiveLoader = (*ArchiveLoader)(nil)
	_ followdiff.ListLocator   = (*ListLocator)(nil)
)

// ArchiveLoader is a mock implementation of followdiff.ArchiveLoader.
type ArchiveLoader struct {
	ExtractFn func(ctx context.Context, archivePath, targetDir string) error
}

func (l *ArchiveLoader) Extract(ctx context.Context, archivePath, targetDir string) error {
	return l.ExtractFn(ctx, archivePath, targetDir)
}

// ListLocator is a mock implementation of followdiff.ListLocator.
type ListLocator struct {
	LocateFn func(root string, kind followdiff.ListKind) (string, error)
}

func (l *ListLocator) Locate(root string, kind followdiff.ListKind) (string, error) {
	return l.LocateFn(root, kind)
}
