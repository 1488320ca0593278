package zip_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/fs"
	fdzip "github.com/fwojciec/followdiff/zip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive creates a zip archive holding the given name → content entries.
// Names ending in a slash become directories.
func writeArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = fw.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
}

func TestLoader_Extract(t *testing.T) {
	t.Parallel()

	t.Run("expands archive into target directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		archive := filepath.Join(dir, "export.zip")
		writeArchive(t, archive, map[string]string{
			"connections/followers_and_following/following.html": "<html>following</html>",
			"personal_information/personal_information.html":     "<html>me</html>",
		})
		target := filepath.Join(dir, "out")

		err := fdzip.NewLoader().Extract(context.Background(), archive, target)

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(target, "connections", "followers_and_following", "following.html"))
		require.NoError(t, err)
		assert.Equal(t, "<html>following</html>", string(content))
		assert.FileExists(t, filepath.Join(target, "personal_information", "personal_information.html"))
		assert.NoDirExists(t, fs.NewStagingDir(target).TempDir())
	})

	t.Run("replaces content of a previous run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "out")
		first := filepath.Join(dir, "first.zip")
		writeArchive(t, first, map[string]string{"old.html": "old"})
		require.NoError(t, fdzip.NewLoader().Extract(context.Background(), first, target))

		archive := filepath.Join(dir, "export.zip")
		writeArchive(t, archive, map[string]string{"new.html": "new"})

		err := fdzip.NewLoader().Extract(context.Background(), archive, target)

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(target, "new.html"))
		assert.NoFileExists(t, filepath.Join(target, "old.html"))
	})

	t.Run("refuses to replace a directory holding user files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "Documents")
		require.NoError(t, os.MkdirAll(target, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "thesis.docx"), []byte("chapter one"), 0644))

		archive := filepath.Join(dir, "export.zip")
		writeArchive(t, archive, map[string]string{"new.html": "new"})

		err := fdzip.NewLoader().Extract(context.Background(), archive, target)

		assert.Equal(t, followdiff.ECONFLICT, followdiff.ErrorCode(err))
		content, err := os.ReadFile(filepath.Join(target, "thesis.docx"))
		require.NoError(t, err)
		assert.Equal(t, "chapter one", string(content))
		assert.NoFileExists(t, filepath.Join(target, "new.html"))
		assert.NoDirExists(t, fs.NewStagingDir(target).TempDir())
	})

	t.Run("returns ENOTFOUND for missing archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		err := fdzip.NewLoader().Extract(context.Background(), filepath.Join(dir, "missing.zip"), filepath.Join(dir, "out"))

		assert.Equal(t, followdiff.ENOTFOUND, followdiff.ErrorCode(err))
	})

	t.Run("returns EINVALID for corrupt archive and keeps previous content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		archive := filepath.Join(dir, "export.zip")
		require.NoError(t, os.WriteFile(archive, []byte("not a zip file"), 0644))
		target := filepath.Join(dir, "out")
		first := filepath.Join(dir, "first.zip")
		writeArchive(t, first, map[string]string{"kept.html": "kept"})
		require.NoError(t, fdzip.NewLoader().Extract(context.Background(), first, target))

		err := fdzip.NewLoader().Extract(context.Background(), archive, target)

		assert.Equal(t, followdiff.EINVALID, followdiff.ErrorCode(err))
		assert.FileExists(t, filepath.Join(target, "kept.html"))
	})

	t.Run("rejects entries escaping the target directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		archive := filepath.Join(dir, "evil.zip")
		writeArchive(t, archive, map[string]string{"../../escaped.html": "boom"})
		target := filepath.Join(dir, "nested", "out")

		err := fdzip.NewLoader().Extract(context.Background(), archive, target)

		assert.Equal(t, followdiff.EINVALID, followdiff.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "escaped.html"))
		assert.NoDirExists(t, target)
		assert.NoDirExists(t, fs.NewStagingDir(target).TempDir())
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		archive := filepath.Join(dir, "export.zip")
		writeArchive(t, archive, map[string]string{"a.html": "a"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := fdzip.NewLoader().Extract(ctx, archive, filepath.Join(dir, "out"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDefaultTargetDir(t *testing.T) {
	t.Parallel()

	got := fdzip.DefaultTargetDir(filepath.Join("downloads", "instagram-alice.zip"))

	assert.Equal(t, filepath.Join("downloads", "instagram_data_extracted"), got)
}
