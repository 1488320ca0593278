package main_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/followdiff"
	main "github.com/fwojciec/followdiff/cmd/followdiff"
	"github.com/fwojciec/followdiff/config"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// profileCard renders one entry of an export list.
func profileCard(username, timestamp string) string {
	return `<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div>` +
		`<a target="_blank" href="https://www.instagram.com/` + username + `">` + username + `</a>` +
		`</div><div>` + timestamp + `</div></div></div></div>`
}

// exportPage renders an export list page holding usernames.
func exportPage(usernames ...string) string {
	cards := make([]string, 0, len(usernames))
	for _, u := range usernames {
		cards = append(cards, profileCard(u, "Jan 02, 2024"))
	}
	return `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body><main>` +
		strings.Join(cards, "\n") + `</main></body></html>`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeExport writes a data export zip with the given lists.
func writeExport(t *testing.T, path string, lists map[followdiff.ListKind][]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for kind, usernames := range lists {
		fw, err := w.Create("connections/followers_and_following/" + kind.FileName())
		require.NoError(t, err)
		_, err = fw.Write([]byte(exportPage(usernames...)))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

// newTestMain returns a Main isolated from the user's home, environment
// and browser.
func newTestMain(t *testing.T, automator followdiff.Automator, env map[string]string) *main.Main {
	t.Helper()

	values := map[string]string{"FOLLOWDIFF_LOG_FILE": "false"}
	for k, v := range env {
		values[k] = v
	}

	return &main.Main{
		Loader: &config.Loader{
			Home: t.TempDir(),
			Dir:  t.TempDir(),
			Getenv: func(key string) (string, bool) {
				v, ok := values[key]
				return v, ok
			},
		},
		Now: func() time.Time {
			return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		},
		NewAutomator: func(*config.Config, *slog.Logger) (followdiff.Automator, error) {
			if automator == nil {
				t.Fatal("unexpected browser launch")
			}
			return automator, nil
		},
	}
}

func testContext() context.Context {
	return context.Background()
}
