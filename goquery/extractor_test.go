package goquery_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// card renders one list entry the way the export does.
func card(anchor, timestamp string) string {
	return `<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div>` +
		anchor + `</div><div>` + timestamp + `</div></div></div></div>`
}

func page(cards ...string) string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Followers</title></head>
<body>
<div class="_a705"><main class="_a706" role="main">` + strings.Join(cards, "\n") + `</main></div>
</body>
</html>`
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts one record per entry in document order", func(t *testing.T) {
		t.Parallel()

		html := page(
			card(`<a target="_blank" href="https://www.instagram.com/alice">alice</a>`, "Jan 02, 2024 10:00 am"),
			card(`<a target="_blank" href="https://www.instagram.com/bob">bob</a>`, "Feb 14, 2023 8:15 pm"),
			card(`<a target="_blank" href="https://www.instagram.com/carol">carol</a>`, "Mar 30, 2022 1:00 pm"),
		)

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, followdiff.Record{
			Username:   "alice",
			ProfileURL: "https://www.instagram.com/alice",
			Timestamp:  "Jan 02, 2024 10:00 am",
		}, records[0])
		assert.Equal(t, []string{"alice", "bob", "carol"}, followdiff.Usernames(records))
		assert.Equal(t, "Mar 30, 2022 1:00 pm", records[2].Timestamp)
		for _, r := range records {
			assert.NotEmpty(t, r.Username)
		}
	})

	t.Run("trims whitespace around username and timestamp", func(t *testing.T) {
		t.Parallel()

		html := page(card("<a href=\"https://www.instagram.com/alice\">\n  alice \n</a>", "  Jan 02, 2024  "))

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "alice", records[0].Username)
		assert.Equal(t, "Jan 02, 2024", records[0].Timestamp)
	})

	t.Run("falls back to username from link when text is empty", func(t *testing.T) {
		t.Parallel()

		html := page(card(`<a href="https://www.instagram.com/dave/"></a>`, "Jan 02, 2024"))

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "dave", records[0].Username)
		assert.Equal(t, "https://www.instagram.com/dave/", records[0].ProfileURL)
	})

	t.Run("synthesizes profile link when anchor has no href", func(t *testing.T) {
		t.Parallel()

		html := page(card(`<a>erin</a>`, "Jan 02, 2024"))

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "https://www.instagram.com/erin/", records[0].ProfileURL)
	})

	t.Run("drops entries without a resolvable username", func(t *testing.T) {
		t.Parallel()

		html := page(
			card(`<a href="https://example.com/somewhere"></a>`, "Jan 01, 2024"),
			card(`<a></a>`, "Jan 02, 2024"),
			card(`<a href="https://www.instagram.com/frank">frank</a>`, "Jan 03, 2024"),
		)

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "frank", records[0].Username)
		assert.Equal(t, "Jan 03, 2024", records[0].Timestamp)
	})

	t.Run("leaves timestamp empty when entries outnumber dates", func(t *testing.T) {
		t.Parallel()

		noDate := `<div class="_a6-p"><div><div><a href="https://www.instagram.com/gina">gina</a></div></div></div>`
		html := page(card(`<a href="https://www.instagram.com/hal">hal</a>`, "Jan 02, 2024"), noDate)

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Jan 02, 2024", records[0].Timestamp)
		assert.Empty(t, records[1].Timestamp)
	})

	t.Run("returns empty slice for empty input", func(t *testing.T) {
		t.Parallel()

		records, err := goquery.NewExtractor().Extract(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("returns empty slice for malformed HTML", func(t *testing.T) {
		t.Parallel()

		records, err := goquery.NewExtractor().Extract(strings.NewReader("<<<div class=<a href=>>>"))

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("returns empty slice for page without list entries", func(t *testing.T) {
		t.Parallel()

		records, err := goquery.NewExtractor().Extract(strings.NewReader(page()))

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("rejects JSON exports", func(t *testing.T) {
		t.Parallel()

		json := `  {"relationships_following": [{"string_list_data": [{"value": "alice"}]}]}`

		records, err := goquery.NewExtractor().Extract(strings.NewReader(json))

		require.Error(t, err)
		assert.Equal(t, followdiff.EUNSUPPORTED, followdiff.ErrorCode(err))
		assert.Empty(t, records)
	})

	t.Run("decodes legacy charsets declared in meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta charset="windows-1252"></head><body>` +
			card(`<a href="https://www.instagram.com/ivan">ivan</a>`, "Caf\xe9") +
			`</body></html>`

		records, err := goquery.NewExtractor().Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Café", records[0].Timestamp)
	})

	t.Run("uses custom selectors", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li><a href="https://www.instagram.com/judy">judy</a><span>today</span></li></ul>`

		e := goquery.NewExtractor(goquery.WithSelectors("li a", "li span"))
		records, err := e.Extract(strings.NewReader(html))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "judy", records[0].Username)
		assert.Equal(t, "today", records[0].Timestamp)
	})
}

func TestExtractor_ExtractFile(t *testing.T) {
	t.Parallel()

	t.Run("reads records from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "following.html")
		html := page(card(`<a href="https://www.instagram.com/kate">kate</a>`, "Jan 02, 2024"))
		require.NoError(t, os.WriteFile(path, []byte(html), 0644))

		records, err := goquery.NewExtractor().ExtractFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"kate"}, followdiff.Usernames(records))
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().ExtractFile(filepath.Join(t.TempDir(), "missing.html"))

		assert.Equal(t, followdiff.ENOTFOUND, followdiff.ErrorCode(err))
	})
}

func TestUsernameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{"plain profile link", "https://www.instagram.com/alice", "alice"},
		{"trailing slash", "https://www.instagram.com/alice/", "alice"},
		{"redirect link", "https://www.instagram.com/_u/alice", "alice"},
		{"query string", "https://www.instagram.com/alice/?hl=en", "alice"},
		{"no scheme", "instagram.com/bob", "bob"},
		{"other host", "https://example.com/alice", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.UsernameFromURL(tt.href))
		})
	}
}
