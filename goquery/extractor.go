// Package goquery extracts relationship records from the HTML pages of an
// Instagram data export using CSS selectors.
package goquery

import (
	"bufio"
	"bytes"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/followdiff"
	"golang.org/x/net/html/charset"
)

// Default selectors matching the card-list layout of the export.
// Each list entry is a card holding an anchor and, in the second child
// block, the date the relationship started.
const (
	DefaultAnchorSelector    = "div._a6-p div div a"
	DefaultTimestampSelector = "div._a6-p div div:nth-of-type(2)"
)

// profilePrefix locates the username inside a profile link.
const profilePrefix = "instagram.com/"

// Ensure Extractor implements followdiff.RecordExtractor at compile time.
var _ followdiff.RecordExtractor = (*Extractor)(nil)

// Extractor parses exported list pages into records.
// Extractor holds no mutable state and is safe for concurrent use.
type Extractor struct {
	anchorSelector    string
	timestampSelector string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithSelectors overrides the anchor and timestamp selectors.
// Empty values keep the defaults.
func WithSelectors(anchor, timestamp string) ExtractorOption {
	return func(e *Extractor) {
		if anchor != "" {
			e.anchorSelector = anchor
		}
		if timestamp != "" {
			e.timestampSelector = timestamp
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		anchorSelector:    DefaultAnchorSelector,
		timestampSelector: DefaultTimestampSelector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses an exported list page and returns its records in document order.
//
// The username comes from the anchor text, falling back to the profile link.
// The timestamp is paired with the anchor by position. Entries without a
// resolvable username are dropped.
func (e *Extractor) Extract(r io.Reader) ([]followdiff.Record, error) {
	br := bufio.NewReader(r)
	if isJSON(br) {
		return nil, followdiff.Errorf(followdiff.EUNSUPPORTED, "document is JSON; request the HTML format when downloading your information")
	}

	decoded, err := charset.NewReader(br, "text/html")
	if err != nil {
		return nil, followdiff.Errorf(followdiff.EINVALID, "failed to decode HTML: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, followdiff.Errorf(followdiff.EINVALID, "failed to parse HTML: %v", err)
	}

	anchors := doc.Find(e.anchorSelector)
	timestamps := doc.Find(e.timestampSelector)

	records := make([]followdiff.Record, 0, anchors.Length())
	anchors.Each(func(i int, sel *goquery.Selection) {
		href, hasHref := sel.Attr("href")

		username := strings.TrimSpace(sel.Text())
		if username == "" && hasHref {
			username = UsernameFromURL(href)
		}
		if username == "" {
			return
		}

		profileURL := href
		if !hasHref {
			profileURL = followdiff.ProfileURL(username)
		}

		var timestamp string
		if i < timestamps.Length() {
			timestamp = strings.TrimSpace(timestamps.Eq(i).Text())
		}

		records = append(records, followdiff.Record{
			Username:   username,
			ProfileURL: profileURL,
			Timestamp:  timestamp,
		})
	})

	return records, nil
}

// ExtractFile opens the file at path and extracts its records.
// Returns ENOTFOUND if the file does not exist.
func (e *Extractor) ExtractFile(path string) ([]followdiff.Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, followdiff.Errorf(followdiff.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return e.Extract(f)
}

// UsernameFromURL returns the username a profile link points to, or an empty
// string if the link is not a profile link.
// Example: https://www.instagram.com/alice/ → alice
func UsernameFromURL(href string) string {
	_, rest, ok := strings.Cut(href, profilePrefix)
	if !ok {
		return ""
	}

	if u, err := url.Parse(rest); err == nil {
		rest = u.Path
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "/")

	// Newer exports link through the /_u/ redirect.
	rest = strings.TrimPrefix(rest, "_u/")

	return rest
}

// isJSON peeks past leading whitespace and reports whether the input looks
// like the JSON flavour of the export.
func isJSON(br *bufio.Reader) bool {
	head, _ := br.Peek(512)
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	return len(head) > 0 && (head[0] == '{' || head[0] == '[')
}
