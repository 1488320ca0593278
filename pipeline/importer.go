// Package pipeline runs the import: expand the export, extract every
// relationship list and compute the non-followers.
package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/followdiff"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Progress milestones reported while importing.
const (
	percentExtracting = 10
	percentExtracted  = 25
	percentComparing  = 90
	percentDone       = 100
)

// percentParsed is the milestone reached once a list has been extracted.
var percentParsed = map[followdiff.ListKind]float64{
	followdiff.ListRequestsReceived: 40,
	followdiff.ListRequestsSent:     55,
	followdiff.ListFollowers:        70,
	followdiff.ListFollowing:        85,
}

// Ensure Importer implements followdiff.Importer at compile time.
var _ followdiff.Importer = (*Importer)(nil)

// Importer runs the extraction and difference pipeline.
//
// Lists are extracted concurrently, one goroutine per list. A list that is
// missing or cannot be extracted is recorded with its reason and the run
// continues with the others.
type Importer struct {
	Archive   followdiff.ArchiveLoader
	Locator   followdiff.ListLocator
	Extractor followdiff.RecordExtractor

	// Matcher compares usernames across lists. Defaults to case-insensitive.
	Matcher followdiff.Matcher

	// Logger receives warnings about missing and unreadable lists.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Import runs the pipeline and returns its result.
func (im *Importer) Import(ctx context.Context, req followdiff.ImportRequest) (*followdiff.RunResult, error) {
	return im.Run(ctx, req, nil)
}

// Run is like Import but reports progress to fn, which may be nil.
// fn may be called from multiple goroutines but never concurrently.
func (im *Importer) Run(ctx context.Context, req followdiff.ImportRequest, fn func(followdiff.Event)) (*followdiff.RunResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	emit := func(ev followdiff.Event) {
		if fn == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fn(ev)
	}

	kinds := im.kinds(req)

	// Parsed events are released in processing order, each at its kind's
	// milestone, whatever order the lists finish in.
	finished := make([]bool, len(kinds))
	next := 0
	emitParsed := func(i int) {
		mu.Lock()
		defer mu.Unlock()
		finished[i] = true
		for next < len(kinds) && finished[next] {
			if fn != nil {
				fn(followdiff.Event{
					Stage:   followdiff.StageParsing,
					Kind:    kinds[next],
					Percent: percentParsed[kinds[next]],
				})
			}
			next++
		}
	}

	result := &followdiff.RunResult{
		ID:         uuid.NewString(),
		StartedAt:  im.now(),
		ExtractDir: req.ExtractDir,
		Lists:      make(map[followdiff.ListKind]*followdiff.ListResult),
	}

	if req.ArchivePath != "" {
		emit(followdiff.Event{Stage: followdiff.StageExtracting, Percent: percentExtracting})
		if err := im.Archive.Extract(ctx, req.ArchivePath, req.ExtractDir); err != nil {
			return nil, err
		}
		emit(followdiff.Event{Stage: followdiff.StageExtracting, Percent: percentExtracted})
	}

	lists := make([]*followdiff.ListResult, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			lists[i] = im.extractList(gctx, req, kind)
			emitParsed(i)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, l := range lists {
		result.Lists[l.Kind] = l
	}

	emit(followdiff.Event{Stage: followdiff.StageComparing, Percent: percentComparing})
	followers := result.Followers()
	if len(followers) == 0 {
		im.logger().Warn("followers list is empty; every account you follow will be reported as a non-follower")
	}
	result.NonFollowers = followdiff.Difference(result.Following(), followers, im.Matcher)
	im.logger().Info("non-followers computed", "count", len(result.NonFollowers))

	result.FinishedAt = im.now()
	emit(followdiff.Event{Stage: followdiff.StageDone, Percent: percentDone})
	return result, nil
}

// kinds returns the lists a request asks for in processing order.
func (im *Importer) kinds(req followdiff.ImportRequest) []followdiff.ListKind {
	var kinds []followdiff.ListKind
	for _, kind := range followdiff.ListKinds() {
		if _, ok := req.Paths[kind]; ok || req.ArchivePath != "" {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// extractList locates and extracts a single list. Failures are recorded
// on the returned ListResult instead of being returned.
func (im *Importer) extractList(ctx context.Context, req followdiff.ImportRequest, kind followdiff.ListKind) *followdiff.ListResult {
	l := &followdiff.ListResult{Kind: kind, Records: []followdiff.Record{}}

	if err := ctx.Err(); err != nil {
		l.Err = err
		return l
	}

	path, ok := req.Paths[kind]
	if !ok {
		located, err := im.Locator.Locate(req.ExtractDir, kind)
		if err != nil {
			im.logger().Warn("list file not found", "list", kind, "file", kind.FileName(), "err", err)
			l.Err = err
			return l
		}
		path = located
	}
	l.Path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		im.logger().Warn("list file not found", "list", kind, "path", path)
		l.Err = followdiff.Errorf(followdiff.ENOTFOUND, "file %q not found", path)
		return l
	} else if err != nil {
		im.logger().Error("failed to read list", "list", kind, "path", path, "err", err)
		l.Err = err
		return l
	}
	l.Digest = strconv.FormatUint(xxhash.Sum64(data), 16)

	records, err := im.Extractor.Extract(bytes.NewReader(data))
	if err != nil {
		im.logger().Error("failed to extract list", "list", kind, "path", path, "err", err)
		l.Err = err
		return l
	}
	l.Records = records
	im.logger().Info("list extracted", "list", kind, "path", path, "count", len(records))
	return l
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return im.Logger
}

func (im *Importer) now() time.Time {
	if im.Now == nil {
		return time.Now()
	}
	return im.Now()
}
