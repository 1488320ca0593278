package followdiff

import (
	"context"
	"time"
)

// ListResult is the outcome of extracting one relationship list.
// A nil Err means Records is the complete list, even when it is empty.
type ListResult struct {
	Kind    ListKind `json:"kind"`
	Path    string   `json:"path,omitempty"`
	Records []Record `json:"records"`
	Digest  string   `json:"digest,omitempty"` // xxhash of the source file
	Err     error    `json:"-"`
}

// OK reports whether the list was found and extracted.
func (l *ListResult) OK() bool {
	return l != nil && l.Err == nil
}

// RunResult holds everything produced by one import run.
// A RunResult is never modified after it is returned; a new run produces a new value.
type RunResult struct {
	ID           string                   `json:"id"`
	StartedAt    time.Time                `json:"startedAt"`
	FinishedAt   time.Time                `json:"finishedAt"`
	ExtractDir   string                   `json:"extractDir,omitempty"`
	Lists        map[ListKind]*ListResult `json:"lists"`
	NonFollowers []Record                 `json:"nonFollowers"`
}

// List returns the records of a list, or nil if it was not populated.
func (r *RunResult) List(kind ListKind) []Record {
	if r == nil {
		return nil
	}
	if l, ok := r.Lists[kind]; ok {
		return l.Records
	}
	return nil
}

// Followers returns the followers list.
func (r *RunResult) Followers() []Record { return r.List(ListFollowers) }

// Following returns the following list.
func (r *RunResult) Following() []Record { return r.List(ListFollowing) }

// RequestsReceived returns the follow requests you have received.
func (r *RunResult) RequestsReceived() []Record { return r.List(ListRequestsReceived) }

// RequestsSent returns the follow requests you have sent that are still pending.
func (r *RunResult) RequestsSent() []Record { return r.List(ListRequestsSent) }

// Failed returns the lists that could not be located or extracted, in processing order.
func (r *RunResult) Failed() []*ListResult {
	var failed []*ListResult
	for _, kind := range ListKinds() {
		if l, ok := r.Lists[kind]; ok && !l.OK() {
			failed = append(failed, l)
		}
	}
	return failed
}

// ImportRequest describes the input of an import run.
// Either ArchivePath or Paths must be set. With an archive, every list is
// located in ExtractDir after expansion unless Paths names it explicitly.
// Without one, only the lists named in Paths are extracted.
type ImportRequest struct {
	ArchivePath string
	ExtractDir  string
	Paths       map[ListKind]string
}

// Validate returns an error if the request names no input.
func (r *ImportRequest) Validate() error {
	if r.ArchivePath == "" && len(r.Paths) == 0 {
		return Errorf(EINVALID, "archive path or list files required")
	}
	if r.ArchivePath != "" && r.ExtractDir == "" {
		return Errorf(EINVALID, "extract directory required")
	}
	return nil
}

// Stage identifies a step of an import run.
type Stage string

// Import stages in the order they are reported.
const (
	StageExtracting Stage = "extracting"
	StageParsing    Stage = "parsing"
	StageComparing  Stage = "comparing"
	StageDone       Stage = "done"
)

// Event reports import progress to the presentation layer.
type Event struct {
	Stage   Stage
	Kind    ListKind // set for StageParsing
	Percent float64
}

// Importer runs the extraction and difference pipeline.
type Importer interface {
	Import(ctx context.Context, req ImportRequest) (*RunResult, error)
}
