package mock

import (
	"io"

	"github.com/fwojciec/followdiff"
)

var _ followdiff.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of followdiff.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(r io.Reader) ([]followdiff.Record, error)
}

func (e *RecordExtractor) Extract(r io.Reader) ([]followdiff.Record, error) {
	return e.ExtractFn(r)
}
