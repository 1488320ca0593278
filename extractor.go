package followdiff

import "io"

// RecordExtractor extracts relationship records from one exported list page.
type RecordExtractor interface {
	// Extract parses an HTML document and returns its records in document order.
	// A document without any list entries yields an empty slice and a nil error.
	// Returns EINVALID when the document cannot be decoded or parsed.
	Extract(r io.Reader) ([]Record, error)
}
