package mock

import "github.com/fwojciec/followdiff"

var _ followdiff.Converter = (*Converter)(nil)

// Converter is a mock implementation of followdiff.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
