package node

import (
	"errors"

	"github.com/jmylchreest/img2color/internal/colour"
	"github.com/jmylchreest/img2color/internal/naming"
)

// Kind classifies a failure for hosts that cannot inspect Go errors.
type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindTaxonomyUnavailable Kind = "taxonomy_unavailable"
	KindEmptyTaxonomy       Kind = "empty_taxonomy"
	KindInternal            Kind = "internal"
)

// KindOf maps err to its failure kind. A nil error has no kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, colour.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, naming.ErrEmptyTaxonomy):
		return KindEmptyTaxonomy
	case errors.Is(err, naming.ErrTaxonomyUnavailable):
		return KindTaxonomyUnavailable
	default:
		return KindInternal
	}
}

// Error is the structured failure handed to a host pipeline.
type Error struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// AsError converts err into its structured form. It returns nil for a nil error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}
	return &Error{Kind: KindOf(err), Message: err.Error()}
}
