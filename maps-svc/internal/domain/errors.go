package domain

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
	ErrCache      = errors.New("cache error")
)

// Kind returns the short name of the error kind carried by err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	case errors.Is(err, ErrCache):
		return "cache_error"
	default:
		return "internal_error"
	}
}
