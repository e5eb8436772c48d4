package prepare

import "errors"

var (
	// ErrParserRequired is returned when a specification parser is not provided.
	ErrParserRequired = errors.New("specification parser required")
)
