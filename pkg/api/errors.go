package api

import "errors"

var (
	// ErrInvalidNumber is returned when a numeric field is neither a JSON number nor a numeric string
	ErrInvalidNumber = errors.New("invalid number")
	// ErrMissingField is returned when a response lacks a field the views need
	ErrMissingField = errors.New("missing field")
	// ErrUnexpectedShape is returned when a JSON value has the wrong kind (e.g. an array where an object was expected)
	ErrUnexpectedShape = errors.New("unexpected JSON shape")
)
