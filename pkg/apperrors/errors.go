package apperrors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNoPhotos        = errors.New("at least one photo is required")
	ErrUnknownJobType  = errors.New("unknown job type")
	ErrUnknownBuilding = errors.New("unknown building")
	ErrInvalidFloor    = errors.New("floor not valid for building")
	ErrMissingField    = errors.New("missing required field")
)
