package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrQueryFailed        = fmt.Errorf("query failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Catalog errors
	ErrSongNotFound = fmt.Errorf("song not found")
	ErrMixNotFound  = fmt.Errorf("mix not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
